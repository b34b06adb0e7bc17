package handler

import (
	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// --- Request → Service input ---

func toBookInput(req bookShipmentRequest, idempotencyKey string) ports.BookShipmentInput {
	in := ports.BookShipmentInput{
		Origin:         req.Origin,
		Destination:    req.Destination,
		WeightKg:       req.WeightKg,
		ServiceTier:    req.ServiceTier,
		DeclaredCost:   req.DeclaredCost,
		IdempotencyKey: idempotencyKey,
	}
	if req.EstimatedDelivery != nil {
		in.EstimatedDelivery = req.EstimatedDelivery.UTC()
	}
	return in
}

func toEventInput(r lifecycleEventRequest) ports.TrackingEventInput {
	return ports.TrackingEventInput{
		TrackingNumber: r.TrackingNumber,
		Stage:          r.Stage,
		Location:       r.Location,
		Timestamp:      r.Timestamp,
		Source:         r.Source,
	}
}

// --- Service result → HTTP response ---

func statusLink(trackingNumber string) shipmentLinks {
	return shipmentLinks{Self: "/v1/shipments/" + trackingNumber + "/status"}
}

func toQuoteResponse(q domain.Quote) quoteResponse {
	return quoteResponse{
		Price:       q.Price,
		Quoted:      q.Quoted,
		WeightKg:    q.WeightKg,
		ServiceTier: string(q.ServiceTier),
	}
}

func toStatusResponse(s *ports.ShipmentStatus) statusResponse {
	events := make([]eventResponse, len(s.Events))
	for i, ev := range s.Events {
		events[i] = eventResponse{
			Stage:     string(ev.Stage),
			Location:  ev.Location,
			Timestamp: ev.Timestamp.UTC(),
			Completed: ev.Completed,
		}
	}
	timeline := make([]timelineItemResponse, len(s.Timeline))
	for i, st := range s.Timeline {
		timeline[i] = timelineItemResponse{Stage: string(st.Stage), Reached: st.Reached}
	}

	return statusResponse{
		TrackingNumber:    s.TrackingNumber,
		Origin:            s.Origin,
		Destination:       s.Destination,
		Stage:             string(s.Stage),
		ProgressPercent:   s.ProgressPercent,
		Delivered:         s.Stage.IsTerminal(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		Events:            events,
		Timeline:          timeline,
		Links:             statusLink(s.TrackingNumber),
	}
}

func toBookResponse(r *ports.ShipmentResult) bookShipmentResponse {
	return bookShipmentResponse{
		TrackingNumber:    r.TrackingNumber,
		Stage:             string(r.Stage),
		DeclaredCost:      r.DeclaredCost,
		CreatedAt:         r.CreatedAt.UTC(),
		EstimatedDelivery: r.EstimatedDelivery.UTC(),
		Links:             statusLink(r.TrackingNumber),
	}
}

func toListResponse(view ports.View, items []ports.ShipmentSummary) listShipmentsResponse {
	data := make([]shipmentSummaryResponse, len(items))
	for i, s := range items {
		data[i] = shipmentSummaryResponse{
			TrackingNumber:    s.TrackingNumber,
			Origin:            s.Origin,
			Destination:       s.Destination,
			ServiceTier:       string(s.ServiceTier),
			Stage:             string(s.Stage),
			DeclaredCost:      s.DeclaredCost,
			CreatedAt:         s.CreatedAt.UTC(),
			EstimatedDelivery: s.EstimatedDelivery.UTC(),
			Links:             statusLink(s.TrackingNumber),
		}
	}
	return listShipmentsResponse{View: string(view), Data: data}
}
