package mongo

import (
	"time"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// shipmentDocument is the persisted layout: one document per shipment with an
// embedded, ordered event log. Stage is a denormalised copy for querying.
type shipmentDocument struct {
	TrackingNumber    string          `bson:"tracking_number"`
	Seq               int64           `bson:"seq"`
	Origin            string          `bson:"origin"`
	Destination       string          `bson:"destination"`
	ServiceTier       string          `bson:"service_tier"`
	WeightKg          float64         `bson:"weight_kg"`
	DeclaredCost      int64           `bson:"declared_cost"`
	CreatedAt         time.Time       `bson:"created_at"`
	EstimatedDelivery time.Time       `bson:"estimated_delivery"`
	IdempotencyKey    string          `bson:"idempotency_key,omitempty"`
	Stage             string          `bson:"stage"`
	EventCount        int             `bson:"event_count"`
	Events            []eventDocument `bson:"events"`
}

type eventDocument struct {
	ID        string    `bson:"id"`
	Stage     string    `bson:"stage"`
	Location  string    `bson:"location"`
	Timestamp time.Time `bson:"timestamp"`
	Source    string    `bson:"source,omitempty"`
}

func toDocument(s *domain.Shipment) shipmentDocument {
	events := make([]eventDocument, len(s.Events))
	for i, ev := range s.Events {
		events[i] = toEventDocument(ev)
	}
	return shipmentDocument{
		TrackingNumber:    s.TrackingNumber,
		Seq:               s.Seq,
		Origin:            s.Origin,
		Destination:       s.Destination,
		ServiceTier:       string(s.ServiceTier),
		WeightKg:          s.WeightKg,
		DeclaredCost:      s.DeclaredCost,
		CreatedAt:         s.CreatedAt.UTC(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		IdempotencyKey:    s.IdempotencyKey,
		Stage:             string(s.CurrentStage()),
		EventCount:        len(events),
		Events:            events,
	}
}

func toEventDocument(ev domain.LifecycleEvent) eventDocument {
	return eventDocument{
		ID:        ev.ID,
		Stage:     string(ev.Stage),
		Location:  ev.Location,
		Timestamp: ev.Timestamp.UTC(),
		Source:    ev.Source,
	}
}

func (d shipmentDocument) toDomain() *domain.Shipment {
	events := make([]domain.LifecycleEvent, len(d.Events))
	for i, ev := range d.Events {
		events[i] = domain.LifecycleEvent{
			ID:        ev.ID,
			Stage:     domain.Stage(ev.Stage),
			Location:  ev.Location,
			Timestamp: ev.Timestamp.UTC(),
			Source:    ev.Source,
		}
	}
	return &domain.Shipment{
		TrackingNumber:    d.TrackingNumber,
		Seq:               d.Seq,
		Origin:            d.Origin,
		Destination:       d.Destination,
		ServiceTier:       domain.ServiceTier(d.ServiceTier),
		WeightKg:          d.WeightKg,
		DeclaredCost:      d.DeclaredCost,
		CreatedAt:         d.CreatedAt.UTC(),
		EstimatedDelivery: d.EstimatedDelivery.UTC(),
		IdempotencyKey:    d.IdempotencyKey,
		Events:            events,
	}
}
