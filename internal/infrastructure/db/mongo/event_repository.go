package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

const maxAppendAttempts = 5

// AppendEvent validates ev against the stored log and pushes it in a single
// update guarded by event_count. A concurrent writer makes the guard miss, in
// which case the append is re-validated against the fresh document.
func (r *ShipmentRepository) AppendEvent(ctx context.Context, trackingNumber string, ev domain.LifecycleEvent) (*domain.Shipment, error) {
	for attempt := 0; attempt < maxAppendAttempts; attempt++ {
		doc, err := r.findOne(ctx, bson.M{"tracking_number": trackingNumber})
		if err != nil {
			return nil, err
		}

		shipment := doc.toDomain()
		if err := shipment.Append(ev); err != nil {
			return nil, err
		}

		filter := bson.M{
			"tracking_number": trackingNumber,
			"event_count":     doc.EventCount,
		}
		update := bson.M{
			"$push": bson.M{"events": toEventDocument(ev)},
			"$set":  bson.M{"stage": string(shipment.CurrentStage())},
			"$inc":  bson.M{"event_count": 1},
		}

		updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		res, err := r.col.UpdateOne(updateCtx, filter, update)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("append event: %w", err)
		}
		if res.MatchedCount == 1 {
			return shipment, nil
		}
	}
	return nil, fmt.Errorf("append event %s: %w", trackingNumber, domain.ErrConcurrentUpdate)
}
