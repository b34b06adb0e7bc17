package ports

import (
	"context"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// ShipmentRepository is the registry's data source. Implementations return
// snapshots: callers may not observe later mutations through a returned value.
type ShipmentRepository interface {
	// Create registers a new shipment and assigns its registration sequence.
	// Returns domain.ErrDuplicateShipment when the tracking number is taken.
	Create(ctx context.Context, s *domain.Shipment) error
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Shipment, error)
	// AppendEvent atomically validates and appends ev to the shipment's log
	// and returns the updated snapshot. Concurrent readers observe either the
	// previous log or the full new one.
	AppendEvent(ctx context.Context, trackingNumber string, ev domain.LifecycleEvent) (*domain.Shipment, error)
	// List returns every shipment in registration order.
	List(ctx context.Context) ([]*domain.Shipment, error)
}

// EventPublisher forwards recorded lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.StageRecorded) error
}

// DedupChecker abstracts the idempotency store for incoming lifecycle events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}
