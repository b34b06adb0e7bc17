package ports

import (
	"context"
	"time"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// View selects one side of the registry partition.
type View string

const (
	ViewActive  View = "active"
	ViewHistory View = "history"
)

// BookShipmentInput carries all data needed to register a new shipment.
type BookShipmentInput struct {
	Origin      string
	Destination string
	WeightKg    float64
	ServiceTier string
	// DeclaredCost overrides the quoted price when non-nil.
	DeclaredCost *int64
	// EstimatedDelivery overrides the tier policy when non-zero.
	EstimatedDelivery time.Time
	IdempotencyKey    string
}

// ShipmentResult is returned by the registry after booking a shipment.
type ShipmentResult struct {
	TrackingNumber    string
	Stage             domain.Stage
	DeclaredCost      int64
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing shipment.
	AlreadyExisted bool
}

// ShipmentSummary is the lightweight view used in registry listings.
type ShipmentSummary struct {
	TrackingNumber    string
	Origin            string
	Destination       string
	ServiceTier       domain.ServiceTier
	Stage             domain.Stage
	DeclaredCost      int64
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// EventView is a lifecycle event as exposed to callers.
type EventView struct {
	Stage     domain.Stage
	Location  string
	Timestamp time.Time
	// Completed is true when the event's stage has been reached.
	Completed bool
}

// StageView is one entry of the canonical stage timeline.
type StageView struct {
	Stage   domain.Stage
	Reached bool
}

// ShipmentStatus is the lifecycle tracker's answer for a single shipment.
type ShipmentStatus struct {
	TrackingNumber    string
	Origin            string
	Destination       string
	Stage             domain.Stage
	ProgressPercent   int
	Events            []EventView
	Timeline          []StageView
	EstimatedDelivery time.Time
}

// TrackingService derives a shipment's lifecycle state.
type TrackingService interface {
	GetStatus(ctx context.Context, trackingNumber string) (*ShipmentStatus, error)
}

// RegistryService books and lists shipments.
type RegistryService interface {
	BookShipment(ctx context.Context, input BookShipmentInput) (*ShipmentResult, error)
	List(ctx context.Context, view View) ([]ShipmentSummary, error)
	ListActive(ctx context.Context) ([]ShipmentSummary, error)
	ListHistory(ctx context.Context) ([]ShipmentSummary, error)
}
