package postgres

import (
	"time"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// ShipmentDTO is the relational row of a registered shipment. Stage is a
// denormalised copy of the derived current stage.
type ShipmentDTO struct {
	TrackingNumber    string              `gorm:"type:varchar(32);primaryKey"`
	Seq               int64               `gorm:"autoIncrement;not null;uniqueIndex"`
	Origin            string              `gorm:"type:varchar(255);not null"`
	Destination       string              `gorm:"type:varchar(255);not null"`
	ServiceTier       string              `gorm:"type:varchar(16);not null"`
	WeightKg          float64             `gorm:"not null"`
	DeclaredCost      int64               `gorm:"not null"`
	CreatedAt         time.Time           `gorm:"not null"`
	EstimatedDelivery time.Time           `gorm:"not null"`
	IdempotencyKey    *string             `gorm:"type:varchar(128);uniqueIndex"`
	Stage             string              `gorm:"type:varchar(16);not null;index"`
	Events            []LifecycleEventDTO `gorm:"foreignKey:TrackingNumber;references:TrackingNumber;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// LifecycleEventDTO is one row of a shipment's append-only event log.
// Position preserves append order within the shipment.
type LifecycleEventDTO struct {
	ID             string    `gorm:"type:varchar(64);primaryKey"`
	TrackingNumber string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_event_position"`
	Position       int       `gorm:"not null;uniqueIndex:idx_event_position"`
	Stage          string    `gorm:"type:varchar(16);not null"`
	Location       string    `gorm:"type:varchar(255)"`
	Timestamp      time.Time `gorm:"not null"`
	Source         string    `gorm:"type:varchar(64)"`
}

func (LifecycleEventDTO) TableName() string {
	return "lifecycle_events"
}

func fromDomain(s *domain.Shipment) ShipmentDTO {
	events := make([]LifecycleEventDTO, len(s.Events))
	for i, ev := range s.Events {
		events[i] = eventFromDomain(s.TrackingNumber, i, ev)
	}

	var key *string
	if s.IdempotencyKey != "" {
		k := s.IdempotencyKey
		key = &k
	}

	return ShipmentDTO{
		TrackingNumber:    s.TrackingNumber,
		Origin:            s.Origin,
		Destination:       s.Destination,
		ServiceTier:       string(s.ServiceTier),
		WeightKg:          s.WeightKg,
		DeclaredCost:      s.DeclaredCost,
		CreatedAt:         s.CreatedAt.UTC(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		IdempotencyKey:    key,
		Stage:             string(s.CurrentStage()),
		Events:            events,
	}
}

func eventFromDomain(trackingNumber string, position int, ev domain.LifecycleEvent) LifecycleEventDTO {
	return LifecycleEventDTO{
		ID:             ev.ID,
		TrackingNumber: trackingNumber,
		Position:       position,
		Stage:          string(ev.Stage),
		Location:       ev.Location,
		Timestamp:      ev.Timestamp.UTC(),
		Source:         ev.Source,
	}
}

func toDomain(dto ShipmentDTO) *domain.Shipment {
	events := make([]domain.LifecycleEvent, len(dto.Events))
	for i, ev := range dto.Events {
		events[i] = domain.LifecycleEvent{
			ID:        ev.ID,
			Stage:     domain.Stage(ev.Stage),
			Location:  ev.Location,
			Timestamp: ev.Timestamp.UTC(),
			Source:    ev.Source,
		}
	}

	var key string
	if dto.IdempotencyKey != nil {
		key = *dto.IdempotencyKey
	}

	return &domain.Shipment{
		TrackingNumber:    dto.TrackingNumber,
		Seq:               dto.Seq,
		Origin:            dto.Origin,
		Destination:       dto.Destination,
		ServiceTier:       domain.ServiceTier(dto.ServiceTier),
		WeightKg:          dto.WeightKg,
		DeclaredCost:      dto.DeclaredCost,
		CreatedAt:         dto.CreatedAt.UTC(),
		EstimatedDelivery: dto.EstimatedDelivery.UTC(),
		IdempotencyKey:    key,
		Events:            events,
	}
}
