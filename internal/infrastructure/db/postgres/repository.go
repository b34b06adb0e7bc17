package postgres

import (
	"context"
	"errors"
	"fmt"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// Open connects to PostgreSQL and migrates the registry schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the shipments and lifecycle_events tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ShipmentDTO{}, &LifecycleEventDTO{}); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

// ShipmentRepository implements ports.ShipmentRepository using GORM.
type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func orderedEvents(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the shipment with its initial events in one statement batch.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	if s.TrackingNumber == "" {
		return fmt.Errorf("create shipment: %w: tracking number is required", domain.ErrInvalidInput)
	}

	dto := fromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create shipment %s: %w", s.TrackingNumber, domain.ErrDuplicateShipment)
		}
		return fmt.Errorf("create shipment: %w", err)
	}
	s.Seq = dto.Seq
	return nil
}

// FindByTrackingNumber retrieves a shipment and its full event log.
func (r *ShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return r.first(ctx, "tracking_number = ?", trackingNumber)
}

// FindByIdempotencyKey retrieves a shipment created with the given key.
func (r *ShipmentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Shipment, error) {
	return r.first(ctx, "idempotency_key = ?", key)
}

func (r *ShipmentRepository) first(ctx context.Context, query string, arg any) (*domain.Shipment, error) {
	var dto ShipmentDTO
	err := r.db.WithContext(ctx).Preload("Events", orderedEvents).First(&dto, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return toDomain(dto), nil
}

// AppendEvent locks the shipment row, validates ev against the stored log and
// inserts it within one transaction.
func (r *ShipmentRepository) AppendEvent(ctx context.Context, trackingNumber string, ev domain.LifecycleEvent) (*domain.Shipment, error) {
	var updated *domain.Shipment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto ShipmentDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Events", orderedEvents).
			First(&dto, "tracking_number = ?", trackingNumber).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrShipmentNotFound
			}
			return err
		}

		shipment := toDomain(dto)
		if err := shipment.Append(ev); err != nil {
			return err
		}

		row := eventFromDomain(trackingNumber, len(dto.Events), ev)
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		err = tx.Model(&ShipmentDTO{}).
			Where("tracking_number = ?", trackingNumber).
			Update("stage", string(shipment.CurrentStage())).Error
		if err != nil {
			return fmt.Errorf("update stage: %w", err)
		}

		updated = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns every shipment in registration order.
func (r *ShipmentRepository) List(ctx context.Context) ([]*domain.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).Preload("Events", orderedEvents).Order("seq ASC").Find(&dtos).Error
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	out := make([]*domain.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, toDomain(dto))
	}
	return out, nil
}

// Ping reports whether the database is reachable.
func (r *ShipmentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
