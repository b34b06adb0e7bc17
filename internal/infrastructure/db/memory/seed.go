package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// DemoShipments returns the sample order set shown on the storefront: one
// shipment out for delivery, one delivered, one sitting in a warehouse.
func DemoShipments() []*domain.Shipment {
	at := func(day, hour, minute int) time.Time {
		return time.Date(2024, time.November, day, hour, minute, 0, 0, time.UTC)
	}

	return []*domain.Shipment{
		{
			TrackingNumber:    "CG-2024-001234",
			Origin:            "Moscow",
			Destination:       "Saint Petersburg",
			ServiceTier:       domain.TierStandard,
			WeightKg:          300,
			DeclaredCost:      15000,
			CreatedAt:         at(10, 7, 30),
			EstimatedDelivery: at(11, 15, 0),
			Events: []domain.LifecycleEvent{
				{ID: "demo-1234-1", Stage: domain.StageReceived, Location: "Moscow, warehouse #1", Timestamp: at(10, 8, 0), Source: "seed"},
				{ID: "demo-1234-2", Stage: domain.StageTransit, Location: "M11 highway, km 450", Timestamp: at(10, 14, 30), Source: "seed"},
				{ID: "demo-1234-3", Stage: domain.StageWarehouse, Location: "Tver, distribution center", Timestamp: at(10, 18, 0), Source: "seed"},
				{ID: "demo-1234-4", Stage: domain.StageDelivering, Location: "Saint Petersburg, delivery", Timestamp: at(11, 9, 0), Source: "seed"},
			},
		},
		{
			TrackingNumber:    "CG-2024-001122",
			Origin:            "Kazan",
			Destination:       "Yekaterinburg",
			ServiceTier:       domain.TierExpress,
			WeightKg:          220,
			DeclaredCost:      22000,
			CreatedAt:         at(5, 10, 0),
			EstimatedDelivery: at(7, 18, 0),
			Events: []domain.LifecycleEvent{
				{ID: "demo-1122-1", Stage: domain.StageReceived, Location: "Kazan", Timestamp: at(5, 10, 0), Source: "seed"},
				{ID: "demo-1122-2", Stage: domain.StageTransit, Location: "M7 highway", Timestamp: at(5, 16, 0), Source: "seed"},
				{ID: "demo-1122-3", Stage: domain.StageDelivered, Location: "Yekaterinburg", Timestamp: at(7, 12, 0), Source: "seed"},
			},
		},
		{
			TrackingNumber:    "CG-2024-000998",
			Origin:            "Novosibirsk",
			Destination:       "Moscow",
			ServiceTier:       domain.TierPremium,
			WeightKg:          233,
			DeclaredCost:      35000,
			CreatedAt:         at(8, 9, 0),
			EstimatedDelivery: at(12, 18, 0),
			Events: []domain.LifecycleEvent{
				{ID: "demo-0998-1", Stage: domain.StageReceived, Location: "Novosibirsk", Timestamp: at(8, 9, 0), Source: "seed"},
				{ID: "demo-0998-2", Stage: domain.StageTransit, Location: "Trans-Siberian rail", Timestamp: at(8, 20, 0), Source: "seed"},
				{ID: "demo-0998-3", Stage: domain.StageWarehouse, Location: "Omsk, hub", Timestamp: at(9, 11, 0), Source: "seed"},
			},
		},
	}
}

// Seed registers shipments through repo in order. Duplicates are skipped so
// seeding a durable store twice is harmless.
func Seed(ctx context.Context, repo ports.ShipmentRepository, shipments []*domain.Shipment) (int, error) {
	created := 0
	for _, s := range shipments {
		if _, err := repo.FindByTrackingNumber(ctx, s.TrackingNumber); err == nil {
			continue
		}
		if err := repo.Create(ctx, s); err != nil {
			return created, fmt.Errorf("seed %s: %w", s.TrackingNumber, err)
		}
		created++
	}
	return created, nil
}
