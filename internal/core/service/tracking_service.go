package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// TrackingService derives a shipment's stage and progress from its event log.
type TrackingService struct {
	repo   ports.ShipmentRepository
	logger zerolog.Logger
}

func NewTrackingService(repo ports.ShipmentRepository, logger zerolog.Logger) *TrackingService {
	return &TrackingService{repo: repo, logger: logger}
}

// GetStatus returns the lifecycle view of a single shipment. It never returns
// partial data alongside an error.
func (s *TrackingService) GetStatus(ctx context.Context, trackingNumber string) (*ports.ShipmentStatus, error) {
	id := strings.TrimSpace(trackingNumber)
	if id == "" {
		return nil, fmt.Errorf("get status: %w: tracking number is required", domain.ErrInvalidInput)
	}

	shipment, err := s.repo.FindByTrackingNumber(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	s.logger.Debug().Str("tracking_number", id).Msg("status requested")
	return statusOf(shipment), nil
}

// statusOf is a pure projection of a shipment snapshot.
func statusOf(shipment *domain.Shipment) *ports.ShipmentStatus {
	current := shipment.CurrentStage()
	currentIdx := current.Index()

	ordered := shipment.OrderedEvents()
	events := make([]ports.EventView, len(ordered))
	for i, ev := range ordered {
		events[i] = ports.EventView{
			Stage:     ev.Stage,
			Location:  ev.Location,
			Timestamp: ev.Timestamp,
			Completed: ev.Stage.Index() <= currentIdx,
		}
	}

	stages := domain.Stages()
	timeline := make([]ports.StageView, len(stages))
	for i, st := range stages {
		timeline[i] = ports.StageView{Stage: st, Reached: i <= currentIdx}
	}

	return &ports.ShipmentStatus{
		TrackingNumber:    shipment.TrackingNumber,
		Origin:            shipment.Origin,
		Destination:       shipment.Destination,
		Stage:             current,
		ProgressPercent:   domain.ProgressPercent(current),
		Events:            events,
		Timeline:          timeline,
		EstimatedDelivery: shipment.EstimatedDelivery,
	}
}
