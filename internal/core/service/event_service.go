package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

type eventService struct {
	repo      ports.ShipmentRepository
	dedup     ports.DedupChecker
	publisher ports.EventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

// NewEventService returns an EventService implementation.
func NewEventService(
	repo ports.ShipmentRepository,
	dedup ports.DedupChecker,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		repo:      repo,
		dedup:     dedup,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Process validates, deduplicates, and appends a single lifecycle event.
func (s *eventService) Process(ctx context.Context, in ports.TrackingEventInput) error {
	trackingNumber := strings.TrimSpace(in.TrackingNumber)
	if trackingNumber == "" {
		return fmt.Errorf("process event: %w: tracking number is required", domain.ErrInvalidInput)
	}
	stage, err := domain.ParseStage(in.Stage)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}
	if in.Timestamp.IsZero() {
		return fmt.Errorf("process event: %w: timestamp is required", domain.ErrInvalidInput)
	}

	// Duplicates are skipped silently; a failing dedup store never blocks processing.
	key := dedupKey(trackingNumber, stage, in.Timestamp)
	isDup, err := s.dedup.IsDuplicate(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("tracking_number", trackingNumber).Str("stage", string(stage)).Msg("duplicate event skipped")
		return nil
	}

	ev := domain.LifecycleEvent{
		ID:        uuid.NewString(),
		Stage:     stage,
		Location:  strings.TrimSpace(in.Location),
		Timestamp: in.Timestamp.UTC(),
		Source:    in.Source,
	}

	updated, err := s.repo.AppendEvent(ctx, trackingNumber, ev)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	// Marked after the append so a failed write can be retried.
	if markErr := s.dedup.Mark(ctx, key); markErr != nil {
		s.log.Warn().Err(markErr).Str("tracking_number", trackingNumber).Msg("failed to set dedup key")
	}

	current := updated.CurrentStage()
	recorded := domain.StageRecorded{
		TrackingNumber:  trackingNumber,
		Event:           ev,
		CurrentStage:    current,
		ProgressPercent: domain.ProgressPercent(current),
		Delivered:       current.IsTerminal(),
		RecordedAt:      s.now(),
	}
	if err := s.publisher.Publish(ctx, recorded); err != nil {
		s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("failed to publish stage event")
	}

	s.log.Info().
		Str("tracking_number", trackingNumber).
		Str("stage", string(stage)).
		Str("source", in.Source).
		Int("progress", recorded.ProgressPercent).
		Msg("event processed")

	return nil
}

// dedupKey keeps full timestamp precision; distinct events of one stage may
// land within the same second.
func dedupKey(trackingNumber string, stage domain.Stage, ts time.Time) string {
	return fmt.Sprintf("%s:%s:%d", trackingNumber, stage, ts.UnixNano())
}
