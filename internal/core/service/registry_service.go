package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

const (
	bookingSource       = "booking"
	maxTrackingAttempts = 5
)

type RegistryService struct {
	repo   ports.ShipmentRepository
	quotes ports.QuoteService
	logger zerolog.Logger
	now    func() time.Time
}

func NewRegistryService(repo ports.ShipmentRepository, quotes ports.QuoteService, logger zerolog.Logger) *RegistryService {
	return &RegistryService{
		repo:   repo,
		quotes: quotes,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// BookShipment registers a new shipment with an initial received event. If an
// idempotency key is provided and already seen, the previously booked
// shipment is returned without side effects.
func (s *RegistryService) BookShipment(ctx context.Context, input ports.BookShipmentInput) (*ports.ShipmentResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("tracking_number", existing.TrackingNumber).Msg("idempotent replay")
			res := resultOf(existing)
			res.AlreadyExisted = true
			return res, nil
		}
		if err != nil && !errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, fmt.Errorf("book shipment: %w", err)
		}
	}

	origin := strings.TrimSpace(input.Origin)
	destination := strings.TrimSpace(input.Destination)
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("book shipment: %w: origin and destination are required", domain.ErrInvalidInput)
	}
	if math.IsNaN(input.WeightKg) || math.IsInf(input.WeightKg, 0) || input.WeightKg <= 0 {
		return nil, fmt.Errorf("book shipment: %w: weight must be a finite positive number", domain.ErrInvalidInput)
	}
	tier, err := domain.ParseServiceTier(input.ServiceTier)
	if err != nil {
		return nil, fmt.Errorf("book shipment: %w: %w", domain.ErrInvalidInput, err)
	}

	cost, err := s.declaredCost(input, tier)
	if err != nil {
		return nil, fmt.Errorf("book shipment: %w", err)
	}

	now := s.now()
	eta := input.EstimatedDelivery
	if eta.IsZero() {
		eta = estimatedDelivery(tier, now)
	}

	shipment := &domain.Shipment{
		Origin:            origin,
		Destination:       destination,
		ServiceTier:       tier,
		WeightKg:          input.WeightKg,
		DeclaredCost:      cost,
		CreatedAt:         now,
		EstimatedDelivery: eta.UTC(),
		IdempotencyKey:    input.IdempotencyKey,
	}
	if err := shipment.Append(domain.LifecycleEvent{
		ID:        uuid.NewString(),
		Stage:     domain.StageReceived,
		Location:  origin,
		Timestamp: now,
		Source:    bookingSource,
	}); err != nil {
		return nil, fmt.Errorf("book shipment: %w", err)
	}

	if err := s.create(ctx, shipment); err != nil {
		if winner := s.concurrentBooking(ctx, input.IdempotencyKey, err); winner != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("tracking_number", winner.TrackingNumber).Msg("idempotent replay after concurrent booking")
			res := resultOf(winner)
			res.AlreadyExisted = true
			return res, nil
		}
		s.logger.Error().Err(err).Msg("failed to book shipment")
		return nil, fmt.Errorf("book shipment: %w", err)
	}

	s.logger.Info().
		Str("tracking_number", shipment.TrackingNumber).
		Str("service_tier", string(tier)).
		Int64("declared_cost", cost).
		Msg("shipment booked")

	return resultOf(shipment), nil
}

// create retries on tracking number collisions. A duplicate caused by the
// idempotency key is returned at once.
func (s *RegistryService) create(ctx context.Context, shipment *domain.Shipment) error {
	var err error
	for range maxTrackingAttempts {
		shipment.TrackingNumber = generateTrackingNumber(shipment.CreatedAt)
		err = s.repo.Create(ctx, shipment)
		if !errors.Is(err, domain.ErrDuplicateShipment) {
			return err
		}
		if s.concurrentBooking(ctx, shipment.IdempotencyKey, err) != nil {
			return err
		}
		s.logger.Warn().Str("tracking_number", shipment.TrackingNumber).Msg("tracking number collision, retrying")
	}
	return err
}

// concurrentBooking returns the shipment registered under key when err is a
// duplicate raised by a booking that won the race for the same key.
func (s *RegistryService) concurrentBooking(ctx context.Context, key string, err error) *domain.Shipment {
	if key == "" || !errors.Is(err, domain.ErrDuplicateShipment) {
		return nil
	}
	existing, findErr := s.repo.FindByIdempotencyKey(ctx, key)
	if findErr != nil {
		return nil
	}
	return existing
}

func (s *RegistryService) declaredCost(input ports.BookShipmentInput, tier domain.ServiceTier) (int64, error) {
	if input.DeclaredCost != nil {
		if *input.DeclaredCost < 0 {
			return 0, fmt.Errorf("%w: declared cost must not be negative", domain.ErrInvalidInput)
		}
		return *input.DeclaredCost, nil
	}
	w := input.WeightKg
	q, err := s.quotes.Quote(ports.QuoteInput{WeightKg: &w, ServiceTier: string(tier)})
	if err != nil {
		return 0, err
	}
	return q.Price, nil
}

// List returns one side of the active/history partition in registration order.
func (s *RegistryService) List(ctx context.Context, view ports.View) ([]ports.ShipmentSummary, error) {
	var wantDelivered bool
	switch view {
	case ports.ViewActive:
		wantDelivered = false
	case ports.ViewHistory:
		wantDelivered = true
	default:
		return nil, fmt.Errorf("list shipments: %w: unknown view %q", domain.ErrInvalidInput, view)
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	out := make([]ports.ShipmentSummary, 0, len(all))
	for _, sh := range all {
		if sh.IsDelivered() == wantDelivered {
			out = append(out, summaryOf(sh))
		}
	}
	return out, nil
}

func (s *RegistryService) ListActive(ctx context.Context) ([]ports.ShipmentSummary, error) {
	return s.List(ctx, ports.ViewActive)
}

func (s *RegistryService) ListHistory(ctx context.Context) ([]ports.ShipmentSummary, error) {
	return s.List(ctx, ports.ViewHistory)
}

func resultOf(sh *domain.Shipment) *ports.ShipmentResult {
	return &ports.ShipmentResult{
		TrackingNumber:    sh.TrackingNumber,
		Stage:             sh.CurrentStage(),
		DeclaredCost:      sh.DeclaredCost,
		CreatedAt:         sh.CreatedAt,
		EstimatedDelivery: sh.EstimatedDelivery,
	}
}

func summaryOf(sh *domain.Shipment) ports.ShipmentSummary {
	return ports.ShipmentSummary{
		TrackingNumber:    sh.TrackingNumber,
		Origin:            sh.Origin,
		Destination:       sh.Destination,
		ServiceTier:       sh.ServiceTier,
		Stage:             sh.CurrentStage(),
		DeclaredCost:      sh.DeclaredCost,
		CreatedAt:         sh.CreatedAt,
		EstimatedDelivery: sh.EstimatedDelivery,
	}
}

// generateTrackingNumber returns a tracking number in the format CG-YYYY-NNNNNN.
func generateTrackingNumber(at time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("CG-%d-%06d", at.Year(), time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("CG-%d-%06d", at.Year(), n.Int64())
}

// estimatedDelivery derives the promised delivery time from the service tier.
// The 18:00 UTC cut-off rolls to the next day once it has passed.
func estimatedDelivery(tier domain.ServiceTier, from time.Time) time.Time {
	from = from.UTC()
	base := time.Date(from.Year(), from.Month(), from.Day(), 18, 0, 0, 0, time.UTC)
	if !base.After(from) {
		base = base.AddDate(0, 0, 1)
	}
	switch tier {
	case domain.TierPremium:
		return base
	case domain.TierExpress:
		return base.AddDate(0, 0, 1)
	default:
		return base.AddDate(0, 0, 3)
	}
}
