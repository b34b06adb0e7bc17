package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubShipmentRepo struct {
	byTracking    map[string]*domain.Shipment
	byIdempotency map[string]*domain.Shipment
	order         []string
	createErr     error // if set, Create returns this error
	listErr       error
	appendErr     error
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{
		byTracking:    make(map[string]*domain.Shipment),
		byIdempotency: make(map[string]*domain.Shipment),
	}
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.Shipment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byTracking[s.TrackingNumber]; ok {
		return domain.ErrDuplicateShipment
	}
	if _, ok := r.byIdempotency[s.IdempotencyKey]; ok && s.IdempotencyKey != "" {
		return domain.ErrDuplicateShipment
	}
	s.Seq = int64(len(r.order) + 1)
	clone := s.Clone()
	r.byTracking[s.TrackingNumber] = clone
	r.order = append(r.order, s.TrackingNumber)
	if s.IdempotencyKey != "" {
		r.byIdempotency[s.IdempotencyKey] = clone
	}
	return nil
}

func (r *stubShipmentRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Shipment, error) {
	s, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return s.Clone(), nil
}

func (r *stubShipmentRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Shipment, error) {
	s, ok := r.byIdempotency[key]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return s.Clone(), nil
}

func (r *stubShipmentRepo) AppendEvent(_ context.Context, trackingNumber string, ev domain.LifecycleEvent) (*domain.Shipment, error) {
	if r.appendErr != nil {
		return nil, r.appendErr
	}
	s, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	next := s.Clone()
	if err := next.Append(ev); err != nil {
		return nil, err
	}
	r.byTracking[trackingNumber] = next
	return next.Clone(), nil
}

func (r *stubShipmentRepo) List(_ context.Context) ([]*domain.Shipment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Shipment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byTracking[id].Clone())
	}
	return out, nil
}

// seed registers a shipment whose events walk the canonical order up to stage.
func (r *stubShipmentRepo) seed(trackingNumber string, stage domain.Stage) *domain.Shipment {
	base := time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)
	s := &domain.Shipment{
		TrackingNumber: trackingNumber,
		Origin:         "Moscow",
		Destination:    "Saint Petersburg",
		ServiceTier:    domain.TierStandard,
		CreatedAt:      base,
	}
	for i, st := range domain.Stages() {
		if i > stage.Index() {
			break
		}
		s.Events = append(s.Events, domain.LifecycleEvent{
			Stage:     st,
			Location:  "loc-" + string(st),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
	}
	_ = r.Create(context.Background(), s)
	return s
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
	// remember reports previously marked keys as duplicates.
	remember bool
}

func (d *stubDedup) IsDuplicate(_ context.Context, key string) (bool, error) {
	if d.remember {
		for _, k := range d.marked {
			if k == key {
				return true, nil
			}
		}
	}
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, key string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, key)
	return nil
}

type stubPublisher struct {
	err       error
	published []domain.StageRecorded
}

func (p *stubPublisher) Publish(_ context.Context, ev domain.StageRecorded) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, ev)
	return nil
}

var discardLogger = zerolog.Nop()
