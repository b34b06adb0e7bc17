// Package memory provides an in-process shipment registry.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// ShipmentRepository keeps shipments in memory in registration order.
// Appends replace a shipment's snapshot under the write lock, so readers see
// either the old event log or the new one, never a partial append.
type ShipmentRepository struct {
	mu            sync.RWMutex
	byTracking    map[string]*domain.Shipment
	byIdempotency map[string]string
	order         []string
	seq           int64
}

func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{
		byTracking:    make(map[string]*domain.Shipment),
		byIdempotency: make(map[string]string),
	}
}

// Create stores a copy of s and assigns s.Seq.
func (r *ShipmentRepository) Create(_ context.Context, s *domain.Shipment) error {
	if s.TrackingNumber == "" {
		return fmt.Errorf("create shipment: %w: tracking number is required", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byTracking[s.TrackingNumber]; ok {
		return fmt.Errorf("create shipment %s: %w", s.TrackingNumber, domain.ErrDuplicateShipment)
	}
	if s.IdempotencyKey != "" {
		if _, ok := r.byIdempotency[s.IdempotencyKey]; ok {
			return fmt.Errorf("create shipment: idempotency key %q: %w", s.IdempotencyKey, domain.ErrDuplicateShipment)
		}
	}

	r.seq++
	s.Seq = r.seq
	r.byTracking[s.TrackingNumber] = s.Clone()
	r.order = append(r.order, s.TrackingNumber)
	if s.IdempotencyKey != "" {
		r.byIdempotency[s.IdempotencyKey] = s.TrackingNumber
	}
	return nil
}

func (r *ShipmentRepository) FindByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return s.Clone(), nil
}

func (r *ShipmentRepository) FindByIdempotencyKey(_ context.Context, key string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byIdempotency[key]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return r.byTracking[id].Clone(), nil
}

// AppendEvent validates ev against a private copy and swaps the copy in.
func (r *ShipmentRepository) AppendEvent(_ context.Context, trackingNumber string, ev domain.LifecycleEvent) (*domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}

	next := current.Clone()
	if err := next.Append(ev); err != nil {
		return nil, err
	}
	r.byTracking[trackingNumber] = next
	return next.Clone(), nil
}

func (r *ShipmentRepository) List(_ context.Context) ([]*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Shipment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byTracking[id].Clone())
	}
	return out, nil
}

// Ping satisfies the readiness probe; memory storage is always available.
func (r *ShipmentRepository) Ping(context.Context) error {
	return nil
}
