package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrDuplicateShipment = errors.New("shipment already exists")
	ErrUnknownStage      = errors.New("unknown stage")
	ErrStageRegression   = errors.New("stage regression")
	ErrEventOutOfOrder   = errors.New("event out of order")
	ErrShipmentDelivered = errors.New("shipment already delivered")
	ErrConcurrentUpdate  = errors.New("concurrent shipment update")
)

// LifecycleEvent is a timestamped observation that a shipment reached a stage.
type LifecycleEvent struct {
	ID        string    `json:"id" bson:"id"`
	Stage     Stage     `json:"stage" bson:"stage"`
	Location  string    `json:"location" bson:"location"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Source    string    `json:"source,omitempty" bson:"source,omitempty"`
}

// Shipment is the aggregate root. It exclusively owns its ordered event log.
type Shipment struct {
	TrackingNumber    string           `json:"tracking_number" bson:"tracking_number"`
	Origin            string           `json:"origin" bson:"origin"`
	Destination       string           `json:"destination" bson:"destination"`
	ServiceTier       ServiceTier      `json:"service_tier" bson:"service_tier"`
	WeightKg          float64          `json:"weight_kg" bson:"weight_kg"`
	DeclaredCost      int64            `json:"declared_cost" bson:"declared_cost"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
	EstimatedDelivery time.Time        `json:"estimated_delivery" bson:"estimated_delivery"`
	IdempotencyKey    string           `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	Seq               int64            `json:"seq" bson:"seq"`
	Events            []LifecycleEvent `json:"events" bson:"events"`
}

// OrderedEvents returns a copy of the event log sorted by timestamp.
// Events sharing a timestamp keep their append order.
func (s *Shipment) OrderedEvents() []LifecycleEvent {
	out := make([]LifecycleEvent, len(s.Events))
	copy(out, s.Events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// CurrentStage is the stage of the chronologically last event. A shipment
// without events is treated as received.
func (s *Shipment) CurrentStage() Stage {
	if len(s.Events) == 0 {
		return StageReceived
	}
	last := 0
	for i := 1; i < len(s.Events); i++ {
		if !s.Events[i].Timestamp.Before(s.Events[last].Timestamp) {
			last = i
		}
	}
	return s.Events[last].Stage
}

// IsDelivered reports whether the shipment reached the terminal stage.
func (s *Shipment) IsDelivered() bool {
	return s.CurrentStage().IsTerminal()
}

// lastEvent returns the chronologically last event.
func (s *Shipment) lastEvent() (LifecycleEvent, bool) {
	ordered := s.OrderedEvents()
	if len(ordered) == 0 {
		return LifecycleEvent{}, false
	}
	return ordered[len(ordered)-1], true
}

// Append validates ev against the lifecycle invariants and adds it to the log.
// The log stays strictly ascending by timestamp and the stage never regresses.
func (s *Shipment) Append(ev LifecycleEvent) error {
	if !ev.Stage.Valid() {
		return fmt.Errorf("append event: %w: %q", ErrUnknownStage, ev.Stage)
	}
	if ev.Timestamp.IsZero() {
		return fmt.Errorf("append event: %w: timestamp is required", ErrInvalidInput)
	}

	if last, ok := s.lastEvent(); ok {
		if last.Stage.IsTerminal() {
			return fmt.Errorf("append event: %w", ErrShipmentDelivered)
		}
		if !ev.Timestamp.After(last.Timestamp) {
			return fmt.Errorf("append event: %w (%s is not after %s)",
				ErrEventOutOfOrder, ev.Timestamp.UTC().Format(time.RFC3339), last.Timestamp.UTC().Format(time.RFC3339))
		}
		if !last.Stage.CanAdvanceTo(ev.Stage) {
			return fmt.Errorf("append event: %w (from %s to %s)", ErrStageRegression, last.Stage, ev.Stage)
		}
	}

	s.Events = append(s.Events, ev)
	return nil
}

// Clone returns a deep copy; the event slice is not shared.
func (s *Shipment) Clone() *Shipment {
	c := *s
	c.Events = make([]LifecycleEvent, len(s.Events))
	copy(c.Events, s.Events)
	return &c
}
