package domain

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)

func ev(stage Stage, offset time.Duration) LifecycleEvent {
	return LifecycleEvent{Stage: stage, Location: string(stage), Timestamp: t0.Add(offset)}
}

func TestCurrentStage_LastByTimestamp(t *testing.T) {
	s := &Shipment{Events: []LifecycleEvent{
		ev(StageWarehouse, 10*time.Hour),
		ev(StageReceived, 0),
		ev(StageDelivering, 25*time.Hour),
		ev(StageTransit, 6*time.Hour),
	}}
	if got := s.CurrentStage(); got != StageDelivering {
		t.Errorf("expected delivering, got %s", got)
	}

	// Re-sorting must not change the answer.
	s.Events = s.OrderedEvents()
	if got := s.CurrentStage(); got != StageDelivering {
		t.Errorf("expected delivering after sort, got %s", got)
	}
}

func TestCurrentStage_NoEvents(t *testing.T) {
	if got := (&Shipment{}).CurrentStage(); got != StageReceived {
		t.Errorf("expected received, got %s", got)
	}
}

func TestCurrentStage_TieKeepsLaterAppend(t *testing.T) {
	s := &Shipment{Events: []LifecycleEvent{ev(StageTransit, time.Hour), ev(StageWarehouse, time.Hour)}}
	if got := s.CurrentStage(); got != StageWarehouse {
		t.Errorf("expected warehouse, got %s", got)
	}
}

func TestAppend(t *testing.T) {
	s := &Shipment{}
	for i, st := range Stages() {
		if err := s.Append(ev(st, time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("append %s: %v", st, err)
		}
	}
	if !s.IsDelivered() {
		t.Error("expected delivered")
	}
}

func TestAppend_Rejections(t *testing.T) {
	base := func() *Shipment {
		return &Shipment{Events: []LifecycleEvent{ev(StageReceived, 0), ev(StageWarehouse, 2*time.Hour)}}
	}
	cases := []struct {
		name string
		s    *Shipment
		ev   LifecycleEvent
		want error
	}{
		{"regression", base(), ev(StageTransit, 3*time.Hour), ErrStageRegression},
		{"earlier timestamp", base(), ev(StageDelivering, time.Hour), ErrEventOutOfOrder},
		{"equal timestamp", base(), ev(StageDelivering, 2*time.Hour), ErrEventOutOfOrder},
		{"unknown stage", base(), ev(Stage("lost"), 3*time.Hour), ErrUnknownStage},
		{"zero timestamp", base(), LifecycleEvent{Stage: StageDelivering}, ErrInvalidInput},
		{"after delivered", &Shipment{Events: []LifecycleEvent{ev(StageDelivered, 0)}}, ev(StageDelivered, time.Hour), ErrShipmentDelivered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(tc.s.Events)
			if err := tc.s.Append(tc.ev); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if len(tc.s.Events) != before {
				t.Error("rejected event must not be appended")
			}
		})
	}
}

func TestAppend_RepeatedStageAllowed(t *testing.T) {
	s := &Shipment{Events: []LifecycleEvent{ev(StageTransit, 0)}}
	if err := s.Append(ev(StageTransit, time.Hour)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClone_DoesNotShareEvents(t *testing.T) {
	s := &Shipment{TrackingNumber: "X", Events: []LifecycleEvent{ev(StageReceived, 0)}}
	c := s.Clone()
	c.Events[0].Location = "changed"
	_ = c.Append(ev(StageTransit, time.Hour))
	if s.Events[0].Location != string(StageReceived) || len(s.Events) != 1 {
		t.Error("clone mutated the original")
	}
}
