package domain

import (
	"errors"
	"testing"
)

func TestStageIndex(t *testing.T) {
	want := map[Stage]int{
		StageReceived:   0,
		StageTransit:    1,
		StageWarehouse:  2,
		StageDelivering: 3,
		StageDelivered:  4,
		Stage("lost"):   -1,
	}
	for s, idx := range want {
		if got := s.Index(); got != idx {
			t.Errorf("%s.Index() = %d, want %d", s, got, idx)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	want := map[Stage]int{
		StageReceived:   0,
		StageTransit:    25,
		StageWarehouse:  50,
		StageDelivering: 75,
		StageDelivered:  100,
		Stage(""):       0,
	}
	for s, p := range want {
		if got := ProgressPercent(s); got != p {
			t.Errorf("ProgressPercent(%q) = %d, want %d", s, got, p)
		}
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("  Delivering ")
	if err != nil || s != StageDelivering {
		t.Errorf("got %q, %v", s, err)
	}
	if _, err := ParseStage("cancelled"); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("expected ErrUnknownStage, got %v", err)
	}
}

func TestCanAdvanceTo(t *testing.T) {
	cases := []struct {
		from, to Stage
		ok       bool
	}{
		{StageReceived, StageTransit, true},
		{StageReceived, StageDelivered, true},
		{StageTransit, StageTransit, true},
		{StageWarehouse, StageTransit, false},
		{StageDelivered, StageDelivered, false},
		{StageReceived, Stage("lost"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanAdvanceTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestStagesReturnsCopy(t *testing.T) {
	s := Stages()
	s[0] = StageDelivered
	if Stages()[0] != StageReceived {
		t.Error("Stages must not expose the canonical slice")
	}
}
