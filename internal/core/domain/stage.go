package domain

import (
	"fmt"
	"math"
	"strings"
)

// Stage is one of the canonical points in a shipment's delivery lifecycle.
type Stage string

const (
	StageReceived   Stage = "received"
	StageTransit    Stage = "transit"
	StageWarehouse  Stage = "warehouse"
	StageDelivering Stage = "delivering"
	StageDelivered  Stage = "delivered"
)

// stageOrder is the canonical ordering. Index in this slice is the stage index.
var stageOrder = []Stage{
	StageReceived,
	StageTransit,
	StageWarehouse,
	StageDelivering,
	StageDelivered,
}

// Stages returns the canonical stage sequence.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStage converts a raw string into a Stage.
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, raw)
	}
	return s, nil
}

// Index returns the position of s in the canonical order, or -1 for unknown values.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// IsTerminal reports whether no further lifecycle events may follow s.
func (s Stage) IsTerminal() bool {
	return s == StageDelivered
}

// CanAdvanceTo reports whether an event with stage next may follow s.
// Stages never regress; repeating the current stage is allowed until the
// terminal stage is reached.
func (s Stage) CanAdvanceTo(next Stage) bool {
	if s.IsTerminal() || !next.Valid() {
		return false
	}
	return next.Index() >= s.Index()
}

func (s Stage) String() string {
	return string(s)
}

// ProgressPercent maps a stage onto [0,100]: round(idx / (n-1) * 100).
// Unknown stages yield 0.
func ProgressPercent(s Stage) int {
	idx := s.Index()
	if idx < 0 {
		return 0
	}
	if s.IsTerminal() {
		return 100
	}
	p := int(math.Floor(float64(idx)/float64(len(stageOrder)-1)*100 + 0.5))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
