package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTier = errors.New("unknown service tier")

// ServiceTier selects the per-kilogram rate of a quote.
type ServiceTier string

const (
	TierStandard ServiceTier = "standard"
	TierExpress  ServiceTier = "express"
	TierPremium  ServiceTier = "premium"
)

// ParseServiceTier converts a raw string into a ServiceTier.
func ParseServiceTier(raw string) (ServiceTier, error) {
	t := ServiceTier(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TierStandard, TierExpress, TierPremium:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, raw)
}

// RateTable maps a tier to its price in currency units per kilogram.
type RateTable map[ServiceTier]int64

// DefaultRateTable returns the stock rates.
func DefaultRateTable() RateTable {
	return RateTable{
		TierStandard: 50,
		TierExpress:  100,
		TierPremium:  150,
	}
}

// RateTableFrom builds a RateTable from raw tier names, e.g. values loaded
// from configuration. Unknown tiers and negative rates are rejected.
func RateTableFrom(raw map[string]int64) (RateTable, error) {
	table := make(RateTable, len(raw))
	for name, rate := range raw {
		tier, err := ParseServiceTier(name)
		if err != nil {
			return nil, err
		}
		if rate < 0 {
			return nil, fmt.Errorf("%w: negative rate for %s", ErrInvalidInput, tier)
		}
		table[tier] = rate
	}
	return table, nil
}

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Quote is a computed, non-persisted price estimate.
type Quote struct {
	WeightKg    float64     `json:"weight_kg"`
	ServiceTier ServiceTier `json:"service_tier"`
	Price       int64       `json:"price"`
	// Quoted is false when the input was incomplete and no price applies.
	Quoted bool `json:"quoted"`
}
