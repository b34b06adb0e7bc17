package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// QuoteService computes prices from a rate table. It holds no mutable state
// and is safe for concurrent use.
type QuoteService struct {
	rates domain.RateTable
}

// NewQuoteService copies rates; later changes to the caller's map have no effect.
// A nil table falls back to domain.DefaultRateTable.
func NewQuoteService(rates domain.RateTable) *QuoteService {
	if rates == nil {
		rates = domain.DefaultRateTable()
	}
	return &QuoteService{rates: rates.Clone()}
}

// Rates returns a copy of the active rate table.
func (s *QuoteService) Rates() domain.RateTable {
	return s.rates.Clone()
}

// CalculateCost returns round(weightKg * rate). Missing or invalid input
// yields 0, which callers render as "no price".
func (s *QuoteService) CalculateCost(weightKg float64, tier string) int64 {
	q, err := s.Quote(ports.QuoteInput{WeightKg: &weightKg, ServiceTier: tier})
	if err != nil {
		return 0
	}
	return q.Price
}

// Quote prices the input under the explicit policy:
//   - weight absent or zero, or tier empty: unquoted, price 0, no error
//   - negative or non-finite weight, unknown tier, overflow: ErrInvalidInput
func (s *QuoteService) Quote(in ports.QuoteInput) (domain.Quote, error) {
	if in.WeightKg != nil {
		w := *in.WeightKg
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return domain.Quote{}, fmt.Errorf("quote: %w: weight must be a finite positive number", domain.ErrInvalidInput)
		}
	}

	var tier domain.ServiceTier
	if strings.TrimSpace(in.ServiceTier) != "" {
		t, err := domain.ParseServiceTier(in.ServiceTier)
		if err != nil {
			return domain.Quote{}, fmt.Errorf("quote: %w: %w", domain.ErrInvalidInput, err)
		}
		if _, ok := s.rates[t]; !ok {
			return domain.Quote{}, fmt.Errorf("quote: %w: no rate for %s", domain.ErrInvalidInput, t)
		}
		tier = t
	}

	if in.WeightKg == nil || *in.WeightKg == 0 || tier == "" {
		q := domain.Quote{ServiceTier: tier}
		if in.WeightKg != nil {
			q.WeightKg = *in.WeightKg
		}
		return q, nil
	}

	w := *in.WeightKg
	raw := w * float64(s.rates[tier])
	if raw >= math.MaxInt64 {
		return domain.Quote{}, fmt.Errorf("quote: %w: weight too large", domain.ErrInvalidInput)
	}

	return domain.Quote{
		WeightKg:    w,
		ServiceTier: tier,
		Price:       roundHalfUp(raw),
		Quoted:      true,
	}, nil
}

// roundHalfUp rounds non-negative x to the nearest integer, halves upward.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
