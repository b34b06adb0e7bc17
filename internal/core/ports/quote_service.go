package ports

import "github.com/cargoline/shipping-core/internal/core/domain"

// QuoteInput carries the cargo attributes of a quote request. A nil WeightKg
// or empty ServiceTier means the field was not supplied.
type QuoteInput struct {
	WeightKg    *float64
	ServiceTier string
}

// QuoteService prices cargo.
type QuoteService interface {
	// CalculateCost returns the price, or 0 when any input is missing or invalid.
	CalculateCost(weightKg float64, tier string) int64
	// Quote applies the explicit policy: incomplete input yields an unquoted
	// zero price, invalid input yields domain.ErrInvalidInput.
	Quote(input QuoteInput) (domain.Quote, error)
}
