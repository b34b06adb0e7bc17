package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/shipping-core/internal/api/metrics"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// QuoteHandler exposes the quote engine.
type QuoteHandler struct {
	quotes ports.QuoteService
}

func NewQuoteHandler(quotes ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Quote handles POST /v1/quotes. Incomplete input is answered with
// quoted=false and a zero price; only invalid input is rejected.
//
// @Summary      Quote a delivery price
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      quoteRequest  true  "Cargo weight and service tier"
// @Success      200   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/quotes [post]
func (h *QuoteHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	q, err := h.quotes.Quote(ports.QuoteInput{WeightKg: req.WeightKg, ServiceTier: req.ServiceTier})
	if err != nil {
		metrics.QuotesTotal.WithLabelValues("invalid", "invalid").Inc()
		return err
	}

	tier, result := string(q.ServiceTier), "unquoted"
	if tier == "" {
		tier = "none"
	}
	if q.Quoted {
		result = "quoted"
	}
	metrics.QuotesTotal.WithLabelValues(tier, result).Inc()

	return c.JSON(http.StatusOK, toQuoteResponse(q))
}
