package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if code, ok := statusOf(err); ok {
		if code == http.StatusNotFound {
			return code, "shipment not found"
		}
		return code, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// statusOf maps domain errors to deterministic HTTP codes.
func statusOf(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownStage),
		errors.Is(err, domain.ErrUnknownTier):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrShipmentNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrStageRegression),
		errors.Is(err, domain.ErrEventOutOfOrder),
		errors.Is(err, domain.ErrShipmentDelivered):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrDuplicateShipment),
		errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict, true
	}
	return 0, false
}
