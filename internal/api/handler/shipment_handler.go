package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/shipping-core/internal/api/metrics"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// ShipmentHandler serves the lifecycle tracker and the shipment registry.
type ShipmentHandler struct {
	tracking ports.TrackingService
	registry ports.RegistryService
}

func NewShipmentHandler(tracking ports.TrackingService, registry ports.RegistryService) *ShipmentHandler {
	return &ShipmentHandler{tracking: tracking, registry: registry}
}

// Status handles GET /v1/shipments/:tracking_number/status.
//
// @Summary      Get the lifecycle status of a shipment
// @Tags         shipments
// @Produce      json
// @Param        tracking_number  path      string  true  "Tracking number (e.g. CG-2024-001234)"
// @Success      200              {object}  statusResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /v1/shipments/{tracking_number}/status [get]
func (h *ShipmentHandler) Status(c echo.Context) error {
	status, err := h.tracking.GetStatus(c.Request().Context(), c.Param("tracking_number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatusResponse(status))
}

// List handles GET /v1/shipments?view=active|history.
//
// @Summary      List shipments in the active or history view
// @Tags         shipments
// @Produce      json
// @Param        view  query     string  false  "active (default) or history"
// @Success      200   {object}  listShipmentsResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	view := ports.View(strings.ToLower(strings.TrimSpace(c.QueryParam("view"))))
	if view == "" {
		view = ports.ViewActive
	}
	if view != ports.ViewActive && view != ports.ViewHistory {
		return echo.NewHTTPError(http.StatusBadRequest, "view must be one of: active, history")
	}

	items, err := h.registry.List(c.Request().Context(), view)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(view, items))
}

// Book handles POST /v1/shipments.
//
// @Summary      Book a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "Replays the original booking when repeated"
// @Param        body             body      bookShipmentRequest  true   "Shipment details"
// @Success      201              {object}  bookShipmentResponse
// @Success      200              {object}  bookShipmentResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Book(c echo.Context) error {
	var req bookShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key := strings.TrimSpace(c.Request().Header.Get("Idempotency-Key"))
	result, err := h.registry.BookShipment(c.Request().Context(), toBookInput(req, key))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, toBookResponse(result))
	}
	metrics.ShipmentsBookedTotal.WithLabelValues(strings.ToLower(strings.TrimSpace(req.ServiceTier))).Inc()
	return c.JSON(http.StatusCreated, toBookResponse(result))
}
