package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargoline/shipping-core/internal/core/domain"
	"github.com/cargoline/shipping-core/internal/core/ports"
	"github.com/cargoline/shipping-core/internal/infrastructure/queue"
)

// EventDispatcher is the interface the handler uses to enqueue events.
type EventDispatcher interface {
	Enqueue(event ports.TrackingEventInput) error
	EnqueueBatch(events []ports.TrackingEventInput) error
}

// EventHandler handles lifecycle event ingestion.
type EventHandler struct {
	dispatcher EventDispatcher
}

// NewEventHandler creates an EventHandler backed by the given dispatcher.
func NewEventHandler(dispatcher EventDispatcher) *EventHandler {
	return &EventHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/events. The event is applied asynchronously.
//
// @Summary      Ingest a single lifecycle event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      lifecycleEventRequest  true  "Lifecycle event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/events [post]
func (h *EventHandler) Receive(c echo.Context) error {
	var req lifecycleEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := checkEvent(c, &req); err != nil {
		return err
	}

	if err := h.dispatcher.Enqueue(toEventInput(req)); err != nil {
		return enqueueError(err)
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/events/batch. Events of the same shipment
// are applied in array order.
//
// @Summary      Ingest a batch of lifecycle events
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      []lifecycleEventRequest  true  "Array of lifecycle events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/events/batch [post]
func (h *EventHandler) ReceiveBatch(c echo.Context) error {
	var reqs []lifecycleEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.TrackingEventInput, 0, len(reqs))
	for i := range reqs {
		if err := checkEvent(c, &reqs[i]); err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return echo.NewHTTPError(he.Code, fmt.Sprintf("event[%d]: %v", i, he.Message))
			}
			return fmt.Errorf("event[%d]: %w", i, err)
		}
		inputs = append(inputs, toEventInput(reqs[i]))
	}

	if err := h.dispatcher.EnqueueBatch(inputs); err != nil {
		return enqueueError(err)
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(inputs),
	})
}

// checkEvent rejects malformed events before they are queued; ordering and
// regression checks happen when the event is applied.
func checkEvent(c echo.Context, req *lifecycleEventRequest) error {
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if _, err := domain.ParseStage(req.Stage); err != nil {
		return err
	}
	return nil
}

func enqueueError(err error) error {
	if errors.Is(err, queue.ErrStopped) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "event ingestion is shutting down")
	}
	return err
}
