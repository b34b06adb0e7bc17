package ports

import (
	"context"
	"time"
)

// TrackingEventInput is the DTO passed from the transport layer to EventService.
type TrackingEventInput struct {
	TrackingNumber string
	Stage          string
	Location       string
	Timestamp      time.Time
	Source         string
}

// EventService records incoming lifecycle events.
type EventService interface {
	Process(ctx context.Context, event TrackingEventInput) error
}
