package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Requests ---

type quoteRequest struct {
	WeightKg    *float64 `json:"weight_kg"`
	ServiceTier string   `json:"service_tier"`
}

type bookShipmentRequest struct {
	Origin            string     `json:"origin"             validate:"required"`
	Destination       string     `json:"destination"        validate:"required"`
	WeightKg          float64    `json:"weight_kg"          validate:"required,gt=0"`
	ServiceTier       string     `json:"service_tier"       validate:"required"`
	DeclaredCost      *int64     `json:"declared_cost"      validate:"omitempty,gte=0"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type lifecycleEventRequest struct {
	TrackingNumber string    `json:"tracking_number" validate:"required"`
	Stage          string    `json:"stage"           validate:"required"`
	Location       string    `json:"location"`
	Timestamp      time.Time `json:"timestamp"       validate:"required"`
	Source         string    `json:"source"          validate:"required,max=64"`
}

// --- Responses ---

type shipmentLinks struct {
	Self string `json:"self"`
}

type quoteResponse struct {
	Price       int64   `json:"price"`
	Quoted      bool    `json:"quoted"`
	WeightKg    float64 `json:"weight_kg"`
	ServiceTier string  `json:"service_tier,omitempty"`
}

type eventResponse struct {
	Stage     string    `json:"stage"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	Completed bool      `json:"completed"`
}

type timelineItemResponse struct {
	Stage   string `json:"stage"`
	Reached bool   `json:"reached"`
}

type statusResponse struct {
	TrackingNumber    string                 `json:"tracking_number"`
	Origin            string                 `json:"origin"`
	Destination       string                 `json:"destination"`
	Stage             string                 `json:"stage"`
	ProgressPercent   int                    `json:"progress_percent"`
	Delivered         bool                   `json:"delivered"`
	EstimatedDelivery time.Time              `json:"estimated_delivery"`
	Events            []eventResponse        `json:"events"`
	Timeline          []timelineItemResponse `json:"timeline"`
	Links             shipmentLinks          `json:"_links"`
}

type bookShipmentResponse struct {
	TrackingNumber    string        `json:"tracking_number"`
	Stage             string        `json:"stage"`
	DeclaredCost      int64         `json:"declared_cost"`
	CreatedAt         time.Time     `json:"created_at"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	Links             shipmentLinks `json:"_links"`
}

// shipmentSummaryResponse is the lightweight item used in registry listings.
type shipmentSummaryResponse struct {
	TrackingNumber    string        `json:"tracking_number"`
	Origin            string        `json:"origin"`
	Destination       string        `json:"destination"`
	ServiceTier       string        `json:"service_tier"`
	Stage             string        `json:"stage"`
	DeclaredCost      int64         `json:"declared_cost"`
	CreatedAt         time.Time     `json:"created_at"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	Links             shipmentLinks `json:"_links"`
}

type listShipmentsResponse struct {
	View string                    `json:"view"`
	Data []shipmentSummaryResponse `json:"data"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
