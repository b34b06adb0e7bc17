package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cargoline/shipping-core/docs"
	"github.com/cargoline/shipping-core/internal/api/handler"
	"github.com/cargoline/shipping-core/internal/core/ports"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Tracking   ports.TrackingService
	Registry   ports.RegistryService
	Quotes     ports.QuoteService
	Dispatcher handler.EventDispatcher
	Checks     []handler.DependencyCheck
	Logger     zerolog.Logger
	// Registerer receives the HTTP request metrics. Nil uses a private
	// registry, which keeps repeated router construction in tests safe.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(accessLog(deps.Logger)))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "shipping",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	shipments := handler.NewShipmentHandler(deps.Tracking, deps.Registry)
	quotes := handler.NewQuoteHandler(deps.Quotes)
	events := handler.NewEventHandler(deps.Dispatcher)
	health := handler.NewHealthHandler(deps.Checks...)

	// --- API v1 ---
	v1 := e.Group("/v1")
	v1.GET("/shipments", shipments.List)
	v1.POST("/shipments", shipments.Book)
	v1.GET("/shipments/:tracking_number/status", shipments.Status)
	v1.POST("/quotes", quotes.Quote)
	v1.POST("/events", events.Receive)
	v1.POST("/events/batch", events.ReceiveBatch)

	// --- Operations ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// accessLog writes one structured line per request through zerolog.
func accessLog(log zerolog.Logger) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}
}
