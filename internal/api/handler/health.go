package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is implemented by every backing service that readiness depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyCheck names a Pinger in the readiness report.
type DependencyCheck struct {
	Name   string
	Pinger Pinger
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks  []DependencyCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...DependencyCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /health. It returns 200 as long as the process serves.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readiness handles GET /health/ready and pings every registered dependency.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true

	for _, check := range h.checks {
		if err := check.Pinger.Ping(ctx); err != nil {
			deps[check.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[check.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
