package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything health can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and dependency status.
type HealthHandler struct {
	env     string
	started time.Time
	deps    map[string]Pinger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(env string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{env: env, started: time.Now(), deps: deps}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Uptime      float64           `json:"uptime"`
	Environment string            `json:"environment"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// Live answers the plain liveness probe.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.started).Seconds(),
		Environment: h.env,
		Checks:      make(map[string]string, len(h.deps)),
	}
	status := http.StatusOK
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			resp.Checks[name] = "unavailable"
			resp.Status = "DEGRADED"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	return c.JSON(status, resp)
}
