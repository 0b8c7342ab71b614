package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler answers liveness and readiness probes.  Redis is optional;
// a nil RedisPing skips the check.
type HealthHandler struct {
	DB        Pinger
	RedisPing func(ctx context.Context) error
}

func NewHealthHandler(db Pinger, redisPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{DB: db, RedisPing: redisPing}
}

// Live reports that the process is serving requests.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready checks the database and, when configured, Redis.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	checks := echo.Map{"database": "ok"}
	healthy := true
	if err := h.DB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if h.RedisPing != nil {
		checks["redis"] = "ok"
		if err := h.RedisPing(ctx); err != nil {
			// the rate limiter falls back to memory, so this only degrades
			checks["redis"] = err.Error()
		}
	}
	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "checks": checks})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "checks": checks})
}
