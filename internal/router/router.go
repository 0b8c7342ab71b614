// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Options carries the cross-cutting settings route registration needs.
type Options struct {
	JWTSecret string
	// RequireStaffAuth puts inventory, reservation management, user,
	// report and contact routes behind a staff bearer token.
	RequireStaffAuth bool
	// Limit throttles public write endpoints.  Nil disables throttling.
	Limit echo.MiddlewareFunc
}

// staff returns the middleware chain of staff-only routes.
func (o Options) staff() []echo.MiddlewareFunc {
	if !o.RequireStaffAuth {
		return nil
	}
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(o.JWTSecret),
		middleware.RequireRole(model.RoleOperator, model.RoleAdmin),
	}
}

// throttled returns the rate limiter, plus extra, as a middleware list.
func (o Options) throttled(extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	var mws []echo.MiddlewareFunc
	if o.Limit != nil {
		mws = append(mws, o.Limit)
	}
	return append(mws, extra...)
}

// RegisterRoutes registers probes and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Live)
	e.GET("/healthz/ready", h.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers sign-up, login and the profile endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, opts Options) {
	g := e.Group("/auth")
	g.POST("/register", a.Register, opts.throttled()...)
	g.POST("/login", a.Login, opts.throttled()...)
	g.GET("/perfil", a.Profile, middleware.JWTAuth(opts.JWTSecret))
}
