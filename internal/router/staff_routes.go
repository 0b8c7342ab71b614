package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
)

// StaffHandlers groups the handlers behind staff routes.
type StaffHandlers struct {
	Rooms        *handler.RoomHandler
	Reservations *handler.ReservationHandler
	Users        *handler.UserHandler
	Reports      *handler.ReportHandler
	Contact      *handler.ContactHandler
}

// RegisterStaff registers the operator and admin endpoints.  They are
// guarded only when opts.RequireStaffAuth is set.  The guard is attached
// per route so unknown paths still answer 404.
func RegisterStaff(e *echo.Echo, h StaffHandlers, opts Options) {
	g := staffRoutes{e: e, mw: opts.staff()}

	// ---- Rooms ----
	g.POST("/habitaciones", h.Rooms.Create)
	g.PUT("/habitaciones/:id", h.Rooms.Update)
	g.PUT("/habitaciones/:id/estado", h.Rooms.UpdateStatus)
	g.DELETE("/habitaciones/:id", h.Rooms.Delete)

	// ---- Reservations ----
	g.GET("/reservas", h.Reservations.List)
	g.GET("/reservas/pending", h.Reservations.ListPending)
	g.GET("/reservas/search", h.Reservations.Search)
	g.PUT("/reservas/:id/:action", h.Reservations.Transition)
	g.DELETE("/reservas/:id", h.Reservations.Delete)

	// ---- Users ----
	g.GET("/usuarios", h.Users.List)
	g.POST("/usuarios", h.Users.Create)
	g.PUT("/usuarios/:id", h.Users.Update)
	g.DELETE("/usuarios/:id", h.Users.Delete)

	// ---- Reports ----
	g.GET("/reportes", h.Reports.Summary)

	// ---- Contact ----
	g.with(opts.throttled()...).POST("/contacto", h.Contact.Send)
	g.with(opts.throttled()...).POST("/contacto/responder", h.Contact.Reply)
}

type staffRoutes struct {
	e  *echo.Echo
	mw []echo.MiddlewareFunc
}

func (s staffRoutes) with(extra ...echo.MiddlewareFunc) staffRoutes {
	mw := append(append([]echo.MiddlewareFunc{}, s.mw...), extra...)
	return staffRoutes{e: s.e, mw: mw}
}

func (s staffRoutes) GET(path string, h echo.HandlerFunc)    { s.e.GET(path, h, s.mw...) }
func (s staffRoutes) POST(path string, h echo.HandlerFunc)   { s.e.POST(path, h, s.mw...) }
func (s staffRoutes) PUT(path string, h echo.HandlerFunc)    { s.e.PUT(path, h, s.mw...) }
func (s staffRoutes) DELETE(path string, h echo.HandlerFunc) { s.e.DELETE(path, h, s.mw...) }
