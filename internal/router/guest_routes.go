package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
)

// RegisterGuest registers the endpoints the booking site calls without
// a staff session: browsing rooms, booking, paying and listing one's own
// reservations.
func RegisterGuest(e *echo.Echo, rooms *handler.RoomHandler, res *handler.ReservationHandler, opts Options) {
	e.GET("/habitaciones", rooms.List)

	e.POST("/reservas", res.Create, opts.throttled()...)
	e.GET("/reservas/mine", res.Mine)
	e.POST("/pagos", res.Pay, opts.throttled()...)
}
