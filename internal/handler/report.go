package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ReportSource provides the dashboard counters.
type ReportSource interface {
	Counts(ctx context.Context) (repository.Counts, error)
}

type ReportHandler struct {
	Reports ReportSource
}

func NewReportHandler(r ReportSource) *ReportHandler { return &ReportHandler{Reports: r} }

// Summary returns the number of users, reservations and rooms.
func (h *ReportHandler) Summary(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	n, err := h.Reports.Counts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"usuarios":     n.Users,
		"reservas":     n.Reservations,
		"habitaciones": n.Rooms,
	})
}
