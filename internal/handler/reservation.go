package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

// ReservationQueries are the read and delete operations on reservations.
type ReservationQueries interface {
	List(ctx context.Context) ([]model.Reservation, error)
	ListPending(ctx context.Context) ([]model.Reservation, error)
	ListByEmail(ctx context.Context, email string) ([]model.Reservation, error)
	Search(ctx context.Context, f repository.SearchFilter) ([]model.Reservation, error)
	Delete(ctx context.Context, id uint64) error
}

// ReservationWorkflow admits reservations and moves them through their
// lifecycle.
type ReservationWorkflow interface {
	Create(ctx context.Context, in service.CreateInput) (model.Result, error)
	Transition(ctx context.Context, id uint64, action string) (model.Result, error)
	RecordPayment(ctx context.Context, in service.PaymentInput) (model.Result, error)
}

// ReservationHandler serves /reservas and /pagos.
type ReservationHandler struct {
	Reservations ReservationQueries
	Workflow     ReservationWorkflow
}

func NewReservationHandler(q ReservationQueries, w ReservationWorkflow) *ReservationHandler {
	return &ReservationHandler{Reservations: q, Workflow: w}
}

// ----- DTOs -----

// createReservationReq accepts "email" as an alias of "correo".
type createReservationReq struct {
	Nombre       string  `json:"nombre"`
	Correo       string  `json:"correo"`
	Email        string  `json:"email"`
	Habitacion   string  `json:"habitacion"`
	HabitacionID uint64  `json:"habitacionId"`
	FechaEntrada string  `json:"fechaEntrada"`
	FechaSalida  string  `json:"fechaSalida"`
	Personas     int     `json:"personas" validate:"gte=0"`
	PrecioNoche  float64 `json:"precioNoche" validate:"gte=0"`
	Total        float64 `json:"total" validate:"gte=0"`
	MetodoPago   string  `json:"metodoPago"`
}

func (r createReservationReq) input() service.CreateInput {
	email := r.Correo
	if strings.TrimSpace(email) == "" {
		email = r.Email
	}
	return service.CreateInput{
		GuestName:     r.Nombre,
		GuestEmail:    email,
		RoomType:      r.Habitacion,
		RoomID:        r.HabitacionID,
		EntryDate:     r.FechaEntrada,
		ExitDate:      r.FechaSalida,
		Guests:        r.Personas,
		NightlyPrice:  r.PrecioNoche,
		Total:         r.Total,
		PaymentMethod: r.MetodoPago,
	}
}

type paymentReq struct {
	ReservaID   uint64  `json:"reservaId" validate:"required"`
	MetodoPago  string  `json:"metodoPago" validate:"required"`
	MontoPagado float64 `json:"montoPagado" validate:"gt=0"`
}

type searchQuery struct {
	Estado string `query:"estado"`
	Desde  string `query:"desde"`
	Hasta  string `query:"hasta"`
}

func (q searchQuery) filter() (repository.SearchFilter, error) {
	f := repository.SearchFilter{Status: strings.TrimSpace(q.Estado)}
	var err error
	if f.From, err = optionalDate(q.Desde); err != nil {
		return f, err
	}
	if f.To, err = optionalDate(q.Hasta); err != nil {
		return f, err
	}
	return f, nil
}

func optionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return model.ParseDate(s)
}

// ----- handlers -----

// Create runs the admission workflow.  Business rejections are answered
// with 200 and success=false.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Workflow.Create(ctx, req.input())
	if err != nil {
		return err
	}
	body := echo.Map{"success": res.Success, "message": res.Message}
	if res.Reservation != nil {
		body["reserva"] = res.Reservation
	}
	return c.JSON(http.StatusOK, body)
}

// List returns every reservation, newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Reservations.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": nonNil(items)})
}

// ListPending returns reservations awaiting payment or confirmation.
func (h *ReservationHandler) ListPending(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Reservations.ListPending(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// Mine lists a guest's reservations by ?correo= or ?email=.
func (h *ReservationHandler) Mine(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("correo"))
	if email == "" {
		email = strings.TrimSpace(c.QueryParam("email"))
	}
	if email == "" {
		return model.Validationf("Correo requerido")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Reservations.ListByEmail(ctx, email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// Search filters by status and stay dates.
func (h *ReservationHandler) Search(c echo.Context) error {
	var q searchQuery
	if err := c.Bind(&q); err != nil {
		return model.Validationf("parámetros de búsqueda inválidos")
	}
	f, err := q.filter()
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	items, err := h.Reservations.Search(ctx, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": nonNil(items)})
}

// Transition handles PUT /reservas/:id/:action (confirm or cancel).
func (h *ReservationHandler) Transition(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	res, err := h.Workflow.Transition(ctx, id, c.Param("action"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(res.Message))
}

// Delete removes a reservation.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Reservations.Delete(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Reserva eliminada correctamente"))
}

// Pay records a manual payment against a pending reservation.
func (h *ReservationHandler) Pay(c echo.Context) error {
	var req paymentReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Workflow.RecordPayment(ctx, service.PaymentInput{
		ReservationID: req.ReservaID, Method: req.MetodoPago, Amount: req.MontoPagado,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": res.Message,
		"pago": echo.Map{
			"reservaId":   req.ReservaID,
			"metodoPago":  strings.TrimSpace(req.MetodoPago),
			"montoPagado": req.MontoPagado,
		},
	})
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
