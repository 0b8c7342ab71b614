// Package service holds the business workflows of the hotel: reservation
// admission, the reservation state machine, payments, authentication and
// user administration.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// Rejection reasons reported in model.Result.Reason.
const (
	ReasonRoomUnavailable = "room_unavailable"
	ReasonPastEntry       = "past_entry"
	ReasonInvalidRange    = "invalid_range"
	ReasonConflictRoom    = "conflict_room"
	ReasonConflictLegacy  = "conflict_legacy"
)

// Transition actions.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Transactor runs fn inside a database transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(repository.ReservationTx) error) error
}

// EventPublisher delivers reservation events.  Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// ReservationService implements admission control and the reservation
// state machine.
type ReservationService struct {
	tx     Transactor
	events EventPublisher
	log    zerolog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewReservationService wires the service.  events may be nil.  loc is the
// hotel's timezone, used to decide what "today" is.
func NewReservationService(tx Transactor, events EventPublisher, log zerolog.Logger, loc *time.Location) *ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{tx: tx, events: events, log: log, loc: loc, now: time.Now}
}

// WithClock replaces the time source.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// CreateInput is a reservation request.  Guests and Total are optional.
type CreateInput struct {
	GuestName     string
	GuestEmail    string
	RoomType      string
	RoomID        uint64
	EntryDate     string
	ExitDate      string
	Guests        int
	NightlyPrice  float64
	Total         float64
	PaymentMethod string
}

func (in CreateInput) reservation() (model.Reservation, error) {
	name := strings.TrimSpace(in.GuestName)
	email := strings.TrimSpace(in.GuestEmail)
	roomType := strings.TrimSpace(in.RoomType)
	method := strings.TrimSpace(in.PaymentMethod)
	if name == "" || email == "" || roomType == "" || in.RoomID == 0 ||
		strings.TrimSpace(in.EntryDate) == "" || strings.TrimSpace(in.ExitDate) == "" ||
		in.NightlyPrice <= 0 || method == "" {
		return model.Reservation{}, model.Validationf("Faltan datos para registrar la reserva.")
	}
	entry, err := model.ParseDate(in.EntryDate)
	if err != nil {
		return model.Reservation{}, err
	}
	exit, err := model.ParseDate(in.ExitDate)
	if err != nil {
		return model.Reservation{}, err
	}
	if in.Guests < 0 || in.Total < 0 {
		return model.Reservation{}, model.Validationf("personas y total no pueden ser negativos")
	}

	guests := in.Guests
	if guests == 0 {
		guests = 1
	}
	total := in.Total
	if total == 0 {
		total = in.NightlyPrice
	}
	roomID := in.RoomID
	return model.Reservation{
		GuestName:     name,
		GuestEmail:    email,
		RoomType:      roomType,
		RoomID:        &roomID,
		EntryDate:     entry,
		ExitDate:      exit,
		Guests:        guests,
		NightlyPrice:  in.NightlyPrice,
		Total:         total,
		PaymentMethod: method,
		Status:        model.StatusPending,
	}, nil
}

// Create admits a reservation.  Validation problems and a missing room
// are errors; an unavailable room, a past entry date, an empty range or
// an overlap are rejections reported through the Result.  All checks and
// the insert run in one transaction that holds the room's row lock, so
// concurrent requests for the same room are admitted one at a time.
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (model.Result, error) {
	res, err := in.reservation()
	if err != nil {
		metrics.AdmissionsTotal.WithLabelValues("invalid").Inc()
		return model.Result{}, err
	}

	var result model.Result
	err = s.tx.InTx(ctx, func(tx repository.ReservationTx) error {
		room, err := tx.FindRoomForUpdate(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if !room.IsAvailable() {
			result = model.Reject(ReasonRoomUnavailable,
				fmt.Sprintf("La habitación '%s' está actualmente %s. No se puede reservar.", room.Type, room.Status))
			return nil
		}
		if res.EntryDate.Before(model.CalendarDay(s.now(), s.loc)) {
			result = model.Reject(ReasonPastEntry, "La fecha de ingreso no puede ser anterior al día actual.")
			return nil
		}
		if !res.Period().Valid() {
			result = model.Reject(ReasonInvalidRange, "La fecha de salida debe ser posterior a la de ingreso.")
			return nil
		}
		conflict, err := DetectConflict(ctx, tx, in.RoomID, res.RoomType, res.Period())
		if err != nil {
			return err
		}
		if conflict.Found() {
			result = model.Reject(conflict.Reason(), conflict.Message())
			return nil
		}
		if err := tx.InsertReservation(ctx, &res); err != nil {
			return err
		}
		result = model.Result{Success: true, Message: "Reserva creada correctamente.", Reservation: &res}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			metrics.AdmissionsTotal.WithLabelValues("room_not_found").Inc()
		}
		return model.Result{}, err
	}

	if !result.Success {
		metrics.AdmissionsTotal.WithLabelValues(result.Reason).Inc()
		s.log.Info().Uint64("room_id", in.RoomID).Str("reason", result.Reason).Msg("reservation rejected")
		return result, nil
	}
	metrics.AdmissionsTotal.WithLabelValues("created").Inc()
	s.log.Info().Uint64("reservation_id", res.ID).Uint64("room_id", in.RoomID).Msg("reservation created")
	s.publish(ctx, queue.EventReservationCreated, res)
	return result, nil
}

// Transition applies confirm (pending -> paid) or cancel (pending ->
// cancelled).  Paid and cancelled are terminal: acting on them returns
// model.ErrInvalidState.
func (s *ReservationService) Transition(ctx context.Context, id uint64, action string) (model.Result, error) {
	var target string
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionConfirm:
		target = model.StatusPaid
	case ActionCancel:
		target = model.StatusCancelled
	default:
		return model.Result{}, model.ErrInvalidAction
	}

	var res model.Reservation
	err := s.tx.InTx(ctx, func(tx repository.ReservationTx) error {
		var err error
		res, err = tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if model.NormalizeStatus(res.Status) != model.StatusPending {
			return fmt.Errorf("%w: reservation #%d is %s", model.ErrInvalidState, id, res.Status)
		}
		if err := tx.UpdateReservationStatus(ctx, id, target); err != nil {
			return err
		}
		res.Status = target
		return nil
	})
	if err != nil {
		return model.Result{}, err
	}

	metrics.TransitionsTotal.WithLabelValues(target).Inc()
	s.log.Info().Uint64("reservation_id", id).Str("status", target).Msg("reservation updated")
	s.publish(ctx, queue.EventTypeForStatus(target), res)
	return model.Result{
		Success:     true,
		Message:     fmt.Sprintf("Reserva #%d actualizada a %q", id, target),
		Reservation: &res,
	}, nil
}

// PaymentInput is a manual payment record.
type PaymentInput struct {
	ReservationID uint64
	Method        string
	Amount        float64
}

// RecordPayment stores a payment against a pending reservation and marks
// it paid.  Paid or cancelled reservations yield model.ErrNotPayable.
func (s *ReservationService) RecordPayment(ctx context.Context, in PaymentInput) (model.Result, error) {
	method := strings.TrimSpace(in.Method)
	if in.ReservationID == 0 || method == "" || in.Amount <= 0 {
		return model.Result{}, model.Validationf("Faltan datos del pago.")
	}

	var res model.Reservation
	err := s.tx.InTx(ctx, func(tx repository.ReservationTx) error {
		var err error
		res, err = tx.GetReservationForUpdate(ctx, in.ReservationID)
		if err != nil {
			return err
		}
		if model.NormalizeStatus(res.Status) != model.StatusPending {
			return model.ErrNotPayable
		}
		if err := tx.RecordPayment(ctx, in.ReservationID, method, in.Amount); err != nil {
			return err
		}
		amount := in.Amount
		res.Status = model.StatusPaid
		res.PaymentMethod = method
		res.AmountPaid = &amount
		return nil
	})
	if err != nil {
		return model.Result{}, err
	}

	metrics.PaymentsTotal.Inc()
	metrics.TransitionsTotal.WithLabelValues(model.StatusPaid).Inc()
	s.log.Info().Uint64("reservation_id", in.ReservationID).Float64("amount", in.Amount).Msg("payment recorded")
	s.publish(ctx, queue.EventReservationPaid, res)
	return model.Result{Success: true, Message: "Pago registrado correctamente.", Reservation: &res}, nil
}

// publish sends an event after the transaction committed.  Failures are
// logged and counted; the committed change stands.
func (s *ReservationService) publish(ctx context.Context, eventType string, res model.Reservation) {
	if s.events == nil {
		return
	}
	ev := queue.NewReservationEvent(eventType, res, s.now())
	if err := s.events.Publish(ctx, ev); err != nil {
		metrics.EventsPublishFailures.Inc()
		s.log.Warn().Err(err).Str("event", eventType).Uint64("reservation_id", res.ID).Msg("event publish failed")
	}
}
