// Package queue carries reservation lifecycle events over RabbitMQ: a
// publisher used by the reservation service and a consumer that notifies
// guests by email.
package queue

import (
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Event types.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationPaid      = "reservation.paid"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a reservation is created or changes
// state.  It carries enough information for consumers to notify the guest
// without querying the primary database.
type ReservationEvent struct {
	Type          string   `json:"type"`
	ReservationID uint64   `json:"reservation_id"`
	GuestName     string   `json:"guest_name"`
	GuestEmail    string   `json:"guest_email"`
	RoomType      string   `json:"room_type"`
	RoomID        *uint64  `json:"room_id,omitempty"`
	EntryDate     string   `json:"entry_date"`
	ExitDate      string   `json:"exit_date"`
	Total         float64  `json:"total"`
	Status        string   `json:"status"`
	PaymentMethod string   `json:"payment_method"`
	AmountPaid    *float64 `json:"amount_paid,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}

// NewReservationEvent snapshots r.
func NewReservationEvent(eventType string, r model.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		RoomType:      r.RoomType,
		RoomID:        r.RoomID,
		EntryDate:     r.EntryDate.Format(model.DateLayout),
		ExitDate:      r.ExitDate.Format(model.DateLayout),
		Total:         r.Total,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		AmountPaid:    r.AmountPaid,
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
}

// EventTypeForStatus maps a terminal status to its event type.
func EventTypeForStatus(status string) string {
	if model.NormalizeStatus(status) == model.StatusCancelled {
		return EventReservationCancelled
	}
	return EventReservationPaid
}
