package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Reservation statuses as they are persisted.  Historical rows already use
// these values, so they are kept verbatim.
const (
	StatusPending   = "pendiente"
	StatusPaid      = "pagada"
	StatusCancelled = "cancelada"
)

// DateLayout is the calendar-day format used for check-in/check-out dates
// in requests, responses and DATE columns.
const DateLayout = "2006-01-02"

// Reservation records a guest's booking of a single room.  Rows written
// before the room_id column existed have RoomID == nil and are matched by
// RoomType instead (see NormalizeRoomType).
//
// Fields:
//  ID            – primary key identifier.
//  GuestName     – name given at booking time.
//  GuestEmail    – contact email; "my reservations" match on it.
//  RoomType      – room type label, always populated.
//  RoomID        – room reference (nil for legacy rows).
//  EntryDate     – check-in day (inclusive).
//  ExitDate      – check-out day (exclusive).
//  Guests        – number of occupants.
//  NightlyPrice  – price per night at booking time.
//  Total         – total price.
//  PaymentMethod – declared or recorded payment method.
//  Status        – pendiente, pagada or cancelada.
//  AmountPaid    – amount recorded by a payment (nil until paid).
//  CreatedAt     – creation timestamp.
type Reservation struct {
	ID            uint64    `json:"id"`
	GuestName     string    `json:"nombre"`
	GuestEmail    string    `json:"correo"`
	RoomType      string    `json:"habitacion"`
	RoomID        *uint64   `json:"habitacionId"`
	EntryDate     time.Time `json:"-"`
	ExitDate      time.Time `json:"-"`
	Guests        int       `json:"personas"`
	NightlyPrice  float64   `json:"precioNoche"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"metodoPago"`
	Status        string    `json:"estado"`
	AmountPaid    *float64  `json:"montoPagado"`
	CreatedAt     time.Time `json:"fechaCreacion"`
}

// MarshalJSON renders the stay dates as calendar days.
func (r Reservation) MarshalJSON() ([]byte, error) {
	type alias Reservation
	return json.Marshal(struct {
		alias
		EntryDate string `json:"fechaEntrada"`
		ExitDate  string `json:"fechaSalida"`
	}{alias(r), r.EntryDate.Format(DateLayout), r.ExitDate.Format(DateLayout)})
}

// Period returns the reservation's half-open stay interval.
func (r Reservation) Period() DateRange {
	return DateRange{Entry: r.EntryDate, Exit: r.ExitDate}
}

// IsLegacy reports whether the reservation predates room identifiers.
func (r Reservation) IsLegacy() bool { return r.RoomID == nil }

// IsActive reports whether the reservation still occupies its room.
// Cancelled reservations never count towards overlap checks.
func (r Reservation) IsActive() bool {
	s := NormalizeStatus(r.Status)
	return s == StatusPending || s == StatusPaid
}

// IsSettled reports whether the reservation reached a terminal state.
func (r Reservation) IsSettled() bool {
	s := NormalizeStatus(r.Status)
	return s == StatusPaid || s == StatusCancelled
}

// NormalizeStatus lowercases and trims a stored status value.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ActiveStatuses lists the statuses that count as occupying a room.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusPaid}
}
