// Package model holds the domain types shared by repositories, services
// and handlers, together with the sentinel errors that higher layers map
// to HTTP responses.
package model

import (
	"errors"
	"fmt"
)

// ErrValidation marks client-correctable input problems.  Handlers turn
// it into a 400 response.
var ErrValidation = errors.New("validation failed")

// ErrInvalidAction is returned for state-transition tokens other than
// confirm and cancel.  It is a validation error.
var ErrInvalidAction = fmt.Errorf("%w: invalid action", ErrValidation)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")
)

// ErrInvalidState is returned when a reservation cannot move to the
// requested state because it already reached a terminal one.
var ErrInvalidState = errors.New("invalid reservation state")

// ErrNotPayable is the ErrInvalidState returned when a payment targets a
// reservation that is already paid or cancelled.
var ErrNotPayable = fmt.Errorf("%w: reservation cannot be paid", ErrInvalidState)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Validationf builds an ErrValidation carrying a human-readable detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
