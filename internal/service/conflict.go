package service

import (
	"context"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ConflictKind tags which lookup found an overlapping reservation.
type ConflictKind int

const (
	NoConflict ConflictKind = iota
	// ConflictSameRoom: an active reservation of the same room overlaps.
	ConflictSameRoom
	// ConflictLegacyType: an active reservation without a room id, booked
	// under the same room type, overlaps.
	ConflictLegacyType
)

// Conflict is the result of an overlap check.
type Conflict struct {
	Kind          ConflictKind
	ReservationID uint64
}

// Found reports whether an overlapping reservation exists.
func (c Conflict) Found() bool { return c.Kind != NoConflict }

// Reason returns the machine-readable rejection code.
func (c Conflict) Reason() string {
	switch c.Kind {
	case ConflictSameRoom:
		return ReasonConflictRoom
	case ConflictLegacyType:
		return ReasonConflictLegacy
	}
	return ""
}

// Message returns the guest-facing explanation.
func (c Conflict) Message() string {
	switch c.Kind {
	case ConflictSameRoom:
		return "Ya existe una reserva activa en esas fechas para esta habitación."
	case ConflictLegacyType:
		return "Ya existe una reserva activa de este tipo en esas fechas (reserva anterior sin ID)."
	}
	return ""
}

// ConflictLookup loads the active reservations the overlap check needs.
type ConflictLookup interface {
	ListActiveForRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error)
	ListActiveLegacyByType(ctx context.Context, roomType string) ([]model.Reservation, error)
}

// DetectConflict checks candidate against the active reservations of
// roomID.  Reservations without a room id are consulted only when the
// room has no active reservation keyed by its id at all: once a room is
// tracked by id, same-type legacy rows may belong to a different physical
// room and must not block it.
func DetectConflict(ctx context.Context, lookup ConflictLookup, roomID uint64, roomType string, candidate model.DateRange) (Conflict, error) {
	keyed, err := lookup.ListActiveForRoom(ctx, roomID)
	if err != nil {
		return Conflict{}, err
	}
	if id, ok := firstOverlap(keyed, candidate); ok {
		return Conflict{Kind: ConflictSameRoom, ReservationID: id}, nil
	}
	if countActive(keyed) > 0 {
		return Conflict{}, nil
	}

	legacy, err := lookup.ListActiveLegacyByType(ctx, model.NormalizeRoomType(roomType))
	if err != nil {
		return Conflict{}, err
	}
	if id, ok := firstOverlap(legacy, candidate); ok {
		return Conflict{Kind: ConflictLegacyType, ReservationID: id}, nil
	}
	return Conflict{}, nil
}

func firstOverlap(list []model.Reservation, candidate model.DateRange) (uint64, bool) {
	for _, r := range list {
		if r.IsActive() && r.Period().Overlaps(candidate) {
			return r.ID, true
		}
	}
	return 0, false
}

func countActive(list []model.Reservation) int {
	n := 0
	for _, r := range list {
		if r.IsActive() {
			n++
		}
	}
	return n
}
