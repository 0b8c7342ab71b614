package model

import "strings"

// RoomAvailable is the canonical status of a room that can be booked.
// Stored statuses are free text, so comparisons go through IsAvailable.
const RoomAvailable = "disponible"

// Room represents a row in the `rooms` table.  Rooms are managed by
// inventory endpoints and looked up by the reservation admission flow.
//
// Fields:
//  ID          – primary key identifier.
//  Type        – room type label (e.g. "Doble"); legacy reservations
//                reference rooms only by this label.
//  Number      – door number, kept as text.
//  Price       – price per night.
//  Capacity    – maximum occupants (1 when unset).
//  Status      – availability state, compared case-insensitively.
//  Description – free-form description.
//  Image       – image URL or path.
type Room struct {
	ID          uint64  `json:"id"`          // rooms.id
	Type        string  `json:"tipo"`        // rooms.room_type
	Number      string  `json:"numero"`      // rooms.number
	Price       float64 `json:"precio"`      // rooms.price
	Capacity    int     `json:"capacidad"`   // rooms.capacity
	Status      string  `json:"estado"`      // rooms.status
	Description string  `json:"descripcion"` // rooms.description
	Image       string  `json:"imagen"`      // rooms.image
}

// IsAvailable reports whether the room's status equals "disponible",
// ignoring case and surrounding spaces.
func (r Room) IsAvailable() bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), RoomAvailable)
}

// NormalizeRoomType lowercases and trims a room type label so that legacy
// reservations can be matched against it.
func NormalizeRoomType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
