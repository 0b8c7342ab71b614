package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomStore is the room persistence used by RoomHandler.
type RoomStore interface {
	List(ctx context.Context) ([]model.Room, error)
	Create(ctx context.Context, rm *model.Room) error
	Update(ctx context.Context, rm model.Room) error
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

// RoomHandler serves the room inventory.
type RoomHandler struct {
	Rooms RoomStore
}

func NewRoomHandler(rooms RoomStore) *RoomHandler { return &RoomHandler{Rooms: rooms} }

type roomReq struct {
	Numero      string  `json:"numero"`
	Tipo        string  `json:"tipo" validate:"required"`
	Precio      float64 `json:"precio" validate:"gte=0"`
	Capacidad   int     `json:"capacidad" validate:"gte=0"`
	Estado      string  `json:"estado" validate:"required"`
	Descripcion string  `json:"descripcion"`
	Imagen      string  `json:"imagen"`
}

func (r roomReq) room() model.Room {
	capacity := r.Capacidad
	if capacity == 0 {
		capacity = 1
	}
	return model.Room{
		Type:        strings.TrimSpace(r.Tipo),
		Number:      strings.TrimSpace(r.Numero),
		Price:       r.Precio,
		Capacity:    capacity,
		Status:      strings.TrimSpace(r.Estado),
		Description: r.Descripcion,
		Image:       r.Imagen,
	}
}

type roomStatusReq struct {
	Estado string `json:"estado" validate:"required"`
}

// List returns every room ordered by id.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Create adds a room.  The door number is required on creation only.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Numero) == "" {
		return model.Validationf("numero es obligatorio")
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rm := req.room()
	if err := h.Rooms.Create(ctx, &rm); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Habitación agregada correctamente", "id": rm.ID})
}

// Update overwrites a room's attributes.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roomReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rm := req.room()
	rm.ID = id
	if err := h.Rooms.Update(ctx, rm); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Habitación actualizada correctamente"))
}

// UpdateStatus changes only the availability state.
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roomStatusReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	estado := strings.TrimSpace(req.Estado)
	if err := h.Rooms.UpdateStatus(ctx, id, estado); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(fmt.Sprintf("Estado de habitación #%d actualizado a %q", id, estado)))
}

// Delete removes a room.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Rooms.Delete(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Habitación eliminada correctamente"))
}
