package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo provides CRUD operations for the rooms table.
type RoomRepo struct {
	db querier
}

// NewRoomRepo returns a RoomRepo bound to db.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, room_type, number, price, COALESCE(capacity, 1), status,
       COALESCE(description, ''), COALESCE(image, '')`

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.Type, &rm.Number, &rm.Price, &rm.Capacity, &rm.Status, &rm.Description, &rm.Image)
	return rm, err
}

// List returns all rooms ordered by id.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// GetByID returns the room with the given id or model.ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return r.getByID(ctx, id, false)
}

func (r *RoomRepo) getByID(ctx context.Context, id uint64, forUpdate bool) (model.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, model.ErrRoomNotFound
	}
	return rm, err
}

// Create inserts a room and sets its generated ID.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (room_type, number, price, capacity, status, description, image) VALUES (?,?,?,?,?,?,?)`,
		rm.Type, rm.Number, rm.Price, rm.Capacity, rm.Status, rm.Description, rm.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// Update overwrites every mutable column of the room identified by rm.ID.
// The number is kept.
func (r *RoomRepo) Update(ctx context.Context, rm model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET room_type=?, price=?, capacity=?, status=?, description=?, image=? WHERE id=?`,
		rm.Type, rm.Price, rm.Capacity, rm.Status, rm.Description, rm.Image, rm.ID)
	if err != nil {
		return err
	}
	return r.requireRow(ctx, res, rm.ID)
}

// UpdateStatus sets only the availability state of a room.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return r.requireRow(ctx, res, id)
}

// Delete removes a room.  Reservations that referenced it keep their
// room type label and lose the identifier.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrRoomNotFound
	}
	return nil
}

// requireRow distinguishes "no such room" from "nothing changed": MySQL
// reports zero affected rows when an UPDATE writes identical values.
func (r *RoomRepo) requireRow(ctx context.Context, res sql.Result, id uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id=?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrRoomNotFound
	}
	return err
}
