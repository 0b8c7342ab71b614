package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Stay dates
// are DATE columns and come back as midnight UTC.
type ReservationRepo struct {
	db querier
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, guest_name, guest_email, room_type, room_id, entry_date, exit_date,
       guests, nightly_price, total, payment_method, status, amount_paid, created_at`

// activeStatusClause matches pending and paid rows whatever their casing.
const activeStatusClause = `LOWER(TRIM(status)) IN (?, ?)`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var (
		res        model.Reservation
		roomID     sql.NullInt64
		amountPaid sql.NullFloat64
	)
	err := row.Scan(&res.ID, &res.GuestName, &res.GuestEmail, &res.RoomType, &roomID,
		&res.EntryDate, &res.ExitDate, &res.Guests, &res.NightlyPrice, &res.Total,
		&res.PaymentMethod, &res.Status, &amountPaid, &res.CreatedAt)
	if err != nil {
		return res, err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		res.RoomID = &id
	}
	if amountPaid.Valid {
		a := amountPaid.Float64
		res.AmountPaid = &a
	}
	return res, nil
}

func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// List returns every reservation, newest first.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY id DESC`)
}

// ListPending returns reservations awaiting confirmation, newest first.
func (r *ReservationRepo) ListPending(ctx context.Context) ([]model.Reservation, error) {
	return r.query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE LOWER(TRIM(status)) = ? ORDER BY id DESC`,
		model.StatusPending)
}

// ListByEmail returns the reservations made with the given contact email.
func (r *ReservationRepo) ListByEmail(ctx context.Context, email string) ([]model.Reservation, error) {
	return r.query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE guest_email = ? ORDER BY id DESC`,
		strings.TrimSpace(email))
}

// SearchFilter narrows Search.  Zero values are ignored.
type SearchFilter struct {
	Status string    // compared case-insensitively
	From   time.Time // entry_date >= From
	To     time.Time // exit_date <= To
}

// Search returns reservations matching every set field of f.
func (r *ReservationRepo) Search(ctx context.Context, f SearchFilter) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []any
	if s := strings.TrimSpace(f.Status); s != "" {
		q += ` AND LOWER(TRIM(status)) = ?`
		args = append(args, strings.ToLower(s))
	}
	if !f.From.IsZero() {
		q += ` AND entry_date >= ?`
		args = append(args, f.From.Format(model.DateLayout))
	}
	if !f.To.IsZero() {
		q += ` AND exit_date <= ?`
		args = append(args, f.To.Format(model.DateLayout))
	}
	q += ` ORDER BY id DESC`
	return r.query(ctx, q, args...)
}

// GetByID returns a reservation or model.ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	return r.getByID(ctx, id, false)
}

func (r *ReservationRepo) getByID(ctx context.Context, id uint64, forUpdate bool) (model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, model.ErrReservationNotFound
	}
	return res, err
}

// ListActiveForRoom returns pending and paid reservations of a room.
func (r *ReservationRepo) ListActiveForRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	return r.query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE room_id = ? AND `+activeStatusClause,
		roomID, model.StatusPending, model.StatusPaid)
}

// ListActiveLegacyByType returns pending and paid reservations without a
// room id whose normalized room type equals roomType.
func (r *ReservationRepo) ListActiveLegacyByType(ctx context.Context, roomType string) ([]model.Reservation, error) {
	return r.query(ctx,
		`SELECT `+reservationColumns+` FROM reservations
         WHERE room_id IS NULL AND LOWER(TRIM(room_type)) = ? AND `+activeStatusClause,
		model.NormalizeRoomType(roomType), model.StatusPending, model.StatusPaid)
}

// Insert stores a new reservation and populates its ID and CreatedAt.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
        (guest_name, guest_email, room_type, room_id, entry_date, exit_date, guests, nightly_price, total, payment_method, status)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	var roomID any
	if res.RoomID != nil {
		roomID = *res.RoomID
	}
	result, err := r.db.ExecContext(ctx, q,
		res.GuestName, res.GuestEmail, res.RoomType, roomID,
		res.EntryDate.Format(model.DateLayout), res.ExitDate.Format(model.DateLayout),
		res.Guests, res.NightlyPrice, res.Total, res.PaymentMethod, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the server-side default
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM reservations WHERE id = ?`, res.ID).Scan(&res.CreatedAt)
}

// UpdateStatus sets the status column.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	return err
}

// RecordPayment stores the payment method and amount and marks the
// reservation paid.
func (r *ReservationRepo) RecordPayment(ctx context.Context, id uint64, method string, amount float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET payment_method = ?, amount_paid = ?, status = ? WHERE id = ?`,
		method, amount, model.StatusPaid, id)
	return err
}

// Delete removes a reservation regardless of its status.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrReservationNotFound
	}
	return nil
}
