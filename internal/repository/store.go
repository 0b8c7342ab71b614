package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same queries
// can run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ReservationTx is the set of operations available to the reservation
// workflows inside a single transaction.  Row locks taken by the
// ForUpdate methods are held until the transaction ends.
type ReservationTx interface {
	FindRoomForUpdate(ctx context.Context, id uint64) (model.Room, error)
	ListActiveForRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error)
	ListActiveLegacyByType(ctx context.Context, roomType string) ([]model.Reservation, error)
	InsertReservation(ctx context.Context, r *model.Reservation) error
	GetReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
	RecordPayment(ctx context.Context, id uint64, method string, amount float64) error
}

// Store runs reservation workflows in transactions.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store bound to db.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InTx runs fn inside a READ COMMITTED transaction.  The transaction is
// committed when fn returns nil and rolled back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(ReservationTx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(txRepos{rooms: &RoomRepo{db: tx}, reservations: &ReservationRepo{db: tx}}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

type txRepos struct {
	rooms        *RoomRepo
	reservations *ReservationRepo
}

func (t txRepos) FindRoomForUpdate(ctx context.Context, id uint64) (model.Room, error) {
	return t.rooms.getByID(ctx, id, true)
}

func (t txRepos) ListActiveForRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	return t.reservations.ListActiveForRoom(ctx, roomID)
}

func (t txRepos) ListActiveLegacyByType(ctx context.Context, roomType string) ([]model.Reservation, error) {
	return t.reservations.ListActiveLegacyByType(ctx, roomType)
}

func (t txRepos) InsertReservation(ctx context.Context, r *model.Reservation) error {
	return t.reservations.Insert(ctx, r)
}

func (t txRepos) GetReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error) {
	return t.reservations.getByID(ctx, id, true)
}

func (t txRepos) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	return t.reservations.UpdateStatus(ctx, id, status)
}

func (t txRepos) RecordPayment(ctx context.Context, id uint64, method string, amount float64) error {
	return t.reservations.RecordPayment(ctx, id, method, amount)
}
