package repository

import (
	"context"
	"database/sql"

	"golang.org/x/sync/errgroup"
)

// Counts is the dashboard summary.
type Counts struct {
	Users        int64 `json:"usuarios"`
	Reservations int64 `json:"reservas"`
	Rooms        int64 `json:"habitaciones"`
}

// ReportRepo computes aggregate figures.
type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// Counts returns the number of users, reservations and rooms.  The three
// queries run concurrently on separate pool connections.
func (r *ReportRepo) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	g, ctx := errgroup.WithContext(ctx)
	count := func(table string, dst *int64) {
		g.Go(func() error {
			return r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(dst)
		})
	}
	count("users", &c.Users)
	count("reservations", &c.Reservations)
	count("rooms", &c.Rooms)
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return c, nil
}
