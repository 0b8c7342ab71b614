package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// UserRepo persists application users.  Passwords are stored as given;
// hashing is the caller's job.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, first_name, last_name, email, password, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	return u, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts user and sets its ID.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = normalizeEmail(u.Email)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password, role) VALUES (?,?,?,?,?)",
		u.FirstName, u.LastName, u.Email, u.Password, u.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return model.ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", normalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	return u, err
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes the profile fields of u.  Role and password are only
// written when non-empty.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	q := "UPDATE users SET first_name=?, last_name=?, email=?"
	args := []any{u.FirstName, u.LastName, normalizeEmail(u.Email)}
	if u.Role != "" {
		q += ", role=?"
		args = append(args, u.Role)
	}
	if u.Password != "" {
		q += ", password=?"
		args = append(args, u.Password)
	}
	q += " WHERE id=?"
	args = append(args, u.ID)
	if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
		if isDuplicateKey(err) {
			return model.ErrEmailExists
		}
		return err
	}
	return nil
}

// UpdatePassword replaces the stored credential.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET password=? WHERE id=?", password, id)
	return err
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
