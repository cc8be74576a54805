package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// UserRepo encapsulates all database queries against sns_users.  Users
// are keyed by email; rows are created on first profile claim, updated
// whenever the profile id or stake balance changes, and never deleted.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = "id, email, sns_id, stake, created_at, updated_at"

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.SNSID, &u.Stake, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail fetches a user by email, returning ErrUserNotFound if no
// row matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = "SELECT " + userColumns + " FROM sns_users WHERE email = ?"
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// ListAll returns every user ordered newest-created-first.
func (r *UserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	const q = "SELECT " + userColumns + " FROM sns_users ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.SNSID, &u.Stake, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new user row.  A follow-up SELECT populates the
// generated id and timestamp defaults so callers receive the full row.
func (r *UserRepo) Create(ctx context.Context, email, snsID string, stake float64) (*model.User, error) {
	const q = "INSERT INTO sns_users (email, sns_id, stake) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, email, snsID, stake); err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, email)
}

// UpdateFields applies a partial update to the user identified by
// email.  Only the provided keys are touched; the email key itself is
// silently dropped; updated_at is always refreshed.  Returns
// ErrUserNotFound when no row matches.
func (r *UserRepo) UpdateFields(ctx context.Context, email string, fields map[string]any) (*model.User, error) {
	if _, err := r.GetByEmail(ctx, email); err != nil {
		return nil, err
	}
	set, args := buildSet(fields, nil, "email")
	args = append(args, email)
	if _, err := r.db.ExecContext(ctx, "UPDATE sns_users SET "+set+" WHERE email = ?", args...); err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, email)
}
