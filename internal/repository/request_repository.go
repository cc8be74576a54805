package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// requestColumnAliases is the patch-time field rename table for
// requests.
var requestColumnAliases = map[string]string{
	"spaceId": "space_id",
}

// requestWritableColumns lists every requests column the upsert
// endpoint may set.
var requestWritableColumns = []string{
	"title", "description", "requester", "up", "down", "tags", "space_id",
}

// RequestRepo encapsulates all database queries against requests.
type RequestRepo struct {
	db *sql.DB
}

// NewRequestRepo constructs a RequestRepo with the provided DB handle.
func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

// FilterWrite drops payload keys that name neither an aliased field nor
// a writable requests column.
func (r *RequestRepo) FilterWrite(fields map[string]any) map[string]any {
	return filterKnown(fields, requestColumnAliases, requestWritableColumns...)
}

const requestColumns = `r.id, r.request_id, r.title, r.description, r.requester,
	r.up, r.down, r.tags, r.space_id, r.created_at, r.updated_at`

func scanRequestRow(scan func(dest ...any) error, withSpace bool) (*model.RequestWithSpace, error) {
	var rw model.RequestWithSpace
	dest := []any{&rw.ID, &rw.RequestID, &rw.Title, &rw.Description, &rw.Requester,
		&rw.Up, &rw.Down, &rw.Tags, &rw.SpaceID, &rw.CreatedAt, &rw.UpdatedAt}
	if withSpace {
		dest = append(dest, &rw.SpaceTitle, &rw.SpaceDescription)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	return &rw, nil
}

// GetByKey fetches a request joined with its parent space, returning
// ErrRequestNotFound if no row matches.
func (r *RequestRepo) GetByKey(ctx context.Context, requestID string) (*model.RequestWithSpace, error) {
	const q = `SELECT ` + requestColumns + `, sp.title, sp.description
		FROM requests r
		LEFT JOIN spaces sp ON r.space_id = sp.space_id
		WHERE r.request_id = ?`
	rw, err := scanRequestRow(r.db.QueryRowContext(ctx, q, requestID).Scan, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return rw, nil
}

func (r *RequestRepo) get(ctx context.Context, requestID string) (*model.Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM requests r WHERE r.request_id = ?`
	rw, err := scanRequestRow(r.db.QueryRowContext(ctx, q, requestID).Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &rw.Request, nil
}

func (r *RequestRepo) list(ctx context.Context, q string, args ...any) ([]*model.RequestWithSpace, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.RequestWithSpace{}
	for rows.Next() {
		rw, err := scanRequestRow(rows.Scan, true)
		if err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every request joined with its parent space, newest
// first.
func (r *RequestRepo) ListAll(ctx context.Context) ([]*model.RequestWithSpace, error) {
	const q = `SELECT ` + requestColumns + `, sp.title, sp.description
		FROM requests r
		LEFT JOIN spaces sp ON r.space_id = sp.space_id
		ORDER BY r.created_at DESC`
	return r.list(ctx, q)
}

// ListBySpace returns the requests of one space, newest first.
func (r *RequestRepo) ListBySpace(ctx context.Context, spaceID string) ([]*model.RequestWithSpace, error) {
	const q = `SELECT ` + requestColumns + `, sp.title, sp.description
		FROM requests r
		LEFT JOIN spaces sp ON r.space_id = sp.space_id
		WHERE r.space_id = ?
		ORDER BY r.created_at DESC`
	return r.list(ctx, q, spaceID)
}

// Create inserts a new request with defaults for omitted optionals.
func (r *RequestRepo) Create(ctx context.Context, requestID, title, requester string, fields map[string]any) (*model.Request, error) {
	const q = `INSERT INTO requests (
		request_id, title, description, requester, up, down, tags, space_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		requestID,
		title,
		strField(fields, "description"),
		requester,
		intField(fields, "up"),
		intField(fields, "down"),
		listField(fields, "tags"),
		strField(fields, "spaceId"),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, requestID)
}

// UpdateFields overwrites only the columns named in fields; the id key
// is silently dropped and updated_at always refreshed.  Returns
// ErrRequestNotFound when no row matches.
func (r *RequestRepo) UpdateFields(ctx context.Context, requestID string, fields map[string]any) (*model.Request, error) {
	if _, err := r.get(ctx, requestID); err != nil {
		return nil, err
	}
	set, args := buildSet(fields, requestColumnAliases, "id")
	args = append(args, requestID)
	if _, err := r.db.ExecContext(ctx, "UPDATE requests SET "+set+" WHERE request_id = ?", args...); err != nil {
		return nil, err
	}
	return r.get(ctx, requestID)
}

// Delete removes a request and returns the deleted row.
func (r *RequestRepo) Delete(ctx context.Context, requestID string) (*model.Request, error) {
	req, err := r.get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM requests WHERE request_id = ?", requestID); err != nil {
		return nil, err
	}
	return req, nil
}
