package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// hangoutColumnAliases is the patch-time field rename table for
// hangouts.
var hangoutColumnAliases = map[string]string{
	"spaceId": "space_id",
}

// hangoutWritableColumns lists every hangouts column the upsert
// endpoint may set.
var hangoutWritableColumns = []string{
	"title", "description", "date", "location", "host", "up", "down",
	"tags", "space_id",
}

// HangoutRepo encapsulates all database queries against hangouts.
type HangoutRepo struct {
	db *sql.DB
}

// NewHangoutRepo constructs a HangoutRepo with the provided DB handle.
func NewHangoutRepo(db *sql.DB) *HangoutRepo {
	return &HangoutRepo{db: db}
}

// FilterWrite drops payload keys that name neither an aliased field nor
// a writable hangouts column.
func (r *HangoutRepo) FilterWrite(fields map[string]any) map[string]any {
	return filterKnown(fields, hangoutColumnAliases, hangoutWritableColumns...)
}

const hangoutColumns = `h.id, h.hang_id, h.title, h.description, h.date, h.location,
	h.host, h.up, h.down, h.tags, h.space_id, h.created_at, h.updated_at`

func scanHangoutRow(scan func(dest ...any) error, withSpace bool) (*model.HangoutWithSpace, error) {
	var hw model.HangoutWithSpace
	dest := []any{&hw.ID, &hw.HangID, &hw.Title, &hw.Description, &hw.Date, &hw.Location,
		&hw.Host, &hw.Up, &hw.Down, &hw.Tags, &hw.SpaceID, &hw.CreatedAt, &hw.UpdatedAt}
	if withSpace {
		dest = append(dest, &hw.SpaceTitle, &hw.SpaceDescription)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	return &hw, nil
}

// GetByKey fetches a hangout joined with its parent space, returning
// ErrHangoutNotFound if no row matches.
func (r *HangoutRepo) GetByKey(ctx context.Context, hangID string) (*model.HangoutWithSpace, error) {
	const q = `SELECT ` + hangoutColumns + `, sp.title, sp.description
		FROM hangouts h
		LEFT JOIN spaces sp ON h.space_id = sp.space_id
		WHERE h.hang_id = ?`
	hw, err := scanHangoutRow(r.db.QueryRowContext(ctx, q, hangID).Scan, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHangoutNotFound
		}
		return nil, err
	}
	return hw, nil
}

func (r *HangoutRepo) get(ctx context.Context, hangID string) (*model.Hangout, error) {
	const q = `SELECT ` + hangoutColumns + ` FROM hangouts h WHERE h.hang_id = ?`
	hw, err := scanHangoutRow(r.db.QueryRowContext(ctx, q, hangID).Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHangoutNotFound
		}
		return nil, err
	}
	return &hw.Hangout, nil
}

func (r *HangoutRepo) list(ctx context.Context, q string, args ...any) ([]*model.HangoutWithSpace, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.HangoutWithSpace{}
	for rows.Next() {
		hw, err := scanHangoutRow(rows.Scan, true)
		if err != nil {
			return nil, err
		}
		out = append(out, hw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every hangout joined with its parent space, newest
// first.
func (r *HangoutRepo) ListAll(ctx context.Context) ([]*model.HangoutWithSpace, error) {
	const q = `SELECT ` + hangoutColumns + `, sp.title, sp.description
		FROM hangouts h
		LEFT JOIN spaces sp ON h.space_id = sp.space_id
		ORDER BY h.created_at DESC`
	return r.list(ctx, q)
}

// ListBySpace returns the hangouts of one space, newest first.
func (r *HangoutRepo) ListBySpace(ctx context.Context, spaceID string) ([]*model.HangoutWithSpace, error) {
	const q = `SELECT ` + hangoutColumns + `, sp.title, sp.description
		FROM hangouts h
		LEFT JOIN spaces sp ON h.space_id = sp.space_id
		WHERE h.space_id = ?
		ORDER BY h.created_at DESC`
	return r.list(ctx, q, spaceID)
}

// Create inserts a new hangout with defaults for omitted optionals.
func (r *HangoutRepo) Create(ctx context.Context, hangID, title, host string, fields map[string]any) (*model.Hangout, error) {
	const q = `INSERT INTO hangouts (
		hang_id, title, description, date, location, host, up, down, tags, space_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		hangID,
		title,
		strField(fields, "description"),
		strField(fields, "date"),
		strField(fields, "location"),
		host,
		intField(fields, "up"),
		intField(fields, "down"),
		listField(fields, "tags"),
		strField(fields, "spaceId"),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, hangID)
}

// UpdateFields overwrites only the columns named in fields; the id key
// is silently dropped and updated_at always refreshed.  Returns
// ErrHangoutNotFound when no row matches.
func (r *HangoutRepo) UpdateFields(ctx context.Context, hangID string, fields map[string]any) (*model.Hangout, error) {
	if _, err := r.get(ctx, hangID); err != nil {
		return nil, err
	}
	set, args := buildSet(fields, hangoutColumnAliases, "id")
	args = append(args, hangID)
	if _, err := r.db.ExecContext(ctx, "UPDATE hangouts SET "+set+" WHERE hang_id = ?", args...); err != nil {
		return nil, err
	}
	return r.get(ctx, hangID)
}

// Delete removes a hangout and returns the deleted row.
func (r *HangoutRepo) Delete(ctx context.Context, hangID string) (*model.Hangout, error) {
	h, err := r.get(ctx, hangID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM hangouts WHERE hang_id = ?", hangID); err != nil {
		return nil, err
	}
	return h, nil
}
