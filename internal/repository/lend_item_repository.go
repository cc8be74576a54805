package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// lendItemColumnAliases is the patch-time field rename table for lend
// items.
var lendItemColumnAliases = map[string]string{
	"spaceId": "space_id",
}

// lendItemWritableColumns lists every lend_items column the upsert
// endpoint may set.
var lendItemWritableColumns = []string{
	"name", "description", "owner", "available", "up", "down",
	"tags", "image", "space_id",
}

// LendItemRepo encapsulates all database queries against lend_items.
// The space reference is optional and nulled by the store when the
// parent space is deleted, so joined reads tolerate orphans.
type LendItemRepo struct {
	db *sql.DB
}

// NewLendItemRepo constructs a LendItemRepo with the provided DB handle.
func NewLendItemRepo(db *sql.DB) *LendItemRepo {
	return &LendItemRepo{db: db}
}

// FilterWrite drops payload keys that name neither an aliased field nor
// a writable lend_items column.
func (r *LendItemRepo) FilterWrite(fields map[string]any) map[string]any {
	return filterKnown(fields, lendItemColumnAliases, lendItemWritableColumns...)
}

const lendItemColumns = `li.id, li.item_id, li.name, li.description, li.owner, li.available,
	li.up, li.down, li.tags, li.image, li.space_id, li.created_at, li.updated_at`

func scanLendItemRow(scan func(dest ...any) error, withSpace bool) (*model.LendItemWithSpace, error) {
	var lw model.LendItemWithSpace
	dest := []any{&lw.ID, &lw.ItemID, &lw.Name, &lw.Description, &lw.Owner, &lw.Available,
		&lw.Up, &lw.Down, &lw.Tags, &lw.Image, &lw.SpaceID, &lw.CreatedAt, &lw.UpdatedAt}
	if withSpace {
		dest = append(dest, &lw.SpaceTitle, &lw.SpaceDescription)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	return &lw, nil
}

// GetByKey fetches a lend item joined with its parent space; the join
// fields are NULL for orphaned items.  Returns ErrLendItemNotFound if
// no row matches.
func (r *LendItemRepo) GetByKey(ctx context.Context, itemID string) (*model.LendItemWithSpace, error) {
	const q = `SELECT ` + lendItemColumns + `, sp.title, sp.description
		FROM lend_items li
		LEFT JOIN spaces sp ON li.space_id = sp.space_id
		WHERE li.item_id = ?`
	lw, err := scanLendItemRow(r.db.QueryRowContext(ctx, q, itemID).Scan, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLendItemNotFound
		}
		return nil, err
	}
	return lw, nil
}

func (r *LendItemRepo) get(ctx context.Context, itemID string) (*model.LendItem, error) {
	const q = `SELECT ` + lendItemColumns + ` FROM lend_items li WHERE li.item_id = ?`
	lw, err := scanLendItemRow(r.db.QueryRowContext(ctx, q, itemID).Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLendItemNotFound
		}
		return nil, err
	}
	return &lw.LendItem, nil
}

func (r *LendItemRepo) list(ctx context.Context, q string, args ...any) ([]*model.LendItemWithSpace, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.LendItemWithSpace{}
	for rows.Next() {
		lw, err := scanLendItemRow(rows.Scan, true)
		if err != nil {
			return nil, err
		}
		out = append(out, lw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every lend item joined with its parent space, newest
// first.
func (r *LendItemRepo) ListAll(ctx context.Context) ([]*model.LendItemWithSpace, error) {
	const q = `SELECT ` + lendItemColumns + `, sp.title, sp.description
		FROM lend_items li
		LEFT JOIN spaces sp ON li.space_id = sp.space_id
		ORDER BY li.created_at DESC`
	return r.list(ctx, q)
}

// ListBySpace returns the lend items of one space, newest first.
func (r *LendItemRepo) ListBySpace(ctx context.Context, spaceID string) ([]*model.LendItemWithSpace, error) {
	const q = `SELECT ` + lendItemColumns + `, sp.title, sp.description
		FROM lend_items li
		LEFT JOIN spaces sp ON li.space_id = sp.space_id
		WHERE li.space_id = ?
		ORDER BY li.created_at DESC`
	return r.list(ctx, q, spaceID)
}

// Create inserts a new lend item.  Availability defaults to true when
// the payload does not mention it.
func (r *LendItemRepo) Create(ctx context.Context, itemID, name, owner string, fields map[string]any) (*model.LendItem, error) {
	const q = `INSERT INTO lend_items (
		item_id, name, description, owner, available, up, down, tags, image, space_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		itemID,
		name,
		strField(fields, "description"),
		owner,
		boolField(fields, "available", true),
		intField(fields, "up"),
		intField(fields, "down"),
		listField(fields, "tags"),
		strField(fields, "image"),
		strField(fields, "spaceId"),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, itemID)
}

// UpdateFields overwrites only the columns named in fields; the id key
// is silently dropped and updated_at always refreshed.  Returns
// ErrLendItemNotFound when no row matches.
func (r *LendItemRepo) UpdateFields(ctx context.Context, itemID string, fields map[string]any) (*model.LendItem, error) {
	if _, err := r.get(ctx, itemID); err != nil {
		return nil, err
	}
	set, args := buildSet(fields, lendItemColumnAliases, "id")
	args = append(args, itemID)
	if _, err := r.db.ExecContext(ctx, "UPDATE lend_items SET "+set+" WHERE item_id = ?", args...); err != nil {
		return nil, err
	}
	return r.get(ctx, itemID)
}

// Delete removes a lend item and returns the deleted row.
func (r *LendItemRepo) Delete(ctx context.Context, itemID string) (*model.LendItem, error) {
	li, err := r.get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM lend_items WHERE item_id = ?", itemID); err != nil {
		return nil, err
	}
	return li, nil
}
