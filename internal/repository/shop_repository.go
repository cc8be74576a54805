package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// shopColumnAliases is the patch-time field rename table for shops.
var shopColumnAliases = map[string]string{
	"spaceId": "space_id",
}

// shopWritableColumns lists every shops column the upsert endpoint may
// set.
var shopWritableColumns = []string{
	"name", "description", "space_id", "up", "down", "tags",
	"location", "location_link",
}

// ShopRepo encapsulates all database queries against shops.  A shop
// always belongs to a space (space_id NOT NULL, ON DELETE CASCADE), so
// reads join the parent unconditionally.
type ShopRepo struct {
	db *sql.DB
}

// NewShopRepo constructs a ShopRepo with the provided DB handle.
func NewShopRepo(db *sql.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

// FilterWrite drops payload keys that name neither an aliased field nor
// a writable shops column.
func (r *ShopRepo) FilterWrite(fields map[string]any) map[string]any {
	return filterKnown(fields, shopColumnAliases, shopWritableColumns...)
}

const shopColumns = `s.id, s.shop_id, s.name, s.description, s.space_id, s.up, s.down,
	s.tags, s.location, s.location_link, s.created_at, s.updated_at`

func scanShopRow(scan func(dest ...any) error, withSpace bool) (*model.ShopWithSpace, error) {
	var sw model.ShopWithSpace
	dest := []any{&sw.ID, &sw.ShopID, &sw.Name, &sw.Description, &sw.SpaceID, &sw.Up,
		&sw.Down, &sw.Tags, &sw.Location, &sw.LocationLink, &sw.CreatedAt, &sw.UpdatedAt}
	if withSpace {
		dest = append(dest, &sw.SpaceTitle, &sw.SpaceDescription)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	return &sw, nil
}

// GetByKey fetches a shop joined with its parent space title and
// description, returning ErrShopNotFound if no row matches.
func (r *ShopRepo) GetByKey(ctx context.Context, shopID string) (*model.ShopWithSpace, error) {
	const q = `SELECT ` + shopColumns + `, sp.title, sp.description
		FROM shops s
		LEFT JOIN spaces sp ON s.space_id = sp.space_id
		WHERE s.shop_id = ?`
	sw, err := scanShopRow(r.db.QueryRowContext(ctx, q, shopID).Scan, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return sw, nil
}

// get reads the bare row without join fields, used to echo mutations.
func (r *ShopRepo) get(ctx context.Context, shopID string) (*model.Shop, error) {
	const q = `SELECT ` + shopColumns + ` FROM shops s WHERE s.shop_id = ?`
	sw, err := scanShopRow(r.db.QueryRowContext(ctx, q, shopID).Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &sw.Shop, nil
}

func (r *ShopRepo) list(ctx context.Context, q string, args ...any) ([]*model.ShopWithSpace, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.ShopWithSpace{}
	for rows.Next() {
		sw, err := scanShopRow(rows.Scan, true)
		if err != nil {
			return nil, err
		}
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every shop joined with its parent space, newest
// first.
func (r *ShopRepo) ListAll(ctx context.Context) ([]*model.ShopWithSpace, error) {
	const q = `SELECT ` + shopColumns + `, sp.title, sp.description
		FROM shops s
		LEFT JOIN spaces sp ON s.space_id = sp.space_id
		ORDER BY s.created_at DESC`
	return r.list(ctx, q)
}

// ListBySpace returns the shops of one space, newest first.
func (r *ShopRepo) ListBySpace(ctx context.Context, spaceID string) ([]*model.ShopWithSpace, error) {
	const q = `SELECT ` + shopColumns + `, sp.title, sp.description
		FROM shops s
		LEFT JOIN spaces sp ON s.space_id = sp.space_id
		WHERE s.space_id = ?
		ORDER BY s.created_at DESC`
	return r.list(ctx, q, spaceID)
}

// Create inserts a new shop with defaults for omitted optionals and
// re-reads the stored row.
func (r *ShopRepo) Create(ctx context.Context, shopID, name, spaceID string, fields map[string]any) (*model.Shop, error) {
	const q = `INSERT INTO shops (
		shop_id, name, description, space_id, up, down, tags, location, location_link
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		shopID,
		name,
		strField(fields, "description"),
		spaceID,
		intField(fields, "up"),
		intField(fields, "down"),
		listField(fields, "tags"),
		strField(fields, "location"),
		strField(fields, "location_link"),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, shopID)
}

// UpdateFields overwrites only the columns named in fields; the shopId
// key is silently dropped and updated_at always refreshed.  Returns
// ErrShopNotFound when no row matches.
func (r *ShopRepo) UpdateFields(ctx context.Context, shopID string, fields map[string]any) (*model.Shop, error) {
	if _, err := r.get(ctx, shopID); err != nil {
		return nil, err
	}
	set, args := buildSet(fields, shopColumnAliases, "shopId")
	args = append(args, shopID)
	if _, err := r.db.ExecContext(ctx, "UPDATE shops SET "+set+" WHERE shop_id = ?", args...); err != nil {
		return nil, err
	}
	return r.get(ctx, shopID)
}

// Delete removes a shop and returns the deleted row for confirmation.
func (r *ShopRepo) Delete(ctx context.Context, shopID string) (*model.Shop, error) {
	s, err := r.get(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM shops WHERE shop_id = ?", shopID); err != nil {
		return nil, err
	}
	return s, nil
}
