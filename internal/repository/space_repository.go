package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cadalt0/Space/internal/model"
)

// spaceColumnAliases translates the external field names that differ
// from their column names.  Keys not present here pass through to the
// store unchanged; the table is the single source of truth for space
// field renames, consulted by both the upsert and patch paths.
var spaceColumnAliases = map[string]string{
	"spacecontractid": "space_contract_id",
	"featuresEnabled": "features_enabled",
	"stakeAddress":    "stake_address",
}

// spaceWritableColumns lists every spaces column the upsert endpoint
// may set.  Together with spaceColumnAliases it bounds what FilterWrite
// lets through.
var spaceWritableColumns = []string{
	"space_contract_id", "title", "description", "date", "location",
	"location_link", "features_enabled", "admins", "artwork", "background",
	"tags", "upvotes", "downvotes", "stake_address",
}

// SpaceRepo encapsulates all database queries against spaces, the
// parent table of the four room kinds.  Deleting a space lets the
// store's foreign keys cascade to shops and null the space reference on
// lend items, requests and hangouts.
type SpaceRepo struct {
	db *sql.DB

	// defaultStakeAddress is stamped onto new spaces that do not name
	// their own staking vault address.
	defaultStakeAddress string
}

// NewSpaceRepo constructs a SpaceRepo with the provided DB handle and
// the fallback stake address for new rows.
func NewSpaceRepo(db *sql.DB, defaultStakeAddress string) *SpaceRepo {
	return &SpaceRepo{db: db, defaultStakeAddress: defaultStakeAddress}
}

// FilterWrite drops payload keys that name neither an aliased field nor
// a writable spaces column.
func (r *SpaceRepo) FilterWrite(fields map[string]any) map[string]any {
	return filterKnown(fields, spaceColumnAliases, spaceWritableColumns...)
}

const spaceColumns = `id, space_id, space_contract_id, title, description, date, location,
	location_link, features_enabled, admins, artwork, background, tags,
	upvotes, downvotes, stake_address, created_at, updated_at`

func scanSpaceRow(scan func(dest ...any) error) (*model.Space, error) {
	var s model.Space
	err := scan(&s.ID, &s.SpaceID, &s.ContractID, &s.Title, &s.Description, &s.Date,
		&s.Location, &s.LocationLink, &s.FeaturesEnabled, &s.Admins, &s.Artwork,
		&s.Background, &s.Tags, &s.Upvotes, &s.Downvotes, &s.StakeAddress,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a space with the given id is present.  Used as
// the foreign-key guard before any room write that names a parent.
func (r *SpaceRepo) Exists(ctx context.Context, spaceID string) (bool, error) {
	const q = "SELECT space_id FROM spaces WHERE space_id = ?"
	var id string
	if err := r.db.QueryRowContext(ctx, q, spaceID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetByKey fetches a space by its natural key, returning
// ErrSpaceNotFound if no row matches.
func (r *SpaceRepo) GetByKey(ctx context.Context, spaceID string) (*model.Space, error) {
	const q = "SELECT " + spaceColumns + " FROM spaces WHERE space_id = ?"
	s, err := scanSpaceRow(r.db.QueryRowContext(ctx, q, spaceID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListAll returns every space ordered newest-created-first.  No
// pagination: the entire table is returned every time.
func (r *SpaceRepo) ListAll(ctx context.Context) ([]*model.Space, error) {
	const q = "SELECT " + spaceColumns + " FROM spaces ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Space{}
	for rows.Next() {
		s, err := scanSpaceRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new space.  Optional fields default: collections to
// empty arrays, counters to zero, free text to NULL and the stake
// address to the configured fallback.  The stored row is re-read so the
// response echoes the store's defaults and timestamps.
func (r *SpaceRepo) Create(ctx context.Context, spaceID string, fields map[string]any) (*model.Space, error) {
	stakeAddr := r.defaultStakeAddress
	if v := strField(fields, "stakeAddress"); v != nil {
		stakeAddr = *v
	}
	const q = `INSERT INTO spaces (
		space_id, space_contract_id, title, description, date, location,
		location_link, features_enabled, admins, artwork, background, tags,
		upvotes, downvotes, stake_address
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		spaceID,
		strField(fields, "spacecontractid"),
		strField(fields, "title"),
		strField(fields, "description"),
		strField(fields, "date"),
		strField(fields, "location"),
		strField(fields, "location_link"),
		listField(fields, "featuresEnabled"),
		listField(fields, "admins"),
		strField(fields, "artwork"),
		strField(fields, "background"),
		listField(fields, "tags"),
		intField(fields, "upvotes"),
		intField(fields, "downvotes"),
		stakeAddr,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, spaceID)
}

// UpdateFields overwrites only the columns named in fields, preserving
// everything else.  The spaceId key is silently dropped; collection
// values replace the stored array wholesale; updated_at is always
// refreshed.  Returns ErrSpaceNotFound when no row matches.
func (r *SpaceRepo) UpdateFields(ctx context.Context, spaceID string, fields map[string]any) (*model.Space, error) {
	if _, err := r.GetByKey(ctx, spaceID); err != nil {
		return nil, err
	}
	set, args := buildSet(fields, spaceColumnAliases, "spaceId")
	args = append(args, spaceID)
	if _, err := r.db.ExecContext(ctx, "UPDATE spaces SET "+set+" WHERE space_id = ?", args...); err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, spaceID)
}

// Delete removes a space and returns the deleted row for confirmation.
// Dependent shops are removed by the store's ON DELETE CASCADE while
// lend items, requests and hangouts survive with space_id nulled — an
// intentional asymmetry.
func (r *SpaceRepo) Delete(ctx context.Context, spaceID string) (*model.Space, error) {
	s, err := r.GetByKey(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM spaces WHERE space_id = ?", spaceID); err != nil {
		return nil, err
	}
	return s, nil
}
