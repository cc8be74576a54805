package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the six resource tables if they are absent and
// backfills columns added after the initial schema shipped.  Migrations
// are additive only: no down-migrations and no version table.  Deleting
// a space cascades to its shops but only nulls the space reference on
// lend items, requests and hangouts, so the asymmetry is enforced by
// the store itself rather than handler code.
func Migrate(ctx context.Context, db *sql.DB, defaultStakeAddress string) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sns_users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			sns_id VARCHAR(255) NOT NULL,
			stake DECIMAL(20,8) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS spaces (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			space_id VARCHAR(255) NOT NULL UNIQUE,
			space_contract_id VARCHAR(255),
			title VARCHAR(500),
			description TEXT,
			date DATE,
			location VARCHAR(500),
			location_link TEXT,
			features_enabled JSON,
			admins JSON,
			artwork TEXT,
			background TEXT,
			tags JSON,
			upvotes INT NOT NULL DEFAULT 0,
			downvotes INT NOT NULL DEFAULT 0,
			stake_address VARCHAR(255) DEFAULT %q,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, defaultStakeAddress),
		`CREATE TABLE IF NOT EXISTS shops (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			shop_id VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(500) NOT NULL,
			description TEXT,
			space_id VARCHAR(255) NOT NULL,
			up INT NOT NULL DEFAULT 0,
			down INT NOT NULL DEFAULT 0,
			tags JSON,
			location VARCHAR(500),
			location_link TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (space_id) REFERENCES spaces(space_id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS lend_items (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			item_id VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(500) NOT NULL,
			description TEXT,
			owner VARCHAR(255) NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			up INT NOT NULL DEFAULT 0,
			down INT NOT NULL DEFAULT 0,
			tags JSON,
			image TEXT,
			space_id VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (space_id) REFERENCES spaces(space_id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS requests (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			request_id VARCHAR(255) NOT NULL UNIQUE,
			title VARCHAR(500) NOT NULL,
			description TEXT,
			requester VARCHAR(255) NOT NULL,
			up INT NOT NULL DEFAULT 0,
			down INT NOT NULL DEFAULT 0,
			tags JSON,
			space_id VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (space_id) REFERENCES spaces(space_id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hangouts (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			hang_id VARCHAR(255) NOT NULL UNIQUE,
			title VARCHAR(500) NOT NULL,
			description TEXT,
			date DATE,
			location VARCHAR(500),
			host VARCHAR(255) NOT NULL,
			up INT NOT NULL DEFAULT 0,
			down INT NOT NULL DEFAULT 0,
			tags JSON,
			space_id VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (space_id) REFERENCES spaces(space_id) ON DELETE SET NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Additive backfill for columns that arrived after the original
	// schema: stake on sns_users, stake_address on spaces.
	if err := addColumnIfAbsent(ctx, db, "sns_users", "stake",
		"DECIMAL(20,8) NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	if err := addColumnIfAbsent(ctx, db, "spaces", "stake_address",
		fmt.Sprintf("VARCHAR(255) DEFAULT %q", defaultStakeAddress)); err != nil {
		return err
	}
	return nil
}

// addColumnIfAbsent emulates ADD COLUMN IF NOT EXISTS via an
// information_schema probe, since MySQL lacks the clause.
func addColumnIfAbsent(ctx context.Context, db *sql.DB, table, column, definition string) error {
	const probe = `SELECT COUNT(*) FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?`
	var n int
	if err := db.QueryRowContext(ctx, probe, table, column).Scan(&n); err != nil {
		return fmt.Errorf("migrate: probe %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return nil
	}
	alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)
	if _, err := db.ExecContext(ctx, alter); err != nil {
		return fmt.Errorf("migrate: add %s.%s: %w", table, column, err)
	}
	return nil
}
