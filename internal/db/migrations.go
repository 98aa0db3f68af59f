package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: lookup indexes for the per-user and per-list queries.
	`CREATE INDEX IF NOT EXISTS idx_shopping_lists_user
	     ON shopping_lists(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_list_items_list
	     ON list_items(list_id, created_at)`,

	// Migration 2: price history is always read newest-first per barcode.
	`CREATE INDEX IF NOT EXISTS idx_barcode_prices_barcode
	     ON barcode_prices(barcode, date_seen)`,

	// Migration 3: sign-in looks emails up case-insensitively.
	`CREATE INDEX IF NOT EXISTS idx_users_email_nocase
	     ON users(email COLLATE NOCASE)`,
}

// Migrate creates the schema and runs the migrations. Safe to call on every start.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
