package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list is re-run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_groups (
		id          TEXT PRIMARY KEY,
		mode        TEXT NOT NULL
		            CHECK(mode IN ('fiszki','translate-pl-fr','translate-fr-pl','guess-object','fill-blank')),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_groups_mode ON study_groups(mode)`,

	`CREATE TABLE IF NOT EXISTS study_items (
		id          TEXT PRIMARY KEY,
		group_id    TEXT NOT NULL REFERENCES study_groups(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL DEFAULT 0,
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_items_group ON study_items(group_id)`,

	`CREATE TABLE IF NOT EXISTS item_progress (
		item_id    TEXT PRIMARY KEY REFERENCES study_items(id) ON DELETE CASCADE,
		learned    INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	// Decks imported before groups carried a language.
	`ALTER TABLE study_groups ADD COLUMN language TEXT NOT NULL DEFAULT 'fr'`,
}
