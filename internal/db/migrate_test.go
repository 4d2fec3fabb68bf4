package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"study_groups", "study_items", "item_progress"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_study_groups_mode", "idx_study_items_group"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_StudyGroupsLanguageColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(study_groups)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == "language" {
			found = true
			assert.Equal(t, "'fr'", dflt.String)
		}
	}
	require.NoError(t, rows.Err())
	assert.True(t, found, "study_groups should have a language column")
}

func TestMigrate_RejectsUnknownMode(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_groups (id, mode, name, created_at, updated_at)
		VALUES ('g', 'karaoke', 'x', 'now', 'now')`)
	assert.Error(t, err)
}

func TestMigrate_ProgressCascadesWithItems(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_groups (id, mode, name, created_at, updated_at) VALUES ('g', 'fiszki', 'x', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO study_items (id, group_id, payload, created_at) VALUES ('i', 'g', '{}', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO item_progress (item_id, learned, updated_at) VALUES ('i', 1, 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM study_groups WHERE id = 'g'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM item_progress`).Scan(&n))
	assert.Zero(t, n)
}
