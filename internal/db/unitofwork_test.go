package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/fiszki/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertGroup(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO study_groups (id, mode, name, created_at, updated_at)
		VALUES (?, 'fiszki', 'Animals', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`, id)
	return err
}

func groupExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM study_groups WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertGroup(ctx, tx, "g1")
	})
	require.NoError(t, err)
	assert.True(t, groupExists(t, database, "g1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	deliberate := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertGroup(ctx, tx, "g2"); err != nil {
			return err
		}
		return deliberate
	})
	require.ErrorIs(t, err, deliberate)
	assert.False(t, groupExists(t, database, "g2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertGroup(ctx, tx, "g3")
			panic("boom")
		})
	})
	assert.False(t, groupExists(t, database, "g3"), "row should not exist after panic rollback")
}
