package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/fiszki/internal/db"
)

// FailOnNthExecUoW behaves like db.SQLiteUnitOfWork except that the FailOn-th
// write (counting from 1) returns Err instead of reaching the database.
// Queries are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

// Writes reports how many ExecContext calls were attempted across every
// transaction, the failing one included.
func (u *FailOnNthExecUoW) Writes() int {
	return int(u.writes.Load())
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyTx{DBTX: tx, owner: u})
	})
}

type faultyTx struct {
	db.DBTX
	owner *FailOnNthExecUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.owner.writes.Add(1) == f.owner.FailOn {
		return nil, f.owner.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
