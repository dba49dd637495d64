package db

import (
	"context"
	"database/sql"

	"github.com/example/science/internal/apperr"
)

// Executor is the capability set shared by a bare connection (*sql.DB) and an
// open transaction (*sql.Tx). Repositories are written against Executor so
// the same code runs standalone or inside a caller-managed transaction; only
// the durability scope differs.
type Executor interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Beginner is implemented by executors that can open a transaction.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var (
	_ Executor = (*sql.DB)(nil)
	_ Executor = (*sql.Tx)(nil)
	_ Beginner = (*sql.DB)(nil)
)

// RunInTx runs fn atomically against ex.
//
// When ex can begin a transaction, fn receives a fresh *sql.Tx that is
// committed if fn returns nil and rolled back otherwise. When ex is already a
// transaction, fn joins it and the caller keeps control of commit/rollback.
func RunInTx(ctx context.Context, ex Executor, fn func(Executor) error) error {
	b, ok := ex.(Beginner)
	if !ok {
		return fn(ex)
	}

	tx, err := b.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("failed to commit transaction", err)
	}
	return nil
}

// ExecPrepared prepares query on ex, executes it once with args and returns
// the result. It mirrors the prepare-then-execute contract of the store.
func ExecPrepared(ctx context.Context, ex Executor, query string, args ...any) (sql.Result, error) {
	stmt, err := ex.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	return stmt.ExecContext(ctx, args...)
}
