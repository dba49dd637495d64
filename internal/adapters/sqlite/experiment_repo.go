// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/core/experiment"
	"github.com/example/science/internal/db"
	"github.com/example/science/internal/ports/secondary"
)

// ExperimentRepository implements secondary.ExperimentRepository with SQLite.
type ExperimentRepository struct {
	ex db.Executor
}

// NewExperimentRepository creates a new SQLite experiment repository bound to
// a connection or an open transaction.
func NewExperimentRepository(ex db.Executor) *ExperimentRepository {
	return &ExperimentRepository{ex: ex}
}

// Create inserts a new experiment row and returns it with its assigned ID.
func (r *ExperimentRepository) Create(ctx context.Context) (*secondary.ExperimentRecord, error) {
	res, err := db.ExecPrepared(ctx, r.ex, "INSERT INTO experiments DEFAULT VALUES")
	if err != nil {
		return nil, apperr.Storage("failed to create experiment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperr.Storage("failed to read experiment id", err)
	}

	return &secondary.ExperimentRecord{ID: id}, nil
}

// Current returns the experiment the pointer names, or nil when idle. Only
// the pointer row is read, so a pointer left behind by a hand-edited database
// is still reported and can be cleared by Delete.
func (r *ExperimentRepository) Current(ctx context.Context) (*secondary.ExperimentRecord, error) {
	record := &secondary.ExperimentRecord{}
	err := r.ex.QueryRowContext(ctx, "SELECT id FROM current_experiment LIMIT 1").Scan(&record.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("failed to load current experiment", err)
	}
	return record, nil
}

// MakeCurrent inserts the pointer row. The table admits a single row, so a
// second call surfaces as the already-active invariant.
func (r *ExperimentRepository) MakeCurrent(ctx context.Context, id int64) error {
	_, err := db.ExecPrepared(ctx, r.ex, "INSERT INTO current_experiment (id) VALUES (?)", id)
	if isSingletonViolation(err) {
		return apperr.Invariant("%s", experiment.ReasonAlreadyActive)
	}
	if err != nil {
		return apperr.Storage(fmt.Sprintf("failed to make experiment %d current", id), err)
	}
	return nil
}

// ClearCurrent removes the pointer row if present.
func (r *ExperimentRepository) ClearCurrent(ctx context.Context) error {
	if _, err := db.ExecPrepared(ctx, r.ex, "DELETE FROM current_experiment"); err != nil {
		return apperr.Storage("failed to clear current experiment", err)
	}
	return nil
}

// Delete removes the experiment and any pointer naming it atomically. The
// pointer goes first so the foreign key never dangles. Removing only a
// pointer whose experiment row is already gone counts as a delete.
func (r *ExperimentRepository) Delete(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, r.ex, func(ex db.Executor) error {
		res, err := db.ExecPrepared(ctx, ex, "DELETE FROM current_experiment WHERE id = ?", id)
		if err != nil {
			return apperr.Storage("failed to clear current experiment", err)
		}
		pointers, err := res.RowsAffected()
		if err != nil {
			return apperr.Storage("failed to read deleted rows", err)
		}

		res, err = db.ExecPrepared(ctx, ex, "DELETE FROM experiments WHERE id = ?", id)
		if err != nil {
			return apperr.Storage(fmt.Sprintf("failed to delete experiment %d", id), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return apperr.Storage("failed to read deleted rows", err)
		}
		if n == 0 && pointers == 0 {
			return apperr.Invariant("Experiment %d does not exist.", id)
		}
		return nil
	})
}

// isSingletonViolation reports whether err is the current_experiment
// uniqueness or check constraint firing.
func isSingletonViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck
}

var _ secondary.ExperimentRepository = (*ExperimentRepository)(nil)
