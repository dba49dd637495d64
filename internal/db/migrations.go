package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/example/science/internal/apperr"
)

// Migration is one schema-evolution step. Its version is its index in the
// list handed to NewMigrator.
type Migration struct {
	Name      string
	Statement string
}

// Migrator applies a fixed, ordered list of migrations exactly once each.
type Migrator struct {
	migrations []Migration
}

// NewMigrator creates a Migrator for the given ordered list.
func NewMigrator(migrations []Migration) *Migrator {
	return &Migrator{migrations: migrations}
}

// Run brings the schema up to the newest migration and returns how many
// migrations it applied. It is safe to call on every start: an up-to-date
// database is not written to.
//
// All pending migrations and their bookkeeping rows run as one transaction,
// so a failure or crash leaves either every pending migration applied or none.
func (m *Migrator) Run(ctx context.Context, database *sql.DB) (int, error) {
	applied, err := m.Applied(ctx, database)
	if err != nil {
		return 0, err
	}

	if err := m.checkBookkeeping(applied); err != nil {
		return 0, err
	}

	done := make(map[int]bool, len(applied))
	for _, id := range applied {
		done[id] = true
	}

	var batch []string
	var pending int
	for i, migration := range m.migrations {
		if done[i] {
			continue
		}
		batch = append(batch, migration.Statement)
		// i is not user input, so it is formatted rather than bound.
		batch = append(batch, fmt.Sprintf("INSERT INTO migrations (id) VALUES (%d)", i))
		pending++
	}

	if len(batch) == 0 {
		return 0, nil
	}

	err = RunInTx(ctx, database, func(ex Executor) error {
		for _, stmt := range batch {
			if _, err := ex.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperr.Storage("failed to apply migrations", err)
	}

	return pending, nil
}

// Applied returns the sorted migration ids recorded in the database. A
// database without a migrations table has applied nothing.
func (m *Migrator) Applied(ctx context.Context, database Executor) ([]int, error) {
	var count int
	err := database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'migrations'",
	).Scan(&count)
	if err != nil {
		return nil, apperr.Storage("failed to check for migrations table", err)
	}
	if count == 0 {
		return nil, nil
	}

	rows, err := database.QueryContext(ctx, "SELECT id FROM migrations")
	if err != nil {
		return nil, apperr.Storage("failed to read applied migrations", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Storage("failed to scan migration id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("failed to read applied migrations", err)
	}

	sort.Ints(ids)
	return ids, nil
}

// checkBookkeeping verifies the applied set is exactly {0..k} and that k is
// a migration this binary knows about.
func (m *Migrator) checkBookkeeping(applied []int) error {
	for i, id := range applied {
		if id >= len(m.migrations) {
			return apperr.Specific(apperr.KindStorage, fmt.Sprintf(
				"The science database has migration %d applied, but this version of science only knows migrations 0-%d. Upgrade science before using this project.",
				id, len(m.migrations)-1), nil)
		}
		if id != i {
			return apperr.Storage("migration bookkeeping is corrupt",
				fmt.Errorf("applied migrations %v are not contiguous from 0", applied))
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, r := range stmt {
		if r == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
