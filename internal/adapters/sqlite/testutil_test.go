// Package sqlite_test contains integration tests for SQLite repositories.
//
// Every test database is a file in t.TempDir() brought up with the real
// migration list, so tests run against the same schema production does.
// Do not hand-write CREATE TABLE statements here; use setupTestDB and the
// seed helpers.
package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/example/science/internal/db"
)

// setupTestDB creates a migrated database in a temporary directory.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, _, err := db.OpenAndMigrate(context.Background(), filepath.Join(t.TempDir(), "Science.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedExperiment inserts an experiment with a fixed id.
func seedExperiment(t *testing.T, testDB *sql.DB, id int64) int64 {
	t.Helper()
	if _, err := testDB.Exec("INSERT INTO experiments (id) VALUES (?)", id); err != nil {
		t.Fatalf("failed to seed experiment: %v", err)
	}
	return id
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, testDB *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
