package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/example/science/internal/adapters/sqlite"
	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/db"
	"github.com/example/science/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockVersionControl implements secondary.VersionControl for testing.
// Every successful Commit moves HEAD to a new fake SHA.
type mockVersionControl struct {
	commits   []string
	head      string
	commitErr error
	headErr   error
}

func newMockVersionControl() *mockVersionControl {
	return &mockVersionControl{head: "0000000000000000000000000000000000000000"}
}

func (m *mockVersionControl) Commit(ctx context.Context, message string) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.commits = append(m.commits, message)
	m.head = fmt.Sprintf("%040d", len(m.commits))
	return nil
}

func (m *mockVersionControl) HeadRevision(ctx context.Context) (string, error) {
	if m.headErr != nil {
		return "", m.headErr
	}
	return m.head, nil
}

// mockDatapointRepository implements secondary.DatapointRepository for testing.
type mockDatapointRepository struct {
	datapoints []*secondary.DatapointRecord
	createErr  error
}

func (m *mockDatapointRepository) Create(ctx context.Context, dp *secondary.DatapointRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	dp.ID = int64(len(m.datapoints) + 1)
	m.datapoints = append(m.datapoints, dp)
	return nil
}

func (m *mockDatapointRepository) ListByExperiment(ctx context.Context, experimentID int64) ([]*secondary.DatapointRecord, error) {
	var result []*secondary.DatapointRecord
	for _, dp := range m.datapoints {
		if dp.ExperimentID == experimentID {
			result = append(result, dp)
		}
	}
	return result, nil
}

func (m *mockDatapointRepository) CountByExperiment(ctx context.Context, experimentID int64) (int, error) {
	list, _ := m.ListByExperiment(ctx, experimentID)
	return len(list), nil
}

// failingDatapoints wraps a store so its datapoint inserts fail, inside and
// outside transactions.
type failingDatapoints struct {
	*sqlite.Store
	err error
}

func (f failingDatapoints) InTx(ctx context.Context, fn func(repos secondary.Repositories) error) error {
	return f.Store.InTx(ctx, func(repos secondary.Repositories) error {
		return fn(failingRepos{Repositories: repos, err: f.err})
	})
}

type failingRepos struct {
	secondary.Repositories
	err error
}

func (f failingRepos) Datapoints() secondary.DatapointRepository {
	return &mockDatapointRepository{createErr: f.err}
}

// failingCommit wraps a store so every transaction runs fn to completion and
// then fails to commit, the way a full disk or a lost lock would.
type failingCommit struct {
	*sqlite.Store
}

func (f failingCommit) InTx(ctx context.Context, fn func(repos secondary.Repositories) error) error {
	return f.Store.InTx(ctx, func(repos secondary.Repositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		return apperr.Storage("failed to commit transaction", errInjected)
	})
}

var errInjected = errors.New("injected failure")

// ============================================================================
// Test Helpers
// ============================================================================

var testLocation = RecoveryLocation{Dir: ".science", Database: "Science.db"}

// newTestStore opens a migrated database in a temporary directory.
func newTestStore(t *testing.T) (*sqlite.Store, *sql.DB) {
	t.Helper()

	database, _, err := db.OpenAndMigrate(context.Background(), filepath.Join(t.TempDir(), "Science.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return sqlite.NewStore(database), database
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

func newTestExperimentService(store secondary.UnitOfWork, vcs secondary.VersionControl) *ExperimentServiceImpl {
	return NewExperimentService(store, NewDatapointRecorder(vcs, testLocation, nil), nil)
}
