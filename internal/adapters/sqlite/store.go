package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/science/internal/db"
	"github.com/example/science/internal/ports/secondary"
)

// Store implements secondary.UnitOfWork over one SQLite connection.
type Store struct {
	db *sql.DB
}

// NewStore creates a store backed by an open, migrated database.
func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// Experiments returns a repository that runs each call on its own.
func (s *Store) Experiments() secondary.ExperimentRepository {
	return NewExperimentRepository(s.db)
}

// Datapoints returns a repository that runs each call on its own.
func (s *Store) Datapoints() secondary.DatapointRepository {
	return NewDatapointRepository(s.db)
}

// InTx runs fn with repositories bound to one transaction.
func (s *Store) InTx(ctx context.Context, fn func(repos secondary.Repositories) error) error {
	return db.RunInTx(ctx, s.db, func(ex db.Executor) error {
		return fn(txRepositories{ex: ex})
	})
}

type txRepositories struct {
	ex db.Executor
}

func (r txRepositories) Experiments() secondary.ExperimentRepository {
	return NewExperimentRepository(r.ex)
}

func (r txRepositories) Datapoints() secondary.DatapointRepository {
	return NewDatapointRepository(r.ex)
}

var _ secondary.UnitOfWork = (*Store)(nil)
