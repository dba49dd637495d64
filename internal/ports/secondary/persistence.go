// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ExperimentRecord represents an experiment as stored in persistence.
type ExperimentRecord struct {
	ID int64
}

// DatapointRecord represents a datapoint as stored in persistence.
type DatapointRecord struct {
	ID           int64
	ExperimentID int64
	SHA          string
	Description  string
	Status       string
}

// ExperimentRepository defines the secondary port for experiment persistence
// and the current-experiment pointer.
type ExperimentRepository interface {
	// Create inserts a new experiment with a store-assigned ID.
	// It does not make the experiment current.
	Create(ctx context.Context) (*ExperimentRecord, error)


	// Current returns the active experiment, or nil when none is active.
	Current(ctx context.Context) (*ExperimentRecord, error)

	// MakeCurrent points the current-experiment pointer at id.
	// Fails with an invariant error if an experiment is already current.
	MakeCurrent(ctx context.Context, id int64) error

	// ClearCurrent removes the current-experiment pointer, if any.
	ClearCurrent(ctx context.Context) error

	// Delete removes an experiment. If it is the current experiment the
	// pointer is cleared in the same transaction.
	Delete(ctx context.Context, id int64) error
}

// DatapointRepository defines the secondary port for datapoint persistence.
// Datapoints are append-only.
type DatapointRepository interface {
	// Create inserts a datapoint and sets its ID.
	Create(ctx context.Context, datapoint *DatapointRecord) error

	// ListByExperiment returns an experiment's datapoints in recording order.
	ListByExperiment(ctx context.Context, experimentID int64) ([]*DatapointRecord, error)

	// CountByExperiment returns the number of datapoints for an experiment.
	CountByExperiment(ctx context.Context, experimentID int64) (int, error)
}

// Repositories groups the repositories bound to one execution context,
// either the bare connection or an open transaction.
type Repositories interface {
	Experiments() ExperimentRepository
	Datapoints() DatapointRepository
}

// UnitOfWork runs multi-statement changes atomically.
type UnitOfWork interface {
	Repositories

	// InTx runs fn with repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(repos Repositories) error) error
}
