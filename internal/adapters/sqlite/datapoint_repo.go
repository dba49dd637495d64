package sqlite

import (
	"context"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/db"
	"github.com/example/science/internal/ports/secondary"
)

// DatapointRepository implements secondary.DatapointRepository with SQLite.
type DatapointRepository struct {
	ex db.Executor
}

// NewDatapointRepository creates a new SQLite datapoint repository.
func NewDatapointRepository(ex db.Executor) *DatapointRepository {
	return &DatapointRepository{ex: ex}
}

// Create inserts a datapoint and sets its ID.
func (r *DatapointRepository) Create(ctx context.Context, dp *secondary.DatapointRecord) error {
	res, err := db.ExecPrepared(ctx, r.ex,
		"INSERT INTO datapoints (experiment_id, sha, description, status) VALUES (?, ?, ?, ?)",
		dp.ExperimentID, dp.SHA, dp.Description, dp.Status,
	)
	if err != nil {
		return apperr.Storage("failed to create datapoint", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Storage("failed to read datapoint id", err)
	}
	dp.ID = id
	return nil
}

// ListByExperiment returns an experiment's datapoints ordered by ID.
func (r *DatapointRepository) ListByExperiment(ctx context.Context, experimentID int64) ([]*secondary.DatapointRecord, error) {
	rows, err := r.ex.QueryContext(ctx,
		"SELECT id, experiment_id, sha, description, status FROM datapoints WHERE experiment_id = ? ORDER BY id",
		experimentID,
	)
	if err != nil {
		return nil, apperr.Storage("failed to list datapoints", err)
	}
	defer rows.Close()

	var datapoints []*secondary.DatapointRecord
	for rows.Next() {
		dp := &secondary.DatapointRecord{}
		if err := rows.Scan(&dp.ID, &dp.ExperimentID, &dp.SHA, &dp.Description, &dp.Status); err != nil {
			return nil, apperr.Storage("failed to scan datapoint", err)
		}
		datapoints = append(datapoints, dp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("failed to list datapoints", err)
	}

	return datapoints, nil
}

// CountByExperiment returns how many datapoints an experiment has.
func (r *DatapointRepository) CountByExperiment(ctx context.Context, experimentID int64) (int, error) {
	var n int
	err := r.ex.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM datapoints WHERE experiment_id = ?", experimentID,
	).Scan(&n)
	if err != nil {
		return 0, apperr.Storage("failed to count datapoints", err)
	}
	return n, nil
}

var _ secondary.DatapointRepository = (*DatapointRepository)(nil)
