package app

import (
	"context"
	"log/slog"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/core/datapoint"
	"github.com/example/science/internal/ports/secondary"
)

// RecoveryLocation names the project directory and database file as the user
// should type them in manual recovery commands.
type RecoveryLocation struct {
	Dir      string
	Database string
}

// DatapointRecorder couples a git commit with the datapoint that records it.
//
// The commit cannot be rolled back, so every failure is classified by the
// step that failed: before the commit nothing needs reconciling, after it
// the user gets the exact commands that bring the store in line with git.
type DatapointRecorder struct {
	vcs      secondary.VersionControl
	location RecoveryLocation
	logger   *slog.Logger
}

// NewDatapointRecorder creates a recorder. logger may be nil.
func NewDatapointRecorder(vcs secondary.VersionControl, location RecoveryLocation, logger *slog.Logger) *DatapointRecorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DatapointRecorder{vcs: vcs, location: location, logger: logger}
}

// RecordResult describes a stored datapoint.
type RecordResult struct {
	Datapoint *secondary.DatapointRecord
	Committed bool
}

// Record optionally commits, looks up HEAD and inserts the datapoint via
// repo. repo is usually bound to the caller's transaction. A divergent error
// means git has a commit the store does not know about.
func (r *DatapointRecorder) Record(ctx context.Context, repo secondary.DatapointRepository, in datapoint.Input, shouldCommit bool) (*RecordResult, error) {
	if err := datapoint.Validate(in); err != nil {
		return nil, err
	}

	if shouldCommit {
		if err := r.vcs.Commit(ctx, datapoint.CommitMessage(in.Description, in.Status)); err != nil {
			return nil, err
		}
		r.logger.InfoContext(ctx, "created science commit", "experiment", in.ExperimentID)
	}

	sha, err := r.vcs.HeadRevision(ctx)
	if err != nil {
		if shouldCommit {
			return nil, apperr.Divergent(datapoint.LookupFailedRecovery(r.location.Dir, r.location.Database, in), err)
		}
		return nil, err
	}

	record := &secondary.DatapointRecord{
		ExperimentID: in.ExperimentID,
		SHA:          sha,
		Description:  in.Description,
		Status:       in.Status,
	}
	if err := repo.Create(ctx, record); err != nil {
		if shouldCommit {
			return nil, apperr.Divergent(datapoint.InsertFailedRecovery(r.location.Dir, r.location.Database, in, sha), err)
		}
		return nil, err
	}

	r.logger.InfoContext(ctx, "recorded datapoint",
		"experiment", in.ExperimentID, "datapoint", record.ID, "sha", sha, "status", in.Status)

	return &RecordResult{Datapoint: record, Committed: shouldCommit}, nil
}
