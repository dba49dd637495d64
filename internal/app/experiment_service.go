package app

import (
	"context"
	"log/slog"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/core/datapoint"
	"github.com/example/science/internal/core/experiment"
	"github.com/example/science/internal/ports/primary"
	"github.com/example/science/internal/ports/secondary"
)

// ExperimentServiceImpl implements the ExperimentService interface.
type ExperimentServiceImpl struct {
	store    secondary.UnitOfWork
	recorder *DatapointRecorder
	logger   *slog.Logger
}

// NewExperimentService creates a new ExperimentService with injected dependencies.
func NewExperimentService(store secondary.UnitOfWork, recorder *DatapointRecorder, logger *slog.Logger) *ExperimentServiceImpl {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExperimentServiceImpl{
		store:    store,
		recorder: recorder,
		logger:   logger,
	}
}

// StartExperiment creates an experiment, makes it current and records the
// baseline datapoint, all in one transaction.
func (s *ExperimentServiceImpl) StartExperiment(ctx context.Context, req primary.StartExperimentRequest) (*primary.StartExperimentResponse, error) {
	if err := datapoint.Validate(datapoint.Input{Description: req.Description, Status: req.Status}); err != nil {
		return nil, err
	}

	var (
		exp    *secondary.ExperimentRecord
		result *RecordResult
	)
	err := s.store.InTx(ctx, func(repos secondary.Repositories) error {
		current, err := repos.Experiments().Current(ctx)
		if err != nil {
			return err
		}
		if err := experiment.CanStart(stateOf(current)).Error(); err != nil {
			return err
		}

		exp, err = repos.Experiments().Create(ctx)
		if err != nil {
			return err
		}
		if err := repos.Experiments().MakeCurrent(ctx, exp.ID); err != nil {
			return err
		}

		result, err = s.recorder.Record(ctx, repos.Datapoints(), datapoint.Input{
			ExperimentID: exp.ID,
			Description:  req.Description,
			Status:       req.Status,
		}, req.Commit)
		return err
	})
	if err != nil {
		// The experiment rolled back with everything else, so recovery
		// instructions that name its id would be wrong.
		if apperr.IsDivergent(err) || (result != nil && result.Committed) {
			return nil, apperr.Divergent(datapoint.StartAbortedRecovery(), err)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "started experiment", "experiment", exp.ID, "committed", result.Committed)

	return &primary.StartExperimentResponse{
		Experiment: &primary.Experiment{ID: exp.ID, DatapointCount: 1},
		Datapoint:  recordToDatapoint(result.Datapoint),
		Committed:  result.Committed,
	}, nil
}

// RecordDatapoint records a datapoint against the current experiment.
func (s *ExperimentServiceImpl) RecordDatapoint(ctx context.Context, req primary.RecordDatapointRequest) (*primary.RecordDatapointResponse, error) {
	var (
		in     datapoint.Input
		result *RecordResult
	)
	err := s.store.InTx(ctx, func(repos secondary.Repositories) error {
		current, err := repos.Experiments().Current(ctx)
		if err != nil {
			return err
		}
		if err := experiment.CanRecord(stateOf(current)).Error(); err != nil {
			return err
		}

		in = datapoint.Input{ExperimentID: current.ID, Description: req.Description, Status: req.Status}
		result, err = s.recorder.Record(ctx, repos.Datapoints(), in, req.Commit)
		return err
	})
	if err != nil {
		// The insert succeeded but the transaction did not commit.
		if result != nil && result.Committed && !apperr.IsDivergent(err) {
			return nil, apperr.Divergent(
				datapoint.InsertFailedRecovery(s.recorder.location.Dir, s.recorder.location.Database, in, result.Datapoint.SHA), err)
		}
		return nil, err
	}

	return &primary.RecordDatapointResponse{
		Datapoint: recordToDatapoint(result.Datapoint),
		Committed: result.Committed,
	}, nil
}

// StopExperiment deletes the current experiment and clears the pointer.
func (s *ExperimentServiceImpl) StopExperiment(ctx context.Context) (*primary.StopExperimentResponse, error) {
	resp := &primary.StopExperimentResponse{}
	err := s.store.InTx(ctx, func(repos secondary.Repositories) error {
		current, err := repos.Experiments().Current(ctx)
		if err != nil {
			return err
		}
		if err := experiment.CanStop(stateOf(current)).Error(); err != nil {
			return err
		}

		count, err := repos.Datapoints().CountByExperiment(ctx, current.ID)
		if err != nil {
			return err
		}
		if err := repos.Experiments().Delete(ctx, current.ID); err != nil {
			return err
		}

		resp.ExperimentID = current.ID
		resp.DatapointCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stopped experiment", "experiment", resp.ExperimentID, "datapoints", resp.DatapointCount)
	return resp, nil
}

// CurrentExperiment returns the active experiment, or nil if idle.
func (s *ExperimentServiceImpl) CurrentExperiment(ctx context.Context) (*primary.Experiment, error) {
	current, err := s.store.Experiments().Current(ctx)
	if err != nil || current == nil {
		return nil, err
	}

	count, err := s.store.Datapoints().CountByExperiment(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	return &primary.Experiment{ID: current.ID, DatapointCount: count}, nil
}

// AnalyzeExperiment lists the datapoints of the selected experiment.
func (s *ExperimentServiceImpl) AnalyzeExperiment(ctx context.Context, req primary.AnalyzeExperimentRequest) (*primary.AnalyzeExperimentResponse, error) {
	current, err := s.store.Experiments().Current(ctx)
	if err != nil {
		return nil, err
	}

	id := req.ExperimentID
	if id == 0 {
		if current == nil {
			return nil, apperr.Invariant("No science experiment is in progress. Pass --experiment to analyze a stopped one.")
		}
		id = current.ID
	}
	active := current != nil && current.ID == id

	records, err := s.store.Datapoints().ListByExperiment(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && !active {
		return nil, apperr.Invariant("No datapoints were recorded for experiment %d.", id)
	}

	datapoints := make([]*primary.Datapoint, 0, len(records))
	for _, r := range records {
		datapoints = append(datapoints, recordToDatapoint(r))
	}

	return &primary.AnalyzeExperimentResponse{
		ExperimentID: id,
		Active:       active,
		Datapoints:   datapoints,
	}, nil
}

func stateOf(current *secondary.ExperimentRecord) experiment.StateContext {
	if current == nil {
		return experiment.StateContext{}
	}
	return experiment.StateContext{HasCurrent: true, CurrentID: current.ID}
}

func recordToDatapoint(r *secondary.DatapointRecord) *primary.Datapoint {
	return &primary.Datapoint{
		ID:           r.ID,
		ExperimentID: r.ExperimentID,
		SHA:          r.SHA,
		Description:  r.Description,
		Status:       r.Status,
	}
}

var _ primary.ExperimentService = (*ExperimentServiceImpl)(nil)
