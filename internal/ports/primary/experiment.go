// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI uses to drive the application.
package primary

import "context"

// ExperimentService defines the primary port for experiment operations.
type ExperimentService interface {
	// StartExperiment creates a new experiment, makes it current and records
	// its first datapoint.
	StartExperiment(ctx context.Context, req StartExperimentRequest) (*StartExperimentResponse, error)

	// RecordDatapoint records a datapoint against the current experiment.
	RecordDatapoint(ctx context.Context, req RecordDatapointRequest) (*RecordDatapointResponse, error)

	// StopExperiment deletes the current experiment and clears the pointer.
	// Its datapoints are kept for analysis.
	StopExperiment(ctx context.Context) (*StopExperimentResponse, error)

	// CurrentExperiment returns the active experiment, or nil if none.
	CurrentExperiment(ctx context.Context) (*Experiment, error)

	// AnalyzeExperiment lists the datapoints of an experiment. A zero
	// ExperimentID selects the current experiment. Stopped experiments can
	// still be analyzed by ID.
	AnalyzeExperiment(ctx context.Context, req AnalyzeExperimentRequest) (*AnalyzeExperimentResponse, error)
}

// StartExperimentRequest contains parameters for starting an experiment.
type StartExperimentRequest struct {
	Description string
	Status      string
	Commit      bool
}

// StartExperimentResponse contains the result of starting an experiment.
type StartExperimentResponse struct {
	Experiment *Experiment
	Datapoint  *Datapoint
	Committed  bool
}

// RecordDatapointRequest contains parameters for recording a datapoint.
type RecordDatapointRequest struct {
	Description string
	Status      string
	Commit      bool
}

// RecordDatapointResponse contains the result of recording a datapoint.
type RecordDatapointResponse struct {
	Datapoint *Datapoint
	Committed bool
}

// StopExperimentResponse contains the result of stopping an experiment.
type StopExperimentResponse struct {
	ExperimentID   int64
	DatapointCount int
}

// AnalyzeExperimentRequest selects the experiment to analyze.
type AnalyzeExperimentRequest struct {
	ExperimentID int64
}

// AnalyzeExperimentResponse holds an experiment's datapoints.
type AnalyzeExperimentResponse struct {
	ExperimentID int64
	Active       bool
	Datapoints   []*Datapoint
}

// Experiment represents an experiment at the port boundary.
type Experiment struct {
	ID             int64
	DatapointCount int
}

// Datapoint represents a datapoint at the port boundary.
type Datapoint struct {
	ID           int64
	ExperimentID int64
	SHA          string
	Description  string
	Status       string
}
