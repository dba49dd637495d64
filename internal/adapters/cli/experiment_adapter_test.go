package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/science/internal/ports/primary"
)

// mockExperimentService implements primary.ExperimentService for testing
type mockExperimentService struct {
	startFn   func(ctx context.Context, req primary.StartExperimentRequest) (*primary.StartExperimentResponse, error)
	recordFn  func(ctx context.Context, req primary.RecordDatapointRequest) (*primary.RecordDatapointResponse, error)
	stopFn    func(ctx context.Context) (*primary.StopExperimentResponse, error)
	currentFn func(ctx context.Context) (*primary.Experiment, error)
	analyzeFn func(ctx context.Context, req primary.AnalyzeExperimentRequest) (*primary.AnalyzeExperimentResponse, error)

	// Track calls for verification
	lastStartReq   primary.StartExperimentRequest
	lastRecordReq  primary.RecordDatapointRequest
	lastAnalyzeReq primary.AnalyzeExperimentRequest
}

func (m *mockExperimentService) StartExperiment(ctx context.Context, req primary.StartExperimentRequest) (*primary.StartExperimentResponse, error) {
	m.lastStartReq = req
	if m.startFn != nil {
		return m.startFn(ctx, req)
	}
	return &primary.StartExperimentResponse{
		Experiment: &primary.Experiment{ID: 1, DatapointCount: 1},
		Datapoint:  &primary.Datapoint{ID: 1, ExperimentID: 1, SHA: "4ab439dcf00a1b2c3d4e5f60718293a4b5c6d7e8", Description: req.Description, Status: req.Status},
	}, nil
}

func (m *mockExperimentService) RecordDatapoint(ctx context.Context, req primary.RecordDatapointRequest) (*primary.RecordDatapointResponse, error) {
	m.lastRecordReq = req
	if m.recordFn != nil {
		return m.recordFn(ctx, req)
	}
	return &primary.RecordDatapointResponse{
		Datapoint: &primary.Datapoint{ID: 2, ExperimentID: 1, SHA: "abc123", Description: req.Description, Status: req.Status},
		Committed: req.Commit,
	}, nil
}

func (m *mockExperimentService) StopExperiment(ctx context.Context) (*primary.StopExperimentResponse, error) {
	if m.stopFn != nil {
		return m.stopFn(ctx)
	}
	return &primary.StopExperimentResponse{ExperimentID: 1, DatapointCount: 2}, nil
}

func (m *mockExperimentService) CurrentExperiment(ctx context.Context) (*primary.Experiment, error) {
	if m.currentFn != nil {
		return m.currentFn(ctx)
	}
	return nil, nil
}

func (m *mockExperimentService) AnalyzeExperiment(ctx context.Context, req primary.AnalyzeExperimentRequest) (*primary.AnalyzeExperimentResponse, error) {
	m.lastAnalyzeReq = req
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, req)
	}
	return &primary.AnalyzeExperimentResponse{ExperimentID: 1, Active: true}, nil
}

func TestExperimentAdapter_Start(t *testing.T) {
	mock := &mockExperimentService{}
	var out bytes.Buffer
	adapter := NewExperimentAdapter(mock, &out, nil)

	if err := adapter.Start(context.Background(), "baseline", "failing", true); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !mock.lastStartReq.Commit || mock.lastStartReq.Description != "baseline" {
		t.Errorf("unexpected request %+v", mock.lastStartReq)
	}
	want := "✓ Started experiment 1 at 4ab439dcf00a\n  Datapoint 1: baseline [failing]\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestExperimentAdapter_StartError(t *testing.T) {
	mock := &mockExperimentService{
		startFn: func(ctx context.Context, req primary.StartExperimentRequest) (*primary.StartExperimentResponse, error) {
			return nil, errors.New("already active")
		},
	}
	var out bytes.Buffer
	adapter := NewExperimentAdapter(mock, &out, nil)

	if err := adapter.Start(context.Background(), "d", "s", false); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed on error, got %q", out.String())
	}
}

func TestExperimentAdapter_Record(t *testing.T) {
	tests := []struct {
		name   string
		commit bool
		want   string
	}{
		{"with commit", true, "✓ Committed and recorded datapoint 2 at abc123 [passing]\n"},
		{"without commit", false, "✓ Recorded datapoint 2 at abc123 [passing]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			adapter := NewExperimentAdapter(&mockExperimentService{}, &out, nil)

			if err := adapter.Record(context.Background(), "d", "passing", tt.commit); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestExperimentAdapter_Stop(t *testing.T) {
	var out bytes.Buffer
	adapter := NewExperimentAdapter(&mockExperimentService{}, &out, nil)

	if err := adapter.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if !strings.Contains(out.String(), "Stopped experiment 1 (2 datapoints kept") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestExperimentAdapter_Status(t *testing.T) {
	var out bytes.Buffer
	mock := &mockExperimentService{}
	adapter := NewExperimentAdapter(mock, &out, nil)

	if err := adapter.Status(context.Background()); err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if out.String() != "No experiment in progress\n" {
		t.Errorf("idle output = %q", out.String())
	}

	out.Reset()
	mock.currentFn = func(ctx context.Context) (*primary.Experiment, error) {
		return &primary.Experiment{ID: 4, DatapointCount: 1}, nil
	}
	if err := adapter.Status(context.Background()); err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if out.String() != "Experiment 4 in progress (1 datapoint)\n" {
		t.Errorf("active output = %q", out.String())
	}
}

func TestExperimentAdapter_AnalyzeTable(t *testing.T) {
	mock := &mockExperimentService{
		analyzeFn: func(ctx context.Context, req primary.AnalyzeExperimentRequest) (*primary.AnalyzeExperimentResponse, error) {
			return &primary.AnalyzeExperimentResponse{
				ExperimentID: 3,
				Datapoints: []*primary.Datapoint{
					{ID: 1, SHA: "aaa", Description: "baseline", Status: "failing"},
					{ID: 10, SHA: "bbbbbb", Description: "fix", Status: "passing"},
				},
			}, nil
		},
	}
	var out bytes.Buffer
	adapter := NewExperimentAdapter(mock, &out, NewPalette("never"))

	if err := adapter.Analyze(context.Background(), 3); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if mock.lastAnalyzeReq.ExperimentID != 3 {
		t.Errorf("expected experiment 3, got %d", mock.lastAnalyzeReq.ExperimentID)
	}
	want := "Experiment 3 (stopped)\n\n" +
		"ID | DESCRIPTION | SHA    | STATUS\n" +
		"1  | baseline    | aaa    | failing\n" +
		"10 | fix         | bbbbbb | passing\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestExperimentAdapter_AnalyzeEmpty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewExperimentAdapter(&mockExperimentService{}, &out, nil)

	if err := adapter.Analyze(context.Background(), 0); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if out.String() != "Experiment 1 (in progress)\n\nNo datapoints recorded\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestPalette_Status(t *testing.T) {
	palette := NewPalette("always")

	tests := []struct {
		status string
		code   string
	}{
		{"passing", "\x1b[32m"},
		{"failing", "\x1b[31m"},
		{"flaky", "\x1b[33m"},
	}
	for _, tt := range tests {
		got := palette.Status(tt.status)
		if !strings.HasPrefix(got, tt.code) || !strings.Contains(got, tt.status) {
			t.Errorf("Status(%q) = %q, want colour %q", tt.status, got, tt.code)
		}
	}

	if got := NewPalette("never").Status("passing"); got != "passing" {
		t.Errorf("never mode should not colour, got %q", got)
	}
}
