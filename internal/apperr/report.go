package apperr

import (
	"context"
	"fmt"
	"log/slog"
)

// Entry is one record handed to an ErrorLog.
type Entry struct {
	Level   slog.Level
	Kind    Kind
	Message string
	Cause   error
}

// ErrorLog is the append-only sink generic failures are written to.
// LogError must return an error when the record was not durably written.
type ErrorLog interface {
	LogError(ctx context.Context, entry Entry) error

	// Location describes where entries go, e.g. ".science/science.log (run 1b9d…)".
	Location() string
}

// Reporter turns errors into the single message the user sees.
type Reporter struct {
	log ErrorLog
}

// NewReporter creates a Reporter. log may be nil when no project log exists
// yet (before `science init`); generic errors are then shown in full.
func NewReporter(log ErrorLog) *Reporter {
	return &Reporter{log: log}
}

// Report returns the user-facing message for err.
//
// A non-nil second return means the log write failed while handling err.
// The caller must treat that as fatal for the process.
func (r *Reporter) Report(ctx context.Context, err error) (string, error) {
	if err == nil {
		return "", nil
	}
	e := Wrap(err)

	if e.Specific() {
		// Invariant violations are normal control flow and never logged.
		if e.Kind != KindInvariant && e.Cause != nil && r.log != nil {
			if werr := r.log.LogError(ctx, Entry{Level: slog.LevelWarn, Kind: e.Kind, Message: e.Message, Cause: e.Cause}); werr != nil {
				return e.Message, logFailure(werr, err)
			}
		}
		return e.Message, nil
	}

	if r.log == nil {
		return fmt.Sprintf("Unexpected %s error: %v", e.Kind, err), nil
	}

	if werr := r.log.LogError(ctx, Entry{Level: slog.LevelError, Kind: e.Kind, Message: err.Error(), Cause: e.Cause}); werr != nil {
		return "", logFailure(werr, err)
	}
	return fmt.Sprintf("Science hit an unexpected %s error. Details were written to %s.", e.Kind, r.log.Location()), nil
}

func logFailure(werr, original error) error {
	return fmt.Errorf("failed to write error log: %w (while reporting: %v)", werr, original)
}
