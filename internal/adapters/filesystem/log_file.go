package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/ports/secondary"
)

// LogFile is the append-only project log. Every record carries the run id
// of the invocation that wrote it, so a user-facing pointer can name the
// exact lines to look at.
type LogFile struct {
	display string
	runID   string
	file    *os.File
	handler slog.Handler
}

// OpenLogFile opens (creating if needed) the log at path for appending.
// display is how the path is shown to the user, e.g. ".science/science.log".
func OpenLogFile(path, display string, level slog.Level) (*LogFile, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", path, err)
	}

	runID := uuid.NewString()
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}).
		WithAttrs([]slog.Attr{slog.String("run", runID)})

	if display == "" {
		display = filepath.Base(path)
	}
	return &LogFile{display: display, runID: runID, file: f, handler: handler}, nil
}

// Logger returns a logger that writes to the file.
func (l *LogFile) Logger() *slog.Logger {
	return slog.New(l.handler)
}

// LogError writes entry and reports whether the write reached the file.
// The handler is called directly because slog.Logger drops handler errors.
func (l *LogFile) LogError(ctx context.Context, entry apperr.Entry) error {
	r := slog.NewRecord(time.Now(), entry.Level, entry.Message, 0)
	r.AddAttrs(slog.String("kind", entry.Kind.String()))
	if entry.Cause != nil {
		r.AddAttrs(slog.String("cause", entry.Cause.Error()))
	}
	if !l.handler.Enabled(ctx, entry.Level) {
		return nil
	}
	return l.handler.Handle(ctx, r)
}

// Location names the log and the run for the user.
func (l *LogFile) Location() string {
	return fmt.Sprintf("%s (run %s)", l.display, l.runID)
}

// Close closes the file.
func (l *LogFile) Close() error {
	return l.file.Close()
}

var _ secondary.LogWriter = (*LogFile)(nil)
