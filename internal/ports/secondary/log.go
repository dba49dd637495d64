package secondary

import "github.com/example/science/internal/apperr"

// LogWriter defines the append-only project log: the error sink used by the
// error reporter plus the lifecycle the wiring layer owns.
type LogWriter interface {
	apperr.ErrorLog

	// Close flushes and closes the log.
	Close() error
}
