package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/wire"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitFatal   = 2
)

// ReportError prints the user-facing message for err to w and returns the
// process exit code.
//
// Errors that are not tagged come from argument parsing and are shown as-is
// with a usage hint. If the error log cannot be written while reporting,
// both errors are printed and the exit code is ExitFatal.
func ReportError(ctx context.Context, err error, w io.Writer) int {
	if err == nil {
		return ExitOK
	}

	var tagged *apperr.Error
	if !errors.As(err, &tagged) {
		fmt.Fprintf(w, "%s %v\nRun 'science --help' for usage.\n", color.RedString("Error:"), err)
		return ExitFailure
	}

	msg, fatal := wire.Reporter().Report(ctx, err)
	if fatal != nil {
		fmt.Fprintf(w, "%s %v\n", color.RedString("Fatal:"), fatal)
		if msg != "" {
			fmt.Fprintln(w, msg)
		}
		return ExitFatal
	}

	fmt.Fprintln(w, msg)
	return ExitFailure
}
