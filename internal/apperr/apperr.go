// Package apperr defines the closed set of failure kinds used across science.
//
// Every error that reaches the CLI edge is, or is wrapped into, an *Error.
// An *Error is either Specific (its Message is written for the user and shown
// verbatim) or Generic (its Message is internal detail that goes to the log,
// and the user is pointed at the log instead).
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the layer that produced it.
type Kind int

const (
	// KindInternal is an unexpected failure with no better classification.
	KindInternal Kind = iota
	// KindStorage covers SQLite I/O, schema and constraint failures.
	KindStorage
	// KindVersionControl covers git subprocess and output-decoding failures.
	KindVersionControl
	// KindInvariant is a business-rule violation such as "already active".
	KindInvariant
	// KindDivergent means git moved but the local store did not.
	KindDivergent
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindVersionControl:
		return "version-control"
	case KindInvariant:
		return "invariant"
	case KindDivergent:
		return "divergent"
	default:
		return "internal"
	}
}

// Error is the tagged failure value.
type Error struct {
	Kind     Kind
	Message  string
	Cause    error
	specific bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Specific reports whether Message is meant to be shown to the user as-is.
func (e *Error) Specific() bool {
	return e.specific
}

// Storage wraps a store failure as a generic error.
func Storage(msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Cause: cause}
}

// VersionControl wraps a git failure as a generic error.
func VersionControl(msg string, cause error) *Error {
	return &Error{Kind: KindVersionControl, Message: msg, Cause: cause}
}

// Invariant builds a user-facing business-rule violation.
func Invariant(format string, args ...any) *Error {
	return &Error{Kind: KindInvariant, Message: fmt.Sprintf(format, args...), specific: true}
}

// Divergent builds a user-facing divergent-state failure. msg must carry the
// manual recovery instructions, cause is logged.
func Divergent(msg string, cause error) *Error {
	return &Error{Kind: KindDivergent, Message: msg, Cause: cause, specific: true}
}

// Specific builds a user-facing error of any kind with an optional cause.
func Specific(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause, specific: true}
}

// Wrap classifies an arbitrary error. An *Error anywhere in the chain is
// returned unchanged; anything else becomes a generic KindInternal error.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Cause: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsInvariant reports whether err is a business-rule violation.
func IsInvariant(err error) bool {
	return err != nil && KindOf(err) == KindInvariant
}

// IsDivergent reports whether err means git and the store disagree.
func IsDivergent(err error) bool {
	return err != nil && KindOf(err) == KindDivergent
}
