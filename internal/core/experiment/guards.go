// Package experiment contains the pure business logic for the experiment
// lifecycle. This is part of the Functional Core - no I/O, only pure functions.
//
// An experiment is either Idle (no current-experiment pointer) or Active
// (exactly one pointer row). start moves Idle to Active, record keeps Active,
// and stop moves Active back to Idle.
package experiment

import "github.com/example/science/internal/apperr"

// User-facing reasons for refused transitions.
const (
	ReasonAlreadyActive = "A science experiment is already in progress. To record a new datapoint, run `science record`."
	ReasonNoneActive    = "You need to start a science experiment first. Run `science start`."
)

// StateContext describes the current-experiment pointer as loaded by the caller.
type StateContext struct {
	HasCurrent bool
	CurrentID  int64
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an invariant error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperr.Invariant("%s", r.Reason)
}

// CanStart evaluates whether a new experiment can be started.
// Rule: only one experiment may be active at a time.
func CanStart(ctx StateContext) GuardResult {
	if ctx.HasCurrent {
		return GuardResult{Allowed: false, Reason: ReasonAlreadyActive}
	}
	return GuardResult{Allowed: true}
}

// CanRecord evaluates whether a datapoint can be recorded.
// Rule: datapoints belong to the active experiment, so one must exist.
func CanRecord(ctx StateContext) GuardResult {
	if !ctx.HasCurrent {
		return GuardResult{Allowed: false, Reason: ReasonNoneActive}
	}
	return GuardResult{Allowed: true}
}

// CanStop evaluates whether the active experiment can be stopped.
func CanStop(ctx StateContext) GuardResult {
	if !ctx.HasCurrent {
		return GuardResult{Allowed: false, Reason: ReasonNoneActive}
	}
	return GuardResult{Allowed: true}
}
