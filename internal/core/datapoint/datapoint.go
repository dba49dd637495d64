// Package datapoint contains the pure rules for recording a datapoint: input
// validation, the commit message format and the manual recovery text shown
// when git and the store disagree.
package datapoint

import (
	"fmt"
	"strings"

	"github.com/example/science/internal/apperr"
)

// SHAPlaceholder stands in for a revision that could not be looked up.
const SHAPlaceholder = "<insert SHA here>"

// Input is what the user supplies for one observation.
type Input struct {
	ExperimentID int64
	Description  string
	Status       string
}

// Validate rejects an observation that cannot be recorded. It runs before any
// side effect so a refused input leaves git and the store untouched.
func Validate(in Input) error {
	if strings.TrimSpace(in.Description) == "" {
		return apperr.Invariant("A datapoint needs a description.")
	}
	if strings.TrimSpace(in.Status) == "" {
		return apperr.Invariant("A datapoint needs a status, e.g. passing or failing.")
	}
	return nil
}

// CommitMessage formats the message of a science commit.
func CommitMessage(description, status string) string {
	return fmt.Sprintf("(science commit)\n\ndescription:\n\n%s\n\nstatus:\n\n%s", description, status)
}

// InsertStatement renders the INSERT a user can paste into sqlite3 to
// persist a datapoint by hand.
func InsertStatement(in Input, sha string) string {
	return fmt.Sprintf(
		"INSERT INTO datapoints (experiment_id, sha, description, status) VALUES (%d, %s, %s, %s);",
		in.ExperimentID, QuoteSQL(sha), QuoteSQL(in.Description), QuoteSQL(in.Status),
	)
}

// QuoteSQL renders s as a SQLite string literal.
func QuoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// InsertFailedRecovery explains a commit whose datapoint could not be stored.
// The revision is known, so the INSERT is complete.
func InsertFailedRecovery(dir, dbName string, in Input, sha string) string {
	var b strings.Builder
	b.WriteString("Science was able to commit the changes, but the datapoint was not persisted to the ")
	b.WriteString(dir)
	b.WriteString(" directory. To fix the issue, try running\n\n")
	fmt.Fprintf(&b, "(cd %s && sqlite3 %s)\n", dir, dbName)
	b.WriteString(InsertStatement(in, sha))
	return b.String()
}

// LookupFailedRecovery explains a commit whose revision could not be looked
// up. The user has to fetch the SHA first.
func LookupFailedRecovery(dir, dbName string, in Input) string {
	var b strings.Builder
	b.WriteString("Science was able to commit the changes, but could not look up the SHA of the resulting commit, so the datapoint was not persisted to the ")
	b.WriteString(dir)
	b.WriteString(" directory. To fix the issue, try running\n\n")
	b.WriteString("git rev-parse HEAD # Gets the SHA of the commit\n")
	fmt.Fprintf(&b, "(cd %s && sqlite3 %s)\n", dir, dbName)
	b.WriteString(InsertStatement(in, SHAPlaceholder))
	return b.String()
}

// StartAbortedRecovery explains a start whose commit landed but whose
// experiment could not be stored.
func StartAbortedRecovery() string {
	return "Science created a commit, but the experiment was not started, so the commit is not linked to any experiment. " +
		"The working tree is committed; run `science start <description> <status> --no-commit` to begin the experiment at this revision without committing again."
}
