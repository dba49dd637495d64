// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/science/internal/ports/primary"
)

// ExperimentAdapter is a thin adapter that translates CLI operations to ExperimentService calls.
type ExperimentAdapter struct {
	service primary.ExperimentService
	out     io.Writer
	palette *Palette
}

// NewExperimentAdapter creates a new ExperimentAdapter with the given service.
// palette may be nil for uncoloured output.
func NewExperimentAdapter(service primary.ExperimentService, out io.Writer, palette *Palette) *ExperimentAdapter {
	if palette == nil {
		palette = NewPalette("never")
	}
	return &ExperimentAdapter{
		service: service,
		out:     out,
		palette: palette,
	}
}

// Start starts an experiment and prints its baseline datapoint.
func (a *ExperimentAdapter) Start(ctx context.Context, description, status string, commit bool) error {
	resp, err := a.service.StartExperiment(ctx, primary.StartExperimentRequest{
		Description: description,
		Status:      status,
		Commit:      commit,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Started experiment %d at %s\n", resp.Experiment.ID, shortSHA(resp.Datapoint.SHA))
	fmt.Fprintf(a.out, "  Datapoint %d: %s [%s]\n", resp.Datapoint.ID, resp.Datapoint.Description, a.palette.Status(resp.Datapoint.Status))
	return nil
}

// Record records a datapoint against the current experiment.
func (a *ExperimentAdapter) Record(ctx context.Context, description, status string, commit bool) error {
	resp, err := a.service.RecordDatapoint(ctx, primary.RecordDatapointRequest{
		Description: description,
		Status:      status,
		Commit:      commit,
	})
	if err != nil {
		return err
	}

	verb := "Recorded"
	if resp.Committed {
		verb = "Committed and recorded"
	}
	fmt.Fprintf(a.out, "✓ %s datapoint %d at %s [%s]\n",
		verb, resp.Datapoint.ID, shortSHA(resp.Datapoint.SHA), a.palette.Status(resp.Datapoint.Status))
	return nil
}

// Stop stops the current experiment.
func (a *ExperimentAdapter) Stop(ctx context.Context) error {
	resp, err := a.service.StopExperiment(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Stopped experiment %d (%s kept for `science analyze --experiment %d`)\n",
		resp.ExperimentID, plural(resp.DatapointCount, "datapoint"), resp.ExperimentID)
	return nil
}

// Status prints the current experiment, if any.
func (a *ExperimentAdapter) Status(ctx context.Context) error {
	exp, err := a.service.CurrentExperiment(ctx)
	if err != nil {
		return err
	}

	if exp == nil {
		fmt.Fprintln(a.out, "No experiment in progress")
		return nil
	}
	fmt.Fprintf(a.out, "Experiment %d in progress (%s)\n", exp.ID, plural(exp.DatapointCount, "datapoint"))
	return nil
}

// Analyze prints the datapoints of an experiment as a table.
func (a *ExperimentAdapter) Analyze(ctx context.Context, experimentID int64) error {
	resp, err := a.service.AnalyzeExperiment(ctx, primary.AnalyzeExperimentRequest{ExperimentID: experimentID})
	if err != nil {
		return err
	}

	state := "stopped"
	if resp.Active {
		state = "in progress"
	}
	fmt.Fprintf(a.out, "Experiment %d (%s)\n\n", resp.ExperimentID, state)

	if len(resp.Datapoints) == 0 {
		fmt.Fprintln(a.out, "No datapoints recorded")
		return nil
	}
	fmt.Fprintln(a.out, a.formatDatapoints(resp.Datapoints))
	return nil
}

// formatDatapoints renders datapoints as " | "-separated columns padded to
// the widest cell. Colour is applied after padding so escape codes do not
// count towards the width.
func (a *ExperimentAdapter) formatDatapoints(datapoints []*primary.Datapoint) string {
	rows := [][]string{{"ID", "DESCRIPTION", "SHA", "STATUS"}}
	for _, dp := range datapoints {
		rows = append(rows, []string{strconv.FormatInt(dp.ID, 10), dp.Description, dp.SHA, dp.Status})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				cell = cell + strings.Repeat(" ", widths[i]-len(cell))
			}
			if n > 0 && i == len(row)-1 {
				cell = a.palette.Status(cell)
			}
			cells[i] = cell
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\n")
}

// Palette colours status tags.
type Palette struct {
	passing *color.Color
	failing *color.Color
	other   *color.Color
}

// NewPalette builds a palette for a color mode: "always", "never" or
// "auto" (colour when writing to a terminal).
func NewPalette(mode string) *Palette {
	p := &Palette{
		passing: color.New(color.FgGreen),
		failing: color.New(color.FgRed),
		other:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.passing, p.failing, p.other} {
		switch mode {
		case "always":
			c.EnableColor()
		case "never":
			c.DisableColor()
		}
	}
	return p
}

// Status colours a status tag: passing green, failing red, anything else yellow.
func (p *Palette) Status(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "passing", "pass", "ok":
		return p.passing.Sprint(status)
	case "failing", "fail":
		return p.failing.Sprint(status)
	default:
		return p.other.Sprint(status)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
