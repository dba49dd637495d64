package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/science/internal/version"
	"github.com/example/science/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the experiment in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.ExperimentAdapterWithOutput(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Status(cmd.Context())
		},
	}
}

// AnalyzeCmd returns the analyze command
func AnalyzeCmd() *cobra.Command {
	var experimentID int64

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "List the datapoints of an experiment",
		Long: `List the datapoints of the current experiment, or of a stopped one when
--experiment is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.ExperimentAdapterWithOutput(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Analyze(cmd.Context(), experimentID)
		},
	}
	cmd.Flags().Int64Var(&experimentID, "experiment", 0, "experiment ID (default: the current experiment)")
	return cmd
}

// VersionCmd returns the version command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the science version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
