package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/science/internal/wire"
)

// StartCmd returns the start command
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <description> <status>",
		Short: "Start an experiment and record a baseline datapoint",
		Long: `Start tracking a new experiment. The first datapoint is recorded at the
current HEAD. Pass --commit to commit the working tree first.

Only one experiment can be in progress at a time.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := wire.CurrentProject(ctx)
			if err != nil {
				return err
			}
			adapter, err := wire.ExperimentAdapterWithOutput(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Start(ctx, args[0], args[1], shouldCommit(cmd, p.Config.Git.CommitOnStart))
		},
	}
	addCommitFlags(cmd)
	return cmd
}

// RecordCmd returns the record command
func RecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <description> <status>",
		Short: "Commit and record a datapoint for the current experiment",
		Long: `Commit the staged changes with a science commit message and record the
new HEAD as a datapoint of the current experiment. Pass --no-commit to
record the current HEAD without committing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := wire.CurrentProject(ctx)
			if err != nil {
				return err
			}
			adapter, err := wire.ExperimentAdapterWithOutput(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Record(ctx, args[0], args[1], shouldCommit(cmd, p.Config.Git.CommitOnRecord))
		},
	}
	addCommitFlags(cmd)
	return cmd
}

// StopCmd returns the stop command
func StopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the current experiment",
		Long: `Stop the current experiment. Its datapoints are kept and can still be
listed with science analyze --experiment <id>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.ExperimentAdapterWithOutput(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Stop(cmd.Context())
		},
	}
}

func addCommitFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("commit", false, "commit the working tree before recording (default from config.yaml)")
	cmd.Flags().Bool("no-commit", false, "record the current HEAD without committing")
	cmd.MarkFlagsMutuallyExclusive("commit", "no-commit")
}

// shouldCommit resolves --commit/--no-commit against the configured default.
func shouldCommit(cmd *cobra.Command, configured bool) bool {
	if noCommit, _ := cmd.Flags().GetBool("no-commit"); noCommit {
		return false
	}
	if cmd.Flags().Changed("commit") {
		commit, _ := cmd.Flags().GetBool("commit")
		return commit
	}
	return configured
}
