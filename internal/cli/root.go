package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/science/internal/version"
)

// RootCmd returns the science root command with every verb attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "science",
		Short:   "science - track experiments as git-linked datapoints",
		Version: version.String(),
		Long: `science tracks experiments: spans of iterative work recorded as an ordered
list of datapoints, each linked to the git commit it was observed at.

Data lives in .science/ next to your working tree.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(StartCmd())
	rootCmd.AddCommand(RecordCmd())
	rootCmd.AddCommand(StopCmd())
	rootCmd.AddCommand(AnalyzeCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}
