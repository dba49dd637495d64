package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/science/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a science project in the current directory",
		Long: `Create .science/ in the current directory with the experiment database,
the project log and a default config.yaml.

Running init again is safe: existing files are reused and only missing
schema migrations are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := wire.Initialize(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.DirCreated {
				fmt.Fprintf(out, "✓ Initialized science project in %s\n", res.Dir)
			} else {
				fmt.Fprintf(out, "✓ Reinitialized existing science project in %s\n", res.Dir)
			}
			if res.ConfigWritten {
				fmt.Fprintln(out, "  Wrote default config.yaml")
			}
			if res.MigrationsApplied > 0 {
				fmt.Fprintf(out, "  Applied %d schema migration(s)\n", res.MigrationsApplied)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  science start \"Baseline\" failing")
			return nil
		},
	}
}
