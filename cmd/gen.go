package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var genFlags *StandardFlags

// genCmd renders every requested target and persists it with write-if-changed.
var genCmd = &cobra.Command{
	Use:     "gen <description> [targets...]",
	Aliases: []string{"generate"},
	Short:   "Generate flag files for the targets of a build description",
	Long: `Generate one flag file per target of a build description. Each file holds
the target's configuration chain projected per flag kind. A file is only
rewritten when its content changed, so unchanged outputs keep their
modification time.

Examples:
  planwriter gen build.yml                  # Every target
  planwriter gen build.yml app lib          # Only app and lib
  planwriter gen build.yml --dry-run        # Report what would change
  planwriter gen build.yml --escape shell   # Shell-quote every value`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateFlags(genFlags); err != nil {
			return err
		}
		return bindFlags(cmd)
	},
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genFlags = AddStandardFlags(genCmd, "output", "projection", "report")
}

func runGen(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(afero.NewOsFs())
	if err != nil {
		return err
	}

	gen, err := rt.generator(args[0])
	if err != nil {
		return err
	}

	summary, runErr := gen.Run(cmd.Context(), args[1:])
	if summary != nil && !genFlags.Quiet {
		if err := writeReport(cmd.OutOrStdout(), summary, rt.cfg.Output.DryRun, genFlags.Verbose); err != nil {
			return err
		}
	}
	if err := rt.flushMetrics(); err != nil {
		rt.logger.Warn(cmd.Context(), err, "Metrics export failed")
	}
	if runErr != nil {
		return fmt.Errorf("generation failed: %w", runErr)
	}
	return nil
}
