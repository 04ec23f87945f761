package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkFlags *StandardFlags

// checkCmd is a dry run that fails when any output is stale.
var checkCmd = &cobra.Command{
	Use:   "check <description> [targets...]",
	Short: "Fail when any generated flag file is out of date",
	Long: `Render every requested target and compare it with the file on disk
without writing anything. The command exits non-zero when at least one output
is missing or differs, which makes it suitable for CI.

Examples:
  planwriter check build.yml
  planwriter check build.yml app --verbose`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateFlags(checkFlags); err != nil {
			return err
		}
		return bindFlags(cmd)
	},
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkFlags = AddStandardFlags(checkCmd, "projection", "report")
	checkCmd.Flags().StringP("output-dir", "o", "", "Directory generated files are written to")
}

func runCheck(cmd *cobra.Command, args []string) error {
	viper.Set("dry-run", true)
	defer viper.Set("dry-run", false)

	rt, err := newRuntime(afero.NewOsFs())
	if err != nil {
		return err
	}

	gen, err := rt.generator(args[0])
	if err != nil {
		return err
	}

	summary, runErr := gen.Run(cmd.Context(), args[1:])
	if runErr != nil {
		return fmt.Errorf("check failed: %w", runErr)
	}
	if !checkFlags.Quiet {
		if err := writeReport(cmd.OutOrStdout(), summary, true, checkFlags.Verbose); err != nil {
			return err
		}
	}
	if summary.Stale > 0 {
		return fmt.Errorf("%d of %d outputs are stale", summary.Stale, len(summary.Results))
	}
	return nil
}
