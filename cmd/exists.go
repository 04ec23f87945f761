package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conneroisu/planwriter/internal/fsutil"
)

var existsQuiet bool

// existsCmd reports whether paths exist. A trailing slash asks for a directory.
var existsCmd = &cobra.Command{
	Use:   "exists <path>...",
	Short: "Report whether files or directories exist",
	Long: `Report whether each path exists. A path ending in "/" only counts as
existing when it is a directory. The command exits non-zero when any path is
missing.

Examples:
  planwriter exists out/app.flags
  planwriter exists out/ --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExists,
}

func init() {
	rootCmd.AddCommand(existsCmd)
	existsCmd.Flags().BoolVarP(&existsQuiet, "quiet", "q", false, "Only set the exit status")
}

func runExists(cmd *cobra.Command, args []string) error {
	return checkPaths(cmd, afero.NewOsFs(), args)
}

func checkPaths(cmd *cobra.Command, fs afero.Fs, paths []string) error {
	missing := 0
	for _, path := range paths {
		ok, err := fsutil.PathExists(fs, path)
		if err != nil {
			return err
		}
		if !ok {
			missing++
		}
		if !existsQuiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", path, ok)
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d paths do not exist", missing, len(paths))
	}
	return nil
}
