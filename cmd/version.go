package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conneroisu/planwriter/internal/version"
)

var (
	versionFormat string
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for planwriter including the semantic
version, git commit, build time, Go version and target platform.

Examples:
  planwriter version               # Version and build details
  planwriter version --short       # Version only
  planwriter version --format json # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch versionFormat {
	case "json":
		return outputVersionJSON(out)
	case "text":
		if versionShort {
			fmt.Fprintln(out, version.GetShortVersion())
			return nil
		}
		return outputVersionDefault(out)
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", versionFormat)
	}
}

func outputVersionDefault(out io.Writer) error {
	info := version.GetBuildInfo()

	fmt.Fprintf(out, "planwriter %s", info.Version)
	if info.GitCommit != "unknown" && len(info.GitCommit) >= 7 {
		fmt.Fprintf(out, " (%s)", info.GitCommit[:7])
	}
	if version.IsDirty() {
		fmt.Fprint(out, " (dirty)")
	}
	fmt.Fprintln(out)

	if !info.BuildTime.IsZero() {
		fmt.Fprintf(out, "Built: %s\n", info.BuildTime.Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
	return nil
}

func outputVersionJSON(out io.Writer) error {
	info := version.GetBuildInfo()

	jsonInfo := map[string]interface{}{
		"version":    info.Version,
		"git_commit": info.GitCommit,
		"build_time": info.BuildTime,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
		"is_dirty":   version.IsDirty(),
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonInfo)
}
