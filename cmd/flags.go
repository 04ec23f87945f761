package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Output flags
	OutputDir string `flag:"output-dir,o" desc:"Directory generated files are written to" default:""`
	DryRun    bool   `flag:"dry-run,n" desc:"Report stale outputs without writing" default:"false"`

	// Projection flags
	InheritedOnly bool   `flag:"inherited-only" desc:"Only project values inherited from dependencies" default:"false"`
	Escape        string `flag:"escape,e" desc:"Escaping mode (none, ninja, ninja_command, shell)" default:""`

	// Reporting flags
	Verbose bool `flag:"verbose,v" desc:"List every target, not only changed ones" default:"false"`
	Quiet   bool `flag:"quiet,q" desc:"Suppress output" default:"false"`
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "output":
			addOutputFlags(cmd, flags)
		case "projection":
			addProjectionFlags(cmd, flags)
		case "report":
			addReportFlags(cmd, flags)
		}
	}

	return flags
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Directory generated files are written to")
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "Report stale outputs without writing")
}

func addProjectionFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().BoolVar(&flags.InheritedOnly, "inherited-only", false, "Only project values inherited from dependencies")
	cmd.Flags().StringVarP(&flags.Escape, "escape", "e", "", "Escaping mode (none, ninja, ninja_command, shell)")
}

func addReportFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "List every target, not only changed ones")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress output")
}

// flagKeys maps flag names onto the viper keys config.Load reads.
var flagKeys = map[string]string{
	"output-dir":     "output-dir",
	"dry-run":        "dry-run",
	"inherited-only": "inherited-only",
	"escape":         "generate.escape",
	"log-level":      "log-level",
}

// bindFlags binds the flags of the command being run. Binding happens at run
// time so that commands sharing a flag name do not overwrite each other.
func bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if !f.Changed {
			return
		}
		if err := viper.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// ValidateFlags validates flag combinations
func ValidateFlags(flags *StandardFlags) error {
	if flags.Verbose && flags.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	return nil
}
