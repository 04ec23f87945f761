// Package cmd provides the command-line interface for planwriter.
//
// Configuration System:
//
//	The CLI reads configuration from several sources, highest priority first:
//	1. Command-line flags (--config, --output-dir, --dry-run, ...)
//	2. PLANWRITER_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PLANWRITER_OUTPUT_DIR, ...)
//	4. Configuration files (.planwriter.yml)
//
// Environment Variables:
//
//	PLANWRITER_CONFIG_FILE: Path to custom configuration file
//	PLANWRITER_OUTPUT_DIR: Directory generated files are written to
//	PLANWRITER_GENERATE_ESCAPE: Escaping mode (none, ninja, ninja_command, shell)
//	And more following the PLANWRITER_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planwriter",
	Short: "Generate build-plan flag files without touching unchanged outputs",
	Long: `planwriter projects the configuration chain of every target in a build
description into per-target flag files, and only rewrites a file when its
content actually changed. Unchanged outputs keep their modification time, so
incremental build tools downstream never rebuild needlessly.

Quick Start:
  planwriter gen build.yml              Generate flag files for every target
  planwriter gen build.yml app --dry-run
                                        Report which files would change
  planwriter check build.yml            Fail when any output is stale
  planwriter watch build.yml            Regenerate whenever build.yml changes
  planwriter exists out/ out/app.flags  Query paths`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .planwriter.yml, can also use PLANWRITER_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag
//  2. PLANWRITER_CONFIG_FILE environment variable
//  3. .planwriter.yml in the current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PLANWRITER_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".planwriter")
	}

	// PLANWRITER_OUTPUT_DIR, PLANWRITER_GENERATE_WORKERS, ...
	viper.SetEnvPrefix("PLANWRITER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
