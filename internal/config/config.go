// Package config provides configuration management for planwriter using
// Viper for loading from files, environment variables, and command-line
// flags.
//
// Configuration is read from .planwriter.yml (or the file named by
// --config / PLANWRITER_CONFIG_FILE) with PLANWRITER_ environment overrides,
// e.g. PLANWRITER_OUTPUT_DIR=gen. It controls where generated files go,
// which flag kinds are projected and how they are escaped, logging, metrics
// and the watch debounce.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/planwriter/internal/errors"
	"github.com/conneroisu/planwriter/internal/escape"
	"github.com/conneroisu/planwriter/internal/projector"
)

type Config struct {
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
}

type OutputConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Extension string `mapstructure:"extension" yaml:"extension"`
	DryRun    bool   `mapstructure:"dry_run" yaml:"dry_run"`

	// AlwaysWrite disables the write-if-changed comparison.
	AlwaysWrite bool `mapstructure:"always_write" yaml:"always_write"`
}

type GenerateConfig struct {
	Workers       int      `mapstructure:"workers" yaml:"workers"`
	Escape        string   `mapstructure:"escape" yaml:"escape"`
	Fields        []string `mapstructure:"fields" yaml:"fields"`
	InheritedOnly bool     `mapstructure:"inherited_only" yaml:"inherited_only"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`

	// Textfile, when set, receives the prometheus text exposition after
	// each run (node_exporter textfile collector format).
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Default values applied by Load when a setting is absent.
const (
	DefaultOutputDir = "out"
	DefaultExtension = ".flags"
	DefaultWorkers   = 4
	DefaultEscape    = "ninja_command"
	DefaultNamespace = "planwriter"
	DefaultDebounce  = 300 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	maxWorkers       = 64
)

// DefaultFields are the flag kinds projected when generate.fields is unset.
var DefaultFields = []string{"defines", "include_dirs", "cflags", "cflags_c", "cflags_cc", "ldflags", "libs"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle fields set via viper (workaround for viper slice handling)
	if viper.IsSet("generate.fields") && len(config.Generate.Fields) == 0 {
		config.Generate.Fields = viper.GetStringSlice("generate.fields")
	}

	// Flags bound under their own names
	if viper.IsSet("dry-run") && viper.GetBool("dry-run") {
		config.Output.DryRun = true
	}
	if viper.IsSet("inherited-only") && viper.GetBool("inherited-only") {
		config.Generate.InheritedOnly = true
	}
	if viper.IsSet("output-dir") && viper.GetString("output-dir") != "" {
		config.Output.Dir = viper.GetString("output-dir")
	}
	if viper.IsSet("log-level") && viper.GetString("log-level") != "" {
		config.Logging.Level = viper.GetString("log-level")
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid configuration")
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Output.Dir == "" {
		config.Output.Dir = DefaultOutputDir
	}
	if config.Output.Extension == "" {
		config.Output.Extension = DefaultExtension
	}
	if config.Generate.Workers == 0 {
		config.Generate.Workers = DefaultWorkers
	}
	if config.Generate.Escape == "" {
		config.Generate.Escape = DefaultEscape
	}
	if len(config.Generate.Fields) == 0 {
		config.Generate.Fields = append([]string(nil), DefaultFields...)
	}
	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = DefaultLogFormat
	}
	if config.Metrics.Namespace == "" {
		config.Metrics.Namespace = DefaultNamespace
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}
}

// validateConfig validates configuration values for correctness
func validateConfig(config *Config) error {
	if err := validateOutputConfig(&config.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := validateGenerateConfig(&config.Generate); err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if config.Watch.Debounce < 0 {
		return fmt.Errorf("watch config: negative debounce %s", config.Watch.Debounce)
	}

	return nil
}

func validateOutputConfig(config *OutputConfig) error {
	if err := validatePath(config.Dir); err != nil {
		return fmt.Errorf("invalid dir '%s': %w", config.Dir, err)
	}
	if strings.ContainsAny(config.Extension, `/\`) {
		return fmt.Errorf("extension must not contain path separators: %s", config.Extension)
	}
	return nil
}

func validateGenerateConfig(config *GenerateConfig) error {
	if config.Workers < 1 || config.Workers > maxWorkers {
		return fmt.Errorf("workers %d is not in valid range 1-%d", config.Workers, maxWorkers)
	}
	if _, err := escape.ByName(config.Escape); err != nil {
		return fmt.Errorf("escape must be one of %v: %w", escape.Names(), err)
	}
	for _, field := range config.Fields {
		if _, err := projector.Field(field); err != nil {
			return err
		}
	}
	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	switch strings.ToLower(config.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown level %q", config.Level)
	}
	switch config.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q (supported: text, json)", config.Format)
	}
	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	for _, part := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if part == ".." {
			return fmt.Errorf("path contains traversal: %s", path)
		}
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
