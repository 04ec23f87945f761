package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:  "defaults",
			setup: func() {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
				assert.Equal(t, DefaultExtension, cfg.Output.Extension)
				assert.Equal(t, DefaultWorkers, cfg.Generate.Workers)
				assert.Equal(t, DefaultEscape, cfg.Generate.Escape)
				assert.Equal(t, DefaultFields, cfg.Generate.Fields)
				assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.False(t, cfg.Output.DryRun)
			},
		},
		{
			name: "custom values",
			setup: func() {
				viper.Set("output.dir", "gen")
				viper.Set("output.extension", ".args")
				viper.Set("generate.workers", 8)
				viper.Set("generate.escape", "shell")
				viper.Set("generate.fields", []string{"defines", "libs"})
				viper.Set("watch.debounce", "1s")
				viper.Set("metrics.enabled", true)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "gen", cfg.Output.Dir)
				assert.Equal(t, ".args", cfg.Output.Extension)
				assert.Equal(t, 8, cfg.Generate.Workers)
				assert.Equal(t, "shell", cfg.Generate.Escape)
				assert.Equal(t, []string{"defines", "libs"}, cfg.Generate.Fields)
				assert.Equal(t, time.Second, cfg.Watch.Debounce)
				assert.True(t, cfg.Metrics.Enabled)
				assert.Equal(t, DefaultNamespace, cfg.Metrics.Namespace)
			},
		},
		{
			name: "flag overrides",
			setup: func() {
				viper.Set("output.dir", "gen")
				viper.Set("output-dir", "flagdir")
				viper.Set("dry-run", true)
				viper.Set("inherited-only", true)
				viper.Set("log-level", "debug")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "flagdir", cfg.Output.Dir)
				assert.True(t, cfg.Output.DryRun)
				assert.True(t, cfg.Generate.InheritedOnly)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:        "unknown escape",
			setup:       func() { viper.Set("generate.escape", "xml") },
			expectError: true,
		},
		{
			name:        "unknown field",
			setup:       func() { viper.Set("generate.fields", []string{"sources"}) },
			expectError: true,
		},
		{
			name:        "too many workers",
			setup:       func() { viper.Set("generate.workers", 1000) },
			expectError: true,
		},
		{
			name:        "traversal in output dir",
			setup:       func() { viper.Set("output.dir", "../elsewhere") },
			expectError: true,
		},
		{
			name:        "separator in extension",
			setup:       func() { viper.Set("output.extension", "/x") },
			expectError: true,
		},
		{
			name:        "bad log format",
			setup:       func() { viper.Set("logging.format", "xml") },
			expectError: true,
		},
		{
			name:        "unparseable workers",
			setup:       func() { viper.Set("generate.workers", "many") },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			tt.setup()

			cfg, err := Load()
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), ".planwriter.yml")
	content := `output:
  dir: build/flags
  dry_run: true
generate:
  escape: ninja
  inherited_only: true
  fields: [include_dirs]
logging:
  level: warn
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "build/flags", cfg.Output.Dir)
	assert.True(t, cfg.Output.DryRun)
	assert.Equal(t, "ninja", cfg.Generate.Escape)
	assert.True(t, cfg.Generate.InheritedOnly)
	assert.Equal(t, []string{"include_dirs"}, cfg.Generate.Fields)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validateConfig(cfg))

	// Default must hand out its own slice.
	cfg.Generate.Fields[0] = "libs"
	assert.Equal(t, "defines", DefaultFields[0])
}

func TestValidatePath(t *testing.T) {
	valid := []string{"out", "build/flags", "./gen", "/abs/out"}
	for _, p := range valid {
		assert.NoError(t, validatePath(p), p)
	}

	invalid := []string{"", "../out", "a/../../b", "out;rm", "out|x", "$HOME/out", "`x`"}
	for _, p := range invalid {
		assert.Error(t, validatePath(p), p)
	}
}
