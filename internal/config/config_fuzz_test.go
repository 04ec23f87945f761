package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// FuzzLoadConfig tests configuration loading with various malformed inputs
func FuzzLoadConfig(f *testing.F) {
	f.Add(`output:
  dir: out
generate:
  workers: 4
  escape: ninja`)
	f.Add(`generate:
  workers: "many"`)
	f.Add(`generate:
  fields: [defines, nope]`)
	f.Add(`malformed: yaml: content`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, yamlContent string) {
		if len(yamlContent) > 50000 {
			t.Skip("Config content too large")
		}

		viper.Reset()
		defer viper.Reset()

		configFile := filepath.Join(t.TempDir(), ".planwriter.yml")
		if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
			t.Skip("Could not write config file")
		}
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return
		}

		// Load must either fail or return a configuration that validates.
		cfg, err := Load()
		if err != nil {
			return
		}
		if err := validateConfig(cfg); err != nil {
			t.Errorf("Load returned invalid config: %v", err)
		}
	})
}

// FuzzValidatePath checks that accepted output directories never contain a
// traversal segment.
func FuzzValidatePath(f *testing.F) {
	f.Add("out")
	f.Add("../out")
	f.Add("a/b/../../..")
	f.Add("out;rm -rf /")

	f.Fuzz(func(t *testing.T, path string) {
		if validatePath(path) != nil {
			return
		}
		for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
			if part == ".." {
				t.Errorf("validatePath accepted traversal: %q", path)
			}
		}
	})
}
