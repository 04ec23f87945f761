// Package testutils holds fixtures shared by planwriter package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/planwriter/internal/config"
)

// SampleDescription is a small description exercising configs, public
// configs, transitive deps and an output override.
const SampleDescription = `configs:
  release:
    defines: [NDEBUG]
    cflags: [-O2]
  warnings:
    cflags: [-Wall, -Wextra]
  zlib_public:
    include_dirs: [third_party/zlib]
    defines: [ZLIB_CONST]
  base_public:
    include_dirs: [base/include]
    libs: [pthread]
targets:
  base:
    public_configs: [base_public]
  zlib:
    public_configs: [zlib_public]
    deps: [base]
  app:
    values:
      defines: [APP=1]
    configs: [release, warnings]
    deps: [zlib]
  tool:
    values:
      cflags: [-g]
    deps: [base]
    output: tools/tool.args
`

// CreateTempProject creates a temporary directory holding build.yml with
// content and returns the directory and the description path.
func CreateTempProject(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "build.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir, path
}

// MemFsWithDescription returns an in-memory filesystem holding content at
// /build.yml.
func MemFsWithDescription(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/build.yml", []byte(content), 0o644))
	return fs
}

// CreateTestConfig returns the default configuration writing into outDir.
func CreateTestConfig(outDir string) *config.Config {
	cfg := config.Default()
	cfg.Output.Dir = outDir
	cfg.Generate.Workers = 2
	return cfg
}

// ReadFile reads path from fs and fails the test on error.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

// ModTime returns the modification time of path.
func ModTime(t *testing.T, fs afero.Fs, path string) time.Time {
	t.Helper()
	info, err := fs.Stat(path)
	require.NoError(t, err)
	return info.ModTime()
}

// Backdate moves the modification time of path into the past so that a
// rewrite is observable even on filesystems with coarse timestamps.
func Backdate(t *testing.T, fs afero.Fs, path string) time.Time {
	t.Helper()
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, fs.Chtimes(path, past, past))
	return ModTime(t, fs, path)
}

// AssertFilePermissions checks the permission bits of path.
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode()
	require.Equal(t, expectedMode, actualMode&os.FileMode(0o777),
		"File %s has incorrect permissions: got %o, want %o",
		path, actualMode&os.FileMode(0o777), expectedMode)
}

// WaitForFileChange waits for a file to be modified (useful for testing file watchers)
func WaitForFileChange(
	t *testing.T,
	filePath string,
	originalModTime time.Time,
	timeout time.Duration,
) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		info, err := os.Stat(filePath)
		if err == nil && info.ModTime().After(originalModTime) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s was not modified within %v", filePath, timeout)
}
