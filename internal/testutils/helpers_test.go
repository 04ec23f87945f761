package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempProject(t *testing.T) {
	dir, path := CreateTempProject(t, SampleDescription)

	assert.Equal(t, filepath.Join(dir, "build.yml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SampleDescription, string(data))
}

func TestMemFsWithDescription(t *testing.T) {
	fs := MemFsWithDescription(t, "targets: {}\n")
	assert.Equal(t, "targets: {}\n", ReadFile(t, fs, "/build.yml"))
}

func TestBackdate(t *testing.T) {
	fs := MemFsWithDescription(t, SampleDescription)
	mod := Backdate(t, fs, "/build.yml")
	assert.True(t, mod.Before(time.Now().Add(-30*time.Minute)))
	assert.Equal(t, mod, ModTime(t, fs, "/build.yml"))
}

func TestCreateTestConfig(t *testing.T) {
	cfg := CreateTestConfig("gen")
	assert.Equal(t, "gen", cfg.Output.Dir)
	assert.Equal(t, 2, cfg.Generate.Workers)
	assert.NotEmpty(t, cfg.Generate.Fields)
}

func TestWaitForFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = os.WriteFile(path, []byte("b"), 0o644)
	}()
	WaitForFileChange(t, path, past, 2*time.Second)
}
