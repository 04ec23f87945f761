package fsutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/planwriter/internal/errors"
)

func TestPathExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("out/gen", 0o755))
	require.NoError(t, afero.WriteFile(fs, "out/app.flags", []byte("-O2"), 0o644))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"file", "out/app.flags", true},
		{"directory", "out/gen", true},
		{"directory with slash", "out/gen/", true},
		{"file with slash", "out/app.flags/", false},
		{"missing", "out/missing.flags", false},
		{"missing directory", "nope/", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PathExists(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathExistsEmpty(t *testing.T) {
	_, err := PathExists(afero.NewMemMapFs(), "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPath))
}

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, EnsureDir(fs, "a/b/c"))
	require.NoError(t, EnsureDir(fs, "a/b/c"))

	ok, err := PathExists(fs, "a/b/c/")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureDirReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := EnsureDir(fs, "out")
	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
}
