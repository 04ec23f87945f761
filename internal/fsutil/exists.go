// Package fsutil holds the few filesystem queries planwriter makes outside
// of write-if-changed.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/conneroisu/planwriter/internal/errors"
)

// PathExists reports whether path exists on fs. A trailing slash asks for a
// directory specifically; without one, files and directories both count.
// An empty path is rejected.
func PathExists(fs afero.Fs, path string) (bool, error) {
	if path == "" {
		return false, errors.ErrInvalidPath(path)
	}

	asDir := strings.HasSuffix(path, "/")
	info, err := fs.Stat(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.WrapIO(err, errors.ErrCodeInvalidPath, "cannot stat "+path)
	}
	if asDir {
		return info.IsDir(), nil
	}
	return true, nil
}

// EnsureDir creates dir and its parents when they are missing.
func EnsureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO(err, errors.ErrCodeOpenFailed, "cannot create directory "+dir)
	}
	return nil
}
