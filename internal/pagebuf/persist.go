package pagebuf

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/conneroisu/planwriter/internal/errors"
)

// Result tells the caller what WriteToFileIfChanged did.
type Result int

const (
	// ResultUnchanged means the file already held the buffer's content and
	// was not touched.
	ResultUnchanged Result = iota
	// ResultWritten means the file was created or rewritten.
	ResultWritten
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case ResultUnchanged:
		return "unchanged"
	case ResultWritten:
		return "written"
	default:
		return "unknown"
	}
}

// ContentsEqual reports whether the file at path holds exactly the bytes in
// the buffer. The size is checked before any content is read, and the file
// is then read one page-sized chunk at a time, stopping at the first
// difference. A file that is missing or unreadable is simply not equal.
func (b *Buffer) ContentsEqual(fs afero.Fs, path string) bool {
	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() || info.Size() != b.size {
		return false
	}

	chunk := make([]byte, b.PageSize())
	for i := range b.pages {
		want := b.used(i)
		got := chunk[:len(want)]
		if _, err := io.ReadFull(f, got); err != nil {
			return false
		}
		if !bytes.Equal(got, want) {
			return false
		}
	}
	return true
}

// WriteToFile writes the buffer to path, replacing any existing content.
// A short write is reported as an error carrying io.ErrShortWrite; nothing
// is retried.
func (b *Buffer) WriteToFile(fs afero.Fs, path string) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.ErrOpenFailed(path, err)
	}

	for i := range b.pages {
		chunk := b.used(i)
		n, err := f.Write(chunk)
		if err == nil && n < len(chunk) {
			err = io.ErrShortWrite
		}
		if err != nil {
			_ = f.Close()
			return errors.ErrWriteFailed(path, err)
		}
	}

	if err := f.Close(); err != nil {
		return errors.ErrCloseFailed(path, err)
	}
	return nil
}

// WriteToFileIfChanged writes the buffer to path unless the file already
// holds the same bytes, in which case the filesystem is not modified at all.
func (b *Buffer) WriteToFileIfChanged(fs afero.Fs, path string) (Result, error) {
	if b.ContentsEqual(fs, path) {
		return ResultUnchanged, nil
	}
	if err := b.WriteToFile(fs, path); err != nil {
		return ResultWritten, err
	}
	return ResultWritten, nil
}
