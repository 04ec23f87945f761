package stream

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/conneroisu/planwriter/internal/errors"
)

// FileSink streams straight into a file instead of buffering in memory.
// It never compares against existing content, so it always rewrites the
// destination; use pagebuf.Buffer when the output must be change-gated.
//
// The first failure is sticky: later writes are dropped and Err reports it.
type FileSink struct {
	file afero.File
	w    *bufio.Writer
	path string
	n    int64
	err  error
}

// CreateFileSink creates (or truncates) path on fs.
func CreateFileSink(fs afero.Fs, path string) (*FileSink, error) {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.ErrOpenFailed(path, err)
	}
	return &FileSink{
		file: f,
		w:    bufio.NewWriterSize(f, 64*1024),
		path: path,
	}, nil
}

// Write implements Sink.
func (f *FileSink) Write(p []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := f.w.Write(p)
	f.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		f.err = errors.ErrWriteFailed(f.path, err)
	}
	return n, f.err
}

// WriteByte implements Sink.
func (f *FileSink) WriteByte(c byte) error {
	if f.err != nil {
		return f.err
	}
	if err := f.w.WriteByte(c); err != nil {
		f.err = errors.ErrWriteFailed(f.path, err)
		return f.err
	}
	f.n++
	return nil
}

// WriteString avoids a copy for string helpers.
func (f *FileSink) WriteString(s string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := f.w.WriteString(s)
	f.n += int64(n)
	if err != nil {
		f.err = errors.ErrWriteFailed(f.path, err)
	}
	return n, f.err
}

// Len returns the number of bytes accepted so far.
func (f *FileSink) Len() int64 {
	return f.n
}

// Err returns the first error seen by the sink, if any.
func (f *FileSink) Err() error {
	return f.err
}

// Close flushes buffered data and closes the file. It returns the sticky
// error if one was recorded earlier.
func (f *FileSink) Close() error {
	if f.err == nil {
		if err := f.w.Flush(); err != nil {
			f.err = errors.ErrWriteFailed(f.path, err)
		}
	}
	if err := f.file.Close(); err != nil && f.err == nil {
		f.err = errors.ErrCloseFailed(f.path, err)
	}
	return f.err
}
