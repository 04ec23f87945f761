package pagebuf

import (
	"context"

	"github.com/spf13/afero"

	"github.com/conneroisu/planwriter/internal/logging"
	"github.com/conneroisu/planwriter/internal/metrics"
	"github.com/conneroisu/planwriter/internal/stream"
)

// Persister runs write-if-changed against one filesystem and reports the
// outcome to a logger and a metrics recorder.
type Persister struct {
	fs       afero.Fs
	logger   logging.Logger
	recorder *metrics.Recorder
}

// NewPersister creates a persister. A nil logger discards logs and a nil
// recorder records nothing.
func NewPersister(fs afero.Fs, logger logging.Logger, recorder *metrics.Recorder) *Persister {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Persister{
		fs:       fs,
		logger:   logger.WithComponent("persist"),
		recorder: recorder,
	}
}

// Fs returns the filesystem the persister writes to.
func (p *Persister) Fs() afero.Fs {
	return p.fs
}

// Persist writes buf to path if its content changed.
func (p *Persister) Persist(ctx context.Context, buf *Buffer, path string) (Result, error) {
	result, err := buf.WriteToFileIfChanged(p.fs, path)
	if err != nil {
		p.recorder.FileFailed()
		p.logger.Error(ctx, err, "Failed to write generated file", "path", path)
		return result, err
	}

	switch result {
	case ResultUnchanged:
		p.recorder.FileUnchanged()
		p.logger.Debug(ctx, "Generated file unchanged", "path", path, "bytes", buf.Len())
	case ResultWritten:
		p.recorder.FileWritten(buf.Len())
		p.logger.Info(ctx, "Wrote generated file", "path", path, "bytes", buf.Len())
	}
	return result, nil
}

// Stale reports whether persisting buf to path would modify the file.
func (p *Persister) Stale(ctx context.Context, buf *Buffer, path string) bool {
	stale := !buf.ContentsEqual(p.fs, path)
	p.logger.Debug(ctx, "Compared generated file", "path", path, "stale", stale)
	return stale
}

// WriteThrough streams render straight into path, truncating it, without
// comparing against the existing content. The output always counts as
// written.
func (p *Persister) WriteThrough(ctx context.Context, path string, render func(stream.Sink)) (Result, error) {
	sink, err := stream.CreateFileSink(p.fs, path)
	if err == nil {
		err = writeAndClose(sink, render)
	}
	if err != nil {
		p.recorder.FileFailed()
		p.logger.Error(ctx, err, "Failed to write generated file", "path", path)
		return ResultUnchanged, err
	}

	p.recorder.FileWritten(sink.Len())
	p.logger.Info(ctx, "Wrote generated file", "path", path, "bytes", sink.Len())
	return ResultWritten, nil
}

// writeAndClose closes sink even when render panics.
func writeAndClose(sink *stream.FileSink, render func(stream.Sink)) (err error) {
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()
	render(sink)
	return nil
}
