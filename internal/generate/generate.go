// Package generate renders per-target flag files from a build description
// and persists them with write-if-changed.
package generate

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/conneroisu/planwriter/internal/errors"
	"github.com/conneroisu/planwriter/internal/fsutil"
	"github.com/conneroisu/planwriter/internal/logging"
	"github.com/conneroisu/planwriter/internal/pagebuf"
	"github.com/conneroisu/planwriter/internal/plan"
	"github.com/conneroisu/planwriter/internal/projector"
	"github.com/conneroisu/planwriter/internal/stream"
)

// Options control what a Generator writes and where.
type Options struct {
	OutputDir string
	Extension string
	// Fields are flag-kind names, see projector.Field.
	Fields  []string
	Escaper projector.Escaper
	Mode    projector.Mode
	Workers int
	// DryRun compares against existing files without writing anything.
	DryRun bool
	// AlwaysWrite streams every output straight to disk, skipping the
	// comparison. Outputs are rewritten even when unchanged.
	AlwaysWrite bool
}

// TargetResult describes what happened to one target's output file.
type TargetResult struct {
	Target string
	Path   string
	Result pagebuf.Result
	// Stale is set in dry-run mode when the file would be rewritten.
	Stale bool
	Bytes int64
	Err   error
}

// Summary aggregates a run.
type Summary struct {
	Results   []TargetResult
	Written   int
	Unchanged int
	Stale     int
	Failed    int
}

type field struct {
	name string
	get  projector.Accessor
}

// Generator renders targets of one description.
type Generator struct {
	desc      *plan.Description
	opts      Options
	fields    []field
	persister *pagebuf.Persister
	pool      *pagebuf.Pool
	logger    logging.Logger
}

// New validates opts and creates a generator.
func New(desc *plan.Description, opts Options, persister *pagebuf.Persister, logger logging.Logger) (*Generator, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	fields := make([]field, 0, len(opts.Fields))
	for _, name := range opts.Fields {
		get, err := projector.Field(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field{name: name, get: get})
	}
	return &Generator{
		desc:      desc,
		opts:      opts,
		fields:    fields,
		persister: persister,
		pool:      pagebuf.NewPool(),
		logger:    logger.WithComponent("generate"),
	}, nil
}

// OutputPath returns the file a target's flags are written to.
func (g *Generator) OutputPath(target string) string {
	name := target + g.opts.Extension
	if t, ok := g.desc.Targets[target]; ok && t.Output != "" {
		name = t.Output
	}
	return filepath.Join(g.opts.OutputDir, name)
}

// Render writes the flag file for target into out.
func (g *Generator) Render(out stream.Sink, target string) error {
	chain, err := g.desc.Chain(target)
	if err != nil {
		return err
	}
	g.render(out, target, chain)
	return nil
}

func (g *Generator) render(out stream.Sink, target string, chain projector.Chain) {
	stream.WriteLine(out, "# Generated by planwriter. Do not edit.")
	stream.WriteString(out, "# target: ")
	stream.WriteLine(out, target)
	stream.WriteString(out, "# configs: ")
	stream.WriteInt(out, len(chain))
	_ = out.WriteByte('\n')

	for _, f := range g.fields {
		stream.WriteString(out, f.name)
		stream.WriteString(out, " =")
		projector.WriteStrings(out, chain, g.opts.Mode, f.get, g.opts.Escaper)
		_ = out.WriteByte('\n')
	}
}

// Run renders and persists targets (all targets when none are given).
// Independent targets run concurrently; each buffer is owned by one
// goroutine from creation to persistence. Per-target failures are collected
// and returned together after every target has been attempted.
func (g *Generator) Run(ctx context.Context, targets []string) (*Summary, error) {
	if len(targets) == 0 {
		targets = g.desc.TargetNames()
	}
	owners := make(map[string]string, len(targets))
	for _, t := range targets {
		if _, ok := g.desc.Targets[t]; !ok {
			return nil, errors.ErrDescriptionInvalid("unknown target: " + t)
		}
		// One writer per file.
		path := g.OutputPath(t)
		if other, ok := owners[path]; ok {
			return nil, errors.ErrDescriptionInvalid(
				fmt.Sprintf("targets %q and %q both write %s", other, t, path)).WithPath(path)
		}
		owners[path] = t
	}

	if !g.opts.DryRun {
		if err := fsutil.EnsureDir(g.persister.Fs(), g.opts.OutputDir); err != nil {
			return nil, err
		}
	}

	perf := logging.StartOperation(g.logger, "generate")
	results := make([]TargetResult, len(targets))
	collector := errors.NewCollector()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, target := range targets {
		i, target := i, target
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = g.runTarget(egCtx, target)
			collector.Add(target, results[i].Path, results[i].Err)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Results: results}
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case g.opts.DryRun && r.Stale:
			summary.Stale++
		case g.opts.DryRun:
			summary.Unchanged++
		case r.Result == pagebuf.ResultWritten:
			summary.Written++
		default:
			summary.Unchanged++
		}
	}

	if err := collector.Err(); err != nil {
		perf.EndWithError(ctx, err)
		return summary, err
	}
	perf.End(ctx,
		"targets", len(targets),
		"written", summary.Written,
		"unchanged", summary.Unchanged,
		"stale", summary.Stale)
	return summary, nil
}

func (g *Generator) runTarget(ctx context.Context, target string) (res TargetResult) {
	path := g.OutputPath(target)
	res = TargetResult{Target: target, Path: path}
	defer func() {
		if r := recover(); r != nil {
			res.Result = pagebuf.ResultUnchanged
			res.Err = errors.NewInternalError(errors.ErrCodeInternalError,
				fmt.Sprintf("panic while rendering: %v", r), nil).WithTarget(target).WithPath(path)
		}
	}()

	chain, err := g.desc.Chain(target)
	if err != nil {
		res.Err = errors.WrapTarget(err, errors.ErrCodeDescriptionInvalid, "cannot render target", target)
		return res
	}

	if g.opts.AlwaysWrite && !g.opts.DryRun {
		if err := fsutil.EnsureDir(g.persister.Fs(), filepath.Dir(path)); err != nil {
			res.Err = err
			return res
		}
		res.Result, res.Err = g.persister.WriteThrough(ctx, path, func(out stream.Sink) {
			g.render(out, target, chain)
		})
		return res
	}

	buf := g.pool.NewBuffer()
	defer buf.Release()
	g.render(buf, target, chain)
	res.Bytes = buf.Len()

	if g.opts.DryRun {
		res.Stale = g.persister.Stale(ctx, buf, path)
		return res
	}
	if err := fsutil.EnsureDir(g.persister.Fs(), filepath.Dir(path)); err != nil {
		res.Err = err
		return res
	}

	res.Result, res.Err = g.persister.Persist(ctx, buf, path)
	return res
}
