package cmd

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/conneroisu/planwriter/internal/config"
	"github.com/conneroisu/planwriter/internal/escape"
	"github.com/conneroisu/planwriter/internal/generate"
	"github.com/conneroisu/planwriter/internal/logging"
	"github.com/conneroisu/planwriter/internal/metrics"
	"github.com/conneroisu/planwriter/internal/pagebuf"
	"github.com/conneroisu/planwriter/internal/plan"
	"github.com/conneroisu/planwriter/internal/projector"
)

// runtime bundles everything a command needs to generate outputs.
type runtime struct {
	cfg       *config.Config
	fs        afero.Fs
	logger    logging.Logger
	recorder  *metrics.Recorder
	registry  *prometheus.Registry
	persister *pagebuf.Persister
}

func newRuntime(fs afero.Fs) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	rt := &runtime{cfg: cfg, fs: fs, logger: logger}
	if cfg.Metrics.Enabled {
		rt.registry = prometheus.NewRegistry()
		rt.recorder, err = metrics.NewPrometheusRecorder(cfg.Metrics.Namespace, rt.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	} else {
		rt.recorder = metrics.NewRecorder()
	}
	rt.persister = pagebuf.NewPersister(fs, logger, rt.recorder)
	return rt, nil
}

func (rt *runtime) generator(descPath string) (*generate.Generator, error) {
	desc, err := plan.Load(rt.fs, descPath)
	if err != nil {
		return nil, err
	}

	esc, err := escape.ByName(rt.cfg.Generate.Escape)
	if err != nil {
		return nil, err
	}
	mode := projector.All
	if rt.cfg.Generate.InheritedOnly {
		mode = projector.InheritedOnly
	}

	return generate.New(desc, generate.Options{
		OutputDir: rt.cfg.Output.Dir,
		Extension: rt.cfg.Output.Extension,
		Fields:    rt.cfg.Generate.Fields,
		Escaper:   esc,
		Mode:      mode,
		Workers:   rt.cfg.Generate.Workers,
		DryRun:    rt.cfg.Output.DryRun,

		AlwaysWrite: rt.cfg.Output.AlwaysWrite,
	}, rt.persister, rt.logger)
}

// flushMetrics writes the prometheus text file when one is configured.
func (rt *runtime) flushMetrics() error {
	if rt.registry == nil || rt.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(rt.cfg.Metrics.Textfile, rt.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
