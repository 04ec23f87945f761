package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conneroisu/planwriter/internal/errors"
	"github.com/conneroisu/planwriter/internal/watcher"
)

var watchFlags *StandardFlags

var watchCmd = &cobra.Command{
	Use:   "watch <description> [targets...]",
	Short: "Regenerate flag files whenever the build description changes",
	Long: `Generate once, then watch the build description and regenerate after
every change. Bursts of editor writes are debounced (watch.debounce, default
300ms). Outputs whose content did not change are left untouched.

Examples:
  planwriter watch build.yml
  planwriter watch build.yml app --verbose`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateFlags(watchFlags); err != nil {
			return err
		}
		return bindFlags(cmd)
	},
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFlags = AddStandardFlags(watchCmd, "projection", "report")
	watchCmd.Flags().StringP("output-dir", "o", "", "Directory generated files are written to")
}

func runWatch(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(afero.NewOsFs())
	if err != nil {
		return err
	}
	descPath, targets := args[0], args[1:]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := errors.NewErrorHandler(rt.logger)
	regenerate := func() {
		if err := regenerateOnce(ctx, cmd, rt, descPath, targets); err != nil {
			handler.Handle(ctx, err)
		}
	}
	regenerate()

	fileWatcher, err := watcher.NewFileWatcher(rt.cfg.Watch.Debounce, rt.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	if err := fileWatcher.WatchFile(descPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", descPath, err)
	}
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, event := range events {
			rt.logger.Debug(ctx, "Description changed", "path", event.Path, "event", event.Type.String())
		}
		regenerate()
		return nil
	})

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	rt.logger.Info(ctx, "Watching for changes", "description", descPath)

	<-ctx.Done()
	rt.logger.Info(context.Background(), "Stopping file watcher")
	return nil
}

// regenerateOnce reloads the description so edits take effect.
func regenerateOnce(ctx context.Context, cmd *cobra.Command, rt *runtime, descPath string, targets []string) error {
	gen, err := rt.generator(descPath)
	if err != nil {
		return err
	}
	summary, runErr := gen.Run(ctx, targets)
	if summary != nil && !watchFlags.Quiet {
		if err := writeReport(cmd.OutOrStdout(), summary, rt.cfg.Output.DryRun, watchFlags.Verbose); err != nil {
			return err
		}
	}
	if err := rt.flushMetrics(); err != nil {
		rt.logger.Warn(ctx, err, "Metrics export failed")
	}
	return runErr
}
