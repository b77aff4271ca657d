package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/backmassage/pdfarc/internal/config"
	"github.com/backmassage/pdfarc/internal/display"
	"github.com/backmassage/pdfarc/internal/ghostscript"
	"github.com/backmassage/pdfarc/internal/logging"
)

// Converter produces a conversion outcome for a single source file,
// writing the result to outputPath. Satisfied by [ghostscript.Invoker];
// tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, sourcePath, outputPath string) ghostscript.Outcome
}

// Run is the top-level batch entry point. It prepares the three roots,
// discovers the task snapshot, processes each file strictly sequentially,
// and returns aggregate stats. The returned error is non-nil only when the
// run itself could not start; per-file failures are expected outcomes and
// never abort the batch.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, conv Converter) (RunStats, error) {
	var stats RunStats

	if err := ensureRoots(cfg); err != nil {
		return stats, err
	}
	if cfg.Clean && !cfg.DryRun {
		cleanRoots(cfg, log)
	}

	runID := uuid.NewString()
	log.Trace("run %s started (in=%s out=%s failed=%s)", runID, cfg.InputDir, cfg.OutputDir, cfg.FailedDir)

	tasks, err := Discover(cfg.InputDir, cfg.Extensions, log)
	if err != nil {
		return stats, fmt.Errorf("discovery failed: %w", err)
	}
	stats.Total = len(tasks)

	log.Info("Run %s", runID)
	log.Info("Found %d files", stats.Total)
	if cfg.DryRun {
		log.Warn("DRY RUN, no files will be converted or moved")
	}
	fmt.Println()

	router := &Router{
		InputRoot:  cfg.InputDir,
		OutputRoot: cfg.OutputDir,
		FailedRoot: cfg.FailedDir,
	}
	reporter := NewReporter(log, stats.Total, cfg.DryRun)

	for i := range tasks {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		stats.Current = i + 1
		processTask(ctx, cfg, log, conv, router, reporter, &tasks[i], &stats)
	}

	prog := reporter.Progress()
	stats.Succeeded = prog.Succeeded
	stats.Failed = prog.Failed
	stats.Unrouted = prog.Unrouted

	logSummary(cfg, log, &stats)
	log.Trace("run %s finished: total=%d succeeded=%d failed=%d unrouted=%d",
		runID, stats.Total, stats.Succeeded, stats.Failed, stats.Unrouted)
	return stats, nil
}

// processTask handles one file: convert, route the source by outcome,
// report. Each step's failure is contained here; the batch always moves on.
func processTask(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	conv Converter,
	router *Router,
	reporter *Reporter,
	task *FileTask,
	stats *RunStats,
) {
	task.State = StateConverting
	log.Debug(cfg.Verbose, "Converting %s", task.RelPath)

	outPath := router.OutputPath(*task)

	if cfg.DryRun {
		task.State = StateSucceeded
		reporter.Report(*task, ghostscript.Outcome{
			Status:     ghostscript.StatusSucceeded,
			OutputPath: outPath,
			PageCount:  ghostscript.PageCountUnknown,
		}, RouteRemoved, nil)
		return
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		// No destination directory means nothing was converted or moved:
		// the source stays in place, same as any other routing error.
		task.State = StateFailed
		reporter.Report(*task, ghostscript.Outcome{
			Status: ghostscript.StatusFailed,
			Kind:   ghostscript.FailNoOutput,
			Detail: err.Error(),
		}, RouteLeftInPlace, err)
		return
	}

	oc := conv.Convert(ctx, task.Path, outPath)

	res, routeErr := router.Route(*task, oc)

	if oc.Failed() {
		task.State = StateFailed
	} else {
		task.State = StateSucceeded
		stats.TotalInputBytes += task.Size
		if oc.PageCount != ghostscript.PageCountUnknown {
			stats.TotalPages += oc.PageCount
		}
	}

	reporter.Report(*task, oc, res, routeErr)
}

// ensureRoots creates the three roots if missing. Pre-existing directories
// are not errors; anything else is fatal to the run.
func ensureRoots(cfg *config.Config) error {
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.FailedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// cleanRoots removes files under the output and failed roots before the
// run (--clean). Directories are kept; failures are warnings only.
func cleanRoots(cfg *config.Config, log *logging.Logger) {
	for _, root := range []string{cfg.OutputDir, cfg.FailedDir} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if rmErr := os.Remove(path); rmErr != nil {
				log.Warn("Cannot clean %s: %v", path, rmErr)
			}
			return nil
		})
		if err != nil {
			log.Warn("Cannot clean %s: %v", root, err)
		}
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d converted, %d failed, %d left in place", stats.Succeeded, stats.Failed, stats.Unrouted)
	log.Info("  Total files processed: %d", stats.Current)
	if stats.Failed > 0 {
		log.Info("Failed originals are in %s for inspection", cfg.FailedDir)
	}
	if stats.Unrouted > 0 {
		log.Warn("%d files could not be routed and remain in %s for the next run", stats.Unrouted, cfg.InputDir)
	}

	if cfg.DryRun {
		log.Info("  Total input processed: n/a (dry run)")
		return
	}
	log.Info("  Pages converted: %d", stats.TotalPages)
	log.Success("  Total input processed: %s", display.FormatBytes(stats.TotalInputBytes))
}
