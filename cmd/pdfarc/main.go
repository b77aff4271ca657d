// Command pdfarc is the CLI entrypoint for the batch PDF to PDF/A
// archival converter.
//
// It loads configuration (defaults, optional pdfarc.yaml, flags), validates
// the directory layout, and either runs system diagnostics (--check) or one
// full conversion batch over PDFA_IN / PDFA_OUT / PDF_Not_Converted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/pdfarc/internal/check"
	"github.com/backmassage/pdfarc/internal/config"
	"github.com/backmassage/pdfarc/internal/display"
	"github.com/backmassage/pdfarc/internal/ghostscript"
	"github.com/backmassage/pdfarc/internal/logging"
	"github.com/backmassage/pdfarc/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "2.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log capture.
	cfg := config.DefaultConfig()
	if err := config.LoadFile(config.DefaultConfigFile, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "pdfarc: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "pdfarc: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfarc: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfarc: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Resolve and validate the layout: all three roots are created if
	// needed, and neither destination root may be inside the input root
	// (prevents the pipeline from discovering or routing onto its own
	// output).
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.FailedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("Cannot create directory: %s", dir)
			return 1
		}
	}
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Cannot resolve input path: %s", cfg.InputDir)
		return 1
	}
	for _, dest := range []string{cfg.OutputDir, cfg.FailedDir} {
		destAbs, err := absPath(dest)
		if err != nil {
			log.Error("Cannot resolve path: %s", dest)
			return 1
		}
		if err := cfg.ValidatePaths(inputAbs, destAbs); err != nil {
			log.Error("%v", err)
			log.Error("Choose a path outside: %s", cfg.InputDir)
			return 1
		}
	}

	log.Info("=== pdfarc v%s (%s) ===", version, commit)
	log.Info("In:     %s", cfg.InputDir)
	log.Info("Out:    %s", cfg.OutputDir)
	log.Info("Failed: %s", cfg.FailedDir)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be converted or moved")
	}
	log.Info("")

	// Fail fast if Ghostscript is missing or unusable.
	if err := check.CheckDeps(&cfg, log); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline stops between files without leaving a half-routed batch.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Run the batch. Per-file failures are expected outcomes;
	// only a run that could not start yields a non-zero exit.
	if _, err := pipeline.Run(ctx, &cfg, log, ghostscript.NewInvoker(&cfg)); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of the input vs destination directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
