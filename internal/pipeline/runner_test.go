package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/backmassage/pdfarc/internal/config"
	"github.com/backmassage/pdfarc/internal/ghostscript"
	"github.com/backmassage/pdfarc/internal/logging"
)

// fakeConverter simulates the external primitive: it writes an output file
// and succeeds unless the source basename is listed in fail.
type fakeConverter struct {
	fail  map[string]bool
	pages int
	calls []string
}

func (f *fakeConverter) Convert(_ context.Context, src, dst string) ghostscript.Outcome {
	f.calls = append(f.calls, src)
	if f.fail[filepath.Base(src)] {
		return ghostscript.Outcome{
			Status: ghostscript.StatusFailed,
			Kind:   ghostscript.FailCorruptInput,
			Detail: "simulated damage report",
		}
	}
	data, _ := os.ReadFile(src)
	if err := os.WriteFile(dst, append([]byte("%PDF/A "), data...), 0o644); err != nil {
		return ghostscript.Outcome{Status: ghostscript.StatusFailed, Kind: ghostscript.FailNoOutput, Detail: err.Error()}
	}
	return ghostscript.Outcome{Status: ghostscript.StatusSucceeded, OutputPath: dst, PageCount: f.pages}
}

// testSetup returns a config rooted in a temp dir with a file-backed
// progress log, plus its logger.
func testSetup(t *testing.T) (*config.Config, *logging.Logger) {
	t.Helper()
	base := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputDir = filepath.Join(base, "PDFA_IN")
	cfg.OutputDir = filepath.Join(base, "PDFA_OUT")
	cfg.FailedDir = filepath.Join(base, "PDF_Not_Converted")
	cfg.LogFile = filepath.Join(base, "progress.log")
	cfg.TraceFile = filepath.Join(base, "trace.log")
	cfg.ColorMode = config.ColorNever

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return &cfg, log
}

func writeInput(t *testing.T, cfg *config.Config, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(cfg.InputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_MixedBatchScenario(t *testing.T) {
	cfg, log := testSetup(t)
	writeInput(t, cfg, "a.pdf", []byte("valid doc"))
	corrupt := []byte("corrupt bytes that must be preserved")
	writeInput(t, cfg, filepath.Join("sub", "b.pdf"), corrupt)

	conv := &fakeConverter{fail: map[string]bool{"b.pdf": true}, pages: 3}
	stats, err := Run(context.Background(), cfg, log, conv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Total != 2 || stats.Succeeded != 1 || stats.Failed != 1 || stats.Unrouted != 0 {
		t.Errorf("stats = %+v, want total=2 succeeded=1 failed=1", stats)
	}
	if stats.Processed() != stats.Total {
		t.Errorf("Processed() = %d, want %d", stats.Processed(), stats.Total)
	}

	// Success: output exists, source removed.
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "a.pdf")); err != nil {
		t.Errorf("converted a.pdf missing from output root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.InputDir, "a.pdf")); !os.IsNotExist(err) {
		t.Error("a.pdf should be removed from the input root")
	}

	// Failure: original byte-identical under the failed root, mirrored.
	moved, err := os.ReadFile(filepath.Join(cfg.FailedDir, "sub", "b.pdf"))
	if err != nil {
		t.Fatalf("failed original missing: %v", err)
	}
	if string(moved) != string(corrupt) {
		t.Error("failed original is not byte-identical")
	}

	// The input root and its subdirectories survive, emptied of files.
	for _, dir := range []string{cfg.InputDir, filepath.Join(cfg.InputDir, "sub")} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			t.Errorf("directory %s must survive the run: %v", dir, err)
		}
	}
	entries, _ := os.ReadDir(filepath.Join(cfg.InputDir, "sub"))
	if len(entries) != 0 {
		t.Errorf("input subdir should be empty of files, has %d entries", len(entries))
	}
}

func TestRun_EmptyInput(t *testing.T) {
	cfg, log := testSetup(t)

	stats, err := Run(context.Background(), cfg, log, &fakeConverter{pages: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total != 0 || stats.Processed() != 0 {
		t.Errorf("stats = %+v, want an all-zero run", stats)
	}
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.FailedDir} {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			t.Errorf("root %s should exist after an empty run: %v", dir, err)
		}
	}
}

func TestRun_CreatesMissingRoots(t *testing.T) {
	cfg, log := testSetup(t)
	os.RemoveAll(cfg.InputDir)
	os.RemoveAll(cfg.OutputDir)
	os.RemoveAll(cfg.FailedDir)

	if _, err := Run(context.Background(), cfg, log, &fakeConverter{}); err != nil {
		t.Fatalf("Run should bootstrap missing roots: %v", err)
	}
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.FailedDir} {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			t.Errorf("root %s not created: %v", dir, err)
		}
	}
}

func TestRun_StartupErrorIsFatal(t *testing.T) {
	cfg, log := testSetup(t)
	// A regular file where the input root must be created.
	os.RemoveAll(cfg.InputDir)
	if err := os.WriteFile(cfg.InputDir, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(context.Background(), cfg, log, &fakeConverter{}); err == nil {
		t.Error("expected a startup error when a root cannot be created")
	}
}

func TestRun_ProgressIndicesAreStrictlyIncreasing(t *testing.T) {
	cfg, log := testSetup(t)
	for _, name := range []string{"one.pdf", "two.pdf", "three.pdf", "four.pdf"} {
		writeInput(t, cfg, name, []byte(name))
	}
	conv := &fakeConverter{fail: map[string]bool{"two.pdf": true}, pages: 2}

	stats, err := Run(context.Background(), cfg, log, conv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	log.Close()

	b, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	matches := regexp.MustCompile(`\[(\d+)/(\d+)\]`).FindAllStringSubmatch(string(b), -1)
	if len(matches) != stats.Total {
		t.Fatalf("got %d progress lines, want %d", len(matches), stats.Total)
	}
	for i, m := range matches {
		idx, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		if idx != i+1 {
			t.Errorf("progress line %d has index %d, want %d", i, idx, i+1)
		}
		if total != stats.Total {
			t.Errorf("progress line %d has total %d, want %d", i, total, stats.Total)
		}
	}
}

func TestRun_SecondRunProcessesOnlyRemainingFiles(t *testing.T) {
	cfg, log := testSetup(t)
	writeInput(t, cfg, "first.pdf", []byte("first"))

	conv := &fakeConverter{pages: 1}
	if _, err := Run(context.Background(), cfg, log, conv); err != nil {
		t.Fatalf("first run: %v", err)
	}

	outPath := filepath.Join(cfg.OutputDir, "first.pdf")
	before, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("first output missing: %v", err)
	}

	// A new file arrives; the already-routed output must not be re-touched.
	writeInput(t, cfg, "second.pdf", []byte("second"))
	conv.calls = nil
	stats, err := Run(context.Background(), cfg, log, conv)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if stats.Total != 1 {
		t.Errorf("second run total = %d, want 1", stats.Total)
	}
	if len(conv.calls) != 1 || filepath.Base(conv.calls[0]) != "second.pdf" {
		t.Errorf("converter calls = %v, want only second.pdf", conv.calls)
	}
	after, err := os.Stat(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) || after.Size() != before.Size() {
		t.Error("already-routed output was re-touched by the second run")
	}
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	cfg, log := testSetup(t)
	cfg.DryRun = true
	writeInput(t, cfg, "a.pdf", []byte("doc"))

	conv := &fakeConverter{pages: 1}
	stats, err := Run(context.Background(), cfg, log, conv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total != 1 || stats.Succeeded != 1 {
		t.Errorf("stats = %+v, want total=1 succeeded=1", stats)
	}
	if len(conv.calls) != 0 {
		t.Error("dry run must not invoke the converter")
	}
	if _, err := os.Stat(filepath.Join(cfg.InputDir, "a.pdf")); err != nil {
		t.Errorf("dry run must leave the source in place: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "a.pdf")); !os.IsNotExist(err) {
		t.Error("dry run must not write output")
	}
}

func TestRun_CancelledContextStopsBetweenFiles(t *testing.T) {
	cfg, log := testSetup(t)
	writeInput(t, cfg, "a.pdf", []byte("a"))
	writeInput(t, cfg, "b.pdf", []byte("b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &fakeConverter{pages: 1}
	stats, err := Run(ctx, cfg, log, conv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(conv.calls) != 0 {
		t.Error("no files should be converted after cancellation")
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2 (discovery still ran)", stats.Total)
	}
}

func TestRun_CleanEmptiesDestinationRoots(t *testing.T) {
	cfg, log := testSetup(t)
	cfg.Clean = true

	// Stale artifacts from an earlier run.
	os.MkdirAll(filepath.Join(cfg.OutputDir, "old"), 0o755)
	os.WriteFile(filepath.Join(cfg.OutputDir, "old", "stale.pdf"), []byte("x"), 0o644)
	os.MkdirAll(cfg.FailedDir, 0o755)
	os.WriteFile(filepath.Join(cfg.FailedDir, "stale.pdf"), []byte("x"), 0o644)

	if _, err := Run(context.Background(), cfg, log, &fakeConverter{pages: 1}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "old", "stale.pdf")); !os.IsNotExist(err) {
		t.Error("stale output file should be cleaned")
	}
	if _, err := os.Stat(filepath.Join(cfg.FailedDir, "stale.pdf")); !os.IsNotExist(err) {
		t.Error("stale failed file should be cleaned")
	}
	// Clean removes files only; the directories stay.
	if fi, err := os.Stat(filepath.Join(cfg.OutputDir, "old")); err != nil || !fi.IsDir() {
		t.Error("clean must not remove directories")
	}
}
