package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/pdfarc/internal/config"
	"github.com/backmassage/pdfarc/internal/logging"
)

func quietLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.TraceFile = ""
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "report.pdf")
	touch(t, dir, "scan.PDF")
	touch(t, dir, "notes.txt")
	touch(t, dir, "image.png")

	tasks, err := Discover(dir, []string{".pdf"}, quietLogger(t))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("got %d tasks, want 2 (case-insensitive .pdf only)", len(tasks))
	}
}

func TestDiscover_RecursiveSortedWithRelPaths(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "2023", "q4"), 0o755)
	os.MkdirAll(filepath.Join(dir, "2024"), 0o755)
	touch(t, filepath.Join(dir, "2024"), "b.pdf")
	touch(t, filepath.Join(dir, "2023", "q4"), "a.pdf")
	touch(t, dir, "top.pdf")

	tasks, err := Discover(dir, []string{".pdf"}, quietLogger(t))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Path < tasks[i-1].Path {
			t.Errorf("not sorted: %q before %q", tasks[i-1].Path, tasks[i].Path)
		}
	}

	wantRel := map[string]bool{
		filepath.Join("2023", "q4", "a.pdf"): true,
		filepath.Join("2024", "b.pdf"):       true,
		"top.pdf":                            true,
	}
	for _, task := range tasks {
		if !wantRel[task.RelPath] {
			t.Errorf("unexpected RelPath %q", task.RelPath)
		}
		if task.State != StateDiscovered {
			t.Errorf("task %s state = %v, want discovered", task.RelPath, task.State)
		}
		if task.ID == "" {
			t.Errorf("task %s has no ID", task.RelPath)
		}
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	tasks, err := Discover(t.TempDir(), []string{".pdf"}, quietLogger(t))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestDiscover_IgnoresSymlinks(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	touch(t, dir, "real.pdf")
	touch(t, outside, "outside.pdf")

	if err := os.Symlink(filepath.Join(outside, "outside.pdf"), filepath.Join(dir, "link.pdf")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(dir, "linkdir")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	tasks, err := Discover(dir, []string{".pdf"}, quietLogger(t))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tasks) != 1 || filepath.Base(tasks[0].Path) != "real.pdf" {
		t.Errorf("got %v, want only real.pdf", tasks)
	}
}

func TestDiscover_UnreadableSubdirSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	dir := t.TempDir()
	touch(t, dir, "ok.pdf")
	locked := filepath.Join(dir, "locked")
	os.MkdirAll(locked, 0o755)
	touch(t, locked, "hidden.pdf")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	tasks, err := Discover(dir, []string{".pdf"}, quietLogger(t))
	if err != nil {
		t.Fatalf("Discover should skip unreadable subdirs, got: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("got %d tasks, want 1 (locked subtree skipped)", len(tasks))
	}
}

func TestDiscover_MissingRootIsError(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{".pdf"}, quietLogger(t)); err == nil {
		t.Error("expected an error for a missing input root")
	}
}
