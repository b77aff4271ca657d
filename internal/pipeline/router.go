package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/backmassage/pdfarc/internal/ghostscript"
)

// RouteResult says where a task's source file ended up.
type RouteResult int

const (
	RouteRemoved     RouteResult = iota // Success: converted output kept, source deleted.
	RouteMovedToFail                    // Failure: original moved under the failed root.
	RouteLeftInPlace                    // Routing error: source untouched, retried on a future run.
)

// Router relocates source files once their conversion outcome is known.
// All operations are file-level: the router never removes, renames, or
// truncates a directory node, so the input root and its subdirectories
// survive every run no matter how many files are processed.
type Router struct {
	InputRoot  string
	OutputRoot string
	FailedRoot string
}

// OutputPath returns the mirrored destination for a task under the output
// root. The converter writes here directly.
func (r *Router) OutputPath(task FileTask) string {
	return filepath.Join(r.OutputRoot, task.RelPath)
}

// FailedPath returns the mirrored destination for a task's original under
// the failed root.
func (r *Router) FailedPath(task FileTask) string {
	return filepath.Join(r.FailedRoot, task.RelPath)
}

// Route finalizes one task. On success the converted file already sits at
// the output path, so only the source file is deleted. On failure the
// original source is moved under the failed root, mirroring its relative
// path. A non-nil error means the source was left in place for a future
// run; it never aborts the batch.
func (r *Router) Route(task FileTask, oc ghostscript.Outcome) (RouteResult, error) {
	if !oc.Failed() {
		if err := os.Remove(task.Path); err != nil {
			return RouteLeftInPlace, fmt.Errorf("remove converted source: %w", err)
		}
		return RouteRemoved, nil
	}

	if err := moveFile(task.Path, r.FailedPath(task)); err != nil {
		return RouteLeftInPlace, fmt.Errorf("move to failed root: %w", err)
	}
	return RouteMovedToFail, nil
}

// moveFile renames src to dst, creating dst's parent directories. When
// rename is not possible (cross-device roots), it copies src to dst and
// removes src only after the copy is fully on disk, so a crash mid-move
// leaves the source recoverable.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst and fsyncs the destination before reporting
// success.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
