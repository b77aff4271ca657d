package ghostscript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/pdfarc/internal/config"
)

// Status of a conversion attempt.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
)

// FailureKind names the class of a failed conversion.
type FailureKind string

const (
	FailNone         FailureKind = ""
	FailConverter    FailureKind = "converter-error" // Ghostscript exited non-zero.
	FailCorruptInput FailureKind = "corrupt-input"   // Source document is damaged.
	FailTimeout      FailureKind = "timeout"         // Per-file bound exceeded.
	FailNoOutput     FailureKind = "no-output"       // Clean exit but no output file.
	FailNotStarted   FailureKind = "not-started"     // Binary could not be launched.
)

// PageCountUnknown is the page-count sentinel when the probe fails. A
// conversion with an unknown count is still a success.
const PageCountUnknown = -1

// Outcome is the classified result of one conversion attempt: either a
// success carrying the output path and page count, or a failure carrying
// its kind and captured diagnostic detail. It is a plain value so a failure
// can never propagate as an error past this package.
type Outcome struct {
	Status     Status
	OutputPath string
	PageCount  int
	Kind       FailureKind
	Detail     string
}

// Failed reports whether the outcome is a failure of any kind.
func (o Outcome) Failed() bool { return o.Status == StatusFailed }

// Invoker runs the external conversion primitive for one file at a time.
// It holds no mutable state across invocations, so per-file outcomes are
// identical under sequential or parallel use.
type Invoker struct {
	cfg *config.Config
}

// NewInvoker returns an Invoker bound to cfg.
func NewInvoker(cfg *config.Config) *Invoker {
	return &Invoker{cfg: cfg}
}

// Convert runs Ghostscript on src, writing the PDF/A result to dst. The
// call is synchronous and bounded by the configured per-file timeout. Every
// failure mode (launch error, non-zero exit, timeout, missing output) is
// folded into the returned Outcome; on success the page count is probed via
// pdfinfo and a probe failure downgrades the count to unknown, never the
// conversion to failed. A failed attempt removes any partial output file.
func (inv *Invoker) Convert(ctx context.Context, src, dst string) Outcome {
	runCtx := ctx
	if inv.cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.cfg.FileTimeout)
		defer cancel()
	}

	res := Execute(runCtx, inv.cfg, BuildArgs(inv.cfg, src, dst))
	if res.Err != nil {
		// Partial output is worthless; drop it so the output root only
		// ever holds completed conversions. File-level delete only.
		_ = os.Remove(dst)
		return failureOutcome(runCtx, res)
	}

	if _, err := os.Stat(dst); err != nil {
		return Outcome{
			Status: StatusFailed,
			Kind:   FailNoOutput,
			Detail: fmt.Sprintf("ghostscript exited cleanly but produced no output: %v", err),
		}
	}

	pages, err := PageCount(ctx, inv.cfg, dst)
	if err != nil {
		pages = PageCountUnknown
	}
	return Outcome{
		Status:     StatusSucceeded,
		OutputPath: dst,
		PageCount:  pages,
	}
}

// failureOutcome classifies a failed invocation: timeout first, then launch
// errors, then stderr-based classification.
func failureOutcome(runCtx context.Context, res ExecResult) Outcome {
	detail := diagnosticDetail(res)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Outcome{Status: StatusFailed, Kind: FailTimeout, Detail: detail}
	}

	var execErr *exec.Error
	if errors.As(res.Err, &execErr) {
		return Outcome{Status: StatusFailed, Kind: FailNotStarted, Detail: detail}
	}

	return Outcome{Status: StatusFailed, Kind: Classify(res.Stderr), Detail: detail}
}

// maxDetailLines bounds the stderr capture carried on an Outcome; the tail
// is where Ghostscript prints the actual error.
const maxDetailLines = 40

// diagnosticDetail extracts the stderr tail (plus the exec error) for the
// diagnostic channel.
func diagnosticDetail(res ExecResult) string {
	lines := strings.Split(strings.TrimSpace(res.Stderr), "\n")
	if len(lines) > maxDetailLines {
		lines = lines[len(lines)-maxDetailLines:]
	}
	detail := strings.TrimSpace(strings.Join(lines, "\n"))
	if res.Err == nil {
		return detail
	}
	if detail == "" {
		return res.Err.Error()
	}
	return res.Err.Error() + "\n" + detail
}
