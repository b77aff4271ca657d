// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for Ghostscript and pdfinfo.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/pdfarc/internal/config"
)

// Sentinel errors returned by CheckDeps when the converter is unusable.
var (
	ErrGhostscriptNotFound = errors.New("ghostscript not found on PATH")
	ErrGhostscriptBroken   = errors.New("ghostscript found but a test invocation failed")
)

// Logger is the minimal logging interface needed by RunCheck and CheckDeps.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability and
// versions of Ghostscript and pdfinfo and runs a minimal test invocation.
// Returns false when Ghostscript is unusable; a missing pdfinfo only
// degrades page counting and does not fail the check.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkGhostscript(cfg, log)
	checkPdfInfo(cfg, log)
	return ok
}

// checkGhostscript verifies the gs binary is available, logs its version,
// and runs a minimal interpreter invocation.
func checkGhostscript(cfg *config.Config, log Logger) bool {
	if _, err := exec.LookPath(cfg.GsBinary); err != nil {
		log.Error("Ghostscript not found (%s)", cfg.GsBinary)
		return false
	}
	out, err := exec.Command(cfg.GsBinary, "--version").Output()
	if err != nil {
		log.Warn("Ghostscript found but --version failed: %v", err)
	} else {
		log.Success("Ghostscript: %s", strings.TrimSpace(string(out)))
	}

	log.Info("Testing Ghostscript interpreter...")
	if runSilent(cfg.GsBinary, gsTestArgs()...) {
		log.Success("Ghostscript test invocation works")
		return true
	}
	log.Error("Ghostscript test invocation failed")
	return false
}

// checkPdfInfo reports whether the page-count probe is available.
func checkPdfInfo(cfg *config.Config, log Logger) {
	if _, err := exec.LookPath(cfg.PdfInfoBinary); err != nil {
		log.Warn("pdfinfo not found (%s); page counts will be reported as unknown", cfg.PdfInfoBinary)
		return
	}
	out, err := exec.Command(cfg.PdfInfoBinary, "-v").CombinedOutput()
	if err != nil || len(out) == 0 {
		log.Success("pdfinfo: available")
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("pdfinfo: %s", firstLine)
}

// CheckDeps is the pre-pipeline validation: Ghostscript must be on PATH and
// pass a minimal test invocation; pdfinfo is optional and only warned about.
// Returns a sentinel error when the converter is unusable.
func CheckDeps(cfg *config.Config, log Logger) error {
	if _, err := exec.LookPath(cfg.GsBinary); err != nil {
		return ErrGhostscriptNotFound
	}
	if !runSilent(cfg.GsBinary, gsTestArgs()...) {
		return ErrGhostscriptBroken
	}
	if _, err := exec.LookPath(cfg.PdfInfoBinary); err != nil {
		log.Warn("pdfinfo not found (%s); page counts will be reported as unknown", cfg.PdfInfoBinary)
	}
	return nil
}

// gsTestArgs returns the arguments for a minimal Ghostscript invocation that
// starts the interpreter and quits without rendering. Shared by RunCheck and
// CheckDeps to avoid duplicating the argument list.
func gsTestArgs() []string {
	return []string{
		"-dQUIET", "-dNODISPLAY", "-dBATCH", "-dNOPAUSE",
		"-c", "quit",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
