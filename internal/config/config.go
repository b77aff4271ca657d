// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation. Defaults match the fixed
// directory layout the tool has always used (PDFA_IN / PDFA_OUT /
// PDF_Not_Converted).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultConfigFile is the config file loaded from the working directory
// when present. Absence is not an error; flags and defaults apply.
const DefaultConfigFile = "pdfarc.yaml"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overridden by [LoadFile], and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Directory roots (fixed roles, resolved relative to the working
	// directory unless absolute).
	InputDir  string // Default: "PDFA_IN". Source documents.
	OutputDir string // Default: "PDFA_OUT". Converted PDF/A output.
	FailedDir string // Default: "PDF_Not_Converted". Originals that failed.

	// External tools.
	GsBinary      string // Default: "gs". Ghostscript executable.
	PdfInfoBinary string // Default: "pdfinfo". Page-count probe.

	// Conversion settings.
	Extensions  []string      // Default: [".pdf"]. Lowercase, with leading dot.
	FileTimeout time.Duration // Default: 10m per file. 0 disables the bound.

	// Behavior flags.
	DryRun bool // Discover and report only; touch nothing.
	Clean  bool // Empty output/failed roots of files before the run.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Progress/summary log. Default: "pdf_conversion.log".
	TraceFile string    // Diagnostic detail log. Default: "pdf_conversion_trace.log".
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config matching the legacy pyPDFA v1.1.1 layout
// and log file name. Used as the base before [LoadFile] and [ParseFlags]
// apply overrides.
func DefaultConfig() Config {
	return Config{
		InputDir:      "PDFA_IN",
		OutputDir:     "PDFA_OUT",
		FailedDir:     "PDF_Not_Converted",
		GsBinary:      "gs",
		PdfInfoBinary: "pdfinfo",
		Extensions:    []string{".pdf"},
		FileTimeout:   10 * time.Minute,
		DryRun:        false,
		Clean:         false,
		Verbose:       false,
		ColorMode:     ColorAuto,
		LogFile:       "pdf_conversion.log",
		TraceFile:     "pdf_conversion_trace.log",
		CheckOnly:     false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and conversion settings. When not in
// CheckOnly mode, it also requires that all three root paths are non-empty.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.FileTimeout < 0 {
		return errors.New("file timeout must not be negative")
	}

	if len(c.Extensions) == 0 {
		return errors.New("at least one document extension is required")
	}
	normalized := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		e, err := normalizeExtension(ext)
		if err != nil {
			return err
		}
		normalized = append(normalized, e)
	}
	c.Extensions = normalized

	if c.GsBinary == "" {
		return errors.New("ghostscript binary must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" || c.FailedDir == "" {
		return errors.New("input, output and failed directories must all be set")
	}
	return nil
}

// normalizeExtension validates and canonicalizes a document extension.
// Accepted forms: "pdf", ".pdf", ".PDF". Output is lowercase with a dot.
func normalizeExtension(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("document extension must not be empty")
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	if len(s) == 1 || strings.ContainsAny(s[1:], "./\\") {
		return "", fmt.Errorf("invalid document extension %q", raw)
	}
	return s, nil
}

// ValidatePaths ensures a destination root (output or failed) is not inside
// (or equal to) the resolved input root. This prevents the pipeline from
// discovering its own output or routing a file onto itself. Both arguments
// must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, destAbs string) error {
	sep := string(filepath.Separator)
	if destAbs == inputAbs || strings.HasPrefix(destAbs+sep, inputAbs+sep) {
		return errors.New("output and failed directories must not be inside the input directory")
	}
	return nil
}
