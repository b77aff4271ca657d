package config

// This file implements CLI flag parsing and help text.
// The tool runs with no required arguments; every flag overrides a default
// or a config-file value. Negated flags (e.g. --no-color) are applied after
// Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag or stray positional
// arguments).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("pdfarc", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var negated negatedFlags

	definePathFlags(fs, cfg)
	defineToolFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "pdfarc v"+version)
		os.Exit(0)
	}

	if len(fs.Args()) != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	cfg.FailedDir = NormalizeDirArg(cfg.FailedDir)
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (noColor) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers the three directory-root overrides.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.InputDir, "in", cfg.InputDir, "Input directory root")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory root (converted PDF/A)")
	fs.StringVar(&cfg.FailedDir, "failed", cfg.FailedDir, "Failed directory root (unconverted originals)")
}

// defineToolFlags registers external tool and timeout overrides.
func defineToolFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.GsBinary, "gs", cfg.GsBinary, "Ghostscript executable")
	fs.StringVar(&cfg.PdfInfoBinary, "pdfinfo", cfg.PdfInfoBinary, "pdfinfo executable (page counts)")
	fs.DurationVar(&cfg.FileTimeout, "timeout", cfg.FileTimeout, "Per-file conversion timeout (0 disables)")
}

// defineBehaviorFlags registers dry-run and clean.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not convert or move files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.Clean, "clean", false, "Empty output/failed roots of files before the run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, logs.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Progress log file (empty disables)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
	fs.StringVar(&cfg.TraceFile, "trace-log", cfg.TraceFile, "Diagnostic detail log file (empty disables)")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "pdfarc v" + version + " — batch PDF to PDF/A archival converter"},
		{"", ""},
		{"  pdfarc [OPTIONS]", ""},
		{"", ""},
		{"Directories", ""},
		{"  --in <dir>", "Input root (default: PDFA_IN)"},
		{"  --out <dir>", "Output root for PDF/A files (default: PDFA_OUT)"},
		{"  --failed <dir>", "Failed root for originals (default: PDF_Not_Converted)"},
		{"", ""},
		{"Conversion", ""},
		{"  --gs <path>", "Ghostscript executable (default: gs)"},
		{"  --pdfinfo <path>", "pdfinfo executable for page counts (default: pdfinfo)"},
		{"  --timeout <dur>", "Per-file timeout, e.g. 10m, 90s; 0 disables (default: 10m)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not convert or move files"},
		{"  --clean", "Empty output/failed roots of files before the run"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Progress log file (default: pdf_conversion.log)"},
		{"  --trace-log <path>", "Diagnostic log file (default: pdf_conversion_trace.log)"},
		{"  -c, --check", "System diagnostics (Ghostscript, pdfinfo)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Config file", ""},
		{"  " + DefaultConfigFile, "Optional YAML overrides, loaded from the working directory"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
