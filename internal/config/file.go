package config

// This file implements the optional YAML config file layer. The file is
// loaded before flag parsing, so flags always win over file values and
// file values win over built-in defaults.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// fileConfig mirrors the subset of Config that may be set from pdfarc.yaml.
// Zero values mean "not set"; only set fields override the current Config.
type fileConfig struct {
	InputDir    string   `yaml:"input_dir"`
	OutputDir   string   `yaml:"output_dir"`
	FailedDir   string   `yaml:"failed_dir"`
	Ghostscript string   `yaml:"ghostscript"`
	PdfInfo     string   `yaml:"pdfinfo"`
	Extensions  []string `yaml:"extensions"`
	FileTimeout string   `yaml:"file_timeout"`
	LogFile     string   `yaml:"log_file"`
	TraceFile   string   `yaml:"trace_file"`
}

// LoadFile applies overrides from the YAML file at path to cfg. A missing
// file is not an error: the defaults simply stand. Malformed YAML or an
// unparseable timeout is an error.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.InputDir != "" {
		cfg.InputDir = NormalizeDirArg(fc.InputDir)
	}
	if fc.OutputDir != "" {
		cfg.OutputDir = NormalizeDirArg(fc.OutputDir)
	}
	if fc.FailedDir != "" {
		cfg.FailedDir = NormalizeDirArg(fc.FailedDir)
	}
	if fc.Ghostscript != "" {
		cfg.GsBinary = fc.Ghostscript
	}
	if fc.PdfInfo != "" {
		cfg.PdfInfoBinary = fc.PdfInfo
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.TraceFile != "" {
		cfg.TraceFile = fc.TraceFile
	}
	if fc.FileTimeout != "" {
		d, err := time.ParseDuration(fc.FileTimeout)
		if err != nil {
			return fmt.Errorf("invalid file_timeout %q in %s: %w", fc.FileTimeout, path, err)
		}
		cfg.FileTimeout = d
	}
	return nil
}
