// Package logging provides the two process-wide log channels: a leveled,
// optionally colored progress log (console plus file sink) and a separate
// diagnostic trace log that carries full failure detail. Operators scan the
// progress channel; the trace channel exists so failure diagnostics never
// flood it.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/pdfarc/internal/config"
	"github.com/backmassage/pdfarc/internal/term"
)

// Logger writes the progress channel to the console and an optional file
// sink, and the diagnostic channel to its own file sink. Both sinks are
// append-only and opened once at startup; call Close when done.
type Logger struct {
	mu       sync.Mutex
	progress *os.File // progress/summary sink, nil when disabled
	trace    *os.File // diagnostic detail sink, nil when disabled
}

// NewLogger configures colors from cfg and opens the progress and trace
// sinks when their paths are set. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{}
	var err error
	if l.progress, err = openSink(cfg.LogFile); err != nil {
		return nil, err
	}
	if l.trace, err = openSink(cfg.TraceFile); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

// openSink opens path for appending, creating parent directories.
// An empty path yields a nil file (sink disabled).
func openSink(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// Close flushes and closes both file sinks.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, f := range []**os.File{&l.progress, &l.trace} {
		if *f != nil {
			if err := (*f).Close(); err != nil && first == nil {
				first = err
			}
			*f = nil
		}
	}
	return first
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.progress != nil {
		_, _ = io.WriteString(l.progress, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}

// Trace writes to the diagnostic sink only. It never reaches the console or
// the progress file, so full stderr captures and stack-level detail stay off
// the operator-facing channel. No-op when the trace sink is disabled.
func (l *Logger) Trace(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.trace == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	_, _ = io.WriteString(l.trace, ts+" [TRACE] "+fmt.Sprintf(format, args...)+"\n")
}
