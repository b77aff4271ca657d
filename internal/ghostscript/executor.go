package ghostscript

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/backmassage/pdfarc/internal/config"
)

// ExecResult holds the outcome of a single Ghostscript invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs the command described by args (binary first). When verbose is
// enabled, stderr is tee'd to os.Stderr in real time; otherwise it is
// captured silently for failure classification. Stdout is discarded, the
// interpreter's chatter is not useful here.
func Execute(ctx context.Context, cfg *config.Config, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = io.Discard

	var stderrBuf bytes.Buffer
	if cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
