package ghostscript

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/backmassage/pdfarc/internal/config"
)

var rePages = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)

// PageCount probes path with pdfinfo and parses the "Pages:" field.
// Returns PageCountUnknown with a non-nil error when the probe binary is
// unavailable, fails, or its output carries no page count.
func PageCount(ctx context.Context, cfg *config.Config, path string) (int, error) {
	out, err := exec.CommandContext(ctx, cfg.PdfInfoBinary, path).Output()
	if err != nil {
		return PageCountUnknown, err
	}
	return parsePageCount(string(out))
}

// parsePageCount extracts the page count from pdfinfo output.
func parsePageCount(out string) (int, error) {
	m := rePages.FindStringSubmatch(out)
	if m == nil {
		return PageCountUnknown, errors.New("no Pages field in pdfinfo output")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return PageCountUnknown, err
	}
	return n, nil
}
