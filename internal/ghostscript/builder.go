package ghostscript

import (
	"github.com/backmassage/pdfarc/internal/config"
)

// BuildArgs returns the full Ghostscript command vector (binary first) for
// converting src to a PDF/A file at dst. The device settings follow the
// legacy pyPDFA invocation: pdfwrite with -dPDFA, DeviceRGB process color,
// and compatibility policy 1 (drop features PDF/A forbids instead of
// aborting the whole document).
func BuildArgs(cfg *config.Config, src, dst string) []string {
	return []string{
		cfg.GsBinary,
		"-dQUIET",
		"-dPDFA",
		"-dBATCH",
		"-dNOPAUSE",
		"-dNOOUTERSAVE",
		"-sDEVICE=pdfwrite",
		"-sProcessColorModel=DeviceRGB",
		"-sPDFACompatibilityPolicy=1",
		"-sOutputFile=" + dst,
		src,
	}
}
