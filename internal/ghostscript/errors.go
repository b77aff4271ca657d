package ghostscript

import "regexp"

// Pre-compiled regex for classifying Ghostscript stderr output. A match
// means the source document itself is broken; any other failure is
// attributed to the converter.
var reCorruptInput = regexp.MustCompile(
	`(?i)file has been damaged|` +
		`couldn'?t repair|` +
		`error reading a content stream|` +
		`xref table|trailer (dictionary|is not found)|` +
		`not (a|recognized as a) PDF file|` +
		`no objects were found|` +
		`/ioerror in|/invalidfileaccess in|/undefined in`)

// MatchCorruptInput reports whether stderr points at a damaged or
// unreadable source document.
func MatchCorruptInput(stderr string) bool {
	return reCorruptInput.MatchString(stderr)
}

// Classify maps a failed invocation's stderr to a failure kind:
// corrupt-input when the document itself is at fault, converter-error for
// everything else.
func Classify(stderr string) FailureKind {
	if MatchCorruptInput(stderr) {
		return FailCorruptInput
	}
	return FailConverter
}
