// Package ghostscript wraps the external conversion primitive: it builds and
// executes Ghostscript PDF/A commands, probes page counts via pdfinfo, and
// classifies every result into an [Outcome].
//
// The package is the per-file isolation boundary. [Invoker.Convert] never
// returns an error: exec failures, timeouts, corrupt inputs, and missing
// output files all come back as a failed Outcome with a captured diagnostic,
// so a misbehaving file can never unwind into the batch loop.
package ghostscript
