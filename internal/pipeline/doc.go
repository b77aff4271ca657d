// Package pipeline orchestrates the batch: it discovers document files
// under the input root, drives each one through the external converter,
// routes sources to the output or failed root by outcome, and reports
// "i of N" progress with a final summary.
//
// Failure containment: every per-file error terminates in that file's
// outcome or routing result. Only startup failures (a root that cannot be
// created, an unreadable input root) surface as run-level errors.
package pipeline
