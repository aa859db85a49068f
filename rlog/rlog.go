// Package rlog is the run logger: a small, dependency-free writer for the
// cold-path diagnostics emitted around a pipeline run (startup, shutdown,
// config errors, result-store failures). It mirrors the reference
// codebase's debug package in spirit — a prefix/message split, one line per
// call, no structured fields — but favors fmt's formatting over hand-rolled
// string concatenation: every call site here runs once at startup, once per
// monitor tick, or once at shutdown, never on the per-message hot path, so
// the allocation the reference codebase goes out of its way to avoid is not
// a concern.
package rlog

import (
	"fmt"
	"io"
	"os"
)

// Writer is the destination for all rlog output. Tests may redirect it.
var Writer io.Writer = os.Stderr

// Info logs a tagged informational line: "[tag] message".
func Info(tag, msg string) {
	fmt.Fprintf(Writer, "[%s] %s\n", tag, msg)
}

// Infof logs a tagged, formatted informational line.
func Infof(tag, format string, args ...any) {
	Info(tag, fmt.Sprintf(format, args...))
}

// Error logs a tagged error line: "[tag] error: err".
func Error(tag string, err error) {
	fmt.Fprintf(Writer, "[%s] error: %v\n", tag, err)
}
