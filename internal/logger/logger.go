// Package logger builds the diagnostic logger. Diagnostics always go to a
// separate writer (stderr in production) so that notices and summaries on
// stdout stay clean.
package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every diagnostic line.
const Prefix = "version-register"

// New returns a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, false)
}
