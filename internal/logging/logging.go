// Package logging builds the structured logger shared by all commands.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every log line.
const Prefix = "create-project"

// New returns an slog.Logger writing to w through a charmbracelet/log
// handler. Verbose enables debug level with timestamps and callers.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
