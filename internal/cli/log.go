// Package cli implements the deskgrid command-line interface.
//
// Every command opens the configured dashboard, runs one or more layout
// operations through its Store, and lets autosave persist the result. The
// CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - init: write a config file and start an empty dashboard
//   - show: render the grid, or print it as JSON
//   - add, move, resize, remove, lock, unlock, settings: single operations
//   - apply: run a JSON or YAML operation script
//   - constraints: list widget size limits
//   - export, import: move dashboards in and out as JSON documents
//   - serve: expose the dashboard over HTTP
//   - board: edit the dashboard interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of a multi-step command with elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Applied 4 operations (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
