// Package cli implements the worldgraph command-line interface.
//
// The CLI loads YAML network descriptions into an in-process registry and
// answers routing and spatial questions about them. It is built on cobra
// and logs through charmbracelet/log.
//
// # Commands
//
//   - path:      weighted shortest route between two nodes
//   - hops:      fewest-hop route between two junctions, optionally bridged
//   - reach:     nodes within a weight or hop budget
//   - query:     nodes inside a rectangle or near a point
//   - connected: whether two nodes are linked at all
//   - clusters:  bridged components
//   - stats:     sizes, per-type counts and load metrics
//   - export:    normalized YAML of a loaded document
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise the
// level comes from the config file. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
