package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/worldgraph/core"
)

var (
	// ErrNilGenerator is returned when Run is given no generator.
	ErrNilGenerator = errors.New("tiles: generator is nil")

	// ErrNilGraph is returned when Run is given no graph.
	ErrNilGraph = errors.New("tiles: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("tiles: invalid option supplied")
)

// Commit applies a planned tile to the graph. It runs under the graph's
// write lock and must only use tx.
type Commit func(tx *core.Tx) error

// Generator plans the content of one tile.
type Generator interface {
	// Name identifies the generator in markers, logs and metrics.
	Name() string

	// Plan computes the tile's content. It may read g but must not write
	// to it. A nil Commit with a nil error marks the tile as done with
	// nothing to add.
	Plan(ctx context.Context, g *core.WorldGraph, t Tile) (Commit, error)
}

// Func adapts a function to a Generator.
type Func struct {
	ID string
	Fn func(ctx context.Context, g *core.WorldGraph, t Tile) (Commit, error)
}

// Name returns f.ID.
func (f Func) Name() string { return f.ID }

// Plan calls f.Fn.
func (f Func) Plan(ctx context.Context, g *core.WorldGraph, t Tile) (Commit, error) {
	return f.Fn(ctx, g, t)
}

// Option configures a Runner.
type Option func(*Options)

// Options holds Runner parameters.
type Options struct {
	// Workers caps concurrent Plan calls. Zero or less means one per tile.
	Workers int

	// Logger receives per-tile debug lines.
	Logger *log.Logger

	// Registerer receives the Runner's collectors. Nil keeps them private.
	Registerer prometheus.Registerer

	err error
}

// DefaultOptions returns four workers, a discarding logger and no registerer.
func DefaultOptions() Options {
	return Options{
		Workers: 4,
		Logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// WithWorkers caps concurrent planning. Negative values are a violation.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: workers %d", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRegisterer registers the Runner's collectors on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) { o.Registerer = reg }
}

// Report counts what a Run did.
type Report struct {
	Built   int
	Skipped int
}
