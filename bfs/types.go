package bfs

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/worldgraph/core"
)

// Sentinel errors for hop searches.
var (
	// ErrNotJunction is returned when a hop search starts or ends on a node
	// that is neither an endpoint nor a crossing. It wraps core.ErrInvalidArgument.
	ErrNotJunction = fmt.Errorf("bfs: node is not an endpoint or crossing: %w", core.ErrInvalidArgument)

	// ErrNodeNotFound is returned when a handle does not resolve.
	ErrNodeNotFound = fmt.Errorf("bfs: %w", core.ErrNodeNotFound)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures a hop search via functional arguments.
type Option func(*Options)

// Options holds the parameters of a hop search.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued route.
	Ctx context.Context

	// Bridging lets perimeter nodes of one parent stand in for each other.
	// Honoured by ShortestPathByHops only.
	Bridging bool

	// Types is an exact-match post-filter for ReachableByHops.
	Types []core.NodeType

	// OnEnqueue is called for every route put on the queue.
	OnEnqueue func(p core.Path)

	err error
}

// DefaultOptions returns Options with a background context and no bridging,
// filter or hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), OnEnqueue: func(core.Path) {}}
}

// WithContext sets a context for cancellation. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithBridging enables perimeter bridging.
func WithBridging() Option {
	return func(o *Options) { o.Bridging = true }
}

// WithTypeFilter keeps only nodes whose type equals one of types.
func WithTypeFilter(types ...core.NodeType) Option {
	return func(o *Options) { o.Types = append(o.Types, types...) }
}

// WithOnEnqueue installs a hook observing every queued route.
// A nil hook is an option violation.
func WithOnEnqueue(fn func(p core.Path)) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: nil OnEnqueue", ErrOptionViolation)
			return
		}
		o.OnEnqueue = fn
	}
}

func (o Options) keep(t core.NodeType) bool {
	return len(o.Types) == 0 || slices.Contains(o.Types, t)
}
