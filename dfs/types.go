package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/worldgraph/core"
)

var (
	// ErrNodeNotFound indicates that the start handle does not resolve.
	ErrNodeNotFound = fmt.Errorf("dfs: %w", core.ErrNodeNotFound)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dfs: invalid option supplied")
)

// Option configures optional behavior of a traversal.
type Option func(*Options)

// Options holds configurable parameters for a traversal.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// Bridging links perimeter nodes with their parent.
	Bridging bool

	// OnVisit, if non-nil, is invoked when a node is first discovered.
	// Returning an error aborts the traversal with that error.
	OnVisit func(n core.NodeRef) error

	// Stop, if non-nil, is asked before every step from cur to next.
	// Returning true halts the whole traversal; Result.Stopped reports it.
	Stop func(cur, next core.NodeRef) bool

	err error
}

// DefaultOptions returns Options with a background context, no bridging
// and no hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the Context for the traversal. A nil context has no effect.
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

// WithOnVisit installs fn as a pre-order hook. A nil fn is an option violation.
func WithOnVisit(fn func(n core.NodeRef) error) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: nil OnVisit", ErrOptionViolation)
			return
		}
		o.OnVisit = fn
	}
}

// WithStop installs an early-exit predicate. A nil fn is an option violation.
func WithStop(fn func(cur, next core.NodeRef) bool) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: nil Stop", ErrOptionViolation)
			return
		}
		o.Stop = fn
	}
}

// Result captures the outcome of a traversal.
type Result struct {
	// Order records nodes in discovery (pre-order) sequence.
	Order []core.NodeRef

	// Parent maps each discovered node to the node it was reached from.
	// The start node is absent.
	Parent map[core.NodeRef]core.NodeRef

	// Visited flags which nodes were reached.
	Visited map[core.NodeRef]bool

	// Stopped reports that Stop returned true; StoppedAt is the node it
	// was asked about.
	Stopped   bool
	StoppedAt core.NodeRef
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o, o.err
}
