package dijkstra

import (
	"errors"
	"slices"

	"github.com/katalvlaran/worldgraph/core"
)

// Sentinel errors returned by Reachable.
var (
	// ErrBadMaxDistance indicates a negative or NaN weight budget.
	ErrBadMaxDistance = errors.New("dijkstra: max distance must be non-negative")

	// ErrSourceNotFound indicates the source handle does not resolve.
	ErrSourceNotFound = errors.New("dijkstra: source node not found")
)

// Options configures Reachable.
//
// Types – exact-match post-filter over the reached set; empty keeps all.
// Filtered-out nodes are still expanded as waypoints.
type Options struct {
	Types []core.NodeType
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithTypeFilter keeps only nodes whose type equals one of types.
func WithTypeFilter(types ...core.NodeType) Option {
	return func(o *Options) {
		o.Types = append(o.Types, types...)
	}
}

// DefaultOptions returns Options with no filter.
func DefaultOptions() Options {
	return Options{}
}

// keep reports whether t passes the filter.
func (o Options) keep(t core.NodeType) bool {
	return len(o.Types) == 0 || slices.Contains(o.Types, t)
}
