// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs; the
//     entry points themselves never panic.

package builder

import (
	"github.com/charmbracelet/log"
)

// BuilderOption customizes Apply, ApplyTiled and Load.
type BuilderOption func(*builderConfig)

// WithMarker overrides the Build marker. Panics on an empty marker.
func WithMarker(marker string) BuilderOption {
	if marker == "" {
		panic("builder: WithMarker(\"\")")
	}
	return func(c *builderConfig) { c.marker = marker }
}

// WithWeightFn computes weights for connections that omit them.
// Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) { c.weightFn = fn }
}

// WithTileSize sets the ApplyTiled tile edge. Panics on size <= 0.
func WithTileSize(size int) BuilderOption {
	if size <= 0 {
		panic("builder: WithTileSize(<=0)")
	}
	return func(c *builderConfig) { c.tileSize = size }
}

// WithLogger sets the logger; Load also hands it to the new graph.
// Panics on nil.
func WithLogger(l *log.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) { c.logger = l }
}
