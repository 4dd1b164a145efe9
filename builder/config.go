// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   • marker   = MarkerPrefix + Document.Graph
//   • weightFn = nil            (core's ground-plane distance)
//   • tileSize = DefaultTileSize
//   • logger   = discard

package builder

import (
	"io"

	"github.com/charmbracelet/log"
)

// builderConfig aggregates every knob the entry points read.
type builderConfig struct {
	marker   string
	weightFn WeightFn
	tileSize int
	logger   *log.Logger
}

// newBuilderConfig applies opts in order over the defaults; last wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		tileSize: DefaultTileSize,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// markerFor resolves the Build marker for doc.
func (c builderConfig) markerFor(doc *Document) string {
	if c.marker != "" {
		return c.marker
	}

	return MarkerPrefix + doc.Graph
}
