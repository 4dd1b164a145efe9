// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// api.go - public entry points that put a Document into a graph.
//
// Design contract:
//   - Documents are validated before the first insert.
//   - Apply is one Build: all of the document or, on error, a prefix of it
//     with the marker left open.
//   - ApplyTiled is one Build per (phase, tile): parents land before their
//     members, every node before any connection.
//   - Connections are inserted in document order by both loaders, so each
//     node's connection order and every search tie-break match Apply.

package builder

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/geom"
	"github.com/katalvlaran/worldgraph/tiles"
)

// Apply inserts doc into g under a single Build marker and reports whether
// it ran. A second Apply with the same marker returns (false, nil).
//
// Errors:
//   - ErrNilGraph, ErrInvalidDocument, ErrUnknownNode, ErrParentCycle.
//   - core sentinels (ErrNodeExists, ErrPositionTaken, ...) wrapped with
//     the offending node or connection ID.
func Apply(g *core.WorldGraph, doc *Document, opts ...BuilderOption) (bool, error) {
	if g == nil {
		return false, ErrNilGraph
	}
	if err := validateDocument(MethodApply, doc); err != nil {
		return false, err
	}
	cfg := newBuilderConfig(opts...)
	marker := cfg.markerFor(doc)

	ok, err := g.Build(marker, func(tx *core.Tx) error {
		for _, level := range levels(doc) {
			for _, i := range level {
				if _, err := addNode(tx, MethodApply, doc.Nodes[i]); err != nil {
					return err
				}
			}
		}
		for _, cd := range doc.Connections {
			if _, err := addConnection(tx, MethodApply, cd, cfg); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}
	cfg.logger.Debug("document applied", "graph", g.ID(), "marker", marker, "ran", ok,
		"nodes", len(doc.Nodes), "connections", len(doc.Connections))

	return ok, nil
}

// Tiles lists, ordered by Z then X, the tiles of the given size that hold
// at least one document node.
func Tiles(doc *Document, size int) []tiles.Tile {
	set := make(map[tiles.Tile]struct{})
	for _, nd := range doc.Nodes {
		if len(nd.Pos) == 3 {
			set[tileOf(nd, size)] = struct{}{}
		}
	}
	out := make([]tiles.Tile, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b tiles.Tile) int {
		return cmp.Or(cmp.Compare(a.Z, b.Z), cmp.Compare(a.X, b.X))
	})

	return out
}

// Generators splits doc into tile generators to be run in the returned
// order: one per belongs_to depth for nodes, then one for connections. A
// node goes to the tile holding its position. Every connection goes to the
// anchor tile, the one holding the first node of the first connection, and
// is committed there in document order.
func Generators(doc *Document, opts ...BuilderOption) ([]tiles.Generator, error) {
	if err := validateDocument(MethodApplyTiled, doc); err != nil {
		return nil, err
	}
	cfg := newBuilderConfig(opts...)
	marker := cfg.markerFor(doc)
	index := make(map[string]int, len(doc.Nodes))
	for i, nd := range doc.Nodes {
		if nd.ID != "" {
			index[nd.ID] = i
		}
	}

	var gens []tiles.Generator
	for depth, level := range levels(doc) {
		gens = append(gens, tiles.Func{
			ID: fmt.Sprintf("%s/nodes/%d", marker, depth),
			Fn: func(_ context.Context, _ *core.WorldGraph, t tiles.Tile) (tiles.Commit, error) {
				var mine []NodeDoc
				for _, i := range level {
					if tileOf(doc.Nodes[i], t.Size) == t {
						mine = append(mine, doc.Nodes[i])
					}
				}
				if len(mine) == 0 {
					return nil, nil
				}

				return func(tx *core.Tx) error {
					for _, nd := range mine {
						if _, err := addNode(tx, MethodApplyTiled, nd); err != nil {
							return err
						}
					}
					return nil
				}, nil
			},
		})
	}
	gens = append(gens, tiles.Func{
		ID: marker + "/connections",
		Fn: func(_ context.Context, _ *core.WorldGraph, t tiles.Tile) (tiles.Commit, error) {
			if len(doc.Connections) == 0 {
				return nil, nil
			}
			if anchor := tileOf(doc.Nodes[index[doc.Connections[0].Nodes[0]]], t.Size); anchor != t {
				return nil, nil
			}

			return func(tx *core.Tx) error {
				for _, cd := range doc.Connections {
					if _, err := addConnection(tx, MethodApplyTiled, cd, cfg); err != nil {
						return err
					}
				}
				return nil
			}, nil
		},
	})

	return gens, nil
}

// ApplyTiled inserts doc into g through r, one phase after the other, and
// sums the phase reports. A nil r gets a default Runner. Re-running skips
// every tile that already committed.
func ApplyTiled(ctx context.Context, g *core.WorldGraph, doc *Document, r *tiles.Runner, opts ...BuilderOption) (tiles.Report, error) {
	var total tiles.Report
	if g == nil {
		return total, ErrNilGraph
	}
	gens, err := Generators(doc, opts...)
	if err != nil {
		return total, err
	}
	if r == nil {
		if r, err = tiles.NewRunner(); err != nil {
			return total, err
		}
	}
	cfg := newBuilderConfig(opts...)
	grid := Tiles(doc, cfg.tileSize)

	for _, gen := range gens {
		rep, err := r.Run(ctx, g, gen, grid)
		total.Built += rep.Built
		total.Skipped += rep.Skipped
		if err != nil {
			return total, err
		}
	}
	cfg.logger.Debug("document applied in tiles", "graph", g.ID(), "tiles", len(grid),
		"phases", len(gens), "built", total.Built, "skipped", total.Skipped)

	return total, nil
}

// Load reads the document at path into a new graph named after it, with
// the document's cell size and the configured logger.
func Load(path string, opts ...BuilderOption) (*core.WorldGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodLoad, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, err
	}
	cfg := newBuilderConfig(opts...)
	g := core.NewWorldGraph(doc.Graph, core.WithCellSize(doc.CellSize), core.WithLogger(cfg.logger))
	if _, err = Apply(g, doc, opts...); err != nil {
		return nil, err
	}

	return g, nil
}

func tileOf(nd NodeDoc, size int) tiles.Tile {
	return tiles.For(geom.Flat(nd.position()), size)
}
