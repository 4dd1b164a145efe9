// SPDX-License-Identifier: MIT
//
// File: methods_query.go
// Role: Spatial, type and relation queries backed by the cell and type indices.
// Determinism:
//   - Node lists are sorted by NodeRef unless stated otherwise.
//   - NodesInRange sorts by ground distance, ties by NodeRef.
// Complexity:
//   - Spatial queries visit the occupied cells overlapping the query area:
//     the covered block when it is smaller than the index, otherwise the
//     index filtered by the block. Either way O(min(block, occupied) + k).

package core

import (
	"cmp"
	"math"
	"slices"

	"github.com/katalvlaran/worldgraph/geom"
)

// NodesInRect returns nodes whose ground position lies in r (half-open).
// With types given, only nodes of exactly those types are returned.
func (g *WorldGraph) NodesInRect(r geom.Rect, types ...NodeType) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodesInRectLocked(r, types)
}

// NodesInRange returns nodes within ground distance radius of p, nearest first.
func (g *WorldGraph) NodesInRange(p geom.Vec2, radius float64, types ...NodeType) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodesInRangeLocked(p, radius, types)
}

// NodesOfType returns every node whose type equals one of types.
// Custom types match on the subtype name.
func (g *WorldGraph) NodesOfType(types ...NodeType) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []NodeRef
	for _, t := range dedupTypes(types) {
		out = append(out, g.byType[t]...)
	}
	slices.Sort(out)

	return out
}

// NodeTypes lists the distinct node types present, ordered by NodeType.Less.
func (g *WorldGraph) NodeTypes() []NodeType {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeType, 0, len(g.byType))
	for t := range g.byType {
		out = append(out, t)
	}
	slices.SortFunc(out, compareTypes)

	return out
}

// CustomTypes lists the distinct Custom subtype names present, sorted.
func (g *WorldGraph) CustomTypes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []string
	for t := range g.byType {
		if t.Base == Custom {
			out = append(out, t.Custom)
		}
	}
	slices.Sort(out)

	return out
}

// ConnectionsInRect returns connections with an edge crossing any grid cell
// that r overlaps, sorted by ConnRef.
func (g *WorldGraph) ConnectionsInRect(r geom.Rect) []ConnRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := make(map[ConnRef]struct{})
	var out []ConnRef
	for _, cell := range coveredCells(geom.RangeForRect(r, g.cellSize), g.connsByCell) {
		for _, c := range g.connsByCell[cell] {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	slices.Sort(out)

	return out
}

// ConnectionsByReference returns the connections a generator produced, in
// insertion order.
func (g *WorldGraph) ConnectionsByReference(reference string) []ConnRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return slices.Clone(g.connsByRef[reference])
}

// PerimeterNodes returns the perimeter nodes whose BelongsTo is parent.
func (g *WorldGraph) PerimeterNodes(parent NodeRef) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.perimeterLocked(parent)
}

// Members returns every node whose BelongsTo is parent, whatever its type.
func (g *WorldGraph) Members(parent NodeRef) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validNode(parent) {
		return nil
	}

	return slices.Clone(g.members[parent])
}

// HasDirectConnection reports whether a connection touching a also contains b.
func (g *WorldGraph) HasDirectConnection(a, b NodeRef) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validNode(a) || !g.validNode(b) {
		return false
	}
	for _, c := range g.incident[a] {
		if slices.Contains(g.incident[b], c) {
			return true
		}
	}

	return false
}

// Grouped reports whether a and b share a perimeter ring: one belongs to the
// other, or both belong to the same parent. At least one must have a parent.
func (g *WorldGraph) Grouped(a, b NodeRef) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validNode(a) || !g.validNode(b) {
		return false
	}
	pa, pb := g.nodes[a].BelongsTo, g.nodes[b].BelongsTo
	if pa == NoNode && pb == NoNode {
		return false
	}

	return pa == b || pb == a || pa == pb
}

func (g *WorldGraph) perimeterLocked(parent NodeRef) []NodeRef {
	if !g.validNode(parent) {
		return nil
	}
	var out []NodeRef
	for _, m := range g.members[parent] {
		if g.nodes[m].Type.IsPerimeter() {
			out = append(out, m)
		}
	}

	return out
}

func (g *WorldGraph) nodesInRectLocked(r geom.Rect, types []NodeType) []NodeRef {
	if r.Empty() {
		return nil
	}
	var out []NodeRef
	for _, cell := range coveredCells(geom.RangeForRect(r, g.cellSize), g.byCell) {
		g.eachInCell(cell, types, func(ref NodeRef) {
			if r.Contains(g.nodes[ref].Flat()) {
				out = append(out, ref)
			}
		})
	}
	slices.Sort(out)

	return out
}

func (g *WorldGraph) nodesInRangeLocked(p geom.Vec2, radius float64, types []NodeType) []NodeRef {
	if radius < 0 || math.IsNaN(radius) {
		return nil
	}
	type hit struct {
		ref  NodeRef
		dist float64
	}
	var hits []hit
	for _, cell := range coveredCells(geom.RangeForSquare(p, radius, g.cellSize), g.byCell) {
		g.eachInCell(cell, types, func(ref NodeRef) {
			if d := g.nodes[ref].Flat().Sub(p).Length(); d <= radius {
				hits = append(hits, hit{ref: ref, dist: d})
			}
		})
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}

		return cmp.Compare(a.ref, b.ref)
	})
	out := make([]NodeRef, len(hits))
	for i, h := range hits {
		out[i] = h.ref
	}

	return out
}

// coveredCells returns the cells of cr worth visiting in index. A block
// larger than the index is answered by filtering the index's keys instead
// of listing the block.
func coveredCells[V any](cr geom.CellRange, index map[geom.Cell]V) []geom.Cell {
	if cr.Len() <= len(index) {
		return cr.Cells()
	}
	out := make([]geom.Cell, 0, len(index))
	for cell := range index {
		if cr.Contains(cell) {
			out = append(out, cell)
		}
	}

	return out
}

func (g *WorldGraph) eachInCell(cell geom.Cell, types []NodeType, fn func(NodeRef)) {
	cellTypes, ok := g.byCell[cell]
	if !ok {
		return
	}
	if len(types) == 0 {
		for _, refs := range cellTypes {
			for _, ref := range refs {
				fn(ref)
			}
		}

		return
	}
	for _, t := range dedupTypes(types) {
		for _, ref := range cellTypes[t] {
			fn(ref)
		}
	}
}

func dedupTypes(types []NodeType) []NodeType {
	out := slices.Clone(types)
	slices.SortFunc(out, compareTypes)

	return slices.Compact(out)
}

func compareTypes(a, b NodeType) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
