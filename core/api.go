// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Thin, deterministic public facade: identity, counters, Stats and the
//       Handle value used to pass nodes across package boundaries.
// Policy:
//   - No algorithms here.
//   - Every exported function documents complexity and locking strategy.

package core

// GraphStats is a read-only snapshot of a WorldGraph's sizes.
type GraphStats struct {
	ID          string
	CellSize    int
	Nodes       int
	Edges       int
	Connections int
	Markers     int
	// NodesByType counts nodes per exact NodeType.
	NodesByType map[NodeType]int
}

// Handle names a node together with the graph that owns it. Algorithms that
// accept two Handles treat different graphs as disconnected.
type Handle struct {
	Graph *WorldGraph
	Ref   NodeRef
}

// At returns the handle of ref in g.
func (g *WorldGraph) At(ref NodeRef) Handle { return Handle{Graph: g, Ref: ref} }

// Valid reports whether h resolves to a node.
func (h Handle) Valid() bool { return h.Graph != nil && h.Graph.HasNode(h.Ref) }

// SameGraph reports whether h and o live in the same WorldGraph.
func (h Handle) SameGraph(o Handle) bool { return h.Graph != nil && h.Graph == o.Graph }

// ID returns the graph identifier.
//
// Complexity:
//   - Time O(1), no locking (immutable after construction).
func (g *WorldGraph) ID() string { return g.id }

// CellSize returns the side of the spatial index cells.
//
// Complexity:
//   - Time O(1), no locking (immutable after construction).
func (g *WorldGraph) CellSize() int { return g.cellSize }

// NodeCount returns the number of nodes.
//
// Complexity:
//   - Time O(1), read lock.
func (g *WorldGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes) - 1
}

// ConnectionCount returns the number of connections.
//
// Complexity:
//   - Time O(1), read lock.
func (g *WorldGraph) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.conns)
}

// IsEmpty reports whether the graph holds no nodes.
func (g *WorldGraph) IsEmpty() bool { return g.NodeCount() == 0 }

// Nodes returns every node handle in insertion order.
//
// Complexity:
//   - Time O(V), read lock.
func (g *WorldGraph) Nodes() []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeRef, 0, len(g.nodes)-1)
	for i := 1; i < len(g.nodes); i++ {
		out = append(out, NodeRef(i))
	}

	return out
}

// Stats produces a deterministic snapshot of sizes and per-type counts.
//
// Implementation:
//   - Stage 1: Take the read lock once so all counters agree.
//   - Stage 2: Copy arena sizes and count the type index.
//
// Returns:
//   - *GraphStats: fresh value; callers may keep or mutate it.
//
// Determinism:
//   - Deterministic for a fixed graph state.
//
// Complexity:
//   - Time O(T) for T distinct types, Space O(T).
func (g *WorldGraph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		ID:          g.id,
		CellSize:    g.cellSize,
		Nodes:       len(g.nodes) - 1,
		Edges:       len(g.edges),
		Connections: len(g.conns),
		Markers:     len(g.processed),
		NodesByType: make(map[NodeType]int, len(g.byType)),
	}
	for t, refs := range g.byType {
		stats.NodesByType[t] = len(refs)
	}

	return &stats
}
