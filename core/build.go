// SPDX-License-Identifier: MIT
//
// File: build.go
// Role: Marker-guarded construction. A Build runs its callback under the
//       graph's write lock, so "skip if processed, else insert and mark" is
//       one critical section for concurrent tile workers.
// Concurrency:
//   - Tx is valid only inside the Build callback that received it.
//   - Tx methods never lock; calling WorldGraph methods from inside the
//     callback deadlocks.

package core

import (
	"github.com/katalvlaran/worldgraph/geom"
)

// Tx is the unlocked view of a WorldGraph handed to a Build callback.
type Tx struct {
	g *WorldGraph
}

// Build runs fn once per marker.
//
// Implementation:
//   - Stage 1: Take the write lock.
//   - Stage 2: Return (false, nil) if marker was already processed.
//   - Stage 3: Run fn; on success record marker and return (true, nil).
//
// Errors:
//   - Whatever fn returns. The marker stays unprocessed so a later Build can
//     retry; inserts fn made before failing are kept.
//
// Complexity:
//   - O(1) plus fn.
func (g *WorldGraph) Build(marker string, fn func(tx *Tx) error) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, done := g.processed[marker]; done {
		g.logger.Debug("marker skipped", "graph", g.id, "marker", marker)
		return false, nil
	}
	if err := fn(&Tx{g: g}); err != nil {
		return false, err
	}
	g.processed[marker] = struct{}{}
	g.logger.Debug("marker processed", "graph", g.id, "marker", marker)

	return true, nil
}

// Processed reports whether marker was recorded.
func (g *WorldGraph) Processed(marker string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, done := g.processed[marker]

	return done
}

// MarkProcessed records marker and reports whether it was new.
func (g *WorldGraph) MarkProcessed(marker string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, done := g.processed[marker]; done {
		return false
	}
	g.processed[marker] = struct{}{}

	return true
}

// Graph returns the graph the transaction writes to.
func (tx *Tx) Graph() *WorldGraph { return tx.g }

// AddNode is WorldGraph.AddNode without locking.
func (tx *Tx) AddNode(n Node) (NodeRef, error) { return tx.g.addNodeLocked(n) }

// AddConnection is WorldGraph.AddConnection without locking.
func (tx *Tx) AddConnection(spec ConnectionSpec) (ConnRef, error) {
	return tx.g.addConnectionLocked(spec)
}

// Node returns a copy of the node behind ref.
func (tx *Tx) Node(ref NodeRef) (Node, error) {
	n, err := tx.g.nodeLocked(ref)

	return n.clone(), err
}

// NodeByID resolves a node ID.
func (tx *Tx) NodeByID(id string) (NodeRef, bool) {
	ref, ok := tx.g.byID[id]

	return ref, ok
}

// NodeAt resolves an exact position.
func (tx *Tx) NodeAt(p geom.Vec3) (NodeRef, bool) {
	ref, ok := tx.g.byPosition[p]

	return ref, ok
}

// SetNodeType is WorldGraph.SetNodeType without locking.
func (tx *Tx) SetNodeType(ref NodeRef, t NodeType) error { return tx.g.setNodeTypeLocked(ref, t) }

// SetData is WorldGraph.SetData without locking.
func (tx *Tx) SetData(ref NodeRef, key, value string) error {
	return tx.g.setDataLocked(ref, key, value)
}

// NodesInRect is WorldGraph.NodesInRect without locking.
func (tx *Tx) NodesInRect(r geom.Rect, types ...NodeType) []NodeRef {
	return tx.g.nodesInRectLocked(r, types)
}

// NodesInRange is WorldGraph.NodesInRange without locking.
func (tx *Tx) NodesInRange(p geom.Vec2, radius float64, types ...NodeType) []NodeRef {
	return tx.g.nodesInRangeLocked(p, radius, types)
}

// PerimeterNodes is WorldGraph.PerimeterNodes without locking.
func (tx *Tx) PerimeterNodes(parent NodeRef) []NodeRef { return tx.g.perimeterLocked(parent) }
