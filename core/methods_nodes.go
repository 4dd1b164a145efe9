// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node insertion, lookup and in-place reclassification.
// Concurrency:
//   - Exported methods lock; *Locked helpers assume the caller holds g.mu.

package core

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/google/uuid"

	"github.com/katalvlaran/worldgraph/geom"
)

// AddNode inserts n and returns its handle.
//
// An empty ID is derived from n.Seed(). BelongsTo must be unset (NoNode)
// or a node of this graph. Positions are unique per graph.
//
// Errors: ErrInvalidArgument, ErrNodeExists, ErrPositionTaken, ErrNodeNotFound.
// Complexity: O(1) amortized.
func (g *WorldGraph) AddNode(n Node) (NodeRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addNodeLocked(n)
}

// Node returns a copy of the node behind ref.
func (g *WorldGraph) Node(ref NodeRef) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.nodeLocked(ref)
	if err != nil {
		return Node{}, err
	}

	return n.clone(), nil
}

// NodeByID resolves a node ID to its handle.
func (g *WorldGraph) NodeByID(id string) (NodeRef, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ref, ok := g.byID[id]

	return ref, ok
}

// NodeAt resolves an exact position to its handle.
func (g *WorldGraph) NodeAt(p geom.Vec3) (NodeRef, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ref, ok := g.byPosition[p]

	return ref, ok
}

// HasNode reports whether ref resolves in g.
func (g *WorldGraph) HasNode(ref NodeRef) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.validNode(ref)
}

// SetNodeType reclassifies a node, e.g. a Section that became a Crossing
// when a second connection joined it. The type index is updated.
func (g *WorldGraph) SetNodeType(ref NodeRef, t NodeType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.setNodeTypeLocked(ref, t)
}

// SetData stores an annotation on a node. An empty value deletes the key.
func (g *WorldGraph) SetData(ref NodeRef, key, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.setDataLocked(ref, key, value)
}

func (g *WorldGraph) validNode(ref NodeRef) bool {
	return ref > NoNode && int(ref) < len(g.nodes)
}

func (g *WorldGraph) nodeIDUsed(id string) bool {
	_, used := g.byID[id]

	return used
}

func (g *WorldGraph) nodeLocked(ref NodeRef) (Node, error) {
	if !g.validNode(ref) {
		return Node{}, fmt.Errorf("%w: node %d in graph %q", ErrNodeNotFound, ref, g.id)
	}

	return g.nodes[ref], nil
}

func validType(t NodeType) error {
	if t.Base >= numBaseTypes {
		return fmt.Errorf("%w: base type %d", ErrInvalidArgument, t.Base)
	}
	if t.Base != Custom && t.Custom != "" {
		return fmt.Errorf("%w: subtype %q on non-custom type %s", ErrInvalidArgument, t.Custom, t.Base)
	}

	return nil
}

func validPosition(p geom.Vec3) bool {
	for _, f := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}

func (g *WorldGraph) addNodeLocked(n Node) (NodeRef, error) {
	if err := validType(n.Type); err != nil {
		return NoNode, err
	}
	if !validPosition(n.Position) {
		return NoNode, fmt.Errorf("%w: position %v", ErrInvalidArgument, n.Position)
	}
	if n.Radius < 0 || math.IsNaN(n.Radius) {
		return NoNode, fmt.Errorf("%w: radius %v", ErrInvalidArgument, n.Radius)
	}
	if n.BelongsTo != NoNode && !g.validNode(n.BelongsTo) {
		return NoNode, fmt.Errorf("%w: parent %d", ErrNodeNotFound, n.BelongsTo)
	}
	if other, taken := g.byPosition[n.Position]; taken {
		return NoNode, fmt.Errorf("%w: %v held by %q", ErrPositionTaken, n.Position, g.nodes[other].ID)
	}
	if n.ID == "" {
		n.ID = derivedID(n.Seed(), g.nodeIDUsed)
	} else if _, dup := g.byID[n.ID]; dup {
		return NoNode, fmt.Errorf("%w: %q", ErrNodeExists, n.ID)
	}

	ref := NodeRef(len(g.nodes))
	n = n.clone()
	g.nodes = append(g.nodes, n)
	g.incident = append(g.incident, nil)
	g.members = append(g.members, nil)
	g.byID[n.ID] = ref
	g.byPosition[n.Position] = ref
	g.indexNode(ref)
	if n.HasParent() {
		g.members[n.BelongsTo] = append(g.members[n.BelongsTo], ref)
	}

	g.logger.Debug("node added", "graph", g.id, "id", n.ID, "type", n.Type, "pos", n.Position)

	return ref, nil
}

func (g *WorldGraph) setNodeTypeLocked(ref NodeRef, t NodeType) error {
	if !g.validNode(ref) {
		return fmt.Errorf("%w: node %d", ErrNodeNotFound, ref)
	}
	if err := validType(t); err != nil {
		return err
	}
	if g.nodes[ref].Type == t {
		return nil
	}
	g.unindexNode(ref)
	g.nodes[ref].Type = t
	g.indexNode(ref)

	return nil
}

func (g *WorldGraph) setDataLocked(ref NodeRef, key, value string) error {
	if !g.validNode(ref) {
		return fmt.Errorf("%w: node %d", ErrNodeNotFound, ref)
	}
	n := &g.nodes[ref]
	if value == "" {
		delete(n.Data, key)
		return nil
	}
	if n.Data == nil {
		n.Data = make(map[string]string)
	}
	n.Data[key] = value

	return nil
}

func (g *WorldGraph) indexNode(ref NodeRef) {
	n := g.nodes[ref]
	cell := geom.CellFor3(n.Position, g.cellSize)
	cellTypes, ok := g.byCell[cell]
	if !ok {
		cellTypes = make(map[NodeType][]NodeRef)
		g.byCell[cell] = cellTypes
	}
	cellTypes[n.Type] = append(cellTypes[n.Type], ref)
	g.byType[n.Type] = sortedInsert(g.byType[n.Type], ref)
}

func (g *WorldGraph) unindexNode(ref NodeRef) {
	n := g.nodes[ref]
	cell := geom.CellFor3(n.Position, g.cellSize)
	cellTypes := g.byCell[cell]
	refs := slices.DeleteFunc(cellTypes[n.Type], func(r NodeRef) bool { return r == ref })
	if len(refs) == 0 {
		delete(cellTypes, n.Type)
	} else {
		cellTypes[n.Type] = refs
	}
	refs = slices.DeleteFunc(g.byType[n.Type], func(r NodeRef) bool { return r == ref })
	if len(refs) == 0 {
		delete(g.byType, n.Type)
	} else {
		g.byType[n.Type] = refs
	}
}

func sortedInsert(refs []NodeRef, ref NodeRef) []NodeRef {
	i, _ := slices.BinarySearch(refs, ref)

	return slices.Insert(refs, i, ref)
}

// derivedID draws UUIDs from a PRNG seeded with seed until one is unused.
// The first draw equals StableID(seed).
func derivedID(seed int32, used func(string) bool) string {
	src := rand.New(rand.NewSource(int64(seed)))
	for {
		id := uuid.Must(uuid.NewRandomFromReader(src)).String()
		if !used(id) {
			return id
		}
	}
}
