// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the core tests.

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/geom"
)

// Common node types used across tests.
var (
	typeEndpoint  = core.TypeOf(core.Endpoint)
	typeCrossing  = core.TypeOf(core.Crossing)
	typeSection   = core.TypeOf(core.Section)
	typePerimeter = core.TypeOf(core.Perimeter)
	typeTown      = core.CustomType("town")
)

// addNode inserts a ground-level node at (x, z) and fails the test on error.
func addNode(t *testing.T, g *core.WorldGraph, id string, x, z float64, typ core.NodeType) core.NodeRef {
	t.Helper()
	ref, err := g.AddNode(core.Node{ID: id, Position: geom.V3(x, 0, z), Type: typ})
	require.NoError(t, err, "AddNode(%s)", id)

	return ref
}

// addPerimeter inserts a perimeter node owned by parent.
func addPerimeter(t *testing.T, g *core.WorldGraph, id string, x, z float64, parent core.NodeRef) core.NodeRef {
	t.Helper()
	ref, err := g.AddNode(core.Node{ID: id, Position: geom.V3(x, 0, z), Type: typePerimeter, BelongsTo: parent})
	require.NoError(t, err, "AddNode(%s)", id)

	return ref
}

// connect inserts a two-way connection along nodes with ground-distance weights.
func connect(t *testing.T, g *core.WorldGraph, dir core.Direction, nodes ...core.NodeRef) core.ConnRef {
	t.Helper()
	ref, err := g.AddConnection(core.ConnectionSpec{Direction: dir, Nodes: nodes, Reference: "test"})
	require.NoError(t, err)

	return ref
}

// chain builds A(0,0) - S1(10,0) - X(20,0) - S2(30,0) - B(40,0) as one
// connection, X being an intermediate crossing.
func chain(t *testing.T, dir core.Direction) (g *core.WorldGraph, a, s1, x, s2, b core.NodeRef, c core.ConnRef) {
	t.Helper()
	g = core.NewWorldGraph("chain")
	a = addNode(t, g, "A", 0, 0, typeEndpoint)
	s1 = addNode(t, g, "S1", 10, 0, typeSection)
	x = addNode(t, g, "X", 20, 0, typeCrossing)
	s2 = addNode(t, g, "S2", 30, 0, typeSection)
	b = addNode(t, g, "B", 40, 0, typeEndpoint)
	c = connect(t, g, dir, a, s1, x, s2, b)

	return g, a, s1, x, s2, b, c
}

// walk lists the nodes visited by edges, first From then every To.
func walk(edges []core.Edge) []core.NodeRef {
	if len(edges) == 0 {
		return nil
	}
	out := []core.NodeRef{edges[0].From}
	for _, e := range edges {
		out = append(out, e.To)
	}

	return out
}
