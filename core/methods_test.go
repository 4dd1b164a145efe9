// SPDX-License-Identifier: MIT
// Package core_test verifies WorldGraph insertion, directed views and queries.

package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/geom"
)

func TestAddNode_Validation(t *testing.T) {
	g := core.NewWorldGraph("g")
	a := addNode(t, g, "A", 0, 0, typeEndpoint)

	_, err := g.AddNode(core.Node{ID: "A", Position: geom.V3(5, 0, 5), Type: typeEndpoint})
	assert.ErrorIs(t, err, core.ErrNodeExists)

	_, err = g.AddNode(core.Node{ID: "A2", Position: geom.V3(0, 0, 0), Type: typeEndpoint})
	assert.ErrorIs(t, err, core.ErrPositionTaken)

	_, err = g.AddNode(core.Node{ID: "P", Position: geom.V3(1, 0, 1), Type: typePerimeter, BelongsTo: 99})
	assert.ErrorIs(t, err, core.ErrNodeNotFound)

	_, err = g.AddNode(core.Node{ID: "Q", Position: geom.V3(2, 0, 2), Type: core.NodeType{Base: core.Section, Custom: "x"}})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = g.AddNode(core.Node{ID: "R", Position: geom.V3(3, 0, 3), Radius: -1, Type: typeEndpoint})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	assert.Equal(t, 1, g.NodeCount())
	n, err := g.Node(a)
	require.NoError(t, err)
	assert.Equal(t, "A", n.ID)
}

func TestAddNode_ZeroBelongsToMeansNoParent(t *testing.T) {
	g := core.NewWorldGraph("g")
	a, err := g.AddNode(core.Node{ID: "first", Position: geom.V3(0, 0, 0), Type: typeEndpoint})
	require.NoError(t, err, "an empty graph accepts a node without BelongsTo")
	b, err := g.AddNode(core.Node{ID: "second", Position: geom.V3(10, 0, 0), Type: typeEndpoint})
	require.NoError(t, err)

	for _, ref := range []core.NodeRef{a, b} {
		n, err := g.Node(ref)
		require.NoError(t, err)
		assert.False(t, n.HasParent())
		assert.Equal(t, core.NoNode, n.BelongsTo)
	}
	assert.False(t, g.Grouped(a, b))
	assert.Empty(t, g.Members(a))
	assert.Equal(t, []core.NodeRef{a, b}, g.Nodes())
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.Stats().Nodes)

	_, err = g.Node(core.NoNode)
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
	assert.False(t, g.HasNode(core.NoNode))
}

func TestAddNode_DerivedID(t *testing.T) {
	node := core.Node{Position: geom.V3(12, 0, 34), Type: typeTown}

	g1 := core.NewWorldGraph("one")
	r1, err := g1.AddNode(node)
	require.NoError(t, err)
	g2 := core.NewWorldGraph("two")
	r2, err := g2.AddNode(node)
	require.NoError(t, err)

	n1, _ := g1.Node(r1)
	n2, _ := g2.Node(r2)
	assert.Equal(t, core.StableID(node.Seed()), n1.ID)
	assert.Equal(t, n1.ID, n2.ID, "identical inputs reproduce identical IDs")

	ref, ok := g1.NodeByID(n1.ID)
	assert.True(t, ok)
	assert.Equal(t, r1, ref)
}

func TestAddNode_CopiesData(t *testing.T) {
	g := core.NewWorldGraph("g")
	data := map[string]string{"name": "Ashford"}
	ref, err := g.AddNode(core.Node{ID: "T", Type: typeTown, Data: data})
	require.NoError(t, err)

	data["name"] = "changed"
	n, _ := g.Node(ref)
	assert.Equal(t, "Ashford", n.Data["name"])

	n.Data["name"] = "mutated copy"
	n, _ = g.Node(ref)
	assert.Equal(t, "Ashford", n.Data["name"])

	require.NoError(t, g.SetData(ref, "name", ""))
	n, _ = g.Node(ref)
	assert.NotContains(t, n.Data, "name")
}

func TestAddConnection_Validation(t *testing.T) {
	g := core.NewWorldGraph("g")
	a := addNode(t, g, "A", 0, 0, typeEndpoint)
	b := addNode(t, g, "B", 10, 0, typeEndpoint)
	c := addNode(t, g, "C", 20, 0, typeEndpoint)

	cases := []struct {
		name string
		spec core.ConnectionSpec
		want error
	}{
		{"single node", core.ConnectionSpec{Nodes: []core.NodeRef{a}}, core.ErrShortChain},
		{"self edge", core.ConnectionSpec{Nodes: []core.NodeRef{a, a}}, core.ErrSelfEdge},
		{"repeat", core.ConnectionSpec{Nodes: []core.NodeRef{a, b, a}}, core.ErrInvalidArgument},
		{"foreign node", core.ConnectionSpec{Nodes: []core.NodeRef{a, 42}}, core.ErrNodeNotFound},
		{"weight count", core.ConnectionSpec{Nodes: []core.NodeRef{a, b, c}, Weights: []float64{1}}, core.ErrWeightCount},
		{"negative weight", core.ConnectionSpec{Nodes: []core.NodeRef{a, b}, Weights: []float64{-1}}, core.ErrNegativeWeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.AddConnection(tc.spec)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, g.ConnectionCount())

	_, err := g.AddConnection(core.ConnectionSpec{ID: "road", Nodes: []core.NodeRef{a, b}})
	require.NoError(t, err)
	_, err = g.AddConnection(core.ConnectionSpec{ID: "road", Nodes: []core.NodeRef{b, c}})
	assert.ErrorIs(t, err, core.ErrConnectionExists)
}

func TestAddConnection_Weights(t *testing.T) {
	g := core.NewWorldGraph("g")
	a := addNode(t, g, "A", 0, 0, typeEndpoint)
	b := addNode(t, g, "B", 3, 4, typeEndpoint)
	c := addNode(t, g, "C", 3, 10, typeEndpoint)

	flat := connect(t, g, core.TwoWay, a, b, c)
	assert.InDelta(t, 11.0, g.Length(flat), 1e-9)

	given, err := g.AddConnection(core.ConnectionSpec{Nodes: []core.NodeRef{a, c}, Weights: []float64{2.5}})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, g.Length(given), 1e-9)

	conn, err := g.Connection(given)
	require.NoError(t, err)
	require.Len(t, conn.Edges, 1)
	e, err := g.Edge(conn.Edges[0])
	require.NoError(t, err)
	assert.Equal(t, a, e.From)
	assert.Equal(t, c, e.To)
	assert.Equal(t, given, e.Connection)
	assert.NotEmpty(t, conn.ID)
}

func TestOutgoingConnections_DirectionTable(t *testing.T) {
	cases := []struct {
		dir   core.Direction
		fromA []core.Directed
		fromX []core.Directed
		fromB []core.Directed
		intoA []core.Directed
		intoB []core.Directed
	}{
		{
			dir:   core.TwoWay,
			fromA: []core.Directed{{Conn: 0}},
			fromX: []core.Directed{{Conn: 0}, {Conn: 0, Reversed: true}},
			fromB: []core.Directed{{Conn: 0, Reversed: true}},
			intoA: []core.Directed{{Conn: 0, Reversed: true}},
			intoB: []core.Directed{{Conn: 0}},
		},
		{
			dir:   core.OneWayForward,
			fromA: []core.Directed{{Conn: 0}},
			fromX: []core.Directed{{Conn: 0}},
			intoB: []core.Directed{{Conn: 0}},
		},
		{
			dir:   core.OneWayBackward,
			fromX: []core.Directed{{Conn: 0, Reversed: true}},
			fromB: []core.Directed{{Conn: 0, Reversed: true}},
			intoA: []core.Directed{{Conn: 0, Reversed: true}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			g, a, _, x, _, b, _ := chain(t, tc.dir)
			assert.Equal(t, tc.fromA, g.OutgoingConnections(a))
			assert.Equal(t, tc.fromX, g.OutgoingConnections(x))
			assert.Equal(t, tc.fromB, g.OutgoingConnections(b))
			assert.Equal(t, tc.intoA, g.IncomingConnections(a))
			assert.Equal(t, tc.intoB, g.IncomingConnections(b))
		})
	}
}

func TestDirected_EdgesAndEndpoints(t *testing.T) {
	g, a, s1, x, s2, b, c := chain(t, core.TwoWay)

	fwd := core.Directed{Conn: c}
	rev := core.Directed{Conn: c, Reversed: true}
	assert.Equal(t, []core.NodeRef{a, s1, x, s2, b}, walk(g.Edges(fwd)))
	assert.Equal(t, []core.NodeRef{b, s2, x, s1, a}, walk(g.Edges(rev)))
	assert.Equal(t, []core.NodeRef{b, s2, x, s1, a}, g.ConnectionNodes(rev))

	from, to := g.Endpoints(rev)
	assert.Equal(t, b, from)
	assert.Equal(t, a, to)

	e, ok := g.EdgeFrom(rev, x)
	require.True(t, ok)
	assert.Equal(t, s1, e.To)
	_, ok = g.EdgeFrom(fwd, b)
	assert.False(t, ok)

	out := g.OutgoingEdges(x)
	require.Len(t, out, 2)
	assert.Equal(t, s2, out[0].To)
	assert.Equal(t, s1, out[1].To)
}

func TestEdgesUntilJunction(t *testing.T) {
	g, a, s1, x, s2, b, c := chain(t, core.TwoWay)

	assert.Equal(t, []core.NodeRef{a, s1, x}, walk(g.EdgesUntilJunction(core.Directed{Conn: c}, a)))
	assert.Equal(t, []core.NodeRef{x, s2, b}, walk(g.EdgesUntilJunction(core.Directed{Conn: c}, x)))
	assert.Equal(t, []core.NodeRef{s1, x}, walk(g.EdgesUntilJunction(core.Directed{Conn: c}, s1)))
	assert.Equal(t, []core.NodeRef{b, s2, x}, walk(g.EdgesUntilJunction(core.Directed{Conn: c, Reversed: true}, b)))
	assert.Nil(t, g.EdgesUntilJunction(core.Directed{Conn: c}, b), "b has no outgoing edge in stored order")
}

func TestEdgesBetween(t *testing.T) {
	g, _, s1, x, s2, _, c := chain(t, core.TwoWay)
	assert.Equal(t, []core.NodeRef{s1, x, s2}, walk(g.EdgesBetween(c, s1, s2, false)))
	assert.Equal(t, []core.NodeRef{s2, x, s1}, walk(g.EdgesBetween(c, s2, s1, false)))
	assert.Nil(t, g.EdgesBetween(c, s1, s1, false))

	g, _, s1, x, s2, _, c = chain(t, core.OneWayForward)
	assert.Equal(t, []core.NodeRef{s1, x, s2}, walk(g.EdgesBetween(c, s1, s2, false)))
	assert.Nil(t, g.EdgesBetween(c, s2, s1, false))
	assert.Equal(t, []core.NodeRef{s2, x, s1}, walk(g.EdgesBetween(c, s2, s1, true)))

	g, _, s1, _, s2, _, c = chain(t, core.OneWayBackward)
	assert.Nil(t, g.EdgesBetween(c, s1, s2, false))
	assert.NotNil(t, g.EdgesBetween(c, s2, s1, false))
}

func TestIntermediateCrossings(t *testing.T) {
	g, _, _, x, _, _, c := chain(t, core.TwoWay)
	assert.Equal(t, []core.NodeRef{x}, g.IntermediateCrossings(c))
	assert.InDelta(t, 40.0, g.Length(c), 1e-9)
}

func TestSpatialQueries(t *testing.T) {
	g := core.NewWorldGraph("g", core.WithCellSize(64))
	a := addNode(t, g, "A", 10, 10, typeEndpoint)
	b := addNode(t, g, "B", 70, 10, typeCrossing)
	c := addNode(t, g, "C", -5, -5, typeTown)
	d := addNode(t, g, "D", 130, 130, typeEndpoint)
	e := addNode(t, g, "E", 64, 0, typeSection)

	assert.Equal(t, []core.NodeRef{a, b, e}, g.NodesInRect(geom.NewRect(0, 0, 128, 64)))
	assert.Equal(t, []core.NodeRef{a}, g.NodesInRect(geom.NewRect(0, 0, 64, 64)), "max edge is exclusive")
	assert.Equal(t, []core.NodeRef{a, c}, g.NodesInRect(geom.NewRect(-64, -64, 128, 128), typeEndpoint, typeTown))

	assert.Equal(t, []core.NodeRef{c, a}, g.NodesInRange(geom.V2(0, 0), 60), "nearest first")
	assert.Equal(t, []core.NodeRef{e, b}, g.NodesInRange(geom.V2(66, 2), 12))
	assert.Empty(t, g.NodesInRange(geom.V2(1000, 1000), 5))

	assert.Equal(t, []core.NodeRef{a, d}, g.NodesOfType(typeEndpoint))
	assert.Equal(t, []core.NodeRef{c}, g.NodesOfType(core.CustomType("town")))
	assert.Empty(t, g.NodesOfType(core.CustomType("farm")))
	assert.Equal(t, []core.NodeType{typeTown, typeSection, typeCrossing, typeEndpoint}, g.NodeTypes())
	assert.Equal(t, []string{"town"}, g.CustomTypes())
}

func TestSpatialQueries_SparseHugeArea(t *testing.T) {
	g := core.NewWorldGraph("g", core.WithCellSize(1))
	a := addNode(t, g, "A", 0, 0, typeEndpoint)
	b := addNode(t, g, "B", 5e8, -5e8, typeEndpoint)
	near := addNode(t, g, "N", 3, 4, typeEndpoint)
	c := connect(t, g, core.TwoWay, a, near)

	assert.Equal(t, []core.NodeRef{a, near, b}, g.NodesInRange(geom.V2(0, 0), 1e9))
	assert.Equal(t, []core.NodeRef{a, near, b}, g.NodesInRange(geom.V2(0, 0), math.Inf(1)))
	assert.Empty(t, g.NodesInRange(geom.V2(0, 0), math.NaN()))
	assert.Equal(t, []core.NodeRef{a, b, near}, g.NodesInRect(geom.NewRect(-1e9, -1e9, 2e9, 2e9)))
	assert.Equal(t, []core.NodeRef{b}, g.NodesInRect(geom.NewRect(-1e9, -1e9, 2e9, 1e9)))
	assert.Equal(t, []core.ConnRef{c}, g.ConnectionsInRect(geom.NewRect(-1e9, -1e9, 2e9, 2e9)))
}

func TestSetNodeType_Reindexes(t *testing.T) {
	g := core.NewWorldGraph("g")
	s := addNode(t, g, "S", 5, 5, typeSection)

	require.NoError(t, g.SetNodeType(s, typeCrossing))
	assert.Empty(t, g.NodesOfType(typeSection))
	assert.Equal(t, []core.NodeRef{s}, g.NodesOfType(typeCrossing))
	assert.Equal(t, []core.NodeRef{s}, g.NodesInRect(geom.NewRect(0, 0, 10, 10), typeCrossing))
	assert.Equal(t, []core.NodeType{typeCrossing}, g.NodeTypes())

	assert.ErrorIs(t, g.SetNodeType(99, typeCrossing), core.ErrNodeNotFound)
}

func TestPerimeterAndGrouping(t *testing.T) {
	g := core.NewWorldGraph("g")
	x := addNode(t, g, "X", 0, 0, typeCrossing)
	p1 := addPerimeter(t, g, "P1", 5, 0, x)
	p2 := addPerimeter(t, g, "P2", -5, 0, x)
	y := addNode(t, g, "Y", 50, 0, typeCrossing)
	q := addPerimeter(t, g, "Q", 45, 0, y)
	marker, err := g.AddNode(core.Node{ID: "M", Position: geom.V3(0, 0, 5), Type: typeSection, BelongsTo: x})
	require.NoError(t, err)

	assert.Equal(t, []core.NodeRef{p1, p2}, g.PerimeterNodes(x))
	assert.Equal(t, []core.NodeRef{p1, p2, marker}, g.Members(x))
	assert.Empty(t, g.PerimeterNodes(p1))

	assert.True(t, g.Grouped(p1, x))
	assert.True(t, g.Grouped(x, p1))
	assert.True(t, g.Grouped(p1, p2))
	assert.False(t, g.Grouped(p1, q))
	assert.False(t, g.Grouped(x, y), "neither has a parent")
	assert.False(t, g.Grouped(x, x), "a parent alone is not grouped with itself")
}

func TestHasDirectConnection(t *testing.T) {
	g, a, s1, _, _, b, _ := chain(t, core.TwoWay)
	other := addNode(t, g, "O", 0, 100, typeEndpoint)

	assert.True(t, g.HasDirectConnection(a, b))
	assert.True(t, g.HasDirectConnection(s1, a))
	assert.False(t, g.HasDirectConnection(a, other))
}

func TestConnectionQueries(t *testing.T) {
	g := core.NewWorldGraph("g")
	a := addNode(t, g, "A", 10, 10, typeEndpoint)
	b := addNode(t, g, "B", 200, 10, typeEndpoint)
	c := addNode(t, g, "C", 10, 200, typeEndpoint)

	ab, err := g.AddConnection(core.ConnectionSpec{Nodes: []core.NodeRef{a, b}, Reference: "roads"})
	require.NoError(t, err)
	ac, err := g.AddConnection(core.ConnectionSpec{Nodes: []core.NodeRef{a, c}, Reference: "rivers", Type: core.ConnectionType{Base: core.RiverConnection}})
	require.NoError(t, err)

	assert.Equal(t, []core.ConnRef{ab, ac}, g.ConnectionsInRect(geom.NewRect(0, 0, 10, 10)))
	assert.Equal(t, []core.ConnRef{ab}, g.ConnectionsInRect(geom.NewRect(130, 0, 10, 10)))
	assert.Equal(t, []core.ConnRef{ac}, g.ConnectionsInRect(geom.NewRect(0, 130, 10, 10)))
	assert.Empty(t, g.ConnectionsInRect(geom.NewRect(130, 130, 10, 10)))

	assert.Equal(t, []core.ConnRef{ac}, g.ConnectionsByReference("rivers"))
	assert.Equal(t, []core.ConnRef{ab, ac}, g.ConnectionsOf(a))

	ref, ok := g.ConnectionByID(mustConn(t, g, ab).ID)
	assert.True(t, ok)
	assert.Equal(t, ab, ref)
}

func TestStats(t *testing.T) {
	g, _, _, _, _, _, _ := chain(t, core.TwoWay)
	g.MarkProcessed("tile")

	s := g.Stats()
	assert.Equal(t, "chain", s.ID)
	assert.Equal(t, core.DefaultCellSize, s.CellSize)
	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 4, s.Edges)
	assert.Equal(t, 1, s.Connections)
	assert.Equal(t, 1, s.Markers)
	assert.Equal(t, 2, s.NodesByType[typeEndpoint])
	assert.Equal(t, 2, s.NodesByType[typeSection])
}

func mustConn(t *testing.T, g *core.WorldGraph, ref core.ConnRef) core.Connection {
	t.Helper()
	c, err := g.Connection(ref)
	require.NoError(t, err)

	return c
}
