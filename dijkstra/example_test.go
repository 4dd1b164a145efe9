package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/dijkstra"
	"github.com/katalvlaran/worldgraph/geom"
)

// ExampleShortestPath routes from a spring through a crossing to a town.
func ExampleShortestPath() {
	g := core.NewWorldGraph("roads")
	add := func(id string, x float64, t core.BaseType) core.NodeRef {
		ref, _ := g.AddNode(core.Node{ID: id, Position: geom.V3(x, 0, 0), Type: core.TypeOf(t)})
		return ref
	}
	a := add("A", 0, core.Endpoint)
	x := add("X", 10, core.Crossing)
	b := add("B", 20, core.Endpoint)
	_, _ = g.AddConnection(core.ConnectionSpec{Nodes: []core.NodeRef{a, x}, Weights: []float64{3}})
	_, _ = g.AddConnection(core.ConnectionSpec{Nodes: []core.NodeRef{x, b}, Weights: []float64{4}})

	p := dijkstra.ShortestPath(g.At(a), g.At(b))
	for _, e := range p.Edges {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		fmt.Printf("%s->%s %.0f\n", from.ID, to.ID, e.Weight)
	}
	fmt.Println("total", p.Weight)

	// Output:
	// A->X 3
	// X->B 4
	// total 7
}

// ExampleReachable lists what a budget of 5 reaches from A.
func ExampleReachable() {
	g := core.NewWorldGraph("roads")
	var refs []core.NodeRef
	for i, x := range []float64{0, 4, 8} {
		ref, _ := g.AddNode(core.Node{ID: fmt.Sprint("N", i), Position: geom.V3(x, 0, 0), Type: core.TypeOf(core.Crossing)})
		refs = append(refs, ref)
	}
	_, _ = g.AddConnection(core.ConnectionSpec{Nodes: refs})

	got, _ := dijkstra.Reachable(g.At(refs[0]), 5)
	fmt.Println(len(got))

	// Output:
	// 2
}
