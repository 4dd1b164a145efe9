package dijkstra_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/dijkstra"
	"github.com/katalvlaran/worldgraph/geom"
)

var (
	endpoint = core.TypeOf(core.Endpoint)
	crossing = core.TypeOf(core.Crossing)
	section  = core.TypeOf(core.Section)
)

// fixture wraps a graph with name-based helpers.
type fixture struct {
	t    *testing.T
	g    *core.WorldGraph
	refs map[string]core.NodeRef
}

func newFixture(t *testing.T, id string) *fixture {
	return &fixture{t: t, g: core.NewWorldGraph(id), refs: make(map[string]core.NodeRef)}
}

func (f *fixture) node(name string, x, z float64, typ core.NodeType) core.NodeRef {
	f.t.Helper()
	ref, err := f.g.AddNode(core.Node{ID: name, Position: geom.V3(x, 0, z), Type: typ})
	require.NoError(f.t, err)
	f.refs[name] = ref

	return ref
}

// link adds a connection from → to with one edge of weight w.
func (f *fixture) link(from, to string, w float64, dir core.Direction) {
	f.t.Helper()
	_, err := f.g.AddConnection(core.ConnectionSpec{
		Direction: dir,
		Nodes:     []core.NodeRef{f.refs[from], f.refs[to]},
		Weights:   []float64{w},
	})
	require.NoError(f.t, err)
}

func (f *fixture) h(name string) core.Handle { return f.g.At(f.refs[name]) }

func (f *fixture) names(refs []core.NodeRef) []string {
	byRef := make(map[core.NodeRef]string, len(f.refs))
	for n, r := range f.refs {
		byRef[r] = n
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = byRef[r]
	}

	return out
}

func TestShortestPath_SameNode(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("B", 10, 0, endpoint)
	f.link("A", "B", 1, core.TwoWay)

	p := dijkstra.ShortestPath(f.h("A"), f.h("A"))
	assert.True(t, p.Empty())
	assert.Zero(t, p.Weight)
	assert.Equal(t, f.refs["A"], p.Last)
}

func TestShortestPath_ThroughCrossing(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("X", 10, 0, crossing)
	f.node("B", 20, 0, endpoint)
	f.link("A", "X", 3, core.TwoWay)
	f.link("X", "B", 4, core.TwoWay)

	p := dijkstra.ShortestPath(f.h("A"), f.h("B"))
	assert.Equal(t, 7.0, p.Weight)
	require.Len(t, p.Edges, 2)
	assert.Equal(t, []string{"A", "X", "B"}, f.names(p.Nodes()))
	assert.Equal(t, f.refs["B"], p.Last)

	back := dijkstra.ShortestPath(f.h("B"), f.h("A"))
	assert.Equal(t, []string{"B", "X", "A"}, f.names(back.Nodes()))
}

func TestShortestPath_Disconnected(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("B", 10, 0, endpoint)

	p := dijkstra.ShortestPath(f.h("A"), f.h("B"))
	assert.Empty(t, p.Edges)
	assert.Zero(t, p.Weight)
	assert.Equal(t, f.refs["A"], p.Last)
}

func TestShortestPath_CrossGraph(t *testing.T) {
	f1 := newFixture(t, "one")
	f1.node("A", 0, 0, endpoint)
	f2 := newFixture(t, "two")
	f2.node("A", 0, 0, endpoint)
	f2.node("B", 5, 0, endpoint)
	f2.link("A", "B", 1, core.TwoWay)

	// Same ref value, different graphs.
	p := dijkstra.ShortestPath(f1.h("A"), f2.h("B"))
	assert.True(t, p.Empty())
	assert.Equal(t, f1.refs["A"], p.Last)
	assert.False(t, dijkstra.IsReachable(f1.h("A"), f2.h("B")))
}

func TestShortestPath_PrefersCheaperDetour(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("B", 10, 0, endpoint)
	f.node("C", 5, 5, crossing)
	f.link("A", "B", 10, core.TwoWay)
	f.link("A", "C", 2, core.TwoWay)
	f.link("C", "B", 3, core.TwoWay)

	p := dijkstra.ShortestPath(f.h("A"), f.h("B"))
	assert.Equal(t, 5.0, p.Weight)
	assert.Equal(t, []string{"A", "C", "B"}, f.names(p.Nodes()))
}

func TestShortestPath_FirstDiscoveredTie(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("B", 10, 0, endpoint)
	f.node("C", 5, 5, crossing)
	f.link("A", "B", 5, core.TwoWay)
	f.link("A", "C", 2, core.TwoWay)
	f.link("C", "B", 3, core.TwoWay)

	for range 5 {
		p := dijkstra.ShortestPath(f.h("A"), f.h("B"))
		assert.Equal(t, 5.0, p.Weight)
		assert.Equal(t, []string{"A", "B"}, f.names(p.Nodes()))
	}
}

func TestShortestPath_OneWay(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("B", 10, 0, endpoint)
	f.link("A", "B", 1, core.OneWayForward)

	assert.Equal(t, 1.0, dijkstra.ShortestPath(f.h("A"), f.h("B")).Weight)
	assert.True(t, dijkstra.ShortestPath(f.h("B"), f.h("A")).Empty())

	f.link("B", "A", 4, core.OneWayBackward) // stored B→A, travelled A→B only
	assert.True(t, dijkstra.ShortestPath(f.h("B"), f.h("A")).Empty())
}

func TestShortestPath_WalksSections(t *testing.T) {
	f := newFixture(t, "g")
	a := f.node("A", 0, 0, endpoint)
	s1 := f.node("S1", 3, 4, section)
	s2 := f.node("S2", 3, 10, section)
	b := f.node("B", 3, 20, endpoint)
	_, err := f.g.AddConnection(core.ConnectionSpec{Nodes: []core.NodeRef{a, s1, s2, b}})
	require.NoError(t, err)

	p := dijkstra.ShortestPath(f.h("S2"), f.h("A"))
	assert.Equal(t, []string{"S2", "S1", "A"}, f.names(p.Nodes()))
	assert.InDelta(t, 11.0, p.Weight, 1e-9)

	d, ok := dijkstra.Distance(f.h("A"), f.h("B"))
	assert.True(t, ok)
	assert.InDelta(t, 21.0, d, 1e-9)
}

func TestShortestPath_CycleTerminates(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, crossing)
	f.node("B", 10, 0, crossing)
	f.node("C", 5, 5, crossing)
	f.node("Z", 50, 50, endpoint)
	f.link("A", "B", 1, core.OneWayForward)
	f.link("B", "C", 1, core.OneWayForward)
	f.link("C", "A", 1, core.OneWayForward)

	assert.True(t, dijkstra.ShortestPath(f.h("A"), f.h("Z")).Empty())
	assert.Equal(t, 2.0, dijkstra.ShortestPath(f.h("A"), f.h("C")).Weight)
}

// TestShortestPath_BruteForce cross-checks random DAGs against exhaustive
// enumeration of simple paths.
func TestShortestPath_BruteForce(t *testing.T) {
	const nodes = 7
	rng := rand.New(rand.NewSource(7))
	for round := range 20 {
		f := newFixture(t, fmt.Sprintf("dag-%d", round))
		type arc struct {
			to int
			w  float64
		}
		adj := make([][]arc, nodes)
		for i := range nodes {
			f.node(fmt.Sprint(i), float64(i)*10, 0, crossing)
		}
		for i := range nodes {
			for j := i + 1; j < nodes; j++ {
				if rng.Intn(2) == 0 {
					w := float64(rng.Intn(20))
					f.link(fmt.Sprint(i), fmt.Sprint(j), w, core.OneWayForward)
					adj[i] = append(adj[i], arc{to: j, w: w})
				}
			}
		}

		var enumerate func(at, dst int, w float64) float64
		enumerate = func(at, dst int, w float64) float64 {
			if at == dst {
				return w
			}
			best := math.Inf(1)
			for _, a := range adj[at] {
				best = min(best, enumerate(a.to, dst, w+a.w))
			}

			return best
		}

		for dst := 1; dst < nodes; dst++ {
			want := enumerate(0, dst, 0)
			p := dijkstra.ShortestPath(f.h("0"), f.h(fmt.Sprint(dst)))
			if math.IsInf(want, 1) {
				assert.True(t, p.Empty(), "round %d dst %d", round, dst)
				continue
			}
			require.False(t, p.Empty(), "round %d dst %d", round, dst)
			assert.InDelta(t, want, p.Weight, 1e-9, "round %d dst %d", round, dst)
			assert.Equal(t, f.refs[fmt.Sprint(dst)], p.Last)
		}
	}
}

func TestReachable_Budget(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("S", 5, 0, section)
	f.node("X", 10, 0, crossing)
	f.node("B", 20, 0, endpoint)
	f.link("A", "S", 2, core.TwoWay)
	f.link("S", "X", 2, core.TwoWay)
	f.link("X", "B", 5, core.TwoWay)

	got, err := dijkstra.Reachable(f.h("A"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, f.names(got))

	got, err = dijkstra.Reachable(f.h("A"), 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "S", "X"}, f.names(got))

	got, err = dijkstra.Reachable(f.h("A"), 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "S", "X", "B"}, f.names(got))
}

func TestReachable_TypeFilterKeepsWaypoints(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("S", 5, 0, section)
	f.node("B", 10, 0, endpoint)
	f.link("A", "S", 1, core.TwoWay)
	f.link("S", "B", 1, core.TwoWay)

	got, err := dijkstra.Reachable(f.h("A"), 10, dijkstra.WithTypeFilter(endpoint))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, f.names(got), "S is filtered out but still walked through")
}

func TestReachable_Idempotent(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, crossing)
	f.node("B", 10, 0, crossing)
	f.node("C", 5, 5, crossing)
	f.link("A", "B", 1, core.TwoWay)
	f.link("B", "C", 1, core.TwoWay)
	f.link("C", "A", 1, core.TwoWay)

	first, err := dijkstra.Reachable(f.h("A"), 1.5)
	require.NoError(t, err)
	second, err := dijkstra.Reachable(f.h("A"), 1.5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A", "B", "C"}, f.names(first))
}

func TestReachable_Errors(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)

	_, err := dijkstra.Reachable(f.h("A"), -1)
	assert.ErrorIs(t, err, dijkstra.ErrBadMaxDistance)
	_, err = dijkstra.Reachable(f.h("A"), math.NaN())
	assert.ErrorIs(t, err, dijkstra.ErrBadMaxDistance)
	_, err = dijkstra.Reachable(f.g.At(42), 1)
	assert.ErrorIs(t, err, dijkstra.ErrSourceNotFound)
	_, err = dijkstra.Reachable(core.Handle{}, 1)
	assert.ErrorIs(t, err, dijkstra.ErrSourceNotFound)
}

func TestDistance(t *testing.T) {
	f := newFixture(t, "g")
	f.node("A", 0, 0, endpoint)
	f.node("B", 10, 0, endpoint)
	f.node("C", 20, 0, endpoint)
	f.link("A", "B", 6, core.OneWayForward)

	d, ok := dijkstra.Distance(f.h("A"), f.h("A"))
	assert.True(t, ok)
	assert.Zero(t, d)

	d, ok = dijkstra.Distance(f.h("A"), f.h("B"))
	assert.True(t, ok)
	assert.Equal(t, 6.0, d)

	assert.True(t, dijkstra.IsReachable(f.h("A"), f.h("B")))
	assert.False(t, dijkstra.IsReachable(f.h("B"), f.h("A")))
	assert.False(t, dijkstra.IsReachable(f.h("A"), f.h("C")))
}
