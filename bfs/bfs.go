package bfs

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/worldgraph/core"
)

// walker encapsulates the mutable state of one hop search.
type walker struct {
	g       *core.WorldGraph
	opts    Options
	queue   []core.Path
	visited map[core.NodeRef]struct{}
}

func newWalker(g *core.WorldGraph, o Options, src core.NodeRef) *walker {
	w := &walker{g: g, opts: o, visited: make(map[core.NodeRef]struct{})}
	w.enqueue(core.StartAt(src))

	return w
}

// ShortestPathByHops returns the route from src to dst with the fewest hops.
//
// Both nodes must be endpoints or crossings; with WithBridging, perimeter
// nodes that belong to a parent are accepted too. The check runs before
// anything else and fails with ErrNotJunction.
//
// Handles of different graphs, src == dst, and an unreachable dst give
// core.StartAt(src.Ref) and a nil error. The first route that arrives is
// returned: the queue is FIFO and every hop costs one, so it has the fewest
// hops. A done WithContext context stops the search with its error.
func ShortestPathByHops(src, dst core.Handle, opts ...Option) (core.Path, error) {
	none := core.StartAt(src.Ref)
	o, err := buildOptions(opts)
	if err != nil {
		return none, err
	}
	if err := precondition(src, o); err != nil {
		return none, err
	}
	if err := precondition(dst, o); err != nil {
		return none, err
	}
	if !src.SameGraph(dst) || src.Ref == dst.Ref {
		return none, nil
	}

	w := newWalker(src.Graph, o, src.Ref)
	for len(w.queue) > 0 {
		if err := w.canceled(); err != nil {
			return none, err
		}
		cur := w.dequeue()
		if !w.visit(cur.Last) {
			continue
		}
		for _, d := range w.candidates(cur.Last) {
			next, ok := w.hop(cur, d)
			if !ok {
				continue
			}
			if w.arrived(next.Last, dst.Ref) {
				return next, nil
			}
			w.enqueue(next)
		}
	}

	return none, nil
}

// ReachableByHops returns the junctions reachable from h within maxHops
// hops, h included, sorted by ref. WithTypeFilter narrows the result after
// the search. Bridging is not applied.
//
// Errors: ErrOptionViolation for maxHops < 0, ErrNodeNotFound, ErrNotJunction,
// and the context's error once it is done.
func ReachableByHops(h core.Handle, maxHops int, opts ...Option) ([]core.NodeRef, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if maxHops < 0 {
		return nil, fmt.Errorf("%w: max hops %d", ErrOptionViolation, maxHops)
	}
	o.Bridging = false
	if err := precondition(h, o); err != nil {
		return nil, err
	}

	w := newWalker(h.Graph, o, h.Ref)
	for len(w.queue) > 0 {
		if err := w.canceled(); err != nil {
			return nil, err
		}
		cur := w.dequeue()
		if !w.visit(cur.Last) {
			continue
		}
		for _, d := range w.outgoing(cur.Last) {
			if next, ok := w.hop(cur, d); ok && next.Hops <= maxHops {
				w.enqueue(next)
			}
		}
	}

	out := make([]core.NodeRef, 0, len(w.visited))
	for ref := range w.visited {
		if n, err := w.g.Node(ref); err == nil && o.keep(n.Type) {
			out = append(out, ref)
		}
	}
	slices.Sort(out)

	return out, nil
}

// BridgedConnections returns the connections n may use for free under
// bridging: the outgoing connections that start at one of the parent's other
// perimeter nodes, skipping perimeter nodes already linked to the parent.
// n is either a perimeter node or the parent itself.
func BridgedConnections(g *core.WorldGraph, n core.NodeRef) []core.Directed {
	node, err := g.Node(n)
	if err != nil {
		return nil
	}
	parent := n
	if node.Type.IsPerimeter() {
		if !node.HasParent() {
			return nil
		}
		parent = node.BelongsTo
	}

	direct := g.ConnectionsOf(parent)
	var out []core.Directed
	for _, p := range g.PerimeterNodes(parent) {
		if p == n || linked(g, direct, parent, p) {
			continue
		}
		for _, d := range g.OutgoingConnections(p) {
			if from, _ := g.Endpoints(d); from == p {
				out = append(out, d)
			}
		}
	}

	return out
}

func linked(g *core.WorldGraph, conns []core.ConnRef, parent, p core.NodeRef) bool {
	for _, c := range conns {
		if len(g.EdgesBetween(c, parent, p, false)) > 0 {
			return true
		}
	}

	return false
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

func precondition(h core.Handle, o Options) error {
	if h.Graph == nil {
		return fmt.Errorf("%w: nil graph", ErrNodeNotFound)
	}
	n, err := h.Graph.Node(h.Ref)
	if err != nil {
		return fmt.Errorf("%w: ref %d", ErrNodeNotFound, h.Ref)
	}
	if n.Type.IsJunction() || (o.Bridging && n.Type.IsPerimeter() && n.HasParent()) {
		return nil
	}

	return fmt.Errorf("%w: %q is %s", ErrNotJunction, n.ID, n.Type)
}

func (w *walker) enqueue(p core.Path) {
	w.queue = append(w.queue, p)
	w.opts.OnEnqueue(p)
}

func (w *walker) canceled() error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
		return nil
	}
}

func (w *walker) dequeue() core.Path {
	p := w.queue[0]
	w.queue = w.queue[1:]

	return p
}

func (w *walker) visit(n core.NodeRef) bool {
	if _, ok := w.visited[n]; ok {
		return false
	}
	w.visited[n] = struct{}{}

	return true
}

func (w *walker) seen(n core.NodeRef) bool {
	_, ok := w.visited[n]

	return ok
}

// outgoing lists the connections leaving n whose far end is unvisited.
func (w *walker) outgoing(n core.NodeRef) []core.Directed {
	var out []core.Directed
	for _, d := range w.g.OutgoingConnections(n) {
		if _, to := w.g.Endpoints(d); !w.seen(to) {
			out = append(out, d)
		}
	}

	return out
}

// candidates extends outgoing with the bridged connections when bridging
// applies to n.
func (w *walker) candidates(n core.NodeRef) []core.Directed {
	out := w.outgoing(n)
	if !w.opts.Bridging {
		return out
	}
	node, err := w.g.Node(n)
	if err != nil || !(node.Type.IsPerimeter() || node.Type.IsEndpoint()) {
		return out
	}
	for _, d := range BridgedConnections(w.g, n) {
		if _, to := w.g.Endpoints(d); !w.seen(to) {
			out = append(out, d)
		}
	}

	return out
}

// hop walks d to its next junction. The walk starts at the current node when
// d passes through it and at d's first node otherwise (a bridged connection).
func (w *walker) hop(cur core.Path, d core.Directed) (core.Path, bool) {
	start := cur.Last
	if !slices.Contains(w.g.ConnectionNodes(d), start) {
		start, _ = w.g.Endpoints(d)
	}
	edges := w.g.EdgesUntilJunction(d, start)
	if len(edges) == 0 {
		return core.Path{}, false
	}

	return cur.Hop(edges...), true
}

func (w *walker) arrived(last, dst core.NodeRef) bool {
	if last == dst {
		return true
	}
	if !w.opts.Bridging {
		return false
	}
	n, err := w.g.Node(last)

	return err == nil && n.Type.IsPerimeter() && n.BelongsTo == dst
}
