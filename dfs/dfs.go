package dfs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/worldgraph/core"
)

// walker encapsulates state during a traversal.
type walker struct {
	graph *core.WorldGraph
	opts  Options
	res   *Result
}

// errStopped unwinds the recursion once Stop fired; it never escapes.
var errStopped = errors.New("dfs: stopped")

// Traverse walks every node reachable from h, ignoring connection direction.
// It returns the partial Result alongside any abort error.
func Traverse(h core.Handle, opts ...Option) (*Result, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if !h.Valid() {
		return nil, fmt.Errorf("%w: ref %d", ErrNodeNotFound, h.Ref)
	}

	res := &Result{
		Parent:    make(map[core.NodeRef]core.NodeRef),
		Visited:   make(map[core.NodeRef]bool),
		StoppedAt: core.NoNode,
	}
	w := &walker{graph: h.Graph, opts: o, res: res}
	if err = w.traverse(core.NoNode, h.Ref); err != nil && !errors.Is(err, errStopped) {
		return res, err
	}

	return res, nil
}

// Connected reports whether a and b belong to the same graph and are linked
// by any chain of connections. A node is connected to itself.
func Connected(a, b core.Handle, opts ...Option) bool {
	if !a.SameGraph(b) || !a.Valid() || !b.Valid() {
		return false
	}
	if a.Ref == b.Ref {
		return true
	}
	opts = append(slices.Clip(opts), WithStop(func(_, next core.NodeRef) bool { return next == b.Ref }))
	res, err := Traverse(a, opts...)

	return err == nil && res.Stopped
}

// Component returns the refs reachable from h, h included, in ascending order.
func Component(h core.Handle, opts ...Option) ([]core.NodeRef, error) {
	res, err := Traverse(h, opts...)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(res.Order)
	slices.Sort(out)

	return out, nil
}

// Clusters partitions nodes into bridged components. Each node not yet
// assigned seeds a new cluster holding everything it reaches; a nil nodes
// means every node of g. Clusters are ordered by their seed, members
// ascending. A nil g fails with ErrNodeNotFound.
func Clusters(g *core.WorldGraph, nodes []core.NodeRef, opts ...Option) ([][]core.NodeRef, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrNodeNotFound)
	}
	if nodes == nil {
		nodes = g.Nodes()
	}
	opts = append(slices.Clip(opts), WithBridging())

	seen := make(map[core.NodeRef]bool, len(nodes))
	var out [][]core.NodeRef
	for _, n := range nodes {
		if seen[n] {
			continue
		}
		members, err := Component(g.At(n), opts...)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			seen[m] = true
		}
		out = append(out, members)
	}

	return out, nil
}

// traverse visits cur, reached from prev, then recurses into chain
// neighbours and, under bridging, into perimeter relatives.
func (w *walker) traverse(prev, cur core.NodeRef) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.res.Visited[cur] = true
	w.res.Order = append(w.res.Order, cur)
	if prev != core.NoNode {
		w.res.Parent[cur] = prev
	}
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(cur); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", cur, err)
		}
	}

	for _, next := range w.graph.Adjacent(cur) {
		if next == prev {
			continue
		}
		if err := w.step(cur, next); err != nil {
			return err
		}
	}
	if !w.opts.Bridging {
		return nil
	}

	return w.bridge(prev, cur)
}

// bridge moves from a perimeter node to its parent, or from a parent to
// those of its perimeter nodes it has no connection with.
func (w *walker) bridge(prev, cur core.NodeRef) error {
	node, err := w.graph.Node(cur)
	if err != nil {
		return err
	}
	if node.Type.IsPerimeter() {
		if !node.HasParent() || node.BelongsTo == prev {
			return nil
		}

		return w.step(cur, node.BelongsTo)
	}
	for _, p := range w.graph.PerimeterNodes(cur) {
		if p == prev || w.graph.HasDirectConnection(cur, p) {
			continue
		}
		if err = w.step(cur, p); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) step(cur, next core.NodeRef) error {
	if w.opts.Stop != nil && w.opts.Stop(cur, next) {
		w.res.Stopped = true
		w.res.StoppedAt = next

		return errStopped
	}
	if w.res.Visited[next] {
		return nil
	}

	return w.traverse(cur, next)
}
