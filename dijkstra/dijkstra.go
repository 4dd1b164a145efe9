package dijkstra

import (
	"container/heap"
	"math"
	"slices"

	"github.com/katalvlaran/worldgraph/core"
)

// ShortestPath returns the cheapest route from src to dst with every edge
// directed toward dst.
//
// Every path that reaches dst is kept as a candidate; expansion continues
// while cheaper candidates may exist, and partial paths no cheaper than the
// best candidate are pruned. The first-discovered minimum is returned.
//
// Returns core.StartAt(src.Ref) when src == dst, when the handles live in
// different graphs, when either handle does not resolve, or when dst is
// unreachable.
//
// Complexity:
//
//   - Time:  O((V + E) log E)
//   - Space: O(E) frontier entries.
func ShortestPath(src, dst core.Handle) core.Path {
	none := core.StartAt(src.Ref)
	if src.Ref == dst.Ref || !src.SameGraph(dst) || !src.Valid() || !dst.Valid() {
		return none
	}

	r := newRunner(src.Graph, src.Ref)
	best := math.Inf(1)
	var found []core.Path
	for r.pq.Len() > 0 {
		cur := r.pop()
		if cur.Weight >= best {
			// The frontier is ordered; nothing left can beat the best candidate.
			break
		}
		if !r.visit(cur.Last) {
			continue
		}
		for _, e := range r.g.OutgoingEdges(cur.Last) {
			if r.visited(e.To) {
				continue
			}
			next := cur.Extend(e)
			if e.To == dst.Ref {
				found = append(found, next)
				best = min(best, next.Weight)
				continue
			}
			if next.Weight < best {
				r.push(next)
			}
		}
	}

	if len(found) == 0 {
		return none
	}

	return slices.MinFunc(found, func(a, b core.Path) int {
		switch {
		case a.Weight < b.Weight:
			return -1
		case a.Weight > b.Weight:
			return 1
		default:
			return 0
		}
	})
}

// Reachable returns every node whose cheapest route from h costs at most
// maxWeight, h included, sorted by ref. WithTypeFilter narrows the result
// after the search; filtered types still act as waypoints.
//
// Errors: ErrBadMaxDistance, ErrSourceNotFound.
func Reachable(h core.Handle, maxWeight float64, opts ...Option) ([]core.NodeRef, error) {
	if maxWeight < 0 || math.IsNaN(maxWeight) {
		return nil, ErrBadMaxDistance
	}
	if !h.Valid() {
		return nil, ErrSourceNotFound
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := newRunner(h.Graph, h.Ref)
	for r.pq.Len() > 0 {
		cur := r.pop()
		if cur.Weight > maxWeight {
			break
		}
		if !r.visit(cur.Last) {
			continue
		}
		for _, e := range r.g.OutgoingEdges(cur.Last) {
			if !r.visited(e.To) && cur.Weight+e.Weight <= maxWeight {
				r.push(cur.Extend(e))
			}
		}
	}

	out := make([]core.NodeRef, 0, len(r.seen))
	for ref := range r.seen {
		n, err := r.g.Node(ref)
		if err == nil && cfg.keep(n.Type) {
			out = append(out, ref)
		}
	}
	slices.Sort(out)

	return out, nil
}

// Distance returns the weight of the cheapest route from src to dst and
// whether one exists. A node is at distance 0 from itself.
func Distance(src, dst core.Handle) (float64, bool) {
	if src.SameGraph(dst) && src.Ref == dst.Ref && src.Valid() {
		return 0, true
	}
	p := ShortestPath(src, dst)
	if p.Empty() {
		return 0, false
	}

	return p.Weight, true
}

// IsReachable reports whether dst can be reached from src.
func IsReachable(src, dst core.Handle) bool {
	_, ok := Distance(src, dst)

	return ok
}

// runner holds the mutable state of one search.
type runner struct {
	g    *core.WorldGraph
	pq   pathPQ
	seq  uint64
	seen map[core.NodeRef]struct{}
}

func newRunner(g *core.WorldGraph, src core.NodeRef) *runner {
	r := &runner{g: g, seen: make(map[core.NodeRef]struct{})}
	heap.Init(&r.pq)
	r.push(core.StartAt(src))

	return r
}

func (r *runner) push(p core.Path) {
	heap.Push(&r.pq, &pathItem{path: p, seq: r.seq})
	r.seq++
}

func (r *runner) pop() core.Path {
	return heap.Pop(&r.pq).(*pathItem).path
}

// visit marks n and reports whether it was new.
func (r *runner) visit(n core.NodeRef) bool {
	if _, ok := r.seen[n]; ok {
		return false
	}
	r.seen[n] = struct{}{}

	return true
}

func (r *runner) visited(n core.NodeRef) bool {
	_, ok := r.seen[n]

	return ok
}

// pathItem is a frontier entry; seq breaks weight ties in push order.
type pathItem struct {
	path core.Path
	seq  uint64
}

// pathPQ is a min-heap of *pathItem ordered by (weight, seq). Stale entries
// for already-visited nodes stay in the heap and are skipped when popped.
type pathPQ []*pathItem

func (pq pathPQ) Len() int { return len(pq) }

func (pq pathPQ) Less(i, j int) bool {
	if pq[i].path.Weight != pq[j].path.Weight {
		return pq[i].path.Weight < pq[j].path.Weight
	}

	return pq[i].seq < pq[j].seq
}

func (pq pathPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathPQ) Push(x any) { *pq = append(*pq, x.(*pathItem)) }

func (pq *pathPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
