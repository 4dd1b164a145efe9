// SPDX-License-Identifier: MIT
//
// File: methods_connections.go
// Role: Connection insertion and the directed views traversal reads through.
// Determinism:
//   - Connections touching a node are listed in insertion order.
//   - A Directed view lists edges in travel order with explicit From/To.

package core

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/worldgraph/geom"
)

// Directed is a connection read in one travel direction. Reversed views list
// the stored chain back to front with every edge swapped.
type Directed struct {
	Conn     ConnRef
	Reversed bool
}

// AddConnection inserts a connection along spec.Nodes and returns its handle.
//
// Every node must belong to g and appear once in the chain. Weights must be
// non-negative; nil Weights use the ground-plane distance between neighbours.
//
// Errors: ErrInvalidArgument, ErrShortChain, ErrWeightCount, ErrSelfEdge,
// ErrNegativeWeight, ErrNodeNotFound, ErrConnectionExists.
// Complexity: O(k + cells touched) for a chain of k nodes.
func (g *WorldGraph) AddConnection(spec ConnectionSpec) (ConnRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addConnectionLocked(spec)
}

// Connection returns a copy of the connection behind ref.
func (g *WorldGraph) Connection(ref ConnRef) (Connection, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c, err := g.connLocked(ref)
	if err != nil {
		return Connection{}, err
	}
	out := *c
	out.Edges = slices.Clone(c.Edges)

	return out, nil
}

// ConnectionByID resolves a connection ID to its handle.
func (g *WorldGraph) ConnectionByID(id string) (ConnRef, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ref, ok := g.connByID[id]

	return ref, ok
}

// Edge returns the edge behind ref in stored direction.
func (g *WorldGraph) Edge(ref EdgeRef) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeLocked(ref)
}

// ConnectionsOf lists the connections touching n at any position.
func (g *WorldGraph) ConnectionsOf(n NodeRef) []ConnRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validNode(n) {
		return nil
	}

	return slices.Clone(g.incident[n])
}

// OutgoingConnections lists the views along which n can be left.
//
//	OneWayForward:  as stored unless n is the last node
//	OneWayBackward: reversed unless n is the first node
//	TwoWay:         as stored from the first node, reversed from the last,
//	                both from an interior node
func (g *WorldGraph) OutgoingConnections(n NodeRef) []Directed {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.outgoingLocked(n)
}

// IncomingConnections lists the views along which n can be entered.
func (g *WorldGraph) IncomingConnections(n NodeRef) []Directed {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validNode(n) {
		return nil
	}
	var out []Directed
	for _, cr := range g.incident[n] {
		first, last := g.endsLocked(&g.conns[cr])
		switch g.conns[cr].Direction {
		case OneWayForward:
			if n != first {
				out = append(out, Directed{Conn: cr})
			}
		case OneWayBackward:
			if n != last {
				out = append(out, Directed{Conn: cr, Reversed: true})
			}
		default:
			switch n {
			case last:
				out = append(out, Directed{Conn: cr})
			case first:
				out = append(out, Directed{Conn: cr, Reversed: true})
			default:
				out = append(out, Directed{Conn: cr}, Directed{Conn: cr, Reversed: true})
			}
		}
	}

	return out
}

// OutgoingEdges returns, for every outgoing view of n, the single edge of
// that view leaving n. These are the one-step moves of weighted search.
func (g *WorldGraph) OutgoingEdges(n NodeRef) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for _, d := range g.outgoingLocked(n) {
		if e, ok := g.edgeFromLocked(d, n); ok {
			out = append(out, e)
		}
	}

	return out
}

// Adjacent lists the chain neighbours of n over every connection touching
// it, ignoring direction, in connection insertion order.
func (g *WorldGraph) Adjacent(n NodeRef) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validNode(n) {
		return nil
	}
	var out []NodeRef
	for _, cr := range g.incident[n] {
		for _, er := range g.conns[cr].Edges {
			switch e := g.edges[er]; n {
			case e.From:
				out = append(out, e.To)
			case e.To:
				out = append(out, e.From)
			}
		}
	}

	return out
}

// Edges lists the edges of d in travel order.
func (g *WorldGraph) Edges(d Directed) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(d.Conn) {
		return nil
	}

	return g.edgesLocked(d)
}

// Endpoints returns the first and last node of d.
func (g *WorldGraph) Endpoints(d Directed) (from, to NodeRef) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(d.Conn) {
		return NoNode, NoNode
	}
	first, last := g.endsLocked(&g.conns[d.Conn])
	if d.Reversed {
		return last, first
	}

	return first, last
}

// ConnectionNodes lists the node chain of d in travel order.
func (g *WorldGraph) ConnectionNodes(d Directed) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(d.Conn) {
		return nil
	}

	return g.chainLocked(&g.conns[d.Conn], d.Reversed)
}

// EdgeFrom returns the edge of d whose From is n.
func (g *WorldGraph) EdgeFrom(d Directed, n NodeRef) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(d.Conn) {
		return Edge{}, false
	}

	return g.edgeFromLocked(d, n)
}

// EdgesUntilJunction walks d from start and stops after the first edge whose
// To is an endpoint or crossing. It returns nil when start is not a From of d.
func (g *WorldGraph) EdgesUntilJunction(d Directed, start NodeRef) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(d.Conn) {
		return nil
	}
	var out []Edge
	for _, e := range g.edgesLocked(d) {
		if out == nil && e.From != start {
			continue
		}
		out = append(out, e)
		if g.nodes[e.To].Type.IsJunction() {
			break
		}
	}

	return out
}

// EdgesBetween returns the edges of c leading from a to b, read in whichever
// direction gets there. Unless ignoreDirection is set, a one-way connection
// yields nothing when read against its direction. a == b, or either node
// missing from c, yields nil.
func (g *WorldGraph) EdgesBetween(c ConnRef, a, b NodeRef, ignoreDirection bool) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgesBetweenLocked(c, a, b, ignoreDirection)
}

// IntermediateCrossings lists the crossings strictly inside the chain of c.
func (g *WorldGraph) IntermediateCrossings(c ConnRef) []NodeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(c) {
		return nil
	}
	chain := g.chainLocked(&g.conns[c], false)
	var out []NodeRef
	for _, n := range chain[1 : len(chain)-1] {
		if g.nodes[n].Type.IsCrossing() {
			out = append(out, n)
		}
	}

	return out
}

// Length sums the weights of c.
func (g *WorldGraph) Length(c ConnRef) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validConn(c) {
		return 0
	}
	var sum float64
	for _, er := range g.conns[c].Edges {
		sum += g.edges[er].Weight
	}

	return sum
}

func (g *WorldGraph) validConn(ref ConnRef) bool {
	return ref >= 0 && int(ref) < len(g.conns)
}

func (g *WorldGraph) connLocked(ref ConnRef) (*Connection, error) {
	if !g.validConn(ref) {
		return nil, fmt.Errorf("%w: connection %d in graph %q", ErrInvalidArgument, ref, g.id)
	}

	return &g.conns[ref], nil
}

func (g *WorldGraph) edgeLocked(ref EdgeRef) (Edge, error) {
	if ref < 0 || int(ref) >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: edge %d in graph %q", ErrInvalidArgument, ref, g.id)
	}

	return g.edges[ref], nil
}

func (g *WorldGraph) endsLocked(c *Connection) (first, last NodeRef) {
	return g.edges[c.Edges[0]].From, g.edges[c.Edges[len(c.Edges)-1]].To
}

func (g *WorldGraph) chainLocked(c *Connection, reversed bool) []NodeRef {
	chain := make([]NodeRef, 0, len(c.Edges)+1)
	chain = append(chain, g.edges[c.Edges[0]].From)
	for _, er := range c.Edges {
		chain = append(chain, g.edges[er].To)
	}
	if reversed {
		slices.Reverse(chain)
	}

	return chain
}

func (g *WorldGraph) edgesLocked(d Directed) []Edge {
	c := &g.conns[d.Conn]
	out := make([]Edge, len(c.Edges))
	for i, er := range c.Edges {
		if d.Reversed {
			out[len(out)-1-i] = g.edges[er].Reversed()
		} else {
			out[i] = g.edges[er]
		}
	}

	return out
}

func (g *WorldGraph) edgeFromLocked(d Directed, n NodeRef) (Edge, bool) {
	for _, er := range g.conns[d.Conn].Edges {
		e := g.edges[er]
		if d.Reversed {
			e = e.Reversed()
		}
		if e.From == n {
			return e, true
		}
	}

	return Edge{}, false
}

func (g *WorldGraph) outgoingLocked(n NodeRef) []Directed {
	if !g.validNode(n) {
		return nil
	}
	var out []Directed
	for _, cr := range g.incident[n] {
		first, last := g.endsLocked(&g.conns[cr])
		switch g.conns[cr].Direction {
		case OneWayForward:
			if n != last {
				out = append(out, Directed{Conn: cr})
			}
		case OneWayBackward:
			if n != first {
				out = append(out, Directed{Conn: cr, Reversed: true})
			}
		default:
			switch n {
			case first:
				out = append(out, Directed{Conn: cr})
			case last:
				out = append(out, Directed{Conn: cr, Reversed: true})
			default:
				out = append(out, Directed{Conn: cr}, Directed{Conn: cr, Reversed: true})
			}
		}
	}

	return out
}

func (g *WorldGraph) edgesBetweenLocked(c ConnRef, a, b NodeRef, ignoreDirection bool) []Edge {
	if a == b || !g.validConn(c) {
		return nil
	}
	conn := &g.conns[c]
	chain := g.chainLocked(conn, false)
	ia, ib := slices.Index(chain, a), slices.Index(chain, b)
	if ia < 0 || ib < 0 {
		return nil
	}
	if ia < ib {
		if conn.Direction == OneWayBackward && !ignoreDirection {
			return nil
		}

		return g.edgesLocked(Directed{Conn: c})[ia:ib]
	}
	if conn.Direction == OneWayForward && !ignoreDirection {
		return nil
	}
	// In the reversed view a sits at len(chain)-1-ia.
	n := len(chain) - 1

	return g.edgesLocked(Directed{Conn: c, Reversed: true})[n-ia : n-ib]
}

func (g *WorldGraph) addConnectionLocked(spec ConnectionSpec) (ConnRef, error) {
	if len(spec.Nodes) < 2 {
		return -1, fmt.Errorf("%w: got %d", ErrShortChain, len(spec.Nodes))
	}
	if spec.Weights != nil && len(spec.Weights) != len(spec.Nodes)-1 {
		return -1, fmt.Errorf("%w: %d weights for %d nodes", ErrWeightCount, len(spec.Weights), len(spec.Nodes))
	}
	if spec.Direction > OneWayBackward || spec.Type.Base > RiverConnection {
		return -1, fmt.Errorf("%w: direction %d, type %d", ErrInvalidArgument, spec.Direction, spec.Type.Base)
	}
	seen := make(map[NodeRef]struct{}, len(spec.Nodes))
	for i, n := range spec.Nodes {
		if !g.validNode(n) {
			return -1, fmt.Errorf("%w: chain node %d", ErrNodeNotFound, n)
		}
		if i > 0 && spec.Nodes[i-1] == n {
			return -1, fmt.Errorf("%w: node %q at %d", ErrSelfEdge, g.nodes[n].ID, i)
		}
		if _, dup := seen[n]; dup {
			return -1, fmt.Errorf("%w: node %q repeats in chain", ErrInvalidArgument, g.nodes[n].ID)
		}
		seen[n] = struct{}{}
	}
	for i, w := range spec.Weights {
		if w < 0 || math.IsNaN(w) {
			return -1, fmt.Errorf("%w: %v at edge %d", ErrNegativeWeight, w, i)
		}
	}

	id := spec.ID
	if id == "" {
		first, last := g.nodes[spec.Nodes[0]], g.nodes[spec.Nodes[len(spec.Nodes)-1]]
		id = derivedID(SeedFrom(first, last), g.connIDUsed)
	} else if g.connIDUsed(id) {
		return -1, fmt.Errorf("%w: %q", ErrConnectionExists, id)
	}

	ref := ConnRef(len(g.conns))
	conn := Connection{
		Ref:       ref,
		ID:        id,
		Type:      spec.Type,
		Direction: spec.Direction,
		Reference: spec.Reference,
		Edges:     make([]EdgeRef, 0, len(spec.Nodes)-1),
	}
	cells := make(map[geom.Cell]struct{})
	for i := 1; i < len(spec.Nodes); i++ {
		from, to := spec.Nodes[i-1], spec.Nodes[i]
		w := geom.FlatDistance(g.nodes[from].Position, g.nodes[to].Position)
		if spec.Weights != nil {
			w = spec.Weights[i-1]
		}
		er := EdgeRef(len(g.edges))
		g.edges = append(g.edges, Edge{Ref: er, From: from, To: to, Weight: w, Connection: ref})
		conn.Edges = append(conn.Edges, er)
		for _, cell := range geom.TouchedBetween(g.nodes[from].Flat(), g.nodes[to].Flat(), g.cellSize) {
			cells[cell] = struct{}{}
		}
	}
	g.conns = append(g.conns, conn)
	g.connByID[id] = ref
	for _, n := range spec.Nodes {
		g.incident[n] = append(g.incident[n], ref)
	}
	for cell := range cells {
		g.connsByCell[cell] = append(g.connsByCell[cell], ref)
	}
	g.connsByRef[spec.Reference] = append(g.connsByRef[spec.Reference], ref)

	g.logger.Debug("connection added", "graph", g.id, "id", id, "nodes", len(spec.Nodes), "reference", spec.Reference)

	return ref, nil
}

func (g *WorldGraph) connIDUsed(id string) bool {
	_, used := g.connByID[id]

	return used
}
