// SPDX-License-Identifier: MIT
//
// File: path.go
// Role: Route candidate shared by the traversal packages.

package core

import "slices"

// Path is a route candidate: the edges taken so far, their summed weight,
// the number of junction-to-junction hops, and the node reached.
//
// The zero route of a search is StartAt(source): no edges, Last == source.
// Search results use the same shape for "no route".
type Path struct {
	Weight float64
	Hops   int
	Edges  []Edge
	Last   NodeRef
}

// StartAt returns the empty path standing on n.
func StartAt(n NodeRef) Path { return Path{Last: n} }

// Extend returns a new path with edges appended. The receiver's edge slice
// is never shared with the result.
func (p Path) Extend(edges ...Edge) Path {
	if len(edges) == 0 {
		return p
	}
	next := Path{Weight: p.Weight, Hops: p.Hops, Last: edges[len(edges)-1].To}
	next.Edges = append(slices.Clip(p.Edges), edges...)
	for _, e := range edges {
		next.Weight += e.Weight
	}

	return next
}

// Hop is Extend that also counts one hop.
func (p Path) Hop(edges ...Edge) Path {
	next := p.Extend(edges...)
	next.Hops = p.Hops + 1

	return next
}

// Empty reports whether the path has no edges.
func (p Path) Empty() bool { return len(p.Edges) == 0 }

// First returns the node the path starts at.
func (p Path) First() NodeRef {
	if len(p.Edges) == 0 {
		return p.Last
	}

	return p.Edges[0].From
}

// Nodes lists the visited nodes, first to last.
func (p Path) Nodes() []NodeRef {
	out := make([]NodeRef, 0, len(p.Edges)+1)
	out = append(out, p.First())
	for _, e := range p.Edges {
		out = append(out, e.To)
	}

	return out
}
