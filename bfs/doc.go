// Package bfs answers topological questions on a core.WorldGraph, where the
// unit of distance is the hop: one walk along a connection from an endpoint
// or crossing to the next endpoint or crossing.
//
// What
//
//   - ShortestPathByHops: fewest-hop route between two junctions, optionally
//     bridging co-located perimeter nodes of the same parent (WithBridging).
//   - BridgedConnections: the connections a perimeter (or its parent) may use
//     for free under bridging.
//   - ReachableByHops: every junction within N hops.
//
// Hops
//
//	A hop starts at the current node and follows one outgoing connection
//	until the first edge that ends on an endpoint or crossing, or the end of
//	the chain. Section and perimeter nodes on the way are not hops of their
//	own; the returned edges include them.
//
// Bridging
//
//	A junction is usually ringed by perimeter nodes and connections attach to
//	whichever one was convenient. With WithBridging, a search standing on a
//	perimeter node (or on an endpoint) may also leave through the outgoing
//	connections of the parent's other perimeter nodes, provided those are not
//	already linked to the parent by a connection. Such a hop starts at the
//	sibling perimeter: the returned edge list jumps from the current node to
//	the sibling at no cost. Reaching a perimeter node of the destination
//	counts as arriving.
//
//	ReachableByHops never bridges, even when WithBridging is passed.
//
// Cancellation
//
//	WithContext is checked before each dequeue; a done context ends either
//	search with ctx.Err().
//
// Determinism
//
//	Outgoing connections are listed in insertion order and the queue is FIFO,
//	so the returned route and set are reproducible.
//
// Complexity (V = |nodes|, C = |connections|, k = longest chain)
//
//   - Time:   O(V + C·k), each node is expanded at most once.
//   - Memory: O(C·k) for queued routes.
package bfs
