// Package dfs answers connectivity questions on a core.WorldGraph by a
// depth-first walk that ignores connection direction.
//
// What:
//
//   - Traverse: walk every node reachable from a start node, recording
//     discovery order and parent links. Supports cancellation, a pre-order
//     hook and an early-exit Stop predicate.
//   - Connected: whether two nodes of one graph are linked at all.
//   - Component: the sorted set of nodes reachable from a start node.
//   - Clusters: partition a set of nodes into bridged components.
//
// Bridging:
//
//	With WithBridging a perimeter node also leads to its parent, and a
//	parent leads to each of its perimeter nodes that it is not already
//	joined to by a connection. Without it, perimeter nodes are plain chain
//	members. Clusters always bridges.
//
// Determinism:
//
//	Neighbours are visited in connection insertion order, then perimeter
//	members in ref order, so Order and Parent are reproducible.
//
// Complexity:
//
//   - Time:   O(V + E) plus the perimeter fan-out of visited parents.
//   - Memory: O(V) for the recursion stack and bookkeeping maps.
//
// Errors:
//
//   - ErrNodeNotFound       start handle does not resolve.
//   - ErrOptionViolation    a nil hook or predicate was supplied.
//   - context.Canceled      traversal canceled via context.
//   - any error returned by OnVisit.
package dfs
