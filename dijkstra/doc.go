// Package dijkstra answers weighted questions on a core.WorldGraph: the
// cheapest route between two nodes, the set of nodes within a cost budget,
// and the derived distance/reachability checks.
//
// Overview:
//
//   - Uniform-cost search over core.Path candidates ordered by accumulated
//     weight. A step is the single edge of an outgoing connection that leaves
//     the current node; a search never jumps along a whole connection.
//   - Directions are honoured: one-way connections are only read forward
//     (see core.WorldGraph.OutgoingConnections).
//   - Perimeter bridging is never applied here: every metre must be paid.
//
// Results, not errors:
//
//   - Unreachable destinations, nodes of different graphs and src == dst all
//     produce the empty path standing on the source (zero weight, no edges).
//     Bulk scans need no error handling for disconnected regions.
//
// Determinism:
//
//   - Equal weights pop in insertion (FIFO) order, so among several cheapest
//     routes the first one discovered wins, on every run.
//   - Reachable returns refs sorted ascending.
//
// Complexity:
//
//   - Time:  O((V + E) log E), each node expanded at most once.
//   - Space: O(E) frontier entries under lazy decrease-key; each entry
//     carries its own edge slice.
//
// Concurrency:
//
//   - Each accessor call takes the graph's read lock for its own duration.
//     Searches are safe next to concurrent readers; callers that search
//     while tiles are still being built see whatever was inserted so far.
package dijkstra
