// Package core provides the WorldGraph: a thread-safe, arena-backed spatial
// network of typed nodes joined by directed, weighted connections.
//
// A WorldGraph W = (N, E, C) stores:
//
//   - Nodes: positioned (geom.Vec3), typed (NodeType), optionally owned by a
//     parent junction through BelongsTo.
//   - Edges: single traversal steps From→To with a non-negative weight.
//   - Connections: contiguous edge chains carrying a Direction
//     (TwoWay, OneWayForward, OneWayBackward), a ConnectionType and the
//     Reference of the generator that produced them.
//
// All cross-references are int32 handles (NodeRef, EdgeRef, ConnRef) into
// the owning graph. Node handles start at 1; the zero NodeRef is NoNode. Two handles from different graphs never compare; use
// Handle when a query may receive nodes of several graphs.
//
// Indices:
//
//	byID / byPosition          - uniqueness checks on insert, O(1)
//	byCell[cell][type]         - spatial+type lookups, cell = CellSize() (default 64)
//	incident[node]             - connections touching a node
//	members[node]              - reverse of BelongsTo (perimeter rings)
//	connsByCell / connsByRef   - connection lookup by tile and generator
//	processed                  - tile markers consumed by Build
//
// Directed views:
//
// A connection is read from a node's point of view through Directed, which
// either keeps or mirrors the stored edge order. OutgoingConnections and
// IncomingConnections apply the Direction table:
//
//	OneWayForward   node != last   → as stored
//	OneWayBackward  node != first  → reversed
//	TwoWay          node == first  → as stored
//	                node == last   → reversed
//	                otherwise      → both
//
// Concurrency:
//
// Every exported method is safe for concurrent use. Queries take the read
// lock for their own duration only; a caller that needs check-then-act
// atomicity (one generation step per tile) uses Build, which runs a Tx under
// the write lock and records the marker.
//
// Determinism:
//
// Query results are sorted (by NodeRef, by distance then NodeRef, or by
// NodeType order). Seeds are pure functions of node attributes computed
// with wrapping int32 multiplication, see Node.Seed and SeedFrom.
package core
