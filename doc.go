// Package worldgraph is an in-memory spatial network engine for procedural
// worlds: roads and rivers as chains of positioned nodes, queried by
// position, type, weight and hop.
//
// 🚀 What is in the box?
//
//	• geom      - ground-plane vectors, rectangles, grid cells, segment math
//	• core      - WorldGraph arena: nodes, edges, connections, spatial index,
//	              marker-guarded Build, deterministic seeds and IDs
//	• dijkstra  - weighted shortest path, reachable-by-weight, distance
//	• bfs       - fewest-hop routes between junctions, perimeter bridging,
//	              reachable-by-hops
//	• dfs       - direction-free connectivity, components, clusters
//	• registry  - the set of named graphs, created on first access
//	• tiles     - tile-parallel, idempotent construction with metrics
//	• builder   - YAML network descriptions in and out
//	• config    - TOML settings for the worldgraph command
//
// ✨ Guarantees
//
//   - Every graph guards itself with one RWMutex; readers run in parallel,
//     a Build callback holds the write lock for its whole check-then-insert.
//   - Searches are deterministic: insertion-ordered adjacency, FIFO tie
//     breaks, ref-sorted result sets.
//   - Nodes are referenced by int32 handles into their graph's arena;
//     handles of different graphs never connect.
//
// Quick ASCII example:
//
//	[farm]──(bend)──·west  {town}  east·──▶[mill]
//
//	Weighted search stops at west; hop search with bridging steps from the
//	west perimeter node to the east one and arrives at mill in two hops.
//
//	go install github.com/katalvlaran/worldgraph/cmd/worldgraph@latest
package worldgraph
