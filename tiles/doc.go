// Package tiles drives incremental, tile-by-tile construction of a
// core.WorldGraph.
//
// The world is cut into square tiles. A Generator plans the content of one
// tile without touching the graph's write lock, then hands back a Commit
// that the Runner applies inside WorldGraph.Build under a marker naming the
// generator and the tile. Planning runs on a bounded errgroup; commits are
// serialized by the graph. Running the same generator over the same tiles
// again skips every tile that already committed.
//
// A Runner exposes three Prometheus collectors on the Registerer it is
// given: worldgraph_tiles_built_total, worldgraph_tiles_skipped_total (both
// labelled by generator) and worldgraph_tile_build_seconds.
package tiles
