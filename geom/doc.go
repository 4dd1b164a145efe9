// Package geom provides the small set of planar and spatial primitives the
// graph layer needs: vectors, axis-aligned rectangles, grid cells and
// segment math.
//
// Coordinates follow the terrain convention used throughout worldgraph:
// X and Z span the ground plane, Y is height. Every 2D query (rectangles,
// radius searches, grid cells) works on the projected (X, Z) plane, which
// Vec2 stores as (X, Y).
//
// All functions are pure and allocation-light; none of them return errors.
// Degenerate input (zero-length segments, parallel lines) yields a zero
// value or a false/nil result rather than a panic.
//
// Grid cells
//
//	A Cell is identified by the lower-left corner of a square of side
//	`size`. CellFor floors each coordinate to a multiple of size, so
//	negative coordinates land in the cell to their lower-left as well:
//
//	    CellFor((-1, 5), 64) == Cell{X: -64, Z: 0}
//
//	RangeForRect and RangeForSquare describe the block of cells an area
//	touches as a CellRange, which can be counted and tested without being
//	listed. CellsForRect and CellsForRange list the block.
package geom
