package tiles

import (
	"fmt"

	"github.com/katalvlaran/worldgraph/geom"
)

// Tile is a square of the ground plane, keyed by its lower-left corner.
type Tile struct {
	X, Z int
	Size int
}

// Rect returns the area the tile covers.
func (t Tile) Rect() geom.Rect {
	return geom.NewRect(float64(t.X), float64(t.Z), float64(t.Size), float64(t.Size))
}

// Marker is the Build marker for generator name on this tile.
func (t Tile) Marker(name string) string {
	return fmt.Sprintf("%s@%d,%d/%d", name, t.X, t.Z, t.Size)
}

func (t Tile) String() string { return fmt.Sprintf("Tile(%d, %d, %d)", t.X, t.Z, t.Size) }

// Grid lists the tiles of the given size covering r, row by row.
func Grid(r geom.Rect, size int) []Tile {
	if size <= 0 || r.Empty() {
		return nil
	}
	cells := geom.CellsForRect(r, size)
	out := make([]Tile, len(cells))
	for i, c := range cells {
		out[i] = Tile{X: c.X, Z: c.Z, Size: size}
	}

	return out
}

// For returns the tile of the given size containing p.
func For(p geom.Vec2, size int) Tile {
	c := geom.CellFor(p, size)

	return Tile{X: c.X, Z: c.Z, Size: size}
}
