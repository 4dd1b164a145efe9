package geom

import (
	"fmt"
	"math"
)

// Cell is a square of the tiling grid, keyed by its lower-left corner.
type Cell struct {
	X, Z int
}

// String renders the cell as "Cell(x, z)".
func (c Cell) String() string { return fmt.Sprintf("Cell(%d, %d)", c.X, c.Z) }

// Rect returns the area covered by c for the given cell size.
func (c Cell) Rect(size int) Rect {
	return NewRect(float64(c.X), float64(c.Z), float64(size), float64(size))
}

// Snap floors v to a multiple of size.
func Snap(v float64, size int) int {
	return int(math.Floor(v/float64(size))) * size
}

// CellFor returns the cell containing p.
func CellFor(p Vec2, size int) Cell {
	return Cell{X: Snap(p.X, size), Z: Snap(p.Y, size)}
}

// CellFor3 returns the cell containing the ground projection of p.
func CellFor3(p Vec3, size int) Cell {
	return CellFor(Flat(p), size)
}

// CellRange is the inclusive block of cells between two corner cells. An
// unbounded range stands for the whole plane; it has no cell list and
// contains every cell.
type CellRange struct {
	Lo, Hi    Cell
	Size      int
	Unbounded bool
}

// RangeForRect returns the block of cells touched by r. An empty rectangle
// still touches the cell containing Min.
func RangeForRect(r Rect, size int) CellRange {
	if !finite(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y) {
		return CellRange{Size: size, Unbounded: true}
	}
	lo := CellFor(r.Min, size)
	hi := CellFor(r.Max, size)
	// Max is exclusive: a rectangle ending exactly on a cell boundary does
	// not reach into the next cell.
	if float64(hi.X) == r.Max.X && hi.X > lo.X {
		hi.X -= size
	}
	if float64(hi.Z) == r.Max.Y && hi.Z > lo.Z {
		hi.Z -= size
	}

	return CellRange{Lo: lo, Hi: hi, Size: size}
}

// RangeForSquare returns the block of cells touched by the closed square of
// half-extent r around p.
func RangeForSquare(p Vec2, r float64, size int) CellRange {
	if !finite(p.X-r, p.Y-r, p.X+r, p.Y+r) {
		return CellRange{Size: size, Unbounded: true}
	}

	return CellRange{
		Lo:   CellFor(V2(p.X-r, p.Y-r), size),
		Hi:   CellFor(V2(p.X+r, p.Y+r), size),
		Size: size,
	}
}

// Len returns the number of cells in the block without listing them,
// saturating at math.MaxInt.
func (cr CellRange) Len() int {
	if cr.Unbounded {
		return math.MaxInt
	}
	nx := (float64(cr.Hi.X)-float64(cr.Lo.X))/float64(cr.Size) + 1
	nz := (float64(cr.Hi.Z)-float64(cr.Lo.Z))/float64(cr.Size) + 1
	if n := nx * nz; n < math.MaxInt32 {
		return int(n)
	}

	return math.MaxInt
}

// Contains reports whether c lies in the block.
func (cr CellRange) Contains(c Cell) bool {
	if cr.Unbounded {
		return true
	}

	return c.X >= cr.Lo.X && c.X <= cr.Hi.X && c.Z >= cr.Lo.Z && c.Z <= cr.Hi.Z
}

// Cells lists the block in row-major order (Z outer, X inner). An unbounded
// range lists nothing.
func (cr CellRange) Cells() []Cell {
	if cr.Unbounded {
		return nil
	}
	cells := make([]Cell, 0, cr.Len())
	for z := cr.Lo.Z; z <= cr.Hi.Z; z += cr.Size {
		for x := cr.Lo.X; x <= cr.Hi.X; x += cr.Size {
			cells = append(cells, Cell{X: x, Z: z})
		}
	}

	return cells
}

// CellsForRect lists every cell touched by r, in row-major order (Z outer,
// X inner).
func CellsForRect(r Rect, size int) []Cell { return RangeForRect(r, size).Cells() }

// CellsForRange lists every cell touched by the closed square of
// half-extent r around p. Points exactly r away are covered.
func CellsForRange(p Vec2, r float64, size int) []Cell {
	return RangeForSquare(p, r, size).Cells()
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}

// TouchedBetween lists the cells crossed by the segment a→b: the cells of
// both ends plus every cell in their bounding box whose border the segment
// intersects.
func TouchedBetween(a, b Vec2, size int) []Cell {
	start, end := CellFor(a, size), CellFor(b, size)
	if start == end {
		return []Cell{start}
	}

	bounds := Rect{
		Min: V2(float64(min(start.X, end.X)), float64(min(start.Z, end.Z))),
		Max: V2(float64(max(start.X, end.X)+size), float64(max(start.Z, end.Z)+size)),
	}

	var out []Cell
	for _, c := range CellsForRect(bounds, size) {
		if c == start || c == end {
			out = append(out, c)
			continue
		}
		if _, ok := BorderIntersection(a, b, c.Rect(size)); ok {
			out = append(out, c)
		}
	}

	return out
}
