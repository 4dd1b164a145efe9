package geom

// Rect is an axis-aligned rectangle on the ground plane.
// Min is inclusive, Max is exclusive.
type Rect struct {
	Min, Max Vec2
}

// NewRect builds a rectangle from its lower-left corner and size.
func NewRect(x, z, width, depth float64) Rect {
	return Rect{Min: V2(x, z), Max: V2(x+width, z+depth)}
}

// RectAround returns the square of half-extent r centred on p.
func RectAround(p Vec2, r float64) Rect {
	return Rect{Min: V2(p.X-r, p.Y-r), Max: V2(p.X+r, p.Y+r)}
}

// Width is the X extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Depth is the Z extent.
func (r Rect) Depth() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r (Min inclusive, Max exclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return o.Max.X > r.Min.X && o.Min.X < r.Max.X && o.Max.Y > r.Min.Y && o.Min.Y < r.Max.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}
