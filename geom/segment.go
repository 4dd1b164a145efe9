package geom

// Intersect returns the intersection of the finite segments a1→a2 and
// b1→b2. Parallel segments never intersect. When padding > 0, hits closer
// than padding to any of the four endpoints are rejected.
func Intersect(a1, a2, b1, b2 Vec2, padding float64) (Vec2, bool) {
	ea := a2.Y - a1.Y
	fa := a1.X - a2.X
	ga := ea*a1.X + fa*a1.Y

	eb := b2.Y - b1.Y
	fb := b1.X - b2.X
	gb := eb*b1.X + fb*b1.Y

	det := ea*fb - eb*fa
	if det == 0 {
		return Vec2{}, false
	}

	x := (fb*ga - fa*gb) / det
	y := (ea*gb - eb*ga) / det

	if !within(x, a1.X, a2.X) || !within(y, a1.Y, a2.Y) ||
		!within(x, b1.X, b2.X) || !within(y, b1.Y, b2.Y) {
		return Vec2{}, false
	}

	hit := V2(x, y)
	if padding > 0 {
		for _, p := range [...]Vec2{a1, a2, b1, b2} {
			if p.Sub(hit).Length() < padding {
				return Vec2{}, false
			}
		}
	}

	return hit, true
}

// within reports whether v lies in the closed interval spanned by a and b.
func within(v, a, b float64) bool {
	if a > b {
		a, b = b, a
	}

	return v >= a && v <= b
}

// ClosestPointOnLine projects p onto the infinite line through from and to.
// A degenerate line (from == to) returns from.
func ClosestPointOnLine(from, to, p Vec3) Vec3 {
	dir := to.Sub(from)
	l := dir.Length()
	if l == 0 {
		return from
	}
	dir = dir.MulScalar(1 / l)

	return from.Add(dir.MulScalar(p.Sub(from).Dot(dir)))
}

// ClosestPointOnSegment is ClosestPointOnLine clamped to the segment.
func ClosestPointOnSegment(from, to, p Vec3) Vec3 {
	dir := to.Sub(from)
	l2 := dir.Dot(dir)
	if l2 == 0 {
		return from
	}
	t := p.Sub(from).Dot(dir) / l2
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}

	return from.Add(dir.MulScalar(t))
}

// DistanceToLine is the distance from p to the infinite line through from and to.
func DistanceToLine(from, to, p Vec3) float64 {
	return ClosestPointOnLine(from, to, p).Sub(p).Length()
}

// DistanceToSegment is the distance from p to the segment from→to.
func DistanceToSegment(from, to, p Vec3) float64 {
	return ClosestPointOnSegment(from, to, p).Sub(p).Length()
}

// BorderIntersection finds where the segment inside→outside leaves r.
// Sides are tried in the order top, bottom, left, right, following the
// direction of travel.
func BorderIntersection(inside, outside Vec2, r Rect) (Vec2, bool) {
	d := outside.Sub(inside)

	if d.Y > 0 {
		if d.X == 0 && inside.Y < r.Max.Y && outside.Y > r.Max.Y {
			return V2(inside.X, r.Max.Y), true
		}
		if hit, ok := Intersect(inside, outside, V2(r.Min.X, r.Max.Y), r.Max, -1); ok {
			return hit, true
		}
	}
	if d.Y < 0 {
		if d.X == 0 && inside.Y > r.Min.Y && outside.Y < r.Min.Y {
			return V2(inside.X, r.Min.Y), true
		}
		if hit, ok := Intersect(inside, outside, r.Min, V2(r.Max.X, r.Min.Y), -1); ok {
			return hit, true
		}
	}
	if d.X < 0 {
		if d.Y == 0 && inside.X > r.Min.X && outside.X < r.Min.X {
			return V2(r.Min.X, inside.Y), true
		}
		if hit, ok := Intersect(inside, outside, r.Min, V2(r.Min.X, r.Max.Y), -1); ok {
			return hit, true
		}
	}
	if d.X > 0 {
		if d.Y == 0 && inside.X < r.Max.X && outside.X > r.Max.X {
			return V2(r.Max.X, inside.Y), true
		}
		if hit, ok := Intersect(inside, outside, V2(r.Max.X, r.Min.Y), r.Max, -1); ok {
			return hit, true
		}
	}

	return Vec2{}, false
}
