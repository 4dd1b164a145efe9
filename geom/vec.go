package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec3 is a position in world space. Y is height.
type Vec3 = v3.Vec

// Vec2 is a position on the ground plane. Its Y component holds world Z.
type Vec2 = v2.Vec

// V3 is shorthand for a Vec3 literal.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// V2 is shorthand for a Vec2 literal.
func V2(x, z float64) Vec2 { return Vec2{X: x, Y: z} }

// Flat drops the height of p.
func Flat(p Vec3) Vec2 { return Vec2{X: p.X, Y: p.Z} }

// Lift raises a ground-plane point to height y.
func Lift(p Vec2, y float64) Vec3 { return Vec3{X: p.X, Y: y, Z: p.Y} }

// Distance is the euclidean distance between a and b.
func Distance(a, b Vec3) float64 { return b.Sub(a).Length() }

// FlatDistance is the euclidean distance between a and b ignoring height.
func FlatDistance(a, b Vec3) float64 { return Flat(b).Sub(Flat(a)).Length() }

// TooClose reports whether candidate lies closer than minDistance to any of others.
func TooClose(candidate Vec3, minDistance float64, others []Vec3) bool {
	for _, o := range others {
		if Distance(candidate, o) < minDistance {
			return true
		}
	}

	return false
}

// SignedAngle2 returns the angle in degrees from a to b, positive when b is
// counter-clockwise of a on the ground plane.
func SignedAngle2(a, b Vec2) float64 {
	cross := a.X*b.Y - a.Y*b.X

	return math.Atan2(cross, a.Dot(b)) * 180 / math.Pi
}
