// Package builder provides the weight policies used for connections whose
// document entry has no weights.
package builder

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/geom"
)

// WeightFn produces the weight of the edge from a to b. It must be pure and
// return a non-negative value.
type WeightFn func(a, b core.Node) float64

// FlatWeightFn measures the ground-plane distance, ignoring height.
func FlatWeightFn(a, b core.Node) float64 {
	return geom.FlatDistance(a.Position, b.Position)
}

// DistanceWeightFn measures the 3D distance, so climbs cost more.
func DistanceWeightFn(a, b core.Node) float64 {
	return geom.Distance(a.Position, b.Position)
}

// ConstantWeightFn returns a WeightFn that always yields value, turning
// weighted search into hop counting along edges. Panics if value < 0.
func ConstantWeightFn(value float64) WeightFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantWeightFn: value must be ≥ 0, got %g", value))
	}

	return func(_, _ core.Node) float64 { return value }
}

// ScaledWeightFn multiplies base by the numeric Data[key] of the
// destination node, or by 1 when the key is missing or not a finite
// non-negative number. Panics on a nil base.
func ScaledWeightFn(base WeightFn, key string) WeightFn {
	if base == nil {
		panic("ScaledWeightFn: nil base")
	}

	return func(a, b core.Node) float64 {
		w := base(a, b)
		f, err := strconv.ParseFloat(b.Data[key], 64)
		if err != nil || !(f >= 0) || math.IsInf(f, 1) {
			return w
		}

		return w * f
	}
}
