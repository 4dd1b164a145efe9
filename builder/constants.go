// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// constants.go - method tokens, defaults and YAML vocabulary.

package builder

import "github.com/katalvlaran/worldgraph/core"

// Method tokens used as error prefixes.
const (
	MethodDecode     = "Decode"
	MethodEncode     = "Encode"
	MethodApply      = "Apply"
	MethodApplyTiled = "ApplyTiled"
	MethodLoad       = "Load"
	MethodExport     = "Export"
)

const (
	// DefaultTileSize is the ApplyTiled tile edge in world units.
	DefaultTileSize = 256

	// MarkerPrefix starts the default Build marker; the graph ID follows.
	MarkerPrefix = "builder/"

	// RiverType is the connection type name mapped to core.RiverConnection.
	RiverType = "river"
)

var directions = map[string]core.Direction{
	"":                           core.TwoWay,
	core.TwoWay.String():         core.TwoWay,
	core.OneWayForward.String():  core.OneWayForward,
	core.OneWayBackward.String(): core.OneWayBackward,
}
