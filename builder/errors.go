// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; branch with errors.Is.
//   • Context is attached with %w via builderErrorf.
//   • Errors from core (ErrNodeExists, ErrPositionTaken, ...) pass through
//     wrapped, so errors.Is against core sentinels keeps working.

package builder

import (
	"errors"
	"fmt"
)

// ErrDecode indicates the input is not a well-formed YAML document of the
// expected shape (syntax error, unknown field, wrong scalar type).
var ErrDecode = errors.New("builder: cannot decode document")

// ErrInvalidDocument indicates a structurally invalid document: duplicate
// IDs, a position without three coordinates, a chain shorter than two
// nodes, a weight count that does not match the chain, an unknown
// direction, and the like.
var ErrInvalidDocument = errors.New("builder: invalid document")

// ErrUnknownNode indicates a belongs_to or connection entry naming a node
// the document does not define.
var ErrUnknownNode = errors.New("builder: unknown node")

// ErrParentCycle indicates belongs_to links that loop back on themselves.
var ErrParentCycle = errors.New("builder: belongs_to cycle")

// ErrNilGraph indicates a nil *core.WorldGraph was passed.
var ErrNilGraph = errors.New("builder: graph is nil")

// builderErrorf wraps sentinel with the method context and a formatted
// detail: "<Method>: <detail>: <sentinel>".
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
