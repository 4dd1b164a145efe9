// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// helpers.go - conversions between document vocabulary and core values.

package builder

import (
	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/geom"
)

// ParseNodeType maps a base type name to its NodeType and any other name to
// a Custom subtype.
func ParseNodeType(s string) core.NodeType {
	if b, err := core.ParseBaseType(s); err == nil {
		return core.TypeOf(b)
	}

	return core.CustomType(s)
}

// FormatNodeType is the inverse of ParseNodeType.
func FormatNodeType(t core.NodeType) string {
	if t.Base == core.Custom && t.Custom != "" {
		return t.Custom
	}

	return t.Base.String()
}

func parseConnectionType(s string) core.ConnectionType {
	if s == RiverType {
		return core.ConnectionType{Base: core.RiverConnection}
	}

	return core.ConnectionType{Base: core.CustomConnection, Custom: s}
}

func formatConnectionType(t core.ConnectionType) string {
	if t.Base == core.RiverConnection {
		return RiverType
	}

	return t.Custom
}

func (nd NodeDoc) position() geom.Vec3 { return geom.V3(nd.Pos[0], nd.Pos[1], nd.Pos[2]) }

// levels groups node indices by belongs_to depth: roots first, then their
// members, and so on. Document order is kept inside a level. The document
// must have passed validateDocument.
func levels(doc *Document) [][]int {
	index := make(map[string]int, len(doc.Nodes))
	for i, nd := range doc.Nodes {
		if nd.ID != "" {
			index[nd.ID] = i
		}
	}

	depth := make([]int, len(doc.Nodes))
	for i := range depth {
		depth[i] = -1
	}
	var resolve func(i int) int
	resolve = func(i int) int {
		if depth[i] >= 0 {
			return depth[i]
		}
		d := 0
		if p, ok := index[doc.Nodes[i].BelongsTo]; ok && doc.Nodes[i].BelongsTo != "" {
			d = resolve(p) + 1
		}
		depth[i] = d

		return d
	}

	var out [][]int
	for i := range doc.Nodes {
		d := resolve(i)
		for len(out) <= d {
			out = append(out, nil)
		}
		out[d] = append(out[d], i)
	}

	return out
}

// addNode inserts nd, resolving its parent through tx.
func addNode(tx *core.Tx, method string, nd NodeDoc) (core.NodeRef, error) {
	parent := core.NoNode
	if nd.BelongsTo != "" {
		ref, ok := tx.NodeByID(nd.BelongsTo)
		if !ok {
			return core.NoNode, builderErrorf(method, ErrUnknownNode, "belongs_to %q of %q", nd.BelongsTo, nd.ID)
		}
		parent = ref
	}
	ref, err := tx.AddNode(core.Node{
		ID:        nd.ID,
		Position:  nd.position(),
		Radius:    nd.Radius,
		Type:      ParseNodeType(nd.Type),
		BelongsTo: parent,
		Data:      nd.Data,
	})
	if err != nil {
		return core.NoNode, builderErrorf(method, err, "node %q", nd.ID)
	}

	return ref, nil
}

// addConnection inserts cd, resolving its chain through tx and filling
// missing weights from cfg.weightFn.
func addConnection(tx *core.Tx, method string, cd ConnectionDoc, cfg builderConfig) (core.ConnRef, error) {
	refs := make([]core.NodeRef, len(cd.Nodes))
	for i, id := range cd.Nodes {
		ref, ok := tx.NodeByID(id)
		if !ok {
			return -1, builderErrorf(method, ErrUnknownNode, "node %q of connection %q", id, cd.ID)
		}
		refs[i] = ref
	}

	weights := cd.Weights
	if weights == nil && cfg.weightFn != nil {
		weights = make([]float64, len(refs)-1)
		prev, err := tx.Node(refs[0])
		if err != nil {
			return -1, err
		}
		for i := 1; i < len(refs); i++ {
			cur, err := tx.Node(refs[i])
			if err != nil {
				return -1, err
			}
			weights[i-1] = cfg.weightFn(prev, cur)
			prev = cur
		}
	}

	ref, err := tx.AddConnection(core.ConnectionSpec{
		ID:        cd.ID,
		Type:      parseConnectionType(cd.Type),
		Direction: directions[cd.Direction],
		Reference: cd.Reference,
		Nodes:     refs,
		Weights:   weights,
	})
	if err != nil {
		return -1, builderErrorf(method, err, "connection %q", cd.ID)
	}

	return ref, nil
}
