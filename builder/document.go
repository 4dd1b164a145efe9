// SPDX-License-Identifier: MIT
// Package: worldgraph/builder
//
// document.go - the YAML network description and its codec.

package builder

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/worldgraph/core"
)

// Document is one graph's worth of nodes and connections.
type Document struct {
	Graph       string          `yaml:"graph"`
	CellSize    int             `yaml:"cell_size,omitempty"`
	Nodes       []NodeDoc       `yaml:"nodes"`
	Connections []ConnectionDoc `yaml:"connections,omitempty"`
}

// NodeDoc describes a node. Type is a base type name ("Endpoint",
// "Perimeter", ...) or, for anything else, the name of a Custom subtype.
// Pos is [x, y, z] with y the height.
type NodeDoc struct {
	ID        string            `yaml:"id,omitempty"`
	Pos       []float64         `yaml:"pos,flow"`
	Radius    float64           `yaml:"radius,omitempty"`
	Type      string            `yaml:"type"`
	BelongsTo string            `yaml:"belongs_to,omitempty"`
	Data      map[string]string `yaml:"data,omitempty"`
}

// ConnectionDoc describes a connection. Type "river" maps to
// core.RiverConnection; any other value names a custom connection subtype.
// Direction is "twoway" (default), "forward" or "backward".
type ConnectionDoc struct {
	ID        string    `yaml:"id,omitempty"`
	Type      string    `yaml:"type,omitempty"`
	Direction string    `yaml:"direction,omitempty"`
	Reference string    `yaml:"reference,omitempty"`
	Nodes     []string  `yaml:"nodes,flow"`
	Weights   []float64 `yaml:"weights,flow,omitempty"`
}

// Decode reads one Document from r and validates it. Unknown fields are
// rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, builderErrorf(MethodDecode, ErrDecode, "empty input")
		}
		return nil, builderErrorf(MethodDecode, ErrDecode, "%v", err)
	}
	if err := validateDocument(MethodDecode, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Encode writes doc to w as YAML with two-space indentation.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return builderErrorf(MethodEncode, ErrInvalidDocument, "%v", err)
	}

	return enc.Close()
}

// Export snapshots g as a Document, nodes and connections in insertion
// order. Every stored node carries an ID, derived ones included, so the
// result always re-applies.
func Export(g *core.WorldGraph) (*Document, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	doc := &Document{Graph: g.ID(), CellSize: g.CellSize()}
	refs := g.Nodes()
	ids := make([]string, len(refs))
	for _, ref := range refs {
		n, err := g.Node(ref)
		if err != nil {
			return nil, err
		}
		ids[ref] = n.ID
		nd := NodeDoc{
			ID:     n.ID,
			Pos:    []float64{n.Position.X, n.Position.Y, n.Position.Z},
			Radius: n.Radius,
			Type:   FormatNodeType(n.Type),
			Data:   n.Data,
		}
		if n.HasParent() {
			nd.BelongsTo = ids[n.BelongsTo]
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	for i := 0; i < g.ConnectionCount(); i++ {
		ref := core.ConnRef(i)
		c, err := g.Connection(ref)
		if err != nil {
			return nil, err
		}
		view := core.Directed{Conn: ref}
		cd := ConnectionDoc{
			ID:        c.ID,
			Type:      formatConnectionType(c.Type),
			Direction: c.Direction.String(),
			Reference: c.Reference,
		}
		for _, n := range g.ConnectionNodes(view) {
			cd.Nodes = append(cd.Nodes, ids[n])
		}
		for _, e := range g.Edges(view) {
			cd.Weights = append(cd.Weights, e.Weight)
		}
		doc.Connections = append(doc.Connections, cd)
	}
	if err := validateDocument(MethodExport, doc); err != nil {
		return nil, err
	}

	return doc, nil
}
