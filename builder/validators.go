// Package builder provides validation helpers that check a Document before
// any of it reaches a graph.
package builder

import (
	"math"
)

// validateDocument enforces the structural contract of a Document:
//   - every node has three finite coordinates and a type,
//   - node IDs are unique,
//   - belongs_to names a document node and does not loop,
//   - connections have at least two nodes, all named in the document,
//     a known direction and, when given, one weight per edge.
//
// Complexity: O(N + C·k) time, O(N) space.
func validateDocument(method string, doc *Document) error {
	if doc == nil {
		return builderErrorf(method, ErrInvalidDocument, "nil document")
	}

	seen := make(map[string]int, len(doc.Nodes))
	for i, nd := range doc.Nodes {
		if len(nd.Pos) != 3 {
			return builderErrorf(method, ErrInvalidDocument, "node %d (%q): pos needs 3 coordinates, got %d", i, nd.ID, len(nd.Pos))
		}
		for _, v := range nd.Pos {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return builderErrorf(method, ErrInvalidDocument, "node %d (%q): non-finite coordinate", i, nd.ID)
			}
		}
		if nd.Type == "" {
			return builderErrorf(method, ErrInvalidDocument, "node %d (%q): missing type", i, nd.ID)
		}
		if nd.ID == "" {
			continue
		}
		if _, dup := seen[nd.ID]; dup {
			return builderErrorf(method, ErrInvalidDocument, "duplicate node id %q", nd.ID)
		}
		seen[nd.ID] = i
	}

	for i := range doc.Nodes {
		if err := validateParents(method, doc, seen, i); err != nil {
			return err
		}
	}

	connIDs := make(map[string]struct{}, len(doc.Connections))
	for i, cd := range doc.Connections {
		if cd.ID != "" {
			if _, dup := connIDs[cd.ID]; dup {
				return builderErrorf(method, ErrInvalidDocument, "duplicate connection id %q", cd.ID)
			}
			connIDs[cd.ID] = struct{}{}
		}
		if len(cd.Nodes) < 2 {
			return builderErrorf(method, ErrInvalidDocument, "connection %d (%q): needs at least 2 nodes", i, cd.ID)
		}
		if _, ok := directions[cd.Direction]; !ok {
			return builderErrorf(method, ErrInvalidDocument, "connection %d (%q): unknown direction %q", i, cd.ID, cd.Direction)
		}
		if cd.Weights != nil && len(cd.Weights) != len(cd.Nodes)-1 {
			return builderErrorf(method, ErrInvalidDocument, "connection %d (%q): %d weights for %d nodes", i, cd.ID, len(cd.Weights), len(cd.Nodes))
		}
		for _, id := range cd.Nodes {
			if _, ok := seen[id]; !ok {
				return builderErrorf(method, ErrUnknownNode, "connection %d (%q): node %q", i, cd.ID, id)
			}
		}
	}

	return nil
}

// validateParents walks the belongs_to chain of node i.
func validateParents(method string, doc *Document, index map[string]int, i int) error {
	visited := map[int]bool{i: true}
	for cur := i; doc.Nodes[cur].BelongsTo != ""; {
		p, ok := index[doc.Nodes[cur].BelongsTo]
		if !ok {
			return builderErrorf(method, ErrUnknownNode, "belongs_to %q of node %d", doc.Nodes[cur].BelongsTo, cur)
		}
		if visited[p] {
			return builderErrorf(method, ErrParentCycle, "through %q", doc.Nodes[p].ID)
		}
		visited[p] = true
		cur = p
	}

	return nil
}
