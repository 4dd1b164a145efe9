// Package builder turns a YAML network description into WorldGraph content
// and back.
//
// A Document lists nodes (ID, position, radius, type, parent, data) and
// connections (ID, type, direction, generator reference, node chain,
// optional weights). Nodes refer to their parent and connections refer to
// their nodes by ID, so a document is self-contained.
//
// Entry points:
//
//   - Decode / Encode:  YAML <-> Document, unknown fields rejected.
//   - Apply:            insert a Document into a graph under one Build marker.
//   - ApplyTiled:       insert a Document tile by tile through a tiles.Runner;
//     parents land before their members and all nodes before connections.
//   - Load:             read a file into a fresh graph.
//   - Export:           snapshot a graph as a Document.
//
// Weights omitted from a connection come from the WeightFn option, or from
// the graph's ground-plane distance when no WeightFn is set.
//
// Guarantees:
//
//   - Idempotent: re-applying the same Document with the same marker is a
//     no-op that reports false.
//   - Fast-fail on invalid option parameters via panics in option
//     constructors; documents are validated before anything is inserted.
package builder
