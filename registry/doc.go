// Package registry holds the process-wide set of WorldGraphs, keyed by graph
// ID. A State is created explicitly with New and passed to whoever needs it;
// there is no package-level instance.
//
// Graph(id) creates the graph on first access. Creation happens under the
// State's mutex, so concurrent callers asking for the same ID always receive
// the same *core.WorldGraph.
package registry
