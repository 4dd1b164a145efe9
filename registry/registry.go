package registry

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/worldgraph/core"
)

// Option configures a State.
type Option func(*State)

// WithLogger routes registry diagnostics to l and hands l to every graph
// the State creates.
func WithLogger(l *log.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGraphOptions passes opts to every graph the State creates.
func WithGraphOptions(opts ...core.GraphOption) Option {
	return func(s *State) { s.graphOpts = append(s.graphOpts, opts...) }
}

// State maps graph IDs to graphs.
type State struct {
	mu        sync.Mutex
	graphs    map[string]*core.WorldGraph
	logger    *log.Logger
	graphOpts []core.GraphOption
}

// New returns an empty State.
func New(opts ...Option) *State {
	s := &State{
		graphs: make(map[string]*core.WorldGraph),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, fn := range opts {
		fn(s)
	}

	return s
}

// Graph returns the graph registered under id, creating it if needed.
func (s *State) Graph(id string) *core.WorldGraph {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.graphs[id]; ok {
		return g
	}
	opts := append([]core.GraphOption{core.WithLogger(s.logger)}, s.graphOpts...)
	g := core.NewWorldGraph(id, opts...)
	s.graphs[id] = g
	s.logger.Debug("graph created", "id", id, "cell", g.CellSize())

	return g
}

// Lookup returns the graph registered under id without creating it.
func (s *State) Lookup(id string) (*core.WorldGraph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.graphs[id]

	return g, ok
}

// IDs lists the registered graph IDs in ascending order.
func (s *State) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Graphs returns the registered graphs ordered by ID.
func (s *State) Graphs() []*core.WorldGraph {
	ids := s.IDs()
	out := make([]*core.WorldGraph, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.Lookup(id); ok {
			out = append(out, g)
		}
	}

	return out
}

// GraphsForType returns, ordered by ID, the graphs holding at least one
// node of type t.
func (s *State) GraphsForType(t core.NodeType) []*core.WorldGraph {
	var out []*core.WorldGraph
	for _, g := range s.Graphs() {
		if len(g.NodesOfType(t)) > 0 {
			out = append(out, g)
		}
	}

	return out
}

// Len reports how many graphs are registered.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.graphs)
}

// IsEmpty reports whether every registered graph is empty. A State with no
// graphs is empty.
func (s *State) IsEmpty() bool {
	for _, g := range s.Graphs() {
		if !g.IsEmpty() {
			return false
		}
	}

	return true
}

// Reset drops every graph. Handles into dropped graphs stay usable but are
// no longer reachable through the State.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.graphs)
	s.graphs = make(map[string]*core.WorldGraph)
	s.logger.Debug("registry reset", "dropped", n)
}
