// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Entities, handles, sentinel errors and the WorldGraph container.
// Concurrency:
//   - One sync.RWMutex per WorldGraph guards the arena and every index.
//   - Entities handed out are copies; mutating them never touches the graph.

package core

import (
	"errors"
	"io"
	"maps"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/worldgraph/geom"
)

// Sentinel errors for core graph operations.
var (
	// ErrInvalidArgument is the class every precondition violation wraps.
	ErrInvalidArgument = errors.New("core: invalid argument")

	// ErrNodeExists indicates an insert collided with a stored node ID.
	ErrNodeExists = errors.New("core: node already exists")

	// ErrPositionTaken indicates an insert collided with a stored node position.
	ErrPositionTaken = errors.New("core: position already taken")

	// ErrNodeNotFound indicates a handle or ID does not resolve in this graph.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNegativeWeight indicates an edge weight below zero.
	ErrNegativeWeight = errors.New("core: negative edge weight")

	// ErrSelfEdge indicates an edge whose two nodes are identical.
	ErrSelfEdge = errors.New("core: edge endpoints must differ")

	// ErrShortChain indicates a connection chain with fewer than two nodes.
	ErrShortChain = errors.New("core: connection needs at least two nodes")

	// ErrWeightCount indicates len(weights) != len(nodes)-1.
	ErrWeightCount = errors.New("core: weights do not match node chain")

	// ErrConnectionExists indicates an insert collided with a stored connection ID.
	ErrConnectionExists = errors.New("core: connection already exists")
)

// DefaultCellSize is the side of the spatial index cells, matching the tile
// grid of the generation pipeline.
const DefaultCellSize = 64

// NodeRef is a node handle inside one WorldGraph.
type NodeRef int32

// NoNode is the absent NodeRef. It is the zero value: handle 0 is never
// issued, so a Node literal without BelongsTo has no parent.
const NoNode NodeRef = 0

// EdgeRef is an edge handle inside one WorldGraph.
type EdgeRef int32

// ConnRef is a connection handle inside one WorldGraph.
type ConnRef int32

// Node is a positioned, typed entity.
//
// BelongsTo is set on perimeter nodes and points at the junction whose ring
// they sit on. It is a plain relation: the parent holds no reference back.
type Node struct {
	// ID is stable across regeneration. Left empty on insert, it is derived
	// from Seed.
	ID string

	Position geom.Vec3
	Radius   float64
	Type     NodeType

	// BelongsTo is the parent node; the zero value NoNode means none.
	BelongsTo NodeRef

	// Data holds arbitrary annotations carried with the node.
	Data map[string]string
}

// Flat returns the ground-plane position.
func (n Node) Flat() geom.Vec2 { return geom.Flat(n.Position) }

// HasParent reports whether BelongsTo is set.
func (n Node) HasParent() bool { return n.BelongsTo != NoNode }

// clone copies n including its Data map.
func (n Node) clone() Node {
	n.Data = maps.Clone(n.Data)

	return n
}

// Edge is one traversal step. From and To are explicit: an edge read
// against its stored direction is reported reversed.
type Edge struct {
	Ref        EdgeRef
	From, To   NodeRef
	Weight     float64
	Connection ConnRef
}

// Reversed swaps From and To.
func (e Edge) Reversed() Edge {
	e.From, e.To = e.To, e.From

	return e
}

// Direction restricts how a connection may be traversed.
type Direction uint8

const (
	// TwoWay connections are traversable in both directions.
	TwoWay Direction = iota
	// OneWayForward connections run from the first node to the last only.
	OneWayForward
	// OneWayBackward connections run from the last node to the first only.
	OneWayBackward
)

// Reversed mirrors the direction.
func (d Direction) Reversed() Direction {
	switch d {
	case OneWayForward:
		return OneWayBackward
	case OneWayBackward:
		return OneWayForward
	default:
		return TwoWay
	}
}

func (d Direction) String() string {
	switch d {
	case OneWayForward:
		return "forward"
	case OneWayBackward:
		return "backward"
	default:
		return "twoway"
	}
}

// ConnectionBaseType distinguishes roads from rivers.
type ConnectionBaseType uint8

const (
	CustomConnection ConnectionBaseType = iota
	RiverConnection
)

// ConnectionType classifies a connection. Custom names road subtypes.
type ConnectionType struct {
	Base   ConnectionBaseType
	Custom string
}

// Connection is an ordered, contiguous chain of edges forming one logical link.
type Connection struct {
	Ref       ConnRef
	ID        string
	Type      ConnectionType
	Direction Direction
	// Reference names the generator that produced the connection.
	Reference string
	// Edges in stored order; Edges[i].To == Edges[i+1].From.
	Edges []EdgeRef
}

// ConnectionSpec describes a connection to insert.
//
// Nodes is the chain in stored order. Weights holds one weight per edge;
// when nil the ground-plane distance between neighbours is used.
type ConnectionSpec struct {
	ID        string
	Type      ConnectionType
	Direction Direction
	Reference string
	Nodes     []NodeRef
	Weights   []float64
}

// GraphOption configures a WorldGraph before creation.
type GraphOption func(g *WorldGraph)

// WithCellSize sets the spatial index cell size. Non-positive values are ignored.
func WithCellSize(size int) GraphOption {
	return func(g *WorldGraph) {
		if size > 0 {
			g.cellSize = size
		}
	}
}

// WithLogger routes insert/skip diagnostics to l at debug level.
func WithLogger(l *log.Logger) GraphOption {
	return func(g *WorldGraph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WorldGraph is the container of one logical network.
type WorldGraph struct {
	mu sync.RWMutex

	id       string
	cellSize int
	logger   *log.Logger

	// Arena
	nodes []Node
	edges []Edge
	conns []Connection

	// Derived indices
	byID       map[string]NodeRef
	byPosition map[geom.Vec3]NodeRef
	byCell     map[geom.Cell]map[NodeType][]NodeRef
	byType     map[NodeType][]NodeRef
	incident   [][]ConnRef // node → connections touching it
	members    [][]NodeRef // node → nodes whose BelongsTo is it

	connByID    map[string]ConnRef
	connsByCell map[geom.Cell][]ConnRef
	connsByRef  map[string][]ConnRef

	processed map[string]struct{}
}

// NewWorldGraph creates an empty graph identified by id. Arena slot 0 is
// reserved for NoNode, so the first node added gets handle 1.
// Complexity: O(1).
func NewWorldGraph(id string, opts ...GraphOption) *WorldGraph {
	g := &WorldGraph{
		id:          id,
		cellSize:    DefaultCellSize,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		byID:        make(map[string]NodeRef),
		byPosition:  make(map[geom.Vec3]NodeRef),
		byCell:      make(map[geom.Cell]map[NodeType][]NodeRef),
		byType:      make(map[NodeType][]NodeRef),
		connByID:    make(map[string]ConnRef),
		connsByCell: make(map[geom.Cell][]ConnRef),
		connsByRef:  make(map[string][]ConnRef),
		processed:   make(map[string]struct{}),
		nodes:       make([]Node, 1),
		incident:    make([][]ConnRef, 1),
		members:     make([][]NodeRef, 1),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
