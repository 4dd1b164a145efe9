package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/worldgraph/builder"
	"github.com/katalvlaran/worldgraph/config"
	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/registry"
	"github.com/katalvlaran/worldgraph/tiles"
)

var (
	errUnknownNode = errors.New("unknown node")
	errUsage       = errors.New("invalid argument")
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg     config.Config
	state   *registry.State
	runner  *tiles.Runner
	metrics *prometheus.Registry
	logger  *log.Logger
}

func newApp(cfg config.Config, logger *log.Logger) (*app, error) {
	metrics := prometheus.NewRegistry()
	runner, err := tiles.NewRunner(
		tiles.WithWorkers(cfg.Workers),
		tiles.WithLogger(logger),
		tiles.WithRegisterer(metrics),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		state: registry.New(
			registry.WithLogger(logger),
			registry.WithGraphOptions(core.WithCellSize(cfg.CellSize)),
		),
		runner:  runner,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// load decodes the document at path and applies it, tile by tile, to the
// registry graph it names.
func (a *app) load(ctx context.Context, path string) (*core.WorldGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := builder.Decode(f)
	if err != nil {
		return nil, err
	}
	if doc.Graph == "" {
		doc.Graph = a.cfg.DefaultGraph
	}
	g := a.state.Graph(doc.Graph)
	if doc.CellSize > 0 && doc.CellSize != g.CellSize() {
		a.logger.Warn("document cell size ignored", "document", doc.CellSize, "graph", g.CellSize())
	}

	rep, err := builder.ApplyTiled(ctx, g, doc, a.runner,
		builder.WithTileSize(a.cfg.TileSize),
		builder.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded", "file", path, "graph", g.ID(), "built", rep.Built, "skipped", rep.Skipped)

	return g, nil
}

func resolve(g *core.WorldGraph, id string) (core.Handle, error) {
	ref, ok := g.NodeByID(id)
	if !ok {
		return core.Handle{}, fmt.Errorf("%w %q in graph %q", errUnknownNode, id, g.ID())
	}

	return g.At(ref), nil
}

func nodeID(g *core.WorldGraph, ref core.NodeRef) string {
	n, err := g.Node(ref)
	if err != nil {
		return strconv.Itoa(int(ref))
	}

	return n.ID
}

func nodeIDs(g *core.WorldGraph, refs []core.NodeRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = nodeID(g, r)
	}

	return out
}

// route renders a path as "a > b > c"; a bridged jump between perimeter
// nodes shows as "~".
func route(g *core.WorldGraph, p core.Path) string {
	var b strings.Builder
	b.WriteString(nodeID(g, p.First()))
	last := p.First()
	for _, e := range p.Edges {
		if e.From != last {
			b.WriteString(" ~ ")
			b.WriteString(nodeID(g, e.From))
		}
		b.WriteString(" > ")
		b.WriteString(nodeID(g, e.To))
		last = e.To
	}

	return b.String()
}

func parseTypes(names []string) []core.NodeType {
	out := make([]core.NodeType, len(names))
	for i, n := range names {
		out[i] = builder.ParseNodeType(n)
	}

	return out
}

// parseFloats splits "a,b,c" into exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q needs %d comma-separated numbers", errUsage, s, n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", errUsage, s, err)
		}
		out[i] = v
	}

	return out, nil
}
