package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/worldgraph/bfs"
	"github.com/katalvlaran/worldgraph/builder"
	"github.com/katalvlaran/worldgraph/core"
	"github.com/katalvlaran/worldgraph/dfs"
	"github.com/katalvlaran/worldgraph/dijkstra"
	"github.com/katalvlaran/worldgraph/geom"
)

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path FILE SRC DST",
		Short: "Weighted shortest route between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			src, err := resolve(g, args[1])
			if err != nil {
				return err
			}
			dst, err := resolve(g, args[2])
			if err != nil {
				return err
			}

			p := dijkstra.ShortestPath(src, dst)
			out := cmd.OutOrStdout()
			if p.Empty() && src.Ref != dst.Ref {
				fmt.Fprintln(out, "no route")
				return nil
			}
			fmt.Fprintf(out, "weight %g\nroute %s\n", p.Weight, route(g, p))

			return nil
		},
	}
}

func newHopsCmd(a *app) *cobra.Command {
	var bridge bool
	cmd := &cobra.Command{
		Use:   "hops FILE SRC DST",
		Short: "Fewest-hop route between two endpoints or crossings",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			src, err := resolve(g, args[1])
			if err != nil {
				return err
			}
			dst, err := resolve(g, args[2])
			if err != nil {
				return err
			}

			opts := []bfs.Option{bfs.WithContext(cmd.Context())}
			if bridge {
				opts = append(opts, bfs.WithBridging())
			}
			p, err := bfs.ShortestPathByHops(src, dst, opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p.Empty() && src.Ref != dst.Ref {
				fmt.Fprintln(out, "no route")
				return nil
			}
			fmt.Fprintf(out, "hops %d weight %g\nroute %s\n", p.Hops, p.Weight, route(g, p))

			return nil
		},
	}
	cmd.Flags().BoolVar(&bridge, "bridge", false, "let perimeter nodes of one parent stand in for each other")

	return cmd
}

func newReachCmd(a *app) *cobra.Command {
	var (
		weight float64
		hops   int
		types  []string
	)
	cmd := &cobra.Command{
		Use:   "reach FILE SRC (--weight W | --hops N)",
		Short: "Nodes within a weight or hop budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			byWeight, byHops := cmd.Flags().Changed("weight"), cmd.Flags().Changed("hops")
			if byWeight == byHops {
				return fmt.Errorf("%w: exactly one of --weight and --hops is required", errUsage)
			}
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			src, err := resolve(g, args[1])
			if err != nil {
				return err
			}

			var refs []core.NodeRef
			if byWeight {
				refs, err = dijkstra.Reachable(src, weight, dijkstra.WithTypeFilter(parseTypes(types)...))
			} else {
				refs, err = bfs.ReachableByHops(src, hops, bfs.WithTypeFilter(parseTypes(types)...), bfs.WithContext(cmd.Context()))
			}
			if err != nil {
				return err
			}
			ids := nodeIDs(g, refs)
			slices.Sort(ids)
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}

			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "maximum summed edge weight")
	cmd.Flags().IntVar(&hops, "hops", 0, "maximum number of hops")
	cmd.Flags().StringSliceVar(&types, "type", nil, "keep only these node types")

	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		rect  string
		near  string
		types []string
	)
	cmd := &cobra.Command{
		Use:   "query FILE (--rect x,z,w,d | --near x,z,r)",
		Short: "Nodes inside a rectangle (by ID) or near a point (by distance)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (rect == "") == (near == "") {
				return fmt.Errorf("%w: exactly one of --rect and --near is required", errUsage)
			}
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var refs []core.NodeRef
			if rect != "" {
				v, err := parseFloats(rect, 4)
				if err != nil {
					return err
				}
				refs = g.NodesInRect(geom.NewRect(v[0], v[1], v[2], v[3]), parseTypes(types)...)
				slices.SortFunc(refs, func(x, y core.NodeRef) int { return strings.Compare(nodeID(g, x), nodeID(g, y)) })
			} else {
				v, err := parseFloats(near, 3)
				if err != nil {
					return err
				}
				refs = g.NodesInRange(geom.V2(v[0], v[1]), v[2], parseTypes(types)...)
			}
			for _, ref := range refs {
				n, err := g.Node(ref)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%g,%g,%g\n", n.ID, builder.FormatNodeType(n.Type),
					n.Position.X, n.Position.Y, n.Position.Z)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&rect, "rect", "", "lower-left corner and size: x,z,width,depth")
	cmd.Flags().StringVar(&near, "near", "", "centre and radius: x,z,r")
	cmd.Flags().StringSliceVar(&types, "type", nil, "keep only these node types")

	return cmd
}

func newConnectedCmd(a *app) *cobra.Command {
	var bridge bool
	cmd := &cobra.Command{
		Use:   "connected FILE A B",
		Short: "Whether two nodes are linked, ignoring direction",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			src, err := resolve(g, args[1])
			if err != nil {
				return err
			}
			dst, err := resolve(g, args[2])
			if err != nil {
				return err
			}
			var opts []dfs.Option
			if bridge {
				opts = append(opts, dfs.WithBridging())
			}
			fmt.Fprintln(cmd.OutOrStdout(), dfs.Connected(src, dst, opts...))

			return nil
		},
	}
	cmd.Flags().BoolVar(&bridge, "bridge", false, "link perimeter nodes with their parent")

	return cmd
}

func newClustersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters FILE",
		Short: "Bridged components, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			clusters, err := dfs.Clusters(g, nil, dfs.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			lines := make([]string, len(clusters))
			for i, c := range clusters {
				ids := nodeIDs(g, c)
				slices.Sort(ids)
				lines[i] = strings.Join(ids, " ")
			}
			slices.Sort(lines)
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}

			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var metrics bool
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Graph sizes and per-type node counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s := g.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "graph %s\ncell %d\nnodes %d\nedges %d\nconnections %d\nmarkers %d\n",
				s.ID, s.CellSize, s.Nodes, s.Edges, s.Connections, s.Markers)

			types := make([]core.NodeType, 0, len(s.NodesByType))
			for t := range s.NodesByType {
				types = append(types, t)
			}
			slices.SortFunc(types, func(x, y core.NodeType) int {
				if x.Less(y) {
					return -1
				}
				if y.Less(x) {
					return 1
				}
				return 0
			})
			for _, t := range types {
				fmt.Fprintf(out, "  %s %d\n", builder.FormatNodeType(t), s.NodesByType[t])
			}
			if metrics {
				return writeMetrics(out, a)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&metrics, "metrics", false, "also print tile loading counters")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Print the loaded document as normalized YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := builder.Export(g)
			if err != nil {
				return err
			}

			return builder.Encode(cmd.OutOrStdout(), doc)
		},
	}
}
