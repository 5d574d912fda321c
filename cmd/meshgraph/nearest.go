package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/analysis"
	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/persist"
)

var errEmptyGraph = errors.New("graph has no nodes")

func newNearestCmd() *cobra.Command {
	var x, y, z float64

	cmd := &cobra.Command{
		Use:   "nearest <graph>",
		Short: "Find the graph node nearest to a point",
		Long: `Load a saved node graph and report the node closest to the point given by
--x, --y and --z, together with its neighbours and the widths of its edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := inputPath(args[0])
			if err != nil {
				return err
			}
			g, err := persist.Load(input)
			if err != nil {
				return fmt.Errorf("loading graph: %w", err)
			}

			p := geometry.NewVect3(x, y, z)
			node, dist, ok := analysis.FindNearestNode(g, p)
			if !ok {
				return fmt.Errorf("%s: %w", input, errEmptyGraph)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Point: %s\n", analysis.FormatVector(p))
			fmt.Fprintf(out, "Nearest node: %d at %s (distance: %.6f)\n", node.Index, analysis.FormatVector(node.Coordinate), dist)
			for _, pair := range node.Neighbors {
				other, err := pair.NodeIndex()
				if err != nil {
					return err
				}
				ei, err := pair.EdgeIndex()
				if err != nil {
					return err
				}
				e, _ := g.GetEdge(ei)
				fmt.Fprintf(out, "  -> node %d (edge %d, width %.6f)\n", other, ei, e.Width)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&x, "x", 0, "X coordinate of the point")
	flags.Float64Var(&y, "y", 0, "Y coordinate of the point")
	flags.Float64Var(&z, "z", 0, "Z coordinate of the point")
	return cmd
}
