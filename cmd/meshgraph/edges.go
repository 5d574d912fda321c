package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/analysis"
	"github.com/philipparndt/meshgraph/pkg/importer"
)

func newEdgesCmd(root *rootOptions) *cobra.Command {
	var (
		count     int
		longest   bool
		shortest  bool
		minLength float64
		maxLength float64
	)

	cmd := &cobra.Command{
		Use:   "edges <input>",
		Short: "Analyze and measure edges in a mesh file",
		Long:  "Find and measure mesh edges, including longest, shortest, or edges within a specific length range.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := inputPath(args[0])
			if err != nil {
				return err
			}
			s, err := importer.Load(input, importer.Options{Logger: root.logger})
			if err != nil {
				return fmt.Errorf("loading mesh: %w", err)
			}
			result := analysis.AnalyzeStructure(s)

			var edges []analysis.EdgeInfo
			var title string
			switch {
			case longest:
				edges = analysis.FindLongestEdges(result, count)
				title = fmt.Sprintf("Top %d Longest Edges", len(edges))
			case shortest:
				edges = analysis.FindShortestEdges(result, count)
				title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
			case maxLength > 0:
				edges = analysis.FindEdgesByLength(result, minLength, maxLength)
				title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", minLength, maxLength, len(edges))
				edges = edges[:min(count, len(edges))]
			default:
				edges = result.AllEdges[:min(count, len(result.AllEdges))]
				title = fmt.Sprintf("All Edges (showing first %d of %d)", len(edges), len(result.AllEdges))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, title)
			fmt.Fprintln(out, "====================")
			fmt.Fprintf(out, "Total edges in mesh: %d\n", result.EdgeCount)
			fmt.Fprintf(out, "Min edge length: %.6f units\n", result.MinEdgeLength)
			fmt.Fprintf(out, "Max edge length: %.6f units\n", result.MaxEdgeLength)
			fmt.Fprintf(out, "Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

			if len(edges) == 0 {
				fmt.Fprintln(out, "No edges found matching the criteria.")
				return nil
			}
			fmt.Fprintf(out, "%-6s %-6s %-35s %-35s %-15s\n", "Index", "Solid", "Start", "End", "Length")
			for i, e := range edges {
				fmt.Fprintf(out, "%-6d %-6d %-35s %-35s %-15.6f\n",
					i+1, e.Component,
					analysis.FormatVector(e.Start),
					analysis.FormatVector(e.End),
					e.Length)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&count, "count", "n", 10, "Number of edges to display")
	flags.BoolVarP(&longest, "longest", "l", false, "Show longest edges")
	flags.BoolVarP(&shortest, "shortest", "s", false, "Show shortest edges")
	flags.Float64Var(&minLength, "min", 0, "Minimum edge length filter")
	flags.Float64Var(&maxLength, "max", 0, "Maximum edge length filter")
	cmd.MarkFlagsMutuallyExclusive("longest", "shortest")
	return cmd
}
