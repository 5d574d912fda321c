package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/analysis"
	"github.com/philipparndt/meshgraph/pkg/generator"
	"github.com/philipparndt/meshgraph/pkg/importer"
)

func newInfoCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	var withGraph bool

	cmd := &cobra.Command{
		Use:   "info <input>",
		Short: "Display information about a mesh file",
		Long: `Show the solids, dimensions, surface area and edge statistics of a mesh.
With --graph the node graph is generated as well and its statistics are shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := inputPath(args[0])
			if err != nil {
				return err
			}
			s, err := importer.Load(input, importer.Options{Logger: root.logger})
			if err != nil {
				return fmt.Errorf("loading mesh: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Mesh Information")
			fmt.Fprintln(out, "================")
			fmt.Fprintf(out, "File: %s\n\n", input)
			printMeshStats(out, analysis.AnalyzeStructure(s))

			if !withGraph {
				return nil
			}
			cfg, err := flags.settings(cmd)
			if err != nil {
				return err
			}
			options, err := cfg.GeneratorOptions()
			if err != nil {
				return err
			}
			options.Skeleton.Logger = root.logger
			g, err := generator.GenerateStructureNodeGraph(cmd.Context(), s, options)
			if err != nil {
				return fmt.Errorf("generating node graph: %w", err)
			}
			fmt.Fprintln(out)
			printGraphStats(out, cfg.Strategy, analysis.AnalyzeGraph(g))
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&withGraph, "graph", false, "Generate the node graph and show its statistics")
	return cmd
}

func printMeshStats(out io.Writer, result *analysis.MeshStats) {
	fmt.Fprintln(out, "Mesh Statistics:")
	fmt.Fprintf(out, "  Solids: %d\n", result.ComponentCount)
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Faces: %d\n", result.FaceCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Height (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Depth (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, ""))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, ""))
	fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, ""))
}

func printGraphStats(out io.Writer, strategy string, result *analysis.GraphStats) {
	fmt.Fprintf(out, "Node Graph (%s):\n", strategy)
	fmt.Fprintf(out, "  Nodes: %d\n", result.NodeCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  End Points: %d\n", result.EndPoints)
	fmt.Fprintf(out, "  Junctions: %d\n", result.Junctions)
	fmt.Fprintf(out, "  Total Length: %s\n", analysis.FormatMeasurement(result.TotalLength, ""))
	fmt.Fprintf(out, "  Width: min %.6f, max %.6f, average %.6f\n", result.MinWidth, result.MaxWidth, result.AvgWidth)
}
