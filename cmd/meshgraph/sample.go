package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/importer"
	"github.com/philipparndt/meshgraph/pkg/primitive"
	"github.com/philipparndt/meshgraph/pkg/stl"
	"github.com/philipparndt/meshgraph/pkg/threemf"
)

func newSampleCmd() *cobra.Command {
	var (
		cells int
		force bool
	)
	cmd := &cobra.Command{
		Use:       "sample <kind> <output>",
		Short:     "Write a sample solid as STL or 3MF",
		Long:      "Render one of the built-in solids (" + strings.Join(primitive.Kinds, ", ") + ") to a mesh file.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: primitive.Kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := outputPath(args[1], force)
			if err != nil {
				return err
			}
			if !importer.Supported(output) {
				return fmt.Errorf("writing %s: %w", output, importer.ErrUnsupportedFormat)
			}

			model, err := primitive.Sample(args[0], cells)
			if err != nil {
				return fmt.Errorf("building sample: %w", err)
			}

			if err := write(output, model); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d triangles to %s\n", model.TriangleCount(), output)
			return nil
		},
	}
	cmd.Flags().IntVar(&cells, "cells", primitive.DefaultCells, "Marching cubes cells along the longest side")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	return cmd
}

func write(output string, model *stl.Model) error {
	if !strings.EqualFold(filepath.Ext(output), ".3mf") {
		return stl.WriteFile(output, model)
	}
	s, err := model.Structure()
	if err != nil {
		return err
	}
	return threemf.Save(output, s)
}
