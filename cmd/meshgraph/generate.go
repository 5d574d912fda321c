package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshgraph/pkg/config"
	"github.com/philipparndt/meshgraph/pkg/generator"
	"github.com/philipparndt/meshgraph/pkg/importer"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
	"github.com/philipparndt/meshgraph/pkg/persist"
	"github.com/philipparndt/meshgraph/pkg/preview"
)

// generateFlags are shared by generate, watch and info --graph
type generateFlags struct {
	configPath string
	mesh       bool
	voxel      bool
	format     string
	workers    int
	resolution int
	keepEvery  int
	force      bool
	preview    string
}

func (f *generateFlags) register(cmd *cobra.Command, withOutput bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "TOML file with generation settings")
	flags.BoolVarP(&f.mesh, "mesh", "m", false, "Derive the graph from the mesh floor faces")
	flags.BoolVarP(&f.voxel, "voxel", "v", false, "Derive the graph from a voxel skeleton (default)")
	flags.IntVar(&f.workers, "workers", 0, "Concurrent workers (default: number of CPUs)")
	flags.IntVar(&f.resolution, "resolution", 0, "Voxels along the longest side")
	flags.IntVar(&f.keepEvery, "keep-every", 0, "Keep every n-th skeleton voxel of a chain")
	cmd.MarkFlagsMutuallyExclusive("mesh", "voxel")

	if withOutput {
		flags.StringVar(&f.format, "format", "", "Output format: xml, json or yaml (default: from the output extension)")
		flags.BoolVar(&f.force, "force", false, "Overwrite an existing output file")
		flags.StringVar(&f.preview, "preview", "", "Also draw the mesh and graph into this PNG file")
	}
}

// settings merges the config file, if any, with the flags that were set
func (f *generateFlags) settings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	switch {
	case f.mesh:
		cfg.Strategy = string(generator.StrategyMesh)
	case f.voxel:
		cfg.Strategy = string(generator.StrategyVoxel)
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("resolution") {
		cfg.Voxel.Resolution = f.resolution
	}
	if flags.Changed("keep-every") {
		cfg.Voxel.KeepEvery = f.keepEvery
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// job is one input to output conversion
type job struct {
	input   string
	output  string
	format  persist.Format
	options generator.Options
	preview string
	logger  *slog.Logger
}

// newJob validates the paths and picks the output format. An explicit
// --format wins over the output extension, which wins over the config file.
func newJob(cmd *cobra.Command, f *generateFlags, in, out string, force bool, logger *slog.Logger) (*job, error) {
	cfg, err := f.settings(cmd)
	if err != nil {
		return nil, err
	}
	input, err := inputPath(in)
	if err != nil {
		return nil, err
	}
	output, err := outputPath(out, force)
	if err != nil {
		return nil, err
	}

	format, err := persist.FormatFor(output)
	if err != nil || cmd.Flags().Changed("format") {
		if format, err = cfg.OutputFormat(); err != nil {
			return nil, err
		}
	}
	options, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, err
	}
	options.Skeleton.Logger = logger

	j := &job{input: input, output: output, format: format, options: options, logger: logger}
	if f.preview != "" {
		if j.preview, err = outputPath(f.preview, true); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// run loads the input, generates its node graph and writes it
func (j *job) run(ctx context.Context) (*nodegraph.NodeGraph, error) {
	start := time.Now()
	s, err := importer.Load(j.input, importer.Options{Logger: j.logger})
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}
	g, err := generator.GenerateStructureNodeGraph(ctx, s, j.options)
	if err != nil {
		return nil, fmt.Errorf("generating node graph: %w", err)
	}
	if err := persist.Save(j.output, g, j.format); err != nil {
		return nil, fmt.Errorf("writing %s: %w", j.output, err)
	}
	if j.preview != "" {
		if err := preview.SavePNG(j.preview, s, g, preview.DefaultOptions()); err != nil {
			return nil, fmt.Errorf("writing preview %s: %w", j.preview, err)
		}
	}
	j.logger.Info("graph written",
		"output", j.output,
		"format", j.format,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"elapsed", time.Since(start))
	return g, nil
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <input> <output>",
		Short: "Generate a node graph from an STL, 3MF or OpenSCAD file",
		Long: `Generate reads a mesh, builds the centerline node graph of every solid in it and
writes the merged graph. The voxel strategy is used unless -m is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := newJob(cmd, flags, args[0], args[1], flags.force, root.logger)
			if err != nil {
				return err
			}
			g, err := j.run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d nodes and %d edges to %s\n", g.NodeCount(), g.EdgeCount(), j.output)
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}
