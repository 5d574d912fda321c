package generator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
	"github.com/philipparndt/meshgraph/pkg/skeleton"
	"github.com/philipparndt/meshgraph/pkg/voxel"
)

// Strategy selects how a component is turned into a graph
type Strategy string

const (
	// StrategyVoxel rasterizes and thins each component
	StrategyVoxel Strategy = "voxel"
	// StrategyMesh reads the centerline off the floor of each component
	StrategyMesh Strategy = "mesh"
)

// ErrUnknownStrategy is returned for a Strategy other than the ones above
var ErrUnknownStrategy = errors.New("generator: unknown strategy")

// ParseStrategy maps a name to a Strategy. The empty name selects the voxel
// strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyVoxel:
		return StrategyVoxel, nil
	case StrategyMesh:
		return StrategyMesh, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// Options configures GenerateStructureNodeGraph
type Options struct {
	Strategy Strategy
	// Workers bounds how many components are processed at once. Zero means
	// GOMAXPROCS.
	Workers  int
	Voxel    voxel.Options
	Skeleton skeleton.Options
}

// GenerateStructureNodeGraph builds one graph for all components of s.
// Components are processed concurrently and merged in component order, so
// nodes shared by touching components become one node. The result is
// densely indexed from zero.
func GenerateStructureNodeGraph(ctx context.Context, s *mesh.Structure, opts Options) (*nodegraph.NodeGraph, error) {
	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	components := s.Components()
	graphs := make([]*nodegraph.NodeGraph, len(components))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range components {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := generateComponent(ctx, c, strategy, opts)
			if err != nil {
				return fmt.Errorf("component %d: %w", i, err)
			}
			graphs[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := nodegraph.New()
	for _, g := range graphs {
		result.Merge(g)
	}
	if err := result.ReIndex(0, 0); err != nil {
		return nil, err
	}

	Logger().Info("structure graph",
		"strategy", string(strategy),
		"components", len(components),
		"nodes", result.NodeCount(),
		"edges", result.EdgeCount(),
		"elapsed", time.Since(start))
	return result, nil
}

func generateComponent(ctx context.Context, c *mesh.Component, strategy Strategy, opts Options) (*nodegraph.NodeGraph, error) {
	if strategy == StrategyMesh {
		return GenerateComponentNodeGraph(c)
	}
	grid, err := voxel.New(c, opts.Voxel)
	if err != nil {
		return nil, err
	}
	skelOpts := opts.Skeleton
	if skelOpts.Logger == nil {
		skelOpts.Logger = Logger()
	}
	sk, err := skeleton.Skeletonize(ctx, grid, skelOpts)
	if err != nil {
		return nil, err
	}
	return sk.NodeGraph()
}
