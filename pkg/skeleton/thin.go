package skeleton

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/meshgraph/pkg/voxel"
)

// DefaultKeepEvery is the chain contraction stride used when Options leaves
// it at zero
const DefaultKeepEvery = 4

// Options controls thinning and graph extraction
type Options struct {
	// Workers is the number of goroutines scanning a sub-pass. Zero means
	// GOMAXPROCS.
	Workers int
	// KeepEvery keeps every n-th node of a contracted chain. Zero means
	// DefaultKeepEvery, one or less keeps every node.
	KeepEvery int
	// Logger receives pass statistics at debug level. Nil is silent.
	Logger *slog.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) keepEvery() int {
	if o.KeepEvery == 0 {
		return DefaultKeepEvery
	}
	return max(o.KeepEvery, 1)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Thin returns a thinned copy of g. Each pass runs one sub-pass per
// direction in Directions; a sub-pass tests every solid non-border voxel
// against the templates of its direction and removes all matches at once
// when the scan is done. Thinning stops after a pass that removes nothing.
// g is not modified.
func Thin(ctx context.Context, g *voxel.Grid, opts Options) (*voxel.Grid, error) {
	out := g.Clone()
	log := opts.logger()
	workers := opts.workers()

	for pass := 1; ; pass++ {
		removed := 0
		for i := range Directions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n, err := subPass(ctx, out, directional[i], workers)
			if err != nil {
				return nil, err
			}
			removed += n
		}
		log.Debug("thinning pass", "pass", pass, "removed", removed)
		if removed == 0 {
			return out, nil
		}
	}
}

// subPass scans x-slabs in parallel, each worker collecting its own
// deletions, and clears the collected voxels after all workers finished
func subPass(ctx context.Context, g *voxel.Grid, templates []GridTemplate, workers int) (int, error) {
	first, last := 1, g.XBound-2
	if last < first {
		return 0, nil
	}
	span := last - first + 1
	workers = min(workers, span)
	buffers := make([][]cell, workers)

	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		from := first + w*span/workers
		to := first + (w+1)*span/workers
		eg.Go(func() error {
			var n Neighbourhood
			for x := from; x < to; x++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for y := 1; y < g.YBound-1; y++ {
					for z := 1; z < g.ZBound-1; z++ {
						if !g.Cells[x][y][z] {
							continue
						}
						load(g, x, y, z, &n)
						for _, t := range templates {
							if t.Matches(&n) {
								buffers[w] = append(buffers[w], cell{x, y, z})
								break
							}
						}
					}
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	removed := 0
	for _, buf := range buffers {
		for _, c := range buf {
			g.Cells[c.x][c.y][c.z] = false
		}
		removed += len(buf)
	}
	return removed, nil
}

func load(g *voxel.Grid, x, y, z int, n *Neighbourhood) {
	for dx := range 3 {
		for dy := range 3 {
			for dz := range 3 {
				n[dx][dy][dz] = g.Cells[x+dx-1][y+dy-1][z+dz-1]
			}
		}
	}
}

// Skeleton is a thinned grid together with the distance shells of the
// solid it was thinned from
type Skeleton struct {
	Grid      *voxel.Grid
	Distance  [][][]int
	KeepEvery int
}

// Skeletonize computes the distance grid of g and thins it
func Skeletonize(ctx context.Context, g *voxel.Grid, opts Options) (*Skeleton, error) {
	dist := DistanceGrid(g)
	thinned, err := Thin(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("skeletonized", "solid", g.Count(), "skeleton", thinned.Count())
	return &Skeleton{Grid: thinned, Distance: dist, KeepEvery: opts.keepEvery()}, nil
}
