// Package voxel rasterizes mesh components into solid occupancy grids.
//
// A grid produced by New always has at least one empty voxel between the
// solid and every face of the grid, so neighbourhood scans never leave the
// grid.
package voxel

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
)

// DefaultResolution is the number of voxels along the longest extent
const DefaultResolution = 64

var (
	// ErrEmptyComponent is returned when a component has no faces to rasterize.
	ErrEmptyComponent = errors.New("voxel: component has no faces")
	// ErrInvalidSize is returned for non-positive grid dimensions or resolutions.
	ErrInvalidSize = errors.New("voxel: invalid grid size")
)

// Options controls rasterization
type Options struct {
	// Resolution is the number of voxels along the longest side of the
	// bounding box. Zero means DefaultResolution.
	Resolution int
	// MaxVoxelSize caps the voxel edge length in model units. Zero means no
	// cap. A cap below longest side / Resolution grows the grid past
	// Resolution voxels, in proportion to the model size.
	MaxVoxelSize float64
}

// Grid is a dense boolean occupancy grid indexed [x][y][z]
type Grid struct {
	Cells                  [][][]bool
	XBound, YBound, ZBound int
	// Origin is the model space position of the minimum corner of voxel
	// (0, 0, 0).
	Origin    geometry.Vect3
	VoxelSize float64
}

// NewEmpty allocates an empty grid with unit voxels at the origin
func NewEmpty(x, y, z int) (*Grid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("grid %dx%dx%d: %w", x, y, z, ErrInvalidSize)
	}
	cells := make([][][]bool, x)
	for i := range cells {
		cells[i] = make([][]bool, y)
		for j := range cells[i] {
			cells[i][j] = make([]bool, z)
		}
	}
	return &Grid{Cells: cells, XBound: x, YBound: y, ZBound: z, VoxelSize: 1}, nil
}

// New rasterizes c. The voxel size is chosen so that the longest side of
// the bounding box spans Resolution voxels, unless MaxVoxelSize asks for
// smaller voxels.
// Surfaces are marked first, then everything not reachable from the grid
// border through empty voxels is filled. c is not modified.
func New(c *mesh.Component, opts Options) (*Grid, error) {
	if c.FaceCount() == 0 {
		return nil, ErrEmptyComponent
	}
	resolution := opts.Resolution
	if resolution == 0 {
		resolution = DefaultResolution
	}
	if resolution < 0 {
		return nil, fmt.Errorf("resolution %d: %w", resolution, ErrInvalidSize)
	}
	if opts.MaxVoxelSize < 0 {
		return nil, fmt.Errorf("max voxel size %v: %w", opts.MaxVoxelSize, ErrInvalidSize)
	}

	bb := c.BoundingBox()
	size := bb.Size()
	voxelSize := bb.LongestSide() / float64(resolution)
	if opts.MaxVoxelSize > 0 {
		voxelSize = math.Min(voxelSize, opts.MaxVoxelSize)
	}
	if voxelSize <= 0 {
		voxelSize = 1
	}

	dim := func(extent float64) int { return int(math.Floor(extent/voxelSize)) + 3 }
	g, err := NewEmpty(dim(size.X), dim(size.Y), dim(size.Z))
	if err != nil {
		return nil, err
	}
	g.VoxelSize = voxelSize
	g.Origin = bb.Min.Sub(geometry.NewVect3(voxelSize, voxelSize, voxelSize))

	for i := range c.FaceCount() {
		corners, err := c.FaceCorners(i)
		if err != nil {
			return nil, err
		}
		g.rasterizeTriangle(corners[0], corners[1], corners[2])
	}
	g.fillInterior()
	return g, nil
}

// rasterizeTriangle marks every voxel hit by a barycentric sample lattice
// spaced at half a voxel
func (g *Grid) rasterizeTriangle(a, b, c geometry.Vect3) {
	longest := max(a.Distance(b), b.Distance(c), c.Distance(a))
	steps := int(math.Ceil(longest/(g.VoxelSize/2))) + 1
	ab, ac := b.Sub(a), c.Sub(a)
	for i := 0; i <= steps; i++ {
		u := float64(i) / float64(steps)
		for j := 0; i+j <= steps; j++ {
			v := float64(j) / float64(steps)
			x, y, z := g.Index(a.Add(ab.Mul(u)).Add(ac.Mul(v)))
			g.Cells[x][y][z] = true
		}
	}
}

// Index returns the voxel containing p, clamped to the interior of the
// grid so the padding stays empty.
func (g *Grid) Index(p geometry.Vect3) (int, int, int) {
	rel := p.Sub(g.Origin)
	clamp := func(v float64, bound int) int {
		i := int(math.Floor(v / g.VoxelSize))
		return max(1, min(bound-2, i))
	}
	return clamp(rel.X, g.XBound), clamp(rel.Y, g.YBound), clamp(rel.Z, g.ZBound)
}

type cell struct{ x, y, z int }

var faceOffsets = [6]cell{{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1}}

// fillInterior floods the empty space from the border through face
// neighbours and marks every voxel the flood did not reach as solid
func (g *Grid) fillInterior() {
	outside, _ := NewEmpty(g.XBound, g.YBound, g.ZBound)
	queue := []cell{{0, 0, 0}}
	outside.Cells[0][0][0] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, o := range faceOffsets {
			n := cell{c.x + o.x, c.y + o.y, c.z + o.z}
			if !g.InBounds(n.x, n.y, n.z) || g.Cells[n.x][n.y][n.z] || outside.Cells[n.x][n.y][n.z] {
				continue
			}
			outside.Cells[n.x][n.y][n.z] = true
			queue = append(queue, n)
		}
	}
	for x := range g.XBound {
		for y := range g.YBound {
			for z := range g.ZBound {
				if !outside.Cells[x][y][z] {
					g.Cells[x][y][z] = true
				}
			}
		}
	}
}

// InBounds reports whether (x, y, z) addresses a voxel of the grid
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.XBound && y < g.YBound && z < g.ZBound
}

// At returns the voxel at (x, y, z). Positions outside the grid are empty.
func (g *Grid) At(x, y, z int) bool {
	return g.InBounds(x, y, z) && g.Cells[x][y][z]
}

// Set updates the voxel at (x, y, z)
func (g *Grid) Set(x, y, z int, solid bool) error {
	if !g.InBounds(x, y, z) {
		return fmt.Errorf("voxel (%d, %d, %d) outside %dx%dx%d: %w", x, y, z, g.XBound, g.YBound, g.ZBound, ErrInvalidSize)
	}
	g.Cells[x][y][z] = solid
	return nil
}

// Count returns the number of solid voxels
func (g *Grid) Count() int {
	n := 0
	for x := range g.XBound {
		for y := range g.YBound {
			for z := range g.ZBound {
				if g.Cells[x][y][z] {
					n++
				}
			}
		}
	}
	return n
}

// OnBorder reports whether (x, y, z) lies on a face of the grid
func (g *Grid) OnBorder(x, y, z int) bool {
	return x == 0 || y == 0 || z == 0 || x == g.XBound-1 || y == g.YBound-1 || z == g.ZBound-1
}

// BorderIsEmpty reports whether every voxel on the faces of the grid is empty
func (g *Grid) BorderIsEmpty() bool {
	for x := range g.XBound {
		for y := range g.YBound {
			for z := range g.ZBound {
				if g.Cells[x][y][z] && g.OnBorder(x, y, z) {
					return false
				}
			}
		}
	}
	return true
}

// WorldCoordinate returns the model space centre of voxel (x, y, z)
func (g *Grid) WorldCoordinate(x, y, z int) geometry.Vect3 {
	return g.Origin.Add(geometry.NewVect3(float64(x)+0.5, float64(y)+0.5, float64(z)+0.5).Mul(g.VoxelSize))
}

// Clone returns a deep copy
func (g *Grid) Clone() *Grid {
	out, _ := NewEmpty(g.XBound, g.YBound, g.ZBound)
	for x := range g.XBound {
		for y := range g.YBound {
			copy(out.Cells[x][y], g.Cells[x][y])
		}
	}
	out.Origin = g.Origin
	out.VoxelSize = g.VoxelSize
	return out
}
