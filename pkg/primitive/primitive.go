// Package primitive builds sample solids with signed distance functions and
// tessellates them into STL models.
package primitive

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/stl"
)

// DefaultCells is the marching cubes resolution along the longest side
const DefaultCells = 64

// ErrUnknownKind is returned by Sample for names not in Kinds
var ErrUnknownKind = errors.New("primitive: unknown kind")

// Kinds lists the sample names understood by Sample
var Kinds = []string{"box", "corridor", "lturn"}

// Box returns an axis aligned box with its minimum corner at the origin
func Box(x, y, z float64) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("box %gx%gx%g: %w", x, y, z, err)
	}
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})), nil
}

// Corridor returns a straight corridor along +x with its floor at y = 0
func Corridor(length, width, height float64) (sdf.SDF3, error) {
	return Box(length, height, width)
}

// LTurn returns a corridor that runs along +x for length and then turns
// towards +z for another length. Both legs share the corner square.
func LTurn(length, width, height float64) (sdf.SDF3, error) {
	first, err := Corridor(length, width, height)
	if err != nil {
		return nil, err
	}
	second, err := Box(width, height, length)
	if err != nil {
		return nil, err
	}
	second = sdf.Transform3D(second, sdf.Translate3d(v3.Vec{X: length - width}))
	return sdf.Union3D(first, second), nil
}

// Render tessellates s with marching cubes. cells is the number of cubes
// along the longest side of the bounding box; zero means DefaultCells.
func Render(name string, s sdf.SDF3, cells int) *stl.Model {
	if cells <= 0 {
		cells = DefaultCells
	}
	model := stl.NewModel(name)
	for _, tri := range render.ToTriangles(s, render.NewMarchingCubesUniform(cells)) {
		n := tri.Normal()
		model.AddTriangle(geometry.NewTriangle(
			geometry.NewVect3(n.X, n.Y, n.Z),
			toVect(tri[0]), toVect(tri[1]), toVect(tri[2]),
		))
	}
	return model
}

func toVect(v v3.Vec) geometry.Vect3 {
	return geometry.NewVect3(v.X, v.Y, v.Z)
}

// Sample builds one of the named sample solids at unit corridor width and
// renders it
func Sample(kind string, cells int) (*stl.Model, error) {
	var (
		s   sdf.SDF3
		err error
	)
	switch kind {
	case "box":
		s, err = Box(1, 1, 1)
	case "corridor":
		s, err = Corridor(8, 1, 2)
	case "lturn":
		s, err = LTurn(6, 1, 2)
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	if err != nil {
		return nil, err
	}
	return Render(kind, s, cells), nil
}
