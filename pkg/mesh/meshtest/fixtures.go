// Package meshtest provides small hand-built solids for tests.
package meshtest

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
)

// Face normals as they are labelled in the fixtures
var (
	FrontNormal     = geometry.NewVect3(0, 0, -1)
	RightNormal     = geometry.NewVect3(1, 0, 0)
	LeftNormal      = geometry.NewVect3(-1, 0, 0)
	DownNormal      = geometry.NewVect3(0, -1, 0)
	BackNormal      = geometry.NewVect3(0, 0, 1)
	UpNormal        = geometry.NewVect3(0, 1, 0)
	DownLeftNormal  = geometry.NewVect3(-1, -1, 0)
	UpRightNormal   = geometry.NewVect3(1, 1, 0)
	cubeFaceIndices = []faceSpec{
		{FrontNormal, []int{0, 3, 6}},
		{FrontNormal, []int{0, 2, 6}},
		{RightNormal, []int{3, 5, 7}},
		{RightNormal, []int{3, 6, 7}},
		{LeftNormal, []int{1, 0, 2}},
		{LeftNormal, []int{1, 4, 2}},
		{DownNormal, []int{0, 3, 5}},
		{DownNormal, []int{0, 1, 5}},
		{BackNormal, []int{5, 1, 4}},
		{BackNormal, []int{5, 7, 4}},
		{UpNormal, []int{2, 6, 7}},
		{UpNormal, []int{2, 4, 7}},
	}
)

type faceSpec struct {
	normal  geometry.Vect3
	indices []int
}

// build creates a component from vertex coordinates and labelled faces. It
// panics on invalid input since fixtures are static.
func build(vertices []geometry.Vect3, faces []faceSpec) *mesh.Component {
	c := mesh.NewComponent()
	for _, v := range vertices {
		c.AddVertex(mesh.NewVertexAt(v))
	}
	for i, f := range faces {
		if _, err := c.CreateFace(f.normal, f.indices); err != nil {
			panic(fmt.Sprintf("meshtest: face %d: %v", i, err))
		}
	}
	return c
}

// box returns the eight corners in fixture order: the origin corner, then
// +z, +y, +x, +y+z, +x+z, +x+y and the opposite corner.
func box(min geometry.Vect3, sx, sy, sz float64) []geometry.Vect3 {
	return []geometry.Vect3{
		min,
		min.Add(geometry.NewVect3(0, 0, sz)),
		min.Add(geometry.NewVect3(0, sy, 0)),
		min.Add(geometry.NewVect3(sx, 0, 0)),
		min.Add(geometry.NewVect3(0, sy, sz)),
		min.Add(geometry.NewVect3(sx, 0, sz)),
		min.Add(geometry.NewVect3(sx, sy, 0)),
		min.Add(geometry.NewVect3(sx, sy, sz)),
	}
}

func single(c *mesh.Component) *mesh.Structure {
	s := mesh.NewStructure()
	s.AddComponent(c)
	return s
}

// CubeComponent is a 1x1x1 cube with a corner at the origin
func CubeComponent() *mesh.Component {
	return build(box(geometry.Zero, 1, 1, 1), cubeFaceIndices)
}

// Cube wraps CubeComponent in a structure
func Cube() *mesh.Structure {
	return single(CubeComponent())
}

// BigCube is a 7x7x7 cube with a corner at the origin
func BigCube() *mesh.Structure {
	return single(build(box(geometry.Zero, 7, 7, 7), cubeFaceIndices))
}

// CubeTwoExtraVertices is the unit cube with its floor extended to z = 2
// by two more floor triangles.
func CubeTwoExtraVertices() *mesh.Structure {
	c := CubeComponent()
	c.CreateVertex(0, 0, 2)
	c.CreateVertex(1, 0, 2)
	for _, f := range []faceSpec{
		{DownNormal, []int{8, 0, 3}},
		{DownNormal, []int{8, 9, 3}},
	} {
		if _, err := c.CreateFace(f.normal, f.indices); err != nil {
			panic(fmt.Sprintf("meshtest: %v", err))
		}
	}
	return single(c)
}

// RightCorridorComponent is an 8x1x1 corridor along +x centred on the x axis
func RightCorridorComponent() *mesh.Component {
	return build(box(geometry.NewVect3(-0.5, -0.5, -0.5), 8, 1, 1), cubeFaceIndices)
}

// RightCorridor wraps RightCorridorComponent in a structure
func RightCorridor() *mesh.Structure {
	return single(RightCorridorComponent())
}

// RightCorridorExcessFloorPoint is RightCorridor with an extra vertex in the
// middle of one floor edge, triangulated into the floor and the front wall.
func RightCorridorExcessFloorPoint() *mesh.Structure {
	vertices := append(box(geometry.NewVect3(-0.5, -0.5, -0.5), 8, 1, 1), geometry.NewVect3(3.5, -0.5, -0.5))
	return single(build(vertices, []faceSpec{
		{FrontNormal, []int{0, 2, 8}},
		{FrontNormal, []int{2, 6, 8}},
		{FrontNormal, []int{3, 6, 8}},
		{RightNormal, []int{3, 5, 7}},
		{RightNormal, []int{3, 6, 7}},
		{LeftNormal, []int{1, 0, 2}},
		{LeftNormal, []int{1, 4, 2}},
		{DownNormal, []int{0, 1, 8}},
		{DownNormal, []int{1, 5, 8}},
		{DownNormal, []int{3, 5, 8}},
		{BackNormal, []int{5, 1, 4}},
		{BackNormal, []int{5, 7, 4}},
		{UpNormal, []int{2, 6, 7}},
		{UpNormal, []int{2, 4, 7}},
	}))
}

// LeftTurn is a corridor that enters along one axis, turns diagonally and
// leaves along the other. Its faces carry labelled normals; the floor is the
// patch labelled DownNormal.
func LeftTurn() *mesh.Structure {
	vertices := []geometry.Vect3{
		{X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}, {X: 3, Y: 1, Z: 0}, {X: 2, Y: 1, Z: 0},
		{X: 0, Y: 2, Z: 0}, {X: 1, Y: 2, Z: 0}, {X: 1, Y: 3, Z: 0}, {X: 0, Y: 3, Z: 0},
		{X: 2, Y: 0, Z: 1}, {X: 3, Y: 0, Z: 1}, {X: 2, Y: 1, Z: 1}, {X: 3, Y: 1, Z: 1},
		{X: 0, Y: 2, Z: 1}, {X: 0, Y: 3, Z: 1}, {X: 1, Y: 2, Z: 1}, {X: 1, Y: 3, Z: 1},
	}
	return single(build(vertices, []faceSpec{
		{DownNormal, []int{0, 1, 2}},
		{DownNormal, []int{3, 2, 0}},
		{DownNormal, []int{3, 2, 5}},
		{DownNormal, []int{5, 6, 2}},
		{DownNormal, []int{4, 5, 6}},
		{DownNormal, []int{4, 6, 7}},

		{UpNormal, []int{8, 9, 10}},
		{UpNormal, []int{11, 10, 8}},
		{UpNormal, []int{11, 10, 13}},
		{UpNormal, []int{13, 14, 10}},
		{UpNormal, []int{12, 13, 14}},
		{UpNormal, []int{12, 14, 15}},

		{LeftNormal, []int{0, 3, 11}},
		{LeftNormal, []int{8, 11, 0}},
		{LeftNormal, []int{4, 7, 15}},
		{LeftNormal, []int{15, 12, 4}},

		{RightNormal, []int{1, 2, 10}},
		{RightNormal, []int{9, 10, 7}},

		{BackNormal, []int{0, 1, 9}},
		{BackNormal, []int{8, 9, 0}},
		{BackNormal, []int{4, 5, 13}},
		{BackNormal, []int{12, 13, 4}},

		{FrontNormal, []int{7, 6, 14}},
		{FrontNormal, []int{15, 14, 7}},

		{DownLeftNormal, []int{3, 5, 13}},
		{DownLeftNormal, []int{11, 13, 3}},

		{UpRightNormal, []int{2, 6, 14}},
		{UpRightNormal, []int{10, 14, 2}},
	}))
}

// ThreeHeightCorridors is three corridors of length 8 placed end to end
// along +x. The first rises from height 2 to 4, the second is 4 high and the
// third falls back to 2.
func ThreeHeightCorridors() *mesh.Structure {
	s := mesh.NewStructure()
	for _, seg := range []struct{ x, hLeft, hRight float64 }{
		{0, 2, 4},
		{8, 4, 4},
		{16, 4, 2},
	} {
		vertices := []geometry.Vect3{
			{X: seg.x, Y: 0, Z: 0},
			{X: seg.x, Y: 0, Z: 1},
			{X: seg.x, Y: seg.hLeft, Z: 0},
			{X: seg.x + 8, Y: 0, Z: 0},
			{X: seg.x, Y: seg.hLeft, Z: 1},
			{X: seg.x + 8, Y: 0, Z: 1},
			{X: seg.x + 8, Y: seg.hRight, Z: 0},
			{X: seg.x + 8, Y: seg.hRight, Z: 1},
		}
		s.AddComponent(build(vertices, cubeFaceIndices))
	}
	return s
}

// TIntersection is three corridors meeting at the origin: one from -x, one
// towards +x and one lowered by half a unit leading towards -z.
func TIntersection() *mesh.Structure {
	corridor := RightCorridorComponent()
	left := corridor.Translate(-7.5, 0, 0)
	right := left.Translate(8, 0, 0)
	back := corridor.Rotate(0, -math.Pi/2, 0).Translate(0, -0.5, -7.5)

	s := mesh.NewStructure()
	s.AddComponent(left)
	s.AddComponent(right)
	s.AddComponent(back)
	return s
}
