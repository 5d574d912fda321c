package stl

import (
	"fmt"
	"slices"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// FromStructure flattens every face of s into a triangle soup
func FromStructure(name string, s *mesh.Structure) *Model {
	m := NewModel(name)
	for _, c := range s.Components() {
		for i, f := range c.Faces() {
			corners, err := c.FaceCorners(i)
			if err != nil {
				continue
			}
			m.AddTriangle(geometry.NewTriangle(f.Normal, corners[0], corners[1], corners[2]))
		}
	}
	return m
}

type edgeKey struct{ a, b int }

func keyFor(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Structure welds coincident corners into shared vertices and splits the
// triangles into edge-connected components, one mesh.Component each.
// Degenerate triangles are dropped. Missing or zero normals are derived
// from the winding order.
func (m *Model) Structure() (*mesh.Structure, error) {
	index := geometry.NewPointIndex()
	var points []geometry.Vect3
	weld := func(p geometry.Vect3) int {
		if id, ok := index.Find(p); ok {
			return id
		}
		id := len(points)
		points = append(points, p)
		index.Insert(p, id)
		return id
	}

	type face struct {
		normal geometry.Vect3
		ids    [3]int
	}
	var faces []face
	for _, t := range m.Triangles {
		ids := [3]int{weld(t.V1), weld(t.V2), weld(t.V3)}
		if ids[0] == ids[1] || ids[1] == ids[2] || ids[0] == ids[2] ||
			geometry.IsDegenerateTriangle(points[ids[0]], points[ids[1]], points[ids[2]]) {
			continue
		}
		normal := t.Normal
		if normal.IsZero() {
			n, err := t.CalculateNormal()
			if err != nil {
				continue
			}
			normal = n
		}
		faces = append(faces, face{normal, ids})
	}

	// union faces sharing an edge
	parent := make([]int, len(faces))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	owner := map[edgeKey]int{}
	for i, f := range faces {
		for k := range 3 {
			key := keyFor(f.ids[k], f.ids[(k+1)%3])
			if j, ok := owner[key]; ok {
				ri, rj := find(i), find(j)
				parent[max(ri, rj)] = min(ri, rj)
			} else {
				owner[key] = i
			}
		}
	}

	groups := map[int][]int{}
	var roots []int
	for i := range faces {
		r := find(i)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], i)
	}
	slices.Sort(roots)

	s := mesh.NewStructure()
	for _, r := range roots {
		c := mesh.NewComponent()
		local := map[int]int{}
		for _, fi := range groups[r] {
			f := faces[fi]
			var indices []int
			for _, id := range f.ids {
				li, ok := local[id]
				if !ok {
					li = c.AddVertex(mesh.NewVertexAt(points[id]))
					local[id] = li
				}
				indices = append(indices, li)
			}
			if _, err := c.CreateFace(f.normal, indices); err != nil {
				return nil, fmt.Errorf("triangle %d: %w", fi, err)
			}
		}
		s.AddComponent(c)
	}
	return s, nil
}
