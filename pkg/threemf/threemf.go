// Package threemf reads and writes mesh structures as 3MF packages
package threemf

import (
	"fmt"

	"github.com/hpinc/go3mf"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
)

// Load reads every mesh object of the package at path into its own
// component. Object order is kept. Degenerate triangles are skipped and
// face normals are taken from the winding order.
func Load(path string) (*mesh.Structure, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 3MF: %w", err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("failed to decode 3MF: %w", err)
	}
	return toStructure(&model)
}

func toStructure(model *go3mf.Model) (*mesh.Structure, error) {
	s := mesh.NewStructure()
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		c := mesh.NewComponent()
		for _, p := range obj.Mesh.Vertices.Vertex {
			c.CreateVertex(float64(p[0]), float64(p[1]), float64(p[2]))
		}
		for i, t := range obj.Mesh.Triangles.Triangle {
			indices := []int{int(t.V1), int(t.V2), int(t.V3)}
			corners := make([]geometry.Vect3, 3)
			for k, vi := range indices {
				v, err := c.Coordinate(vi)
				if err != nil {
					return nil, fmt.Errorf("object %d triangle %d: %w", obj.ID, i, err)
				}
				corners[k] = v
			}
			normal, err := geometry.NewTriangle(geometry.Zero, corners[0], corners[1], corners[2]).CalculateNormal()
			if err != nil {
				continue
			}
			if _, err := c.CreateFace(normal, indices); err != nil {
				return nil, fmt.Errorf("object %d triangle %d: %w", obj.ID, i, err)
			}
		}
		if c.FaceCount() > 0 {
			s.AddComponent(c)
		}
	}
	return s, nil
}

// Save writes each component of s as a mesh object with one build item
func Save(path string, s *mesh.Structure) error {
	w, err := go3mf.CreateWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create 3MF: %w", err)
	}
	if err := w.Encode(fromStructure(s)); err != nil {
		w.Close()
		return fmt.Errorf("failed to encode 3MF: %w", err)
	}
	return w.Close()
}

func fromStructure(s *mesh.Structure) *go3mf.Model {
	model := new(go3mf.Model)
	for i, c := range s.Components() {
		m := &go3mf.Mesh{}
		for _, v := range c.Vertices() {
			p := v.Coordinate
			m.Vertices.Vertex = append(m.Vertices.Vertex, go3mf.Point3D{float32(p.X), float32(p.Y), float32(p.Z)})
		}
		for _, f := range c.Faces() {
			vi := f.VertexIndices
			m.Triangles.Triangle = append(m.Triangles.Triangle, go3mf.Triangle{
				V1: uint32(vi[0]), V2: uint32(vi[1]), V3: uint32(vi[2]),
			})
		}
		id := uint32(i + 1)
		model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{ID: id, Mesh: m})
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: id})
	}
	return model
}
