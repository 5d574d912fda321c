package mesh

import (
	"fmt"
	"slices"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// Structure is the ordered set of solids imported from one scene
type Structure struct {
	components []*Component
}

// NewStructure creates an empty structure
func NewStructure() *Structure {
	return &Structure{}
}

// Len returns the number of components
func (s *Structure) Len() int {
	return len(s.components)
}

// AddComponent appends c and returns its index
func (s *Structure) AddComponent(c *Component) int {
	s.components = append(s.components, c)
	return len(s.components) - 1
}

// RemoveComponent deletes the component at index. Later components shift
// down by one.
func (s *Structure) RemoveComponent(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.components = slices.Delete(s.components, index, index+1)
	return nil
}

// Component returns the component at index
func (s *Structure) Component(index int) (*Component, error) {
	if err := s.check(index); err != nil {
		return nil, err
	}
	return s.components[index], nil
}

// Components returns the components in order. The slice is a copy, the
// components are shared.
func (s *Structure) Components() []*Component {
	return slices.Clone(s.components)
}

// BoundingBox returns the bounds of every component together
func (s *Structure) BoundingBox() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, c := range s.components {
		cb := c.BoundingBox()
		if cb.IsEmpty() {
			continue
		}
		bb.Extend(cb.Min)
		bb.Extend(cb.Max)
	}
	return bb
}

// Transform returns a structure with every component transformed by m
func (s *Structure) Transform(m geometry.Matrix) *Structure {
	out := &Structure{components: make([]*Component, len(s.components))}
	for i, c := range s.components {
		out.components[i] = c.Transform(m)
	}
	return out
}

// Counts returns the total number of vertices and faces
func (s *Structure) Counts() (vertices, faces int) {
	for _, c := range s.components {
		vertices += c.VertexCount()
		faces += c.FaceCount()
	}
	return vertices, faces
}

func (s *Structure) check(index int) error {
	if index < 0 {
		return fmt.Errorf("component %d: %w", index, ErrNegativeIndex)
	}
	if index >= len(s.components) {
		return fmt.Errorf("component %d of %d: %w", index, len(s.components), ErrIndexOutOfRange)
	}
	return nil
}
