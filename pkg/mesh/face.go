package mesh

import (
	"fmt"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// Face is a triangle referencing three distinct vertices of its component.
// Normal is stored as given and is not required to be unit length.
type Face struct {
	Normal        geometry.Vect3
	VertexIndices [3]int
}

// NewFace validates the vertex indices and creates a face
func NewFace(normal geometry.Vect3, indices []int) (Face, error) {
	if len(indices) != 3 {
		return Face{}, fmt.Errorf("face needs 3 vertices, got %d: %w", len(indices), ErrInvalidFace)
	}
	for _, index := range indices {
		if index < 0 {
			return Face{}, fmt.Errorf("vertex index %d: %w", index, ErrNegativeIndex)
		}
	}
	if indices[0] == indices[1] || indices[1] == indices[2] || indices[0] == indices[2] {
		return Face{}, fmt.Errorf("duplicate vertex in %v: %w", indices, ErrInvalidFace)
	}
	return Face{
		Normal:        normal,
		VertexIndices: [3]int{indices[0], indices[1], indices[2]},
	}, nil
}

// Contains reports whether the face uses the vertex
func (f Face) Contains(vertex int) bool {
	return f.VertexIndices[0] == vertex || f.VertexIndices[1] == vertex || f.VertexIndices[2] == vertex
}

// SharedVertices counts the vertices both faces use
func (f Face) SharedVertices(other Face) int {
	n := 0
	for _, v := range f.VertexIndices {
		if other.Contains(v) {
			n++
		}
	}
	return n
}

// Equal compares normals within epsilon and vertex indices in order
func (f Face) Equal(other Face) bool {
	return f.Normal.Equal(other.Normal) && f.VertexIndices == other.VertexIndices
}

func (f Face) validate() error {
	_, err := NewFace(f.Normal, f.VertexIndices[:])
	return err
}
