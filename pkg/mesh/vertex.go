package mesh

import (
	"fmt"
	"slices"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// Vertex is a mesh corner. FaceIndices lists the faces of the owning
// component that use it, in the order they were added.
type Vertex struct {
	Coordinate  geometry.Vect3
	FaceIndices []int
}

// NewVertex creates a vertex without faces
func NewVertex(x, y, z float64) Vertex {
	return Vertex{Coordinate: geometry.NewVect3(x, y, z)}
}

// NewVertexAt creates a vertex at the given coordinate
func NewVertexAt(coordinate geometry.Vect3) Vertex {
	return Vertex{Coordinate: coordinate}
}

// AddFaceIndex records a face using this vertex
func (v *Vertex) AddFaceIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("face index %d: %w", index, ErrNegativeIndex)
	}
	v.FaceIndices = append(v.FaceIndices, index)
	return nil
}

// AddFaceIndices records several faces. Nothing is added if any index is
// negative.
func (v *Vertex) AddFaceIndices(indices []int) error {
	for _, index := range indices {
		if index < 0 {
			return fmt.Errorf("face index %d: %w", index, ErrNegativeIndex)
		}
	}
	v.FaceIndices = append(v.FaceIndices, indices...)
	return nil
}

// Clone returns a copy that shares no memory with v
func (v Vertex) Clone() Vertex {
	return Vertex{
		Coordinate:  v.Coordinate,
		FaceIndices: slices.Clone(v.FaceIndices),
	}
}

// Equal compares coordinates within epsilon and face lists exactly
func (v Vertex) Equal(other Vertex) bool {
	return v.Coordinate.Equal(other.Coordinate) && slices.Equal(v.FaceIndices, other.FaceIndices)
}
