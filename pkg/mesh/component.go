package mesh

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// Component is one connected solid. Vertices and faces live in arenas:
// indices handed out by the Add/Create methods stay valid for the lifetime
// of the component.
type Component struct {
	vertices []Vertex
	faces    []Face
}

// NewComponent creates an empty component
func NewComponent() *Component {
	return &Component{}
}

// VertexCount returns the number of vertices
func (c *Component) VertexCount() int {
	return len(c.vertices)
}

// FaceCount returns the number of faces
func (c *Component) FaceCount() int {
	return len(c.faces)
}

// IsEmpty reports whether the component holds neither vertices nor faces
func (c *Component) IsEmpty() bool {
	return len(c.vertices) == 0 && len(c.faces) == 0
}

// AddVertex stores a copy of v and returns its index
func (c *Component) AddVertex(v Vertex) int {
	c.vertices = append(c.vertices, v.Clone())
	return len(c.vertices) - 1
}

// CreateVertex adds a vertex at (x, y, z) and returns its index
func (c *Component) CreateVertex(x, y, z float64) int {
	return c.AddVertex(NewVertex(x, y, z))
}

// AddFace validates f against the component, stores it and back-links its
// index into the three referenced vertices.
func (c *Component) AddFace(f Face) (int, error) {
	if err := f.validate(); err != nil {
		return -1, err
	}
	if f.Normal.IsZero() {
		return -1, fmt.Errorf("zero normal: %w", ErrInvalidFace)
	}
	var corners [3]geometry.Vect3
	for i, vi := range f.VertexIndices {
		if vi >= len(c.vertices) {
			return -1, fmt.Errorf("vertex %d of %d: %w", vi, len(c.vertices), ErrInvalidFace)
		}
		corners[i] = c.vertices[vi].Coordinate
	}
	if geometry.IsDegenerateTriangle(corners[0], corners[1], corners[2]) {
		return -1, fmt.Errorf("degenerate triangle %v: %w", f.VertexIndices, ErrInvalidFace)
	}

	index := len(c.faces)
	c.faces = append(c.faces, f)
	for _, vi := range f.VertexIndices {
		c.vertices[vi].FaceIndices = append(c.vertices[vi].FaceIndices, index)
	}
	return index, nil
}

// CreateFace builds a face from normal and indices and adds it
func (c *Component) CreateFace(normal geometry.Vect3, indices []int) (int, error) {
	f, err := NewFace(normal, indices)
	if err != nil {
		return -1, err
	}
	return c.AddFace(f)
}

func (c *Component) checkVertex(index int) error {
	if index < 0 {
		return fmt.Errorf("vertex %d: %w", index, ErrNegativeIndex)
	}
	if index >= len(c.vertices) {
		return fmt.Errorf("vertex %d of %d: %w", index, len(c.vertices), ErrIndexOutOfRange)
	}
	return nil
}

func (c *Component) checkFace(index int) error {
	if index < 0 {
		return fmt.Errorf("face %d: %w", index, ErrNegativeIndex)
	}
	if index >= len(c.faces) {
		return fmt.Errorf("face %d of %d: %w", index, len(c.faces), ErrIndexOutOfRange)
	}
	return nil
}

// Vertex returns a copy of the vertex at index
func (c *Component) Vertex(index int) (Vertex, error) {
	if err := c.checkVertex(index); err != nil {
		return Vertex{}, err
	}
	return c.vertices[index].Clone(), nil
}

// Coordinate returns the position of the vertex at index
func (c *Component) Coordinate(index int) (geometry.Vect3, error) {
	if err := c.checkVertex(index); err != nil {
		return geometry.Zero, err
	}
	return c.vertices[index].Coordinate, nil
}

// SetCoordinate moves a single vertex. Faces are left untouched.
func (c *Component) SetCoordinate(index int, coordinate geometry.Vect3) error {
	if err := c.checkVertex(index); err != nil {
		return err
	}
	c.vertices[index].Coordinate = coordinate
	return nil
}

// VertexFaces returns the faces using the vertex at index
func (c *Component) VertexFaces(index int) ([]int, error) {
	if err := c.checkVertex(index); err != nil {
		return nil, err
	}
	return slices.Clone(c.vertices[index].FaceIndices), nil
}

// Face returns the face at index
func (c *Component) Face(index int) (Face, error) {
	if err := c.checkFace(index); err != nil {
		return Face{}, err
	}
	return c.faces[index], nil
}

// FaceVertices returns the vertex indices of the face at index
func (c *Component) FaceVertices(index int) ([3]int, error) {
	if err := c.checkFace(index); err != nil {
		return [3]int{}, err
	}
	return c.faces[index].VertexIndices, nil
}

// FaceCorners returns the coordinates of the face at index in winding order
func (c *Component) FaceCorners(index int) ([3]geometry.Vect3, error) {
	if err := c.checkFace(index); err != nil {
		return [3]geometry.Vect3{}, err
	}
	f := c.faces[index]
	return [3]geometry.Vect3{
		c.vertices[f.VertexIndices[0]].Coordinate,
		c.vertices[f.VertexIndices[1]].Coordinate,
		c.vertices[f.VertexIndices[2]].Coordinate,
	}, nil
}

// Vertices returns copies of all vertices in index order
func (c *Component) Vertices() []Vertex {
	return lo.Map(c.vertices, func(v Vertex, _ int) Vertex { return v.Clone() })
}

// Faces returns all faces in index order
func (c *Component) Faces() []Face {
	return slices.Clone(c.faces)
}

// NeighborFacesByVertex returns the faces sharing at least one vertex with
// the face at index, ascending.
func (c *Component) NeighborFacesByVertex(index int) ([]int, error) {
	return c.neighborFaces(index, 1)
}

// NeighborFacesByEdge returns the faces sharing at least two vertices (an
// edge) with the face at index, ascending.
func (c *Component) NeighborFacesByEdge(index int) ([]int, error) {
	return c.neighborFaces(index, 2)
}

func (c *Component) neighborFaces(index, shared int) ([]int, error) {
	if err := c.checkFace(index); err != nil {
		return nil, err
	}
	face := c.faces[index]

	var candidates []int
	for _, vi := range face.VertexIndices {
		candidates = append(candidates, c.vertices[vi].FaceIndices...)
	}
	result := lo.Filter(lo.Uniq(candidates), func(fi int, _ int) bool {
		return fi != index && face.SharedVertices(c.faces[fi]) >= shared
	})
	slices.Sort(result)
	return result, nil
}

// Transform returns a new component with every vertex moved by m and every
// normal rotated by the rotation part of m. c is not modified.
func (c *Component) Transform(m geometry.Matrix) *Component {
	out := c.DeepCopy()
	for i := range out.vertices {
		out.vertices[i].Coordinate = m.Apply(out.vertices[i].Coordinate)
	}
	for i := range out.faces {
		out.faces[i].Normal = m.ApplyNormal(out.faces[i].Normal)
	}
	return out
}

// Translate returns a copy moved by (x, y, z)
func (c *Component) Translate(x, y, z float64) *Component {
	return c.Transform(geometry.Translation(x, y, z))
}

// Rotate returns a copy rotated by the given angles in radians, X first
func (c *Component) Rotate(x, y, z float64) *Component {
	return c.Transform(geometry.Rotation(x, y, z))
}

// DeepCopy returns a component sharing no memory with c
func (c *Component) DeepCopy() *Component {
	return &Component{
		vertices: c.Vertices(),
		faces:    c.Faces(),
	}
}

// BoundingBox returns the axis-aligned bounds of all vertices
func (c *Component) BoundingBox() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, v := range c.vertices {
		bb.Extend(v.Coordinate)
	}
	return bb
}

// Equal compares both arenas element by element
func (c *Component) Equal(other *Component) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return slices.EqualFunc(c.vertices, other.vertices, Vertex.Equal) &&
		slices.EqualFunc(c.faces, other.faces, Face.Equal)
}
