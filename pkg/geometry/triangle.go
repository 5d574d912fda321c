package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vect3
	V1, V2, V3 Vect3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vect3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the unit normal from the winding order
func (t Triangle) CalculateNormal() (Vect3, error) {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return TriangleArea(t.V1, t.V2, t.V3)
}

// IsDegenerate reports whether the triangle has (almost) no area
func (t Triangle) IsDegenerate() bool {
	return IsDegenerateTriangle(t.V1, t.V2, t.V3)
}

// IsDegenerateTriangle reports whether the height of the triangle over its
// longest edge is at most Epsilon times that edge. The ratio does not depend
// on the scale of the model, so millimetre and kilometre meshes are judged
// alike.
func IsDegenerateTriangle(a, b, c Vect3) bool {
	longest := max(a.Distance(b), b.Distance(c), c.Distance(a))
	if longest == 0 {
		return true
	}
	height := 2 * TriangleArea(a, b, c) / longest
	return height <= Epsilon*longest
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vect3 {
	return Vect3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Vertices returns the corners in winding order
func (t Triangle) Vertices() [3]Vect3 {
	return [3]Vect3{t.V1, t.V2, t.V3}
}
