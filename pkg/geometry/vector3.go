package geometry

import (
	"errors"
	"math"
)

// Epsilon is the absolute tolerance used for every coordinate comparison.
const Epsilon = 1e-5

var (
	// ErrZeroVector is returned when an operation needs a direction but got Zero.
	ErrZeroVector = errors.New("geometry: zero vector")
	// ErrDivideByZero is returned when a vector is divided by zero.
	ErrDivideByZero = errors.New("geometry: division by zero")
	// ErrInvalidPlane is returned for a zero plane normal or parallel plane bases.
	ErrInvalidPlane = errors.New("geometry: invalid plane")
)

// Vect3 represents a 3D point or vector
type Vect3 struct {
	X, Y, Z float64
}

// Named directions. Up is the vertical axis of imported scenes.
var (
	Zero    = Vect3{0, 0, 0}
	One     = Vect3{1, 1, 1}
	Right   = Vect3{1, 0, 0}
	Up      = Vect3{0, 1, 0}
	Forward = Vect3{0, 0, 1}
	Down    = Vect3{0, -1, 0}
)

// NewVect3 creates a new 3D vector
func NewVect3(x, y, z float64) Vect3 {
	return Vect3{X: x, Y: y, Z: z}
}

// NearlyEqual reports whether a and b differ by at most Epsilon
func NearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= Epsilon
}

// Equal reports whether both vectors are equal within Epsilon on every axis
func (v Vect3) Equal(other Vect3) bool {
	return NearlyEqual(v.X, other.X) && NearlyEqual(v.Y, other.Y) && NearlyEqual(v.Z, other.Z)
}

// IsZero reports whether the vector equals Zero within Epsilon
func (v Vect3) IsZero() bool {
	return v.Equal(Zero)
}

// Add returns the sum of two vectors
func (v Vect3) Add(other Vect3) Vect3 {
	return Vect3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vect3) Sub(other Vect3) Vect3 {
	return Vect3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul returns the vector scaled by a scalar
func (v Vect3) Mul(scalar float64) Vect3 {
	return Vect3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Div returns the vector divided by a scalar
func (v Vect3) Div(scalar float64) (Vect3, error) {
	if scalar == 0 {
		return Zero, ErrDivideByZero
	}
	return Vect3{
		X: v.X / scalar,
		Y: v.Y / scalar,
		Z: v.Z / scalar,
	}, nil
}

// Neg returns the opposite vector
func (v Vect3) Neg() Vect3 {
	return Vect3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vect3) Dot(other Vect3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vect3) Cross(other Vect3) Vect3 {
	return Vect3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vect3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points
func (v Vect3) Distance(other Vect3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (v Vect3) Normalize() (Vect3, error) {
	length := v.Length()
	if length == 0 {
		return Zero, ErrZeroVector
	}
	return v.Mul(1 / length), nil
}

// AngleTo returns the angle between two vectors in degrees, within [0, 180]
func (v Vect3) AngleTo(other Vect3) (float64, error) {
	lengths := v.Length() * other.Length()
	if lengths == 0 {
		return 0, ErrZeroVector
	}
	cos := v.Dot(other) / lengths
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, nil
}

// ProjectOnVector returns the projection of v onto target. Projecting onto
// Zero yields Zero.
func (v Vect3) ProjectOnVector(target Vect3) Vect3 {
	sq := target.Dot(target)
	if sq == 0 {
		return Zero
	}
	return target.Mul(v.Dot(target) / sq)
}

// ProjectOnPlane returns the projection of v onto the plane through the
// origin with the given normal
func (v Vect3) ProjectOnPlane(normal Vect3) (Vect3, error) {
	if normal.Dot(normal) == 0 {
		return Zero, ErrInvalidPlane
	}
	return v.Sub(v.ProjectOnVector(normal)), nil
}

// ProjectOnBasis returns the projection of v onto the plane spanned by b1 and b2
func (v Vect3) ProjectOnBasis(b1, b2 Vect3) (Vect3, error) {
	normal := b1.Cross(b2)
	if normal.IsZero() {
		return Zero, ErrInvalidPlane
	}
	return v.ProjectOnPlane(normal)
}

// NormalPlane returns two orthogonal unit vectors spanning the plane
// orthogonal to v, ordered so that their cross product points along v.
func (v Vect3) NormalPlane() (Vect3, Vect3, error) {
	dir, err := v.Normalize()
	if err != nil {
		return Zero, Zero, ErrInvalidPlane
	}
	helper := Right
	if math.Abs(dir.X) > 0.9 {
		helper = Up
	}
	a, err := dir.Cross(helper).Normalize()
	if err != nil {
		return Zero, Zero, ErrInvalidPlane
	}
	b := dir.Cross(a)
	return a, b, nil
}

// ClosestLinePoint returns the point on segment [a, b] closest to v
func (v Vect3) ClosestLinePoint(a, b Vect3) Vect3 {
	ab := b.Sub(a)
	sq := ab.Dot(ab)
	if sq == 0 {
		return a
	}
	t := v.Sub(a).Dot(ab) / sq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// Lerp returns the linear interpolation from v to other at t
func (v Vect3) Lerp(other Vect3, t float64) Vect3 {
	return v.Add(other.Sub(v).Mul(t))
}

// Midpoint returns the point halfway between two points
func (v Vect3) Midpoint(other Vect3) Vect3 {
	return v.Lerp(other, 0.5)
}

// Min returns component-wise minimum
func (v Vect3) Min(other Vect3) Vect3 {
	return Vect3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns component-wise maximum
func (v Vect3) Max(other Vect3) Vect3 {
	return Vect3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// TriangleArea returns the area of the triangle spanned by three points
func TriangleArea(a, b, c Vect3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}
