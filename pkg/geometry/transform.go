package geometry

import "math"

// Matrix is a 4x4 affine transform acting on column vectors
type Matrix [4][4]float64

// Identity returns the identity transform
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform moving points by (x, y, z)
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// RotationX returns a right-handed rotation about the X axis in radians
func RotationX(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a right-handed rotation about the Y axis in radians
func RotationY(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a right-handed rotation about the Z axis in radians
func RotationZ(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotation returns the combined rotation Rz * Ry * Rx, so X is applied first
func Rotation(x, y, z float64) Matrix {
	return RotationZ(z).Mul(RotationY(y)).Mul(RotationX(x))
}

// Mul returns m * other, which applies other first
func (m Matrix) Mul(other Matrix) Matrix {
	var r Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Apply transforms a point
func (m Matrix) Apply(p Vect3) Vect3 {
	return Vect3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// ApplyNormal transforms a direction with the rotation part only. The
// result keeps the input length.
func (m Matrix) ApplyNormal(n Vect3) Vect3 {
	r := Vect3{
		X: m[0][0]*n.X + m[0][1]*n.Y + m[0][2]*n.Z,
		Y: m[1][0]*n.X + m[1][1]*n.Y + m[1][2]*n.Z,
		Z: m[2][0]*n.X + m[2][1]*n.Y + m[2][2]*n.Z,
	}
	if unit, err := r.Normalize(); err == nil {
		return unit.Mul(n.Length())
	}
	return r
}
