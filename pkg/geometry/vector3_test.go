package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestVect3Add(t *testing.T) {
	v1 := NewVect3(1, 2, 3)
	v2 := NewVect3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVect3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVect3Sub(t *testing.T) {
	v1 := NewVect3(5, 7, 9)
	v2 := NewVect3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVect3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVect3Div(t *testing.T) {
	result, err := NewVect3(2, 4, 6).Div(2)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if !result.Equal(NewVect3(1, 2, 3)) {
		t.Errorf("Div failed: expected %v, got %v", NewVect3(1, 2, 3), result)
	}

	if _, err := One.Div(0); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("Div by zero: expected ErrDivideByZero, got %v", err)
	}
}

func TestVect3Equal(t *testing.T) {
	v := NewVect3(1, 2, 3)
	closeBy := NewVect3(1+Epsilon/2, 2-Epsilon/2, 3+Epsilon/2)
	farAway := NewVect3(1+1.5*Epsilon, 2, 3)

	if !v.Equal(closeBy) {
		t.Errorf("Equal failed: %v and %v should be equal", v, closeBy)
	}
	if v.Equal(farAway) {
		t.Errorf("Equal failed: %v and %v should differ", v, farAway)
	}
}

func TestVect3Length(t *testing.T) {
	v := NewVect3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVect3Distance(t *testing.T) {
	v1 := NewVect3(0, 0, 0)
	v2 := NewVect3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVect3Normalize(t *testing.T) {
	for _, v := range []Vect3{NewVect3(3, 4, 0), NewVect3(-7, 0.5, 12), NewVect3(1e-3, 0, 0)} {
		normalized, err := v.Normalize()
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if math.Abs(normalized.Length()-1) > 1e-10 {
			t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
		}
		twice, _ := normalized.Normalize()
		if !twice.Equal(normalized) {
			t.Errorf("Normalize not idempotent: %v vs %v", twice, normalized)
		}
	}

	if _, err := Zero.Normalize(); !errors.Is(err, ErrZeroVector) {
		t.Errorf("Normalize zero: expected ErrZeroVector, got %v", err)
	}
}

func TestVect3Cross(t *testing.T) {
	if result := Up.Cross(Forward); result != Right {
		t.Errorf("Cross failed: expected %v, got %v", Right, result)
	}

	result := NewVect3(1, 2, 3).Cross(NewVect3(3, 2, 1))
	expected := NewVect3(-4, 8, -4)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}

	u := NewVect3(1.5, -2, 0.25)
	w := NewVect3(-3, 0.5, 4)
	if !u.Cross(u).Equal(Zero) {
		t.Errorf("Cross with itself should be zero, got %v", u.Cross(u))
	}
	c := u.Cross(w)
	if math.Abs(c.Dot(u)) > 1e-10 || math.Abs(c.Dot(w)) > 1e-10 {
		t.Errorf("Cross product %v is not orthogonal to its operands", c)
	}
}

func TestVect3Dot(t *testing.T) {
	v1 := NewVect3(1, 2, 3)
	v2 := NewVect3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}

	if Right.Dot(Up) != 0 {
		t.Errorf("Dot of orthogonal unit vectors should be 0")
	}
}

func TestVect3AngleTo(t *testing.T) {
	tests := []struct {
		a, b     Vect3
		expected float64
	}{
		{Right, Up, 90},
		{Right, NewVect3(1, 1, 0), 45},
		{Forward, Forward.Mul(3), 0},
		{Right, Right.Neg(), 180},
	}

	for _, tt := range tests {
		angle, err := tt.a.AngleTo(tt.b)
		if err != nil {
			t.Fatalf("AngleTo failed: %v", err)
		}
		if math.Abs(angle-tt.expected) > 1e-9 {
			t.Errorf("AngleTo(%v, %v): expected %v, got %v", tt.a, tt.b, tt.expected, angle)
		}
	}

	if _, err := Right.AngleTo(Zero); !errors.Is(err, ErrZeroVector) {
		t.Errorf("AngleTo zero: expected ErrZeroVector, got %v", err)
	}
}

func TestVect3ProjectOnVector(t *testing.T) {
	result := NewVect3(1, 2, 3).ProjectOnVector(NewVect3(3, 2, 1))
	expected := NewVect3(15.0/7, 10.0/7, 5.0/7)
	if !result.Equal(expected) {
		t.Errorf("ProjectOnVector failed: expected %v, got %v", expected, result)
	}

	if result := One.ProjectOnVector(Zero); result != Zero {
		t.Errorf("ProjectOnVector onto zero: expected zero, got %v", result)
	}
}

func TestVect3ProjectOnPlane(t *testing.T) {
	v := NewVect3(1, 2, 3)
	expected := NewVect3(1, 0, 3)

	result, err := v.ProjectOnPlane(Up)
	if err != nil || !result.Equal(expected) {
		t.Errorf("ProjectOnPlane failed: expected %v, got %v (%v)", expected, result, err)
	}

	result, err = v.ProjectOnBasis(Forward, Right)
	if err != nil || !result.Equal(expected) {
		t.Errorf("ProjectOnBasis failed: expected %v, got %v (%v)", expected, result, err)
	}

	if _, err := v.ProjectOnPlane(Zero); !errors.Is(err, ErrInvalidPlane) {
		t.Errorf("ProjectOnPlane zero normal: expected ErrInvalidPlane, got %v", err)
	}
	if _, err := v.ProjectOnBasis(Right, Right.Mul(2)); !errors.Is(err, ErrInvalidPlane) {
		t.Errorf("ProjectOnBasis parallel: expected ErrInvalidPlane, got %v", err)
	}
}

func TestVect3NormalPlane(t *testing.T) {
	for _, v := range []Vect3{Up, Right, NewVect3(1, 2, 3), NewVect3(-5, 0.1, 0)} {
		a, b, err := v.NormalPlane()
		if err != nil {
			t.Fatalf("NormalPlane failed: %v", err)
		}
		if math.Abs(a.Dot(v)) > 1e-10 || math.Abs(b.Dot(v)) > 1e-10 || math.Abs(a.Dot(b)) > 1e-10 {
			t.Errorf("NormalPlane(%v) not orthogonal: %v %v", v, a, b)
		}
		angle, _ := a.Cross(b).AngleTo(v)
		if angle > 1e-6 {
			t.Errorf("NormalPlane(%v): cross product not along v, angle %v", v, angle)
		}
	}

	if _, _, err := Zero.NormalPlane(); !errors.Is(err, ErrInvalidPlane) {
		t.Errorf("NormalPlane zero: expected ErrInvalidPlane, got %v", err)
	}
}

func TestVect3ClosestLinePoint(t *testing.T) {
	a := NewVect3(0, 0, 0)
	b := NewVect3(10, 0, 0)

	tests := []struct {
		point    Vect3
		expected Vect3
	}{
		{NewVect3(5, 3, 0), NewVect3(5, 0, 0)},
		{NewVect3(-4, 1, 1), a},
		{NewVect3(12, -2, 0), b},
		{NewVect3(2.5, 0, -7), NewVect3(2.5, 0, 0)},
	}

	for _, tt := range tests {
		result := tt.point.ClosestLinePoint(a, b)
		if !result.Equal(tt.expected) {
			t.Errorf("ClosestLinePoint(%v): expected %v, got %v", tt.point, tt.expected, result)
		}
	}

	if result := One.ClosestLinePoint(a, a); result != a {
		t.Errorf("ClosestLinePoint on a point segment: expected %v, got %v", a, result)
	}
}

func TestTriangleAreaFunction(t *testing.T) {
	tests := []struct {
		a, b, c  Vect3
		expected float64
	}{
		{NewVect3(0, 0, 0), NewVect3(10, 0, 0), NewVect3(0, 10, 0), 50},
		{NewVect3(0, 0, 0), NewVect3(0, 0, 10), NewVect3(10, 0, 10), 50},
		{NewVect3(1, 1, 1), NewVect3(3, 1, 1), NewVect3(1, 1, 4), 3},
	}

	for _, tt := range tests {
		area := TriangleArea(tt.a, tt.b, tt.c)
		if math.Abs(area-tt.expected) > 1e-10 {
			t.Errorf("TriangleArea failed: expected %v, got %v", tt.expected, area)
		}
	}
}
