package geometry

import (
	"math"
	"testing"
)

var unitCube = []Vect3{
	{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {1, 0, 0},
	{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
}

func checkTransform(t *testing.T, name string, m Matrix, expected []Vect3) {
	t.Helper()
	for i, v := range unitCube {
		if got := m.Apply(v); !got.Equal(expected[i]) {
			t.Errorf("%s: vertex %d expected %v, got %v", name, i, expected[i], got)
		}
	}
}

func TestRotationX(t *testing.T) {
	checkTransform(t, "RotationX", RotationX(math.Pi/2), []Vect3{
		{0, 0, 0}, {0, -1, 0}, {0, 0, 1}, {1, 0, 0},
		{0, -1, 1}, {1, -1, 0}, {1, 0, 1}, {1, -1, 1},
	})
}

func TestRotationY(t *testing.T) {
	checkTransform(t, "RotationY", RotationY(math.Pi/2), []Vect3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, -1},
		{1, 1, 0}, {1, 0, -1}, {0, 1, -1}, {1, 1, -1},
	})
}

func TestRotationZ(t *testing.T) {
	checkTransform(t, "RotationZ", RotationZ(math.Pi/2), []Vect3{
		{0, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0, 1, 0},
		{-1, 0, 1}, {0, 1, 1}, {-1, 1, 0}, {-1, 1, 1},
	})
}

func TestRotationCombined(t *testing.T) {
	checkTransform(t, "Rotation", Rotation(-math.Pi/2, math.Pi/2, math.Pi/2), []Vect3{
		{0, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{-1, -1, 0}, {-1, 0, -1}, {0, -1, -1}, {-1, -1, -1},
	})
}

func TestTranslation(t *testing.T) {
	m := Translation(1, -2, 3)
	if got := m.Apply(One); !got.Equal(NewVect3(2, -1, 4)) {
		t.Errorf("Translation failed: got %v", got)
	}
	if got := m.ApplyNormal(Up); !got.Equal(Up) {
		t.Errorf("Translation should not move normals, got %v", got)
	}
}

func TestTransformOrder(t *testing.T) {
	// translate first, then rotate
	m := RotationY(math.Pi / 2).Mul(Translation(1, 0, 0))
	if got := m.Apply(Zero); !got.Equal(NewVect3(0, 0, -1)) {
		t.Errorf("Mul order failed: got %v", got)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("Identity multiplication changed the matrix")
	}
}

func TestApplyNormal(t *testing.T) {
	m := Translation(5, 5, 5).Mul(RotationY(math.Pi / 2))
	if got := m.ApplyNormal(Right.Neg()); !got.Equal(Forward) {
		t.Errorf("ApplyNormal failed: expected %v, got %v", Forward, got)
	}
	if got := m.ApplyNormal(Up); !got.Equal(Up) {
		t.Errorf("ApplyNormal failed: expected %v, got %v", Up, got)
	}
}
