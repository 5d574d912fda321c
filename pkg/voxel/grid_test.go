package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/mesh/meshtest"
)

func first(t *testing.T, s *mesh.Structure) *mesh.Component {
	t.Helper()
	c, err := s.Component(0)
	require.NoError(t, err)
	return c
}

func TestBorderIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		c    *mesh.Component
	}{
		{"cube", meshtest.CubeComponent()},
		{"right corridor", meshtest.RightCorridorComponent()},
		{"left turn", first(t, meshtest.LeftTurn())},
		{"big cube", first(t, meshtest.BigCube())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.c, Options{Resolution: 16})
			require.NoError(t, err)
			assert.True(t, g.BorderIsEmpty())
			assert.Positive(t, g.Count())
		})
	}
}

func TestCubeIsFilled(t *testing.T) {
	g, err := New(meshtest.CubeComponent(), Options{Resolution: 4})
	require.NoError(t, err)

	assert.InDelta(t, 0.25, g.VoxelSize, 1e-12)
	assert.Equal(t, []int{7, 7, 7}, []int{g.XBound, g.YBound, g.ZBound})
	assert.Equal(t, 125, g.Count())
	for x := 1; x <= 5; x++ {
		for y := 1; y <= 5; y++ {
			for z := 1; z <= 5; z++ {
				assert.True(t, g.At(x, y, z), "voxel (%d, %d, %d)", x, y, z)
			}
		}
	}
	assert.True(t, g.WorldCoordinate(1, 1, 1).Equal(geometry.NewVect3(0.125, 0.125, 0.125)))
}

func TestCorridorExtent(t *testing.T) {
	g, err := New(meshtest.RightCorridorComponent(), Options{Resolution: 8})
	require.NoError(t, err)

	assert.InDelta(t, 1, g.VoxelSize, 1e-12)
	assert.Equal(t, []int{11, 4, 4}, []int{g.XBound, g.YBound, g.ZBound})
	assert.Equal(t, 9*2*2, g.Count())
}

func scaled(t *testing.T, c *mesh.Component, factor float64) *mesh.Component {
	t.Helper()
	out := mesh.NewComponent()
	for _, v := range c.Vertices() {
		p := v.Coordinate.Mul(factor)
		out.CreateVertex(p.X, p.Y, p.Z)
	}
	for _, f := range c.Faces() {
		_, err := out.CreateFace(f.Normal, f.VertexIndices[:])
		require.NoError(t, err)
	}
	return out
}

func TestResolutionGovernsLargeModels(t *testing.T) {
	g, err := New(first(t, meshtest.BigCube()), Options{Resolution: 2})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, g.VoxelSize, 1e-12)
	assert.Equal(t, 5, g.XBound)

	g, err = New(scaled(t, meshtest.CubeComponent(), 200), Options{Resolution: 16})
	require.NoError(t, err)
	assert.InDelta(t, 12.5, g.VoxelSize, 1e-9)
	assert.Equal(t, []int{19, 19, 19}, []int{g.XBound, g.YBound, g.ZBound})
	assert.True(t, g.BorderIsEmpty())
}

func TestMaxVoxelSize(t *testing.T) {
	g, err := New(first(t, meshtest.BigCube()), Options{Resolution: 2, MaxVoxelSize: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1, g.VoxelSize, 1e-12)
	assert.Equal(t, 10, g.XBound)

	g, err = New(first(t, meshtest.BigCube()), Options{Resolution: 2, MaxVoxelSize: 10})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, g.VoxelSize, 1e-12)

	_, err = New(meshtest.CubeComponent(), Options{MaxVoxelSize: -1})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDefaultResolution(t *testing.T) {
	g, err := New(meshtest.CubeComponent(), Options{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/DefaultResolution, g.VoxelSize, 1e-12)
}

func TestInvalidInput(t *testing.T) {
	_, err := New(mesh.NewComponent(), Options{})
	assert.ErrorIs(t, err, ErrEmptyComponent)

	_, err = New(meshtest.CubeComponent(), Options{Resolution: -1})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewEmpty(0, 3, 3)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestSetAndClone(t *testing.T) {
	g, err := NewEmpty(3, 3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(1, 1, 1, true))
	assert.ErrorIs(t, g.Set(3, 0, 0, true), ErrInvalidSize)
	assert.False(t, g.At(-1, 0, 0))
	assert.True(t, g.BorderIsEmpty())

	clone := g.Clone()
	require.NoError(t, clone.Set(0, 0, 0, true))
	assert.False(t, g.At(0, 0, 0))
	assert.False(t, clone.BorderIsEmpty())
	assert.Equal(t, 1, g.Count())
	assert.Equal(t, 2, clone.Count())
}
