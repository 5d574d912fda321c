package stl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/mesh/meshtest"
)

const tetrahedron = `solid tetra
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 0 1
    endloop
  endfacet
  facet normal 0 0 0
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 1 0 0
    endloop
  endfacet
  facet normal -1 0 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 0 1 0
    endloop
  endfacet
  facet normal 1 1 1
    outer loop
      vertex 1 0 0
      vertex 0 1 0
      vertex 0 0 1
    endloop
  endfacet
endsolid tetra
`

func TestDecodeASCII(t *testing.T) {
	m, err := Decode(strings.NewReader(tetrahedron))
	require.NoError(t, err)
	assert.Equal(t, "tetra", m.Name)
	assert.Equal(t, 4, m.TriangleCount())

	s, err := m.Structure()
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	c, err := s.Component(0)
	require.NoError(t, err)
	assert.Equal(t, 4, c.VertexCount())
	assert.Equal(t, 4, c.FaceCount())

	f, err := c.Face(1)
	require.NoError(t, err)
	assert.False(t, f.Normal.IsZero(), "zero normal is derived from the winding")
}

func TestDecodeMalformed(t *testing.T) {
	for name, input := range map[string]string{
		"bad coordinate": "solid x\nfacet normal 0 0 a\n",
		"short facet":    "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nendloop\nendfacet\n",
		"short binary":   "binary header",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	model := FromStructure("solid cube", meshtest.Cube())
	require.Equal(t, 12, model.TriangleCount())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, model))
	assert.Equal(t, headerSize+4+12*triangleSize, buf.Len())

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "solid cube", decoded.Name)
	assert.Equal(t, model.Triangles, decoded.Triangles)

	s, err := decoded.Structure()
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	c, err := s.Component(0)
	require.NoError(t, err)
	assert.Equal(t, 8, c.VertexCount())
	assert.Equal(t, 12, c.FaceCount())
	assert.True(t, c.BoundingBox().Size().Equal(geometry.One))
}

func TestStructureSplitsComponents(t *testing.T) {
	s := mesh.NewStructure()
	s.AddComponent(meshtest.CubeComponent())
	s.AddComponent(meshtest.CubeComponent().Translate(3, 0, 0))
	model := FromStructure("two", s)

	path := filepath.Join(t.TempDir(), "two.stl")
	require.NoError(t, WriteFile(path, model))
	parsed, err := Parse(path)
	require.NoError(t, err)

	split, err := parsed.Structure()
	require.NoError(t, err)
	require.Equal(t, 2, split.Len())
	second, err := split.Component(1)
	require.NoError(t, err)
	assert.InDelta(t, 3, second.BoundingBox().Min.X, geometry.Epsilon)
}

func TestStructureDropsDegenerateTriangles(t *testing.T) {
	m := NewModel("")
	m.AddTriangle(geometry.NewTriangle(geometry.Up, geometry.Zero, geometry.Right, geometry.Right.Mul(2)))
	m.AddTriangle(geometry.NewTriangle(geometry.Up, geometry.Zero, geometry.Zero, geometry.Forward))

	s, err := m.Structure()
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
