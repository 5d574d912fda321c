package generator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/mesh/meshtest"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
)

func first(t *testing.T, s *mesh.Structure) *mesh.Component {
	t.Helper()
	c, err := s.Component(0)
	require.NoError(t, err)
	return c
}

func TestFindLowestVertex(t *testing.T) {
	c := meshtest.CubeComponent()
	lowest, err := FindLowestVertex(c)
	require.NoError(t, err)

	y, err := c.Coordinate(lowest)
	require.NoError(t, err)
	assert.InDelta(t, 0, y.Y, geometry.Epsilon)
	assert.Equal(t, 0, lowest)
}

func TestFindStartFloorFace(t *testing.T) {
	c := meshtest.CubeComponent()
	lowest, err := FindLowestVertex(c)
	require.NoError(t, err)

	face, err := FindStartFloorFace(c, lowest)
	require.NoError(t, err)
	assert.Contains(t, []int{6, 7}, face)
}

func TestFindStartFloorFaceNeedsDownwardFace(t *testing.T) {
	c := mesh.NewComponent()
	c.CreateVertex(0, 0, 0)
	c.CreateVertex(1, 0, 0)
	c.CreateVertex(0, 1, 0)
	c.CreateVertex(0, 0, 1)
	for _, f := range []struct {
		n geometry.Vect3
		v []int
	}{
		{meshtest.FrontNormal, []int{0, 1, 2}},
		{meshtest.LeftNormal, []int{0, 2, 3}},
		{meshtest.DownLeftNormal, []int{0, 1, 3}},
	} {
		_, err := c.CreateFace(f.n, f.v)
		require.NoError(t, err)
	}

	_, err := FindStartFloorFace(c, 0)
	assert.ErrorIs(t, err, ErrNoFloor)
	_, err = GenerateComponentNodeGraph(c)
	assert.ErrorIs(t, err, ErrNoFloor)
}

func TestEmptyComponent(t *testing.T) {
	c := mesh.NewComponent()

	_, err := FindLowestVertex(c)
	assert.ErrorIs(t, err, ErrEmptyList)
	_, err = FindStartFloorFace(c, 1)
	assert.ErrorIs(t, err, ErrEmptyList)
	_, err = GenerateComponentNodeGraph(c)
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestGetFloorFaces(t *testing.T) {
	floor, err := GetFloorFaces(meshtest.CubeComponent())
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7}, floor)

	floor, err = GetFloorFaces(first(t, meshtest.LeftTurn()))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, floor)
}

func TestGetShellVertices(t *testing.T) {
	c := meshtest.CubeComponent()
	floor, err := GetFloorFaces(c)
	require.NoError(t, err)

	shell, err := GetShellVertices(c, floor)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 5, 1}, shell)

	_, err = GetShellVertices(c, nil)
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestSplitLinkedList(t *testing.T) {
	tests := []struct {
		name         string
		component    *mesh.Component
		railA, railB []int
	}{
		{"cube", meshtest.CubeComponent(), []int{0, 1}, []int{3, 5}},
		{"cube with two extra vertices", first(t, meshtest.CubeTwoExtraVertices()), []int{1, 0, 8}, []int{5, 3, 9}},
		{"corridor with excess floor point", first(t, meshtest.RightCorridorExcessFloorPoint()), []int{3, 8, 0}, []int{5, 1}},
		{"left turn", first(t, meshtest.LeftTurn()), []int{0, 3, 5, 4}, []int{1, 2, 6, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor, err := GetFloorFaces(tt.component)
			require.NoError(t, err)
			shell, err := GetShellVertices(tt.component, floor)
			require.NoError(t, err)

			railA, railB, err := SplitLinkedList(tt.component, shell)
			require.NoError(t, err)
			assert.Equal(t, tt.railA, railA)
			assert.Equal(t, tt.railB, railB)
		})
	}
}

func TestSplitShortLoop(t *testing.T) {
	_, _, err := SplitLinkedList(meshtest.CubeComponent(), []int{0, 3, 5})
	assert.ErrorIs(t, err, ErrShortLoop)
}

func TestGenerateCube(t *testing.T) {
	g, err := GenerateComponentNodeGraph(meshtest.CubeComponent())
	require.NoError(t, err)

	expected := nodegraph.New()
	_, err = expected.AddNode(nodegraph.NewNodeXYZ(0.5, 0, 0))
	require.NoError(t, err)
	_, err = expected.AddNodeWithWidths(nodegraph.NewNodeXYZ(0.5, 0, 1), nodegraph.WithWidth(nodegraph.ByIndex(0), 1))
	require.NoError(t, err)

	assert.True(t, expected.Equal(g), "got nodes %v edges %v", g.Nodes(), g.Edges())
}

func TestGenerateWidths(t *testing.T) {
	tests := []struct {
		name   string
		c      *mesh.Component
		widths []float64
	}{
		{"cube", meshtest.CubeComponent(), []float64{1}},
		{"big cube", first(t, meshtest.BigCube()), []float64{7}},
		{"left turn", first(t, meshtest.LeftTurn()), []float64{1, math.Sqrt(0.5), 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GenerateComponentNodeGraph(tt.c)
			require.NoError(t, err)
			require.Equal(t, len(tt.widths), g.EdgeCount())
			for i, want := range tt.widths {
				e, ok := g.GetEdge(i)
				require.True(t, ok)
				assert.InDelta(t, want, e.Width, geometry.Epsilon, "edge %d", i)
			}
		})
	}
}

func TestGenerateUnevenFloorVertices(t *testing.T) {
	g, err := GenerateComponentNodeGraph(first(t, meshtest.RightCorridorExcessFloorPoint()))
	require.NoError(t, err)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	for _, v := range []geometry.Vect3{{X: -0.5, Y: -0.5, Z: 0}, {X: 7.5, Y: -0.5, Z: 0}} {
		_, ok := g.GetNode(nodegraph.ByCoordinate(v))
		assert.True(t, ok, "missing node at %v", v)
	}

	expected, err := nodegraph.NewEdge(1, 0)
	require.NoError(t, err)
	expected.Index = 0
	expected.Width = 1
	assert.True(t, expected.Equal(g.Edges()[0]))
}

func TestGenerateLeftTurnNodes(t *testing.T) {
	g, err := GenerateComponentNodeGraph(first(t, meshtest.LeftTurn()))
	require.NoError(t, err)

	nodes := g.Nodes()
	require.Len(t, nodes, 4)
	for i, v := range []geometry.Vect3{{X: 2.5}, {X: 2.5, Y: 1}, {X: 1, Y: 2.5}, {Y: 2.5}} {
		assert.True(t, nodes[i].Coordinate.Equal(v), "node %d at %v", i, nodes[i].Coordinate)
	}
}

func TestGenerateTriangleFloor(t *testing.T) {
	c := mesh.NewComponent()
	c.CreateVertex(0, 0, 0)
	c.CreateVertex(3, 0, 0)
	c.CreateVertex(0, 0, 3)
	c.CreateVertex(1, 2, 1)
	for _, f := range []struct {
		n geometry.Vect3
		v []int
	}{
		{geometry.Down, []int{0, 1, 2}},
		{meshtest.FrontNormal, []int{0, 1, 3}},
		{meshtest.LeftNormal, []int{0, 2, 3}},
		{meshtest.UpRightNormal, []int{1, 2, 3}},
	} {
		_, err := c.CreateFace(f.n, f.v)
		require.NoError(t, err)
	}

	g, err := GenerateComponentNodeGraph(c)
	require.NoError(t, err)
	require.Equal(t, 1, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
	assert.True(t, g.Nodes()[0].Coordinate.Equal(geometry.NewVect3(1, 0, 1)))
}

func TestAlignAbsorbsCollinearPoints(t *testing.T) {
	at := func(vi int) geometry.Vect3 { return geometry.NewVect3(float64(vi), 0, 0) }
	rail := simplify([]int{0, 1, 2, 3, 8}, at)
	assert.Equal(t, []geometry.Vect3{at(0), at(8)}, rail)

	cost, pairs := align(
		[]geometry.Vect3{{X: 0}, {X: 4}, {X: 8}},
		[]geometry.Vect3{{X: 0, Z: 1}, {X: 8, Z: 1}},
	)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 1}}, pairs)
	assert.InDelta(t, 2+math.Sqrt(17), cost, 1e-9)
}

// arcCorridor is the floor loop of a quarter ring: the inner arc at radius
// 10 from angle 0 to 90 degrees, then the outer arc at radius 12 back.
func arcCorridor(segments int) (*mesh.Component, []int) {
	c := mesh.NewComponent()
	var loop []int
	for k := 0; k <= segments; k++ {
		a := math.Pi / 2 * float64(k) / float64(segments)
		loop = append(loop, c.CreateVertex(10*math.Cos(a), 0, 10*math.Sin(a)))
	}
	for k := segments; k >= 0; k-- {
		a := math.Pi / 2 * float64(k) / float64(segments)
		loop = append(loop, c.CreateVertex(12*math.Cos(a), 0, 12*math.Sin(a)))
	}
	return c, loop
}

func TestSplitLinkedListArc(t *testing.T) {
	const segments = 220
	c, loop := arcCorridor(segments)

	start := time.Now()
	railA, railB, err := SplitLinkedList(c, loop)
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Less(t, elapsed, 10*time.Second)

	radius := func(vi int) float64 {
		p, err := c.Coordinate(vi)
		require.NoError(t, err)
		return math.Hypot(p.X, p.Z)
	}
	require.Len(t, railA, segments+1)
	require.Len(t, railB, segments+1)
	for _, vi := range railA {
		assert.InDelta(t, 10, radius(vi), 1e-9)
	}
	for _, vi := range railB {
		assert.InDelta(t, 12, radius(vi), 1e-9)
	}
}

func TestSplitCostsMatchAlignment(t *testing.T) {
	arc, arcLoop := arcCorridor(6)
	zigzag := mesh.NewComponent()
	var zigzagLoop []int
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0.5}, {4, 0}, {4, 1}, {3, 1.5}, {2, 1}, {1, 1}, {0, 1}} {
		zigzagLoop = append(zigzagLoop, zigzag.CreateVertex(p[0], 0, p[1]))
	}

	tests := []struct {
		name string
		c    *mesh.Component
		loop []int
	}{
		{"arc", arc, arcLoop},
		{"zigzag with collinear points", zigzag, zigzagLoop},
		{"corridor with excess floor point", first(t, meshtest.RightCorridorExcessFloorPoint()), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := tt.loop
			if loop == nil {
				floor, err := GetFloorFaces(tt.c)
				require.NoError(t, err)
				loop, err = GetShellVertices(tt.c, floor)
				require.NoError(t, err)
			}
			vertices := tt.c.Vertices()
			at := func(vi int) geometry.Vect3 { return vertices[vi].Coordinate }
			points := make([]geometry.Vect3, len(loop))
			for k, vi := range loop {
				points[k] = at(vi)
			}

			n := len(loop)
			for i := 0; i+2 < n; i++ {
				costs := splitCosts(points, i)
				for j := i + 2; j < n; j++ {
					var railA, railB []int
					for k := i; ; k = (k - 1 + n) % n {
						railA = append(railA, loop[k])
						if k == (j+1)%n {
							break
						}
					}
					railB = append(railB, loop[i+1:j+1]...)
					want, _ := align(simplify(railA, at), simplify(railB, at))
					assert.InDelta(t, want, costs[j-i], 1e-9, "split (%d, %d)", i, j)
				}
			}
		})
	}
}
