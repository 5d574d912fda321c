package generator

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/mesh/meshtest"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
	"github.com/philipparndt/meshgraph/pkg/voxel"
)

func TestThreeHeightCorridorsFormOneChain(t *testing.T) {
	g, err := GenerateStructureNodeGraph(context.Background(), meshtest.ThreeHeightCorridors(), Options{Strategy: StrategyMesh, Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())
	indices := map[int]bool{}
	for _, x := range []float64{0, 8, 16, 24} {
		n, ok := g.GetNode(nodegraph.ByCoordinate(geometry.NewVect3(x, 0, 0.5)))
		require.True(t, ok, "missing node at x=%v", x)
		indices[n.Index] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true, 3: true}, indices)
	for _, pair := range [][2]float64{{0, 8}, {8, 16}, {16, 24}} {
		w, err := g.EdgeWidth(
			nodegraph.ByCoordinate(geometry.NewVect3(pair[0], 0, 0.5)),
			nodegraph.ByCoordinate(geometry.NewVect3(pair[1], 0, 0.5)))
		require.NoError(t, err)
		assert.InDelta(t, 1, w, geometry.Epsilon)
	}
}

func TestVoxelStrategyStaysInsideComponent(t *testing.T) {
	s := meshtest.RightCorridor()
	g, err := GenerateStructureNodeGraph(context.Background(), s, Options{
		Strategy: StrategyVoxel,
		Voxel:    voxel.Options{Resolution: 16},
	})
	require.NoError(t, err)
	require.Positive(t, g.NodeCount())

	bb := s.BoundingBox()
	margin := bb.LongestSide() / 16
	for _, n := range g.Nodes() {
		c := n.Coordinate
		assert.True(t,
			c.X >= bb.Min.X-margin && c.X <= bb.Max.X+margin &&
				c.Y >= bb.Min.Y-margin && c.Y <= bb.Max.Y+margin &&
				c.Z >= bb.Min.Z-margin && c.Z <= bb.Max.Z+margin,
			"node %v outside %v", c, bb)
	}
	for _, e := range g.Edges() {
		assert.Positive(t, e.Width)
	}
}

func TestStructureErrors(t *testing.T) {
	_, err := GenerateStructureNodeGraph(context.Background(), meshtest.Cube(), Options{Strategy: "medial"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	s := mesh.NewStructure()
	s.AddComponent(mesh.NewComponent())
	_, err = GenerateStructureNodeGraph(context.Background(), s, Options{Strategy: StrategyMesh})
	assert.ErrorIs(t, err, ErrEmptyList)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = GenerateStructureNodeGraph(ctx, meshtest.Cube(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptyStructure(t *testing.T) {
	g, err := GenerateStructureNodeGraph(context.Background(), mesh.NewStructure(), Options{})
	require.NoError(t, err)
	assert.Zero(t, g.NodeCount())
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]Strategy{"": StrategyVoxel, "voxel": StrategyVoxel, "mesh": StrategyMesh} {
		got, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	_, err := GenerateStructureNodeGraph(context.Background(), meshtest.Cube(), Options{Strategy: StrategyMesh})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "structure graph")
	assert.Contains(t, buf.String(), "component graph")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
