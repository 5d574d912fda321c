package nodegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

func TestNodeEdgePair(t *testing.T) {
	p, err := NewNodeEdgePair(1, 2)
	require.NoError(t, err)

	n, err := p.NodeIndex()
	require.NoError(t, err)
	e, err := p.EdgeIndex()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, e)
}

func TestNodeEdgePairUnset(t *testing.T) {
	var p NodeEdgePair
	_, err := p.NodeIndex()
	assert.ErrorIs(t, err, ErrNegativeIndex)
	_, err = p.EdgeIndex()
	assert.ErrorIs(t, err, ErrNegativeIndex)
	assert.Equal(t, "(unset)", p.String())
}

func TestNodeEdgePairNegative(t *testing.T) {
	_, err := NewNodeEdgePair(-1, 2)
	assert.ErrorIs(t, err, ErrNegativeIndex)
	_, err = NewNodeEdgePair(1, -2)
	assert.ErrorIs(t, err, ErrNegativeIndex)
}

func TestNewNode(t *testing.T) {
	n := NewNode(geometry.Zero)
	assert.Equal(t, geometry.Zero, n.Coordinate)
	assert.Equal(t, -1, n.Index)
	assert.False(t, n.IsIndexed())
	assert.Empty(t, n.Neighbors)

	xyz := NewNodeXYZ(1, 2, 3)
	assert.True(t, xyz.Coordinate.Equal(geometry.NewVect3(1, 2, 3)))
	assert.Zero(t, xyz.Degree())
}

func TestNodeDeepCopy(t *testing.T) {
	node := NewNodeXYZ(1, 2, 3)
	node.Index = 1
	pair, err := NewNodeEdgePair(12, 12)
	require.NoError(t, err)
	node.Neighbors = append(node.Neighbors, pair)

	indexDiff := node.DeepCopy()
	coordinateDiff := node.DeepCopy()
	neighborDiff := node.DeepCopy()
	require.True(t, indexDiff.Equal(node))

	indexDiff.Index = 712341
	coordinateDiff.Coordinate.X = 12215
	neighborDiff.Neighbors[0].edge = 125126

	assert.False(t, indexDiff.Equal(node))
	assert.False(t, coordinateDiff.Equal(node))
	assert.False(t, neighborDiff.Equal(node))
	assert.Equal(t, 12, node.Neighbors[0].edge)
}

func TestNodeEqualIgnoresNeighborOrder(t *testing.T) {
	a := NewNodeXYZ(0, 0, 0)
	a.Neighbors = []NodeEdgePair{{node: 1, edge: 0, set: true}, {node: 2, edge: 1, set: true}}
	b := a.DeepCopy()
	b.Neighbors[0], b.Neighbors[1] = b.Neighbors[1], b.Neighbors[0]
	assert.True(t, a.Equal(b))
	assert.Equal(t, []int{1, 2}, a.NeighborIndices())
}

func TestNewEdge(t *testing.T) {
	e, err := NewEdge(1, 2)
	require.NoError(t, err)
	assert.Equal(t, -1, e.Index)

	n1, n2, err := e.Endpoints()
	require.NoError(t, err)
	assert.Equal(t, 1, n1)
	assert.Equal(t, 2, n2)
	assert.True(t, e.Connects(2, 1))
	assert.True(t, e.Touches(2))
	assert.False(t, e.Touches(3))
}

func TestEdgeUnset(t *testing.T) {
	var e Edge
	_, err := e.NodeIndex1()
	assert.ErrorIs(t, err, ErrNegativeIndex)
	_, err = e.NodeIndex2()
	assert.ErrorIs(t, err, ErrNegativeIndex)
	assert.False(t, e.Connects(0, 0))
}

func TestEdgeNegative(t *testing.T) {
	_, err := NewEdge(-1, 2)
	assert.ErrorIs(t, err, ErrNegativeIndex)
	_, err = NewEdge(1, -2)
	assert.ErrorIs(t, err, ErrNegativeIndex)
}

func TestEdgeDeepCopy(t *testing.T) {
	e, err := NewEdge(1, 2)
	require.NoError(t, err)
	cp := e.DeepCopy()
	e.node1 = 7
	assert.False(t, e.Equal(cp))

	reversed, err := NewEdge(2, 1)
	require.NoError(t, err)
	assert.True(t, cp.Equal(reversed))
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "node #4", ByIndex(4).String())
	assert.Equal(t, "node at (1, 2, 3.5)", ByCoordinate(geometry.NewVect3(1, 2, 3.5)).String())
	assert.Equal(t, ByCoordinate(geometry.One), ByNode(NewNode(geometry.One)))
}
