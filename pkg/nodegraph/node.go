package nodegraph

import (
	"fmt"
	"slices"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// NodeEdgePair records one neighbour of a node together with the edge that
// connects them. The zero value is unset and its accessors fail.
type NodeEdgePair struct {
	node, edge int
	set        bool
}

// NewNodeEdgePair creates a pair from non-negative indices
func NewNodeEdgePair(nodeIndex, edgeIndex int) (NodeEdgePair, error) {
	if nodeIndex < 0 || edgeIndex < 0 {
		return NodeEdgePair{}, fmt.Errorf("pair (%d, %d): %w", nodeIndex, edgeIndex, ErrNegativeIndex)
	}
	return NodeEdgePair{node: nodeIndex, edge: edgeIndex, set: true}, nil
}

// NodeIndex returns the neighbour's node index
func (p NodeEdgePair) NodeIndex() (int, error) {
	if !p.set {
		return -1, fmt.Errorf("unset pair: %w", ErrNegativeIndex)
	}
	return p.node, nil
}

// EdgeIndex returns the index of the connecting edge
func (p NodeEdgePair) EdgeIndex() (int, error) {
	if !p.set {
		return -1, fmt.Errorf("unset pair: %w", ErrNegativeIndex)
	}
	return p.edge, nil
}

// String implements fmt.Stringer
func (p NodeEdgePair) String() string {
	if !p.set {
		return "(unset)"
	}
	return fmt.Sprintf("(node %d, edge %d)", p.node, p.edge)
}

// Node is a graph vertex. Index is -1 until the node is stored in a graph.
type Node struct {
	Coordinate geometry.Vect3
	Index      int
	Neighbors  []NodeEdgePair
}

// NewNode creates an unindexed node at coordinate
func NewNode(coordinate geometry.Vect3) Node {
	return Node{Coordinate: coordinate, Index: -1}
}

// NewNodeXYZ creates an unindexed node at (x, y, z)
func NewNodeXYZ(x, y, z float64) Node {
	return NewNode(geometry.NewVect3(x, y, z))
}

// IsIndexed reports whether the node carries a graph index
func (n Node) IsIndexed() bool {
	return n.Index >= 0
}

// Degree returns the number of neighbours
func (n Node) Degree() int {
	return len(n.Neighbors)
}

// NeighborIndices returns the node indices of all neighbours in link order
func (n Node) NeighborIndices() []int {
	out := make([]int, 0, len(n.Neighbors))
	for _, p := range n.Neighbors {
		out = append(out, p.node)
	}
	return out
}

// DeepCopy returns a node sharing no memory with n
func (n Node) DeepCopy() Node {
	return Node{
		Coordinate: n.Coordinate,
		Index:      n.Index,
		Neighbors:  slices.Clone(n.Neighbors),
	}
}

// Equal compares index, coordinate and the neighbour lists as multisets
func (n Node) Equal(other Node) bool {
	if n.Index != other.Index || !n.Coordinate.Equal(other.Coordinate) {
		return false
	}
	if len(n.Neighbors) != len(other.Neighbors) {
		return false
	}
	counts := make(map[NodeEdgePair]int, len(n.Neighbors))
	for _, p := range n.Neighbors {
		counts[p]++
	}
	for _, p := range other.Neighbors {
		if counts[p] == 0 {
			return false
		}
		counts[p]--
	}
	return true
}

func (n *Node) removeNeighborEdge(edge int) {
	n.Neighbors = slices.DeleteFunc(n.Neighbors, func(p NodeEdgePair) bool { return p.edge == edge })
}

func (n *Node) neighborEdge(node int) (int, bool) {
	for _, p := range n.Neighbors {
		if p.node == node {
			return p.edge, true
		}
	}
	return -1, false
}
