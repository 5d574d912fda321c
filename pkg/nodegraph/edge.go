package nodegraph

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// Edge joins two nodes. Index is -1 until the edge is stored in a graph;
// the endpoints of the zero value are unset and their accessors fail.
type Edge struct {
	node1, node2 int
	set          bool
	Index        int
	Width        float64
}

// NewEdge creates an unindexed edge between two node indices
func NewEdge(nodeIndex1, nodeIndex2 int) (Edge, error) {
	if nodeIndex1 < 0 || nodeIndex2 < 0 {
		return Edge{}, fmt.Errorf("edge (%d, %d): %w", nodeIndex1, nodeIndex2, ErrNegativeIndex)
	}
	return Edge{node1: nodeIndex1, node2: nodeIndex2, set: true, Index: -1}, nil
}

// NodeIndex1 returns the first endpoint
func (e Edge) NodeIndex1() (int, error) {
	if !e.set {
		return -1, fmt.Errorf("unset edge: %w", ErrNegativeIndex)
	}
	return e.node1, nil
}

// NodeIndex2 returns the second endpoint
func (e Edge) NodeIndex2() (int, error) {
	if !e.set {
		return -1, fmt.Errorf("unset edge: %w", ErrNegativeIndex)
	}
	return e.node2, nil
}

// Endpoints returns both endpoints
func (e Edge) Endpoints() (int, int, error) {
	if !e.set {
		return -1, -1, fmt.Errorf("unset edge: %w", ErrNegativeIndex)
	}
	return e.node1, e.node2, nil
}

// Connects reports whether the edge joins a and b in either order
func (e Edge) Connects(a, b int) bool {
	return e.set && ((e.node1 == a && e.node2 == b) || (e.node1 == b && e.node2 == a))
}

// Touches reports whether node is one of the endpoints
func (e Edge) Touches(node int) bool {
	return e.set && (e.node1 == node || e.node2 == node)
}

// DeepCopy returns a copy of the edge
func (e Edge) DeepCopy() Edge {
	return e
}

// Equal compares index, width and the endpoints as an unordered pair
func (e Edge) Equal(other Edge) bool {
	if e.set != other.set || e.Index != other.Index || !geometry.NearlyEqual(e.Width, other.Width) {
		return false
	}
	return !e.set || e.Connects(other.node1, other.node2)
}

func (e Edge) other(node int) int {
	if e.node1 == node {
		return e.node2
	}
	return e.node1
}

func (e *Edge) replaceEndpoint(from, to int) {
	if e.node1 == from {
		e.node1 = to
	}
	if e.node2 == from {
		e.node2 = to
	}
}

func validWidth(w float64) error {
	if w < 0 || math.IsNaN(w) {
		return fmt.Errorf("width %v: %w", w, ErrInvalidWidth)
	}
	return nil
}
