package nodegraph

import (
	"fmt"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

type refKind int

const (
	refCoordinate refKind = iota
	refIndex
)

// Ref addresses a node of a graph by coordinate or by index
type Ref struct {
	kind       refKind
	coordinate geometry.Vect3
	index      int
}

// ByNode refers to the node at n's coordinate. The index of n is ignored
// so that unindexed nodes built by the caller can be used as references.
func ByNode(n Node) Ref {
	return ByCoordinate(n.Coordinate)
}

// ByCoordinate refers to the node at coordinate
func ByCoordinate(coordinate geometry.Vect3) Ref {
	return Ref{kind: refCoordinate, coordinate: coordinate}
}

// ByIndex refers to the node with the given graph index
func ByIndex(index int) Ref {
	return Ref{kind: refIndex, index: index}
}

// String implements fmt.Stringer
func (r Ref) String() string {
	if r.kind == refIndex {
		return fmt.Sprintf("node #%d", r.index)
	}
	return fmt.Sprintf("node at (%g, %g, %g)", r.coordinate.X, r.coordinate.Y, r.coordinate.Z)
}

// Neighbor couples a node reference with the width of the edge to create
type Neighbor struct {
	Ref   Ref
	Width float64
}

// WithWidth builds a Neighbor
func WithWidth(ref Ref, width float64) Neighbor {
	return Neighbor{Ref: ref, Width: width}
}
