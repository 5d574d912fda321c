package nodegraph

import "errors"

var (
	// ErrNegativeIndex is returned for negative indices and for index fields
	// that were never set.
	ErrNegativeIndex = errors.New("nodegraph: negative index")
	// ErrNullNode is returned when a node reference does not resolve.
	ErrNullNode = errors.New("nodegraph: no such node")
	// ErrNullEdge is returned when an edge reference does not resolve.
	ErrNullEdge = errors.New("nodegraph: no such edge")
	// ErrInvalidWidth is returned for negative or NaN edge widths.
	ErrInvalidWidth = errors.New("nodegraph: invalid width")
	// ErrSelfLink is returned when an edge would join a node to itself.
	ErrSelfLink = errors.New("nodegraph: node linked to itself")
	// ErrInconsistent is returned by Restore when nodes and edges disagree.
	ErrInconsistent = errors.New("nodegraph: inconsistent graph")
)
