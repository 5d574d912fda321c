package nodegraph

import (
	"fmt"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// NodeRecord is the flat form of a node used when a graph is loaded from
// storage. Neighbours are derived from the edges.
type NodeRecord struct {
	Index      int
	Coordinate geometry.Vect3
}

// EdgeRecord is the flat form of an edge
type EdgeRecord struct {
	Index        int
	Node1, Node2 int
	Width        float64
}

// Restore rebuilds a graph from records keeping their indices. Duplicate
// indices, coincident coordinates, dangling endpoints, self loops, parallel
// edges and invalid widths are rejected with ErrInconsistent.
func Restore(nodes []NodeRecord, edges []EdgeRecord) (*NodeGraph, error) {
	g := New()
	for _, r := range nodes {
		if r.Index < 0 {
			return nil, fmt.Errorf("node %d: %w", r.Index, ErrNegativeIndex)
		}
		if g.node(r.Index) != nil {
			return nil, fmt.Errorf("duplicate node %d: %w", r.Index, ErrInconsistent)
		}
		if other := g.lookup(r.Coordinate); other != nil {
			return nil, fmt.Errorf("nodes %d and %d share a coordinate: %w", other.Index, r.Index, ErrInconsistent)
		}
		g.nextNode = r.Index
		g.insertNode(r.Coordinate)
	}

	for _, r := range edges {
		if r.Index < 0 {
			return nil, fmt.Errorf("edge %d: %w", r.Index, ErrNegativeIndex)
		}
		if g.edge(r.Index) != nil {
			return nil, fmt.Errorf("duplicate edge %d: %w", r.Index, ErrInconsistent)
		}
		if validWidth(r.Width) != nil {
			return nil, fmt.Errorf("edge %d width %v: %w", r.Index, r.Width, ErrInconsistent)
		}
		a, b := g.node(r.Node1), g.node(r.Node2)
		if a == nil || b == nil {
			return nil, fmt.Errorf("edge %d references missing node: %w", r.Index, ErrInconsistent)
		}
		if a == b {
			return nil, fmt.Errorf("edge %d is a self loop: %w", r.Index, ErrInconsistent)
		}
		if _, linked := a.neighborEdge(b.Index); linked {
			return nil, fmt.Errorf("edge %d duplicates an edge: %w", r.Index, ErrInconsistent)
		}
		g.nextEdge = r.Index
		g.link(a, b, r.Width)
	}

	g.nextNode, g.nextEdge = 0, 0
	for _, n := range g.nodes {
		g.nextNode = max(g.nextNode, n.Index+1)
	}
	for _, e := range g.edges {
		g.nextEdge = max(g.nextEdge, e.Index+1)
	}
	return g, nil
}

// Records flattens the graph into the form accepted by Restore
func (g *NodeGraph) Records() ([]NodeRecord, []EdgeRecord) {
	nodes := make([]NodeRecord, 0, g.NodeCount())
	for _, n := range g.nodes {
		if n != nil {
			nodes = append(nodes, NodeRecord{Index: n.Index, Coordinate: n.Coordinate})
		}
	}
	edges := make([]EdgeRecord, 0, g.EdgeCount())
	for _, e := range g.edges {
		if e != nil {
			edges = append(edges, EdgeRecord{Index: e.Index, Node1: e.node1, Node2: e.node2, Width: e.Width})
		}
	}
	return nodes, edges
}
