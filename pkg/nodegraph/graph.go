// Package nodegraph holds the centerline graph produced from a mesh: nodes
// at centerline points and edges weighted with the local corridor width.
//
// Coordinates identify nodes. The graph never holds two nodes at equal
// coordinates (see geometry.Epsilon); adding or moving a node onto an
// occupied coordinate reuses or merges with the node found there.
//
// All accessors return copies. Nothing obtained from a NodeGraph aliases its
// internal state.
package nodegraph

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// NodeGraph stores nodes and edges in insertion order. Indices are assigned
// from counters and stay stable until ReIndex is called.
type NodeGraph struct {
	nodes        []*Node
	edges        []*Edge
	nodePos      map[int]int
	edgePos      map[int]int
	removedNodes int
	removedEdges int
	coords       *geometry.PointIndex
	nextNode     int
	nextEdge     int
}

// New creates an empty graph
func New() *NodeGraph {
	return &NodeGraph{
		nodePos: make(map[int]int),
		edgePos: make(map[int]int),
		coords:  geometry.NewPointIndex(),
	}
}

// NodeCount returns the number of nodes
func (g *NodeGraph) NodeCount() int {
	return len(g.nodes) - g.removedNodes
}

// EdgeCount returns the number of edges
func (g *NodeGraph) EdgeCount() int {
	return len(g.edges) - g.removedEdges
}

// Nodes returns copies of all nodes in insertion order
func (g *NodeGraph) Nodes() []Node {
	out := make([]Node, 0, g.NodeCount())
	for _, n := range g.nodes {
		if n != nil {
			out = append(out, n.DeepCopy())
		}
	}
	return out
}

// Edges returns copies of all edges in insertion order
func (g *NodeGraph) Edges() []Edge {
	out := make([]Edge, 0, g.EdgeCount())
	for _, e := range g.edges {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

// AddNode inserts a copy of n and links it to every neighbour with a zero
// width edge. See AddNodeWithWidths.
func (g *NodeGraph) AddNode(n Node, neighbors ...Ref) (Node, error) {
	withWidths := make([]Neighbor, len(neighbors))
	for i, ref := range neighbors {
		withWidths[i] = Neighbor{Ref: ref}
	}
	return g.AddNodeWithWidths(n, withWidths...)
}

// AddNodeWithWidths inserts a copy of n unless a node already exists at its
// coordinate, then links the stored node to every neighbour. Neighbours that
// are already linked keep their edge, references to the node itself are
// skipped. If any neighbour does not resolve nothing is changed and
// ErrNullNode is returned. The stored node is returned.
func (g *NodeGraph) AddNodeWithWidths(n Node, neighbors ...Neighbor) (Node, error) {
	targets := make([]*Node, 0, len(neighbors))
	for _, nb := range neighbors {
		if err := validWidth(nb.Width); err != nil {
			return Node{}, err
		}
		target, err := g.resolve(nb.Ref)
		if err != nil {
			if nb.Ref.kind == refCoordinate && nb.Ref.coordinate.Equal(n.Coordinate) {
				targets = append(targets, nil)
				continue
			}
			return Node{}, err
		}
		targets = append(targets, target)
	}

	stored := g.lookup(n.Coordinate)
	if stored == nil {
		stored = g.insertNode(n.Coordinate)
	}
	for i, target := range targets {
		if target == nil || target == stored {
			continue
		}
		if _, linked := stored.neighborEdge(target.Index); linked {
			continue
		}
		g.link(stored, target, neighbors[i].Width)
	}
	return stored.DeepCopy(), nil
}

// LinkNodes creates an edge from a to b. If the nodes are already linked the
// existing edge is returned unchanged.
func (g *NodeGraph) LinkNodes(a, b Ref, width float64) (Edge, error) {
	if err := validWidth(width); err != nil {
		return Edge{}, err
	}
	na, nb, err := g.resolvePair(a, b)
	if err != nil {
		return Edge{}, err
	}
	if na == nb {
		return Edge{}, fmt.Errorf("%v: %w", a, ErrSelfLink)
	}
	if index, linked := na.neighborEdge(nb.Index); linked {
		return *g.edge(index), nil
	}
	return *g.link(na, nb, width), nil
}

// RemoveNode deletes the node and every edge touching it
func (g *NodeGraph) RemoveNode(ref Ref) error {
	n, err := g.resolve(ref)
	if err != nil {
		return err
	}
	for _, p := range append([]NodeEdgePair(nil), n.Neighbors...) {
		g.unlink(g.edge(p.edge))
	}
	g.dropNode(n)
	g.maybeCompact()
	return nil
}

// RemoveEdge deletes the edge with the given index
func (g *NodeGraph) RemoveEdge(index int) error {
	e := g.edge(index)
	if e == nil {
		return fmt.Errorf("edge #%d: %w", index, ErrNullEdge)
	}
	g.unlink(e)
	g.maybeCompact()
	return nil
}

// RemoveEdgeBetween deletes the edge joining a and b, in either order
func (g *NodeGraph) RemoveEdgeBetween(a, b Ref) error {
	e, err := g.edgeBetween(a, b)
	if err != nil {
		return err
	}
	g.unlink(e)
	g.maybeCompact()
	return nil
}

// SetEdgeWidth updates the width of the edge with the given index
func (g *NodeGraph) SetEdgeWidth(index int, width float64) error {
	if err := validWidth(width); err != nil {
		return err
	}
	e := g.edge(index)
	if e == nil {
		return fmt.Errorf("edge #%d: %w", index, ErrNullEdge)
	}
	e.Width = width
	return nil
}

// SetEdgeWidthBetween updates the width of the edge joining a and b
func (g *NodeGraph) SetEdgeWidthBetween(a, b Ref, width float64) error {
	if err := validWidth(width); err != nil {
		return err
	}
	e, err := g.edgeBetween(a, b)
	if err != nil {
		return err
	}
	e.Width = width
	return nil
}

// GetNode returns a copy of the referenced node. The boolean is false when
// nothing matches.
func (g *NodeGraph) GetNode(ref Ref) (Node, bool) {
	n, err := g.resolve(ref)
	if err != nil {
		return Node{}, false
	}
	return n.DeepCopy(), true
}

// GetEdge returns a copy of the edge with the given index
func (g *NodeGraph) GetEdge(index int) (Edge, bool) {
	e := g.edge(index)
	if e == nil {
		return Edge{}, false
	}
	return *e, true
}

// GetEdgeBetween returns a copy of the edge joining a and b
func (g *NodeGraph) GetEdgeBetween(a, b Ref) (Edge, bool) {
	e, err := g.edgeBetween(a, b)
	if err != nil {
		return Edge{}, false
	}
	return *e, true
}

// EdgeWidth returns the width of the edge joining a and b
func (g *NodeGraph) EdgeWidth(a, b Ref) (float64, error) {
	e, err := g.edgeBetween(a, b)
	if err != nil {
		return 0, err
	}
	return e.Width, nil
}

// AreLinked reports whether an edge joins a and b, in either order
func (g *NodeGraph) AreLinked(a, b Ref) bool {
	_, err := g.edgeBetween(a, b)
	return err == nil
}

// MoveNode relocates the referenced node to coordinate and returns it.
//
// When another node already sits at coordinate the two are merged: the
// moved node survives and takes over the edges of the node it lands on,
// which is removed. An edge that directly joined the two disappears and its
// width caps the widths of the moved node's remaining edges. Where the merge
// leaves two edges between the same pair of nodes only one survives, with
// the smaller width.
func (g *NodeGraph) MoveNode(ref Ref, coordinate geometry.Vect3) (Node, error) {
	n, err := g.resolve(ref)
	if err != nil {
		return Node{}, err
	}

	target := g.lookup(coordinate)
	if target != nil && target != n {
		g.absorb(n, target)
	}

	g.coords.Remove(n.Coordinate, n.Index)
	n.Coordinate = coordinate
	g.coords.Insert(coordinate, n.Index)
	g.maybeCompact()
	return n.DeepCopy(), nil
}

// absorb moves every edge of victim onto survivor and removes victim
func (g *NodeGraph) absorb(survivor, victim *Node) {
	if index, linked := survivor.neighborEdge(victim.Index); linked {
		collapsed := g.edge(index)
		limit := collapsed.Width
		g.unlink(collapsed)
		for _, p := range survivor.Neighbors {
			e := g.edge(p.edge)
			e.Width = math.Min(e.Width, limit)
		}
	}

	for _, p := range append([]NodeEdgePair(nil), victim.Neighbors...) {
		e := g.edge(p.edge)
		other := g.node(p.node)
		if existing, linked := survivor.neighborEdge(other.Index); linked {
			kept := g.edge(existing)
			kept.Width = math.Min(kept.Width, e.Width)
			g.unlink(e)
			continue
		}
		e.replaceEndpoint(victim.Index, survivor.Index)
		for i := range other.Neighbors {
			if other.Neighbors[i].edge == e.Index {
				other.Neighbors[i].node = survivor.Index
			}
		}
		survivor.Neighbors = append(survivor.Neighbors, NodeEdgePair{node: other.Index, edge: e.Index, set: true})
	}
	victim.Neighbors = nil
	g.dropNode(victim)
}

// ReIndex renumbers nodes and edges densely in their current order, starting
// at the given offsets, and rewrites every cross reference.
func (g *NodeGraph) ReIndex(nodeOffset, edgeOffset int) error {
	if nodeOffset < 0 || edgeOffset < 0 {
		return fmt.Errorf("offsets (%d, %d): %w", nodeOffset, edgeOffset, ErrNegativeIndex)
	}
	g.compact()

	nodeMap := make(map[int]int, len(g.nodes))
	for i, n := range g.nodes {
		nodeMap[n.Index] = nodeOffset + i
	}
	edgeMap := make(map[int]int, len(g.edges))
	for i, e := range g.edges {
		edgeMap[e.Index] = edgeOffset + i
	}

	g.coords = geometry.NewPointIndex()
	g.nodePos = make(map[int]int, len(g.nodes))
	for i, n := range g.nodes {
		n.Index = nodeMap[n.Index]
		for j := range n.Neighbors {
			n.Neighbors[j].node = nodeMap[n.Neighbors[j].node]
			n.Neighbors[j].edge = edgeMap[n.Neighbors[j].edge]
		}
		g.nodePos[n.Index] = i
		g.coords.Insert(n.Coordinate, n.Index)
	}
	g.edgePos = make(map[int]int, len(g.edges))
	for i, e := range g.edges {
		e.Index = edgeMap[e.Index]
		e.node1 = nodeMap[e.node1]
		e.node2 = nodeMap[e.node2]
		g.edgePos[e.Index] = i
	}

	g.nextNode = nodeOffset + len(g.nodes)
	g.nextEdge = edgeOffset + len(g.edges)
	return nil
}

// DeepCopy returns a graph sharing no memory with g
func (g *NodeGraph) DeepCopy() *NodeGraph {
	out := New()
	for _, n := range g.nodes {
		if n == nil {
			continue
		}
		cp := n.DeepCopy()
		out.nodePos[cp.Index] = len(out.nodes)
		out.nodes = append(out.nodes, &cp)
		out.coords.Insert(cp.Coordinate, cp.Index)
	}
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		cp := *e
		out.edgePos[cp.Index] = len(out.edges)
		out.edges = append(out.edges, &cp)
	}
	out.nextNode = g.nextNode
	out.nextEdge = g.nextEdge
	return out
}

// Equal reports whether both graphs hold the same nodes and edges,
// regardless of their order.
func (g *NodeGraph) Equal(other *NodeGraph) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil {
		return false
	}
	if g.NodeCount() != other.NodeCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	for _, n := range g.nodes {
		if n == nil {
			continue
		}
		o := other.node(n.Index)
		if o == nil || !n.Equal(*o) {
			return false
		}
	}
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		o := other.edge(e.Index)
		if o == nil || !e.Equal(*o) {
			return false
		}
	}
	return true
}

// Merge adds the nodes and edges of other. Nodes at coordinates already
// present are reused; an edge between nodes that are already linked lowers
// the existing width to the smaller of the two. Self loops created by
// coincident endpoints are dropped.
func (g *NodeGraph) Merge(other *NodeGraph) {
	mapping := make(map[int]*Node, other.NodeCount())
	for _, n := range other.nodes {
		if n == nil {
			continue
		}
		target := g.lookup(n.Coordinate)
		if target == nil {
			target = g.insertNode(n.Coordinate)
		}
		mapping[n.Index] = target
	}
	for _, e := range other.edges {
		if e == nil {
			continue
		}
		a, b := mapping[e.node1], mapping[e.node2]
		if a == b {
			continue
		}
		if index, linked := a.neighborEdge(b.Index); linked {
			kept := g.edge(index)
			kept.Width = math.Min(kept.Width, e.Width)
			continue
		}
		g.link(a, b, e.Width)
	}
}

func (g *NodeGraph) node(index int) *Node {
	pos, ok := g.nodePos[index]
	if !ok {
		return nil
	}
	return g.nodes[pos]
}

func (g *NodeGraph) edge(index int) *Edge {
	pos, ok := g.edgePos[index]
	if !ok {
		return nil
	}
	return g.edges[pos]
}

func (g *NodeGraph) lookup(coordinate geometry.Vect3) *Node {
	index, ok := g.coords.Find(coordinate)
	if !ok {
		return nil
	}
	return g.node(index)
}

func (g *NodeGraph) resolve(ref Ref) (*Node, error) {
	var n *Node
	switch ref.kind {
	case refIndex:
		if ref.index < 0 {
			return nil, fmt.Errorf("%v: %w", ref, ErrNegativeIndex)
		}
		n = g.node(ref.index)
	default:
		n = g.lookup(ref.coordinate)
	}
	if n == nil {
		return nil, fmt.Errorf("%v: %w", ref, ErrNullNode)
	}
	return n, nil
}

func (g *NodeGraph) resolvePair(a, b Ref) (*Node, *Node, error) {
	na, err := g.resolve(a)
	if err != nil {
		return nil, nil, err
	}
	nb, err := g.resolve(b)
	if err != nil {
		return nil, nil, err
	}
	return na, nb, nil
}

func (g *NodeGraph) edgeBetween(a, b Ref) (*Edge, error) {
	na, nb, err := g.resolvePair(a, b)
	if err != nil {
		return nil, err
	}
	index, linked := na.neighborEdge(nb.Index)
	if !linked {
		return nil, fmt.Errorf("%v to %v: %w", a, b, ErrNullEdge)
	}
	return g.edge(index), nil
}

func (g *NodeGraph) insertNode(coordinate geometry.Vect3) *Node {
	n := &Node{Coordinate: coordinate, Index: g.nextNode}
	g.nextNode++
	g.nodePos[n.Index] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.coords.Insert(coordinate, n.Index)
	return n
}

func (g *NodeGraph) link(a, b *Node, width float64) *Edge {
	e := &Edge{node1: a.Index, node2: b.Index, set: true, Index: g.nextEdge, Width: width}
	g.nextEdge++
	g.edgePos[e.Index] = len(g.edges)
	g.edges = append(g.edges, e)
	a.Neighbors = append(a.Neighbors, NodeEdgePair{node: b.Index, edge: e.Index, set: true})
	b.Neighbors = append(b.Neighbors, NodeEdgePair{node: a.Index, edge: e.Index, set: true})
	return e
}

func (g *NodeGraph) unlink(e *Edge) {
	if n := g.node(e.node1); n != nil {
		n.removeNeighborEdge(e.Index)
	}
	if n := g.node(e.node2); n != nil {
		n.removeNeighborEdge(e.Index)
	}
	g.edges[g.edgePos[e.Index]] = nil
	delete(g.edgePos, e.Index)
	g.removedEdges++
}

func (g *NodeGraph) dropNode(n *Node) {
	g.coords.Remove(n.Coordinate, n.Index)
	g.nodes[g.nodePos[n.Index]] = nil
	delete(g.nodePos, n.Index)
	g.removedNodes++
}

func (g *NodeGraph) maybeCompact() {
	if g.removedNodes*2 > len(g.nodes) || g.removedEdges*2 > len(g.edges) {
		g.compact()
	}
}

// compact drops the holes left by removals
func (g *NodeGraph) compact() {
	if g.removedNodes > 0 {
		nodes := make([]*Node, 0, g.NodeCount())
		for _, n := range g.nodes {
			if n != nil {
				g.nodePos[n.Index] = len(nodes)
				nodes = append(nodes, n)
			}
		}
		g.nodes = nodes
		g.removedNodes = 0
	}
	if g.removedEdges > 0 {
		edges := make([]*Edge, 0, g.EdgeCount())
		for _, e := range g.edges {
			if e != nil {
				g.edgePos[e.Index] = len(edges)
				edges = append(edges, e)
			}
		}
		g.edges = edges
		g.removedEdges = 0
	}
}
