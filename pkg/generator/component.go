// Package generator turns mesh components into centerline node graphs.
//
// The mesh strategy in this file reads the corridor straight off the surface:
// it finds the floor patch, walks its boundary loop, splits the loop into the
// two long rails of the corridor and places one node halfway between every
// aligned pair of rail vertices. structure.go runs either strategy over a
// whole mesh.Structure.
package generator

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
)

var (
	// ErrEmptyList is returned when a component has no vertices or faces to
	// search.
	ErrEmptyList = errors.New("generator: empty list")
	// ErrShortLoop is returned by SplitLinkedList for loops that cannot be
	// split into two rails.
	ErrShortLoop = errors.New("generator: boundary loop has fewer than four vertices")
	// ErrNoFloor is returned when no face at the lowest vertex points down.
	ErrNoFloor = errors.New("generator: no downward face at the lowest vertex")
)

// collinearSine is the largest sine of the turning angle at which a rail
// vertex still counts as lying on the line through its neighbours
const collinearSine = 1e-3

// FindLowestVertex returns the index of the vertex with the smallest height.
// Ties go to the smallest index.
func FindLowestVertex(c *mesh.Component) (int, error) {
	if c.VertexCount() == 0 {
		return -1, fmt.Errorf("lowest vertex: %w", ErrEmptyList)
	}
	best := 0
	bestHeight := math.Inf(1)
	for i, v := range c.Vertices() {
		if h := v.Coordinate.Dot(geometry.Up); h < bestHeight {
			best, bestHeight = i, h
		}
	}
	return best, nil
}

// FindStartFloorFace returns the face touching vertexIndex whose normal
// points most directly down; among equals the smallest index is chosen. The
// normal has to match the down direction within Epsilon, otherwise the
// vertex has no floor and ErrNoFloor is returned.
func FindStartFloorFace(c *mesh.Component, vertexIndex int) (int, error) {
	if c.FaceCount() == 0 {
		return -1, fmt.Errorf("start floor face: %w", ErrEmptyList)
	}
	faces, err := c.VertexFaces(vertexIndex)
	if err != nil {
		return -1, err
	}
	if len(faces) == 0 {
		return -1, fmt.Errorf("start floor face of vertex %d: %w", vertexIndex, ErrEmptyList)
	}
	slices.Sort(faces)

	best, bestDot := -1, math.Inf(-1)
	for _, fi := range faces {
		f, err := c.Face(fi)
		if err != nil {
			return -1, err
		}
		n, err := f.Normal.Normalize()
		if err != nil {
			continue
		}
		if d := n.Dot(geometry.Down); d > bestDot+geometry.Epsilon {
			best, bestDot = fi, d
		}
	}
	if best < 0 {
		return -1, fmt.Errorf("start floor face of vertex %d: %w", vertexIndex, ErrEmptyList)
	}
	if bestDot < 1-geometry.Epsilon {
		return -1, fmt.Errorf("start floor face of vertex %d: %w", vertexIndex, ErrNoFloor)
	}
	return best, nil
}

// GetFloorFaces collects the floor patch: every face reachable from the
// start floor face through shared edges whose normal points the same way.
// The result is sorted.
func GetFloorFaces(c *mesh.Component) ([]int, error) {
	lowest, err := FindLowestVertex(c)
	if err != nil {
		return nil, err
	}
	seed, err := FindStartFloorFace(c, lowest)
	if err != nil {
		return nil, err
	}
	seedFace, err := c.Face(seed)
	if err != nil {
		return nil, err
	}
	direction, err := seedFace.Normal.Normalize()
	if err != nil {
		return nil, err
	}

	visited := map[int]bool{seed: true}
	queue := []int{seed}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		neighbors, err := c.NeighborFacesByEdge(current)
		if err != nil {
			return nil, err
		}
		for _, fi := range neighbors {
			if visited[fi] {
				continue
			}
			f, err := c.Face(fi)
			if err != nil {
				return nil, err
			}
			if n, err := f.Normal.Normalize(); err == nil && n.Equal(direction) {
				visited[fi] = true
				queue = append(queue, fi)
			}
		}
	}

	floor := lo.Keys(visited)
	slices.Sort(floor)
	return floor, nil
}

type edgeKey struct{ a, b int }

func keyFor(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// GetShellVertices returns the boundary loop of the floor patch: the
// vertices on edges used by exactly one floor face. The loop starts at its
// smallest vertex index and winds so that its normal agrees with the normal
// of the floor.
func GetShellVertices(c *mesh.Component, floorFaces []int) ([]int, error) {
	if len(floorFaces) == 0 {
		return nil, fmt.Errorf("shell vertices: %w", ErrEmptyList)
	}

	uses := make(map[edgeKey]int)
	for _, fi := range floorFaces {
		v, err := c.FaceVertices(fi)
		if err != nil {
			return nil, err
		}
		for k := range 3 {
			uses[keyFor(v[k], v[(k+1)%3])]++
		}
	}

	adjacent := make(map[int][]int)
	for e, n := range uses {
		if n == 1 {
			adjacent[e.a] = append(adjacent[e.a], e.b)
			adjacent[e.b] = append(adjacent[e.b], e.a)
		}
	}
	if len(adjacent) == 0 {
		return nil, fmt.Errorf("shell vertices: floor has no boundary: %w", ErrEmptyList)
	}
	for _, ns := range adjacent {
		slices.Sort(ns)
	}

	start := lo.Min(lo.Keys(adjacent))
	loop := []int{start}
	visited := map[int]bool{start: true}
	current := start
	for {
		next := -1
		for _, n := range adjacent[current] {
			if !visited[n] {
				next = n
				break
			}
		}
		if next < 0 {
			break
		}
		loop = append(loop, next)
		visited[next] = true
		current = next
	}

	floorFace, err := c.Face(floorFaces[0])
	if err != nil {
		return nil, err
	}
	vertices := c.Vertices()
	points := lo.Map(loop, func(vi int, _ int) geometry.Vect3 { return vertices[vi].Coordinate })
	if newellNormal(points).Dot(floorFace.Normal) < 0 {
		slices.Reverse(loop[1:])
	}
	return loop, nil
}

// newellNormal returns the area weighted normal of a closed polygon
func newellNormal(points []geometry.Vect3) geometry.Vect3 {
	var n geometry.Vect3
	for i, p := range points {
		q := points[(i+1)%len(points)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// SplitLinkedList splits the boundary loop into the two rails of the
// corridor. Two loop edges that do not touch are chosen as the corridor
// ends; of all such choices the one whose rails align with the least total
// distance wins, earlier choices winning ties. Both rails start at the first
// end: the first rail walks the loop backwards from the start vertex of that
// edge, the second walks forwards from its end vertex.
//
// All choices sharing a first end are scored from one alignment matrix, so
// a loop of n vertices costs O(n³).
func SplitLinkedList(c *mesh.Component, shellVertices []int) ([]int, []int, error) {
	n := len(shellVertices)
	if n < 4 {
		return nil, nil, fmt.Errorf("split loop of %d: %w", n, ErrShortLoop)
	}
	vertices := c.Vertices()
	for _, vi := range shellVertices {
		if vi < 0 || vi >= len(vertices) {
			return nil, nil, fmt.Errorf("split loop vertex %d: %w", vi, mesh.ErrIndexOutOfRange)
		}
	}
	points := lo.Map(shellVertices, func(vi int, _ int) geometry.Vect3 { return vertices[vi].Coordinate })

	bestI, bestJ := -1, -1
	bestCost := math.Inf(1)
	for i := 0; i+2 < n; i++ {
		costs := splitCosts(points, i)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if cost := costs[j-i]; cost < bestCost-geometry.Epsilon {
				bestI, bestJ, bestCost = i, j, cost
			}
		}
	}
	if bestI < 0 {
		return nil, nil, nil
	}

	var railA, railB []int
	for k := bestI; ; k = (k - 1 + n) % n {
		railA = append(railA, shellVertices[k])
		if k == (bestJ+1)%n {
			break
		}
	}
	for k := bestI + 1; k <= bestJ; k++ {
		railB = append(railB, shellVertices[k])
	}
	return railA, railB, nil
}

// splitCosts scores every split whose first end is the loop edge from
// points[i] to points[i+1]. The result is indexed by the length of the
// second rail. Every candidate rail is a prefix of the longest rail walking
// away from that edge, and the simplified prefix of a rail is the simplified
// rail cut before its last point plus that point. The alignment of the two
// longest simplified rails therefore answers every candidate after adding
// one row and one column for the two end points.
func splitCosts(points []geometry.Vect3, i int) []float64 {
	n := len(points)
	fullA := make([]geometry.Vect3, n-2)
	for a := range fullA {
		fullA[a] = points[(i-a+n)%n]
	}
	fullB := points[i+1:]

	keptA, keptB := simplified(fullA), simplified(fullB)
	sa := lo.Map(keptA, func(k int, _ int) geometry.Vect3 { return fullA[k] })
	sb := lo.Map(keptB, func(k int, _ int) geometry.Vect3 { return fullB[k] })
	d := warp(sa, sb)

	costs := make([]float64, len(fullB)+1)
	for k := range costs {
		costs[k] = math.Inf(1)
	}
	col := make([]float64, len(sa))
	row := make([]float64, len(sb))
	for lenB := 2; lenB <= len(fullB); lenB++ {
		lenA := n - lenB
		// kept points strictly before the last point of each rail
		pa, _ := slices.BinarySearch(keptA, lenA-1)
		pb, _ := slices.BinarySearch(keptB, lenB-1)
		endA, endB := fullA[lenA-1], fullB[lenB-1]

		for x := range pa {
			dist := sa[x].Distance(endB)
			switch {
			case pb == 0 && x == 0:
				col[x] = dist
			case pb == 0:
				col[x] = dist + col[x-1]
			case x == 0:
				col[x] = dist + d[0][pb-1]
			default:
				col[x] = dist + min(d[x-1][pb-1], col[x-1], d[x][pb-1])
			}
		}
		for y := range pb {
			dist := endA.Distance(sb[y])
			switch {
			case pa == 0 && y == 0:
				row[y] = dist
			case pa == 0:
				row[y] = dist + row[y-1]
			case y == 0:
				row[y] = dist + d[pa-1][0]
			default:
				row[y] = dist + min(d[pa-1][y-1], d[pa-1][y], row[y-1])
			}
		}

		dist := endA.Distance(endB)
		switch {
		case pa == 0 && pb == 0:
			costs[lenB] = dist
		case pa == 0:
			costs[lenB] = dist + row[pb-1]
		case pb == 0:
			costs[lenB] = dist + col[pa-1]
		default:
			costs[lenB] = dist + min(d[pa-1][pb-1], col[pa-1], row[pb-1])
		}
	}
	return costs
}

// simplified returns the indices simplify keeps from points, leaving out the
// last point, which every prefix replaces by its own end
func simplified(points []geometry.Vect3) []int {
	kept := []int{0}
	for k := 1; k < len(points)-1; k++ {
		if !collinear(points[kept[len(kept)-1]], points[k], points[k+1]) {
			kept = append(kept, k)
		}
	}
	return kept
}

// simplify drops rail vertices lying on the line through their neighbours
func simplify(rail []int, at func(int) geometry.Vect3) []geometry.Vect3 {
	points := lo.Map(rail, func(vi int, _ int) geometry.Vect3 { return at(vi) })
	if len(points) < 3 {
		return points
	}
	out := []geometry.Vect3{points[0]}
	for k := 1; k < len(points)-1; k++ {
		if !collinear(out[len(out)-1], points[k], points[k+1]) {
			out = append(out, points[k])
		}
	}
	return append(out, points[len(points)-1])
}

func collinear(a, b, c geometry.Vect3) bool {
	ab, bc := b.Sub(a), c.Sub(b)
	la, lc := ab.Length(), bc.Length()
	if la <= geometry.Epsilon || lc <= geometry.Epsilon {
		return true
	}
	return ab.Cross(bc).Length() <= collinearSine*la*lc
}

// align pairs the points of two rails with a monotonic ladder alignment
// (dynamic time warping) and returns the summed pair distance with the pairs
// in rail order. Diagonal steps win ties.
func align(a, b []geometry.Vect3) (float64, [][2]int) {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1), nil
	}
	cost := warp(a, b)

	i, j := len(a)-1, len(b)-1
	pairs := [][2]int{{i, j}}
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			diag, up, left := cost[i-1][j-1], cost[i-1][j], cost[i][j-1]
			switch {
			case diag <= up && diag <= left:
				i, j = i-1, j-1
			case up <= left:
				i--
			default:
				j--
			}
		}
		pairs = append(pairs, [2]int{i, j})
	}
	slices.Reverse(pairs)
	return cost[len(a)-1][len(b)-1], pairs
}

// warp fills the accumulated cost matrix of a monotonic alignment of a and
// b: every cell holds the cheapest summed pair distance of a path from
// (0, 0) to that cell
func warp(a, b []geometry.Vect3) [][]float64 {
	cost := make([][]float64, len(a))
	for i := range cost {
		cost[i] = make([]float64, len(b))
		for j := range cost[i] {
			d := a[i].Distance(b[j])
			switch {
			case i == 0 && j == 0:
				cost[i][j] = d
			case i == 0:
				cost[i][j] = d + cost[i][j-1]
			case j == 0:
				cost[i][j] = d + cost[i-1][j]
			default:
				cost[i][j] = d + min(cost[i-1][j-1], cost[i-1][j], cost[i][j-1])
			}
		}
	}
	return cost
}

// sliceWidth is the smallest distance from an end point of one rail segment
// to the opposite rail segment
func sliceWidth(a0, a1, b0, b1 geometry.Vect3) float64 {
	return min(
		a0.Distance(a0.ClosestLinePoint(b0, b1)),
		a1.Distance(a1.ClosestLinePoint(b0, b1)),
		b0.Distance(b0.ClosestLinePoint(a0, a1)),
		b1.Distance(b1.ClosestLinePoint(a0, a1)),
	)
}

// GenerateComponentNodeGraph derives the centerline of a corridor shaped
// component from its floor. Every aligned pair of rail vertices becomes a
// node at their midpoint; consecutive nodes are linked with the local
// corridor width. A floor whose boundary has fewer than four vertices yields
// a single node at its centroid.
func GenerateComponentNodeGraph(c *mesh.Component) (*nodegraph.NodeGraph, error) {
	floor, err := GetFloorFaces(c)
	if err != nil {
		return nil, err
	}
	shell, err := GetShellVertices(c, floor)
	if err != nil {
		return nil, err
	}
	vertices := c.Vertices()
	at := func(vi int) geometry.Vect3 { return vertices[vi].Coordinate }

	g := nodegraph.New()
	if len(shell) < 4 {
		centroid := geometry.Zero
		for _, vi := range shell {
			centroid = centroid.Add(at(vi))
		}
		centroid = centroid.Mul(1 / float64(len(shell)))
		if _, err := g.AddNode(nodegraph.NewNode(centroid)); err != nil {
			return nil, err
		}
		Logger().Warn("floor boundary too short, using centroid", "vertices", len(shell))
		return g, nil
	}

	railA, railB, err := SplitLinkedList(c, shell)
	if err != nil {
		return nil, err
	}
	a, b := simplify(railA, at), simplify(railB, at)
	_, pairs := align(a, b)

	previous := -1
	for k, p := range pairs {
		mid := a[p[0]].Midpoint(b[p[1]])
		var neighbors []nodegraph.Neighbor
		if k > 0 {
			q := pairs[k-1]
			width := sliceWidth(a[q[0]], a[p[0]], b[q[1]], b[p[1]])
			neighbors = append(neighbors, nodegraph.WithWidth(nodegraph.ByIndex(previous), width))
		}
		n, err := g.AddNodeWithWidths(nodegraph.NewNode(mid), neighbors...)
		if err != nil {
			return nil, fmt.Errorf("centerline node %d: %w", k, err)
		}
		previous = n.Index
	}

	Logger().Debug("component graph",
		"floor_faces", len(floor),
		"loop", len(shell),
		"rails", [2]int{len(a), len(b)},
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	return g, nil
}
