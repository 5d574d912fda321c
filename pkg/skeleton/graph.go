package skeleton

import (
	"fmt"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
)

func nonZero(c cell) int {
	n := 0
	for _, v := range [3]int{c.x, c.y, c.z} {
		if v != 0 {
			n++
		}
	}
	return n
}

func diff(a, b cell) cell {
	return cell{a.x - b.x, a.y - b.y, a.z - b.z}
}

func adjacent(a, b cell) bool {
	d := diff(a, b)
	return a != b && d.x >= -1 && d.x <= 1 && d.y >= -1 && d.y <= 1 && d.z >= -1 && d.z <= 1
}

// NodeGraph turns the skeleton into a graph. Every skeleton voxel becomes a
// node at its world coordinate and 26-adjacent voxels are linked, except
// where a third voxel offers a path of two straighter steps. Edge width is
// derived from the smaller distance shell of its endpoints. Chains of
// degree two nodes are then contracted so only their ends, junctions and
// every KeepEvery-th node remain.
func (s *Skeleton) NodeGraph() (*nodegraph.NodeGraph, error) {
	g := s.Grid
	var voxels []cell
	index := map[cell]int{}
	for x := range g.XBound {
		for y := range g.YBound {
			for z := range g.ZBound {
				if g.Cells[x][y][z] {
					index[cell{x, y, z}] = len(voxels)
					voxels = append(voxels, cell{x, y, z})
				}
			}
		}
	}

	graph := nodegraph.New()
	coords := make([]geometry.Vect3, len(voxels))
	for i, v := range voxels {
		coords[i] = g.WorldCoordinate(v.x, v.y, v.z)
		if _, err := graph.AddNode(nodegraph.NewNode(coords[i])); err != nil {
			return nil, err
		}
	}

	adj := make([][]int, len(voxels))
	for i, p := range voxels {
		for _, o := range neighbours26 {
			q := cell{p.x + o.x, p.y + o.y, p.z + o.z}
			j, ok := index[q]
			if !ok || j < i || s.shortcut(p, q, index) {
				continue
			}
			width := float64(2*min(s.distance(p), s.distance(q))-1) * g.VoxelSize
			if _, err := graph.LinkNodes(nodegraph.ByIndex(i), nodegraph.ByIndex(j), max(width, 0)); err != nil {
				return nil, fmt.Errorf("linking voxels %v and %v: %w", p, q, err)
			}
			adj[i] = append(adj[i], j)
			adj[j] = append(adj[j], i)
		}
	}

	keep := s.KeepEvery
	if keep == 0 {
		keep = DefaultKeepEvery
	}
	for _, chain := range chains(adj) {
		last := chain[0]
		for t, c := range chain[1:] {
			if keep <= 1 || (t+1)%keep == 0 {
				last = c
				continue
			}
			if _, err := graph.MoveNode(nodegraph.ByCoordinate(coords[c]), coords[last]); err != nil {
				return nil, fmt.Errorf("contracting chain: %w", err)
			}
		}
	}

	if err := graph.ReIndex(0, 0); err != nil {
		return nil, err
	}
	return graph, nil
}

// shortcut reports whether the link p-q is bypassed by a voxel r adjacent
// to both, with both steps p-r and r-q straighter than p-q
func (s *Skeleton) shortcut(p, q cell, index map[cell]int) bool {
	direct := nonZero(diff(q, p))
	if direct == 1 {
		return false
	}
	for _, o := range neighbours26 {
		r := cell{p.x + o.x, p.y + o.y, p.z + o.z}
		if _, ok := index[r]; !ok || r == q || !adjacent(r, q) {
			continue
		}
		if nonZero(diff(r, p)) < direct && nonZero(diff(q, r)) < direct {
			return true
		}
	}
	return false
}

func (s *Skeleton) distance(c cell) int {
	if c.x < len(s.Distance) && c.y < len(s.Distance[c.x]) && c.z < len(s.Distance[c.x][c.y]) {
		if d := s.Distance[c.x][c.y][c.z]; d > 0 {
			return d
		}
	}
	return 1
}

// chains splits the graph into walks. Each walk starts at a node whose
// degree is not two, or at the first node of a pure cycle, and lists the
// nodes it passes through. The end node is not part of a walk; the start
// node is its first element.
func chains(adj [][]int) [][]int {
	type key struct{ a, b int }
	visited := map[key]bool{}
	mark := func(a, b int) {
		visited[key{min(a, b), max(a, b)}] = true
	}
	seen := func(a, b int) bool {
		return visited[key{min(a, b), max(a, b)}]
	}

	var out [][]int
	walk := func(start, next int) {
		mark(start, next)
		chain := []int{start}
		prev, cur := start, next
		for cur != start && len(adj[cur]) == 2 {
			chain = append(chain, cur)
			n := adj[cur][0]
			if n == prev {
				n = adj[cur][1]
			}
			mark(cur, n)
			prev, cur = cur, n
		}
		out = append(out, chain)
	}

	for i, ns := range adj {
		if len(ns) == 2 {
			continue
		}
		for _, n := range ns {
			if !seen(i, n) {
				walk(i, n)
			}
		}
	}
	for i, ns := range adj {
		if len(ns) == 2 && !seen(i, ns[0]) {
			walk(i, ns[0])
		}
	}
	return out
}
