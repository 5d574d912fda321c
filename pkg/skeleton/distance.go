package skeleton

import "github.com/philipparndt/meshgraph/pkg/voxel"

type cell struct{ x, y, z int }

// neighbours26 lists the offsets of the 26-neighbourhood in x, y, z order
var neighbours26 = func() []cell {
	out := make([]cell, 0, 26)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x != 0 || y != 0 || z != 0 {
					out = append(out, cell{x, y, z})
				}
			}
		}
	}
	return out
}()

// DistanceGrid annotates every solid voxel with its shell number: voxels
// touching empty space (26-neighbourhood) get 1, the solid voxels touching
// those get 2, and so on inwards. Empty voxels are 0.
func DistanceGrid(g *voxel.Grid) [][][]int {
	dist := make([][][]int, g.XBound)
	for x := range dist {
		dist[x] = make([][]int, g.YBound)
		for y := range dist[x] {
			dist[x][y] = make([]int, g.ZBound)
		}
	}

	var shell []cell
	for x := range g.XBound {
		for y := range g.YBound {
			for z := range g.ZBound {
				if !g.Cells[x][y][z] {
					continue
				}
				for _, o := range neighbours26 {
					if !g.At(x+o.x, y+o.y, z+o.z) {
						dist[x][y][z] = 1
						shell = append(shell, cell{x, y, z})
						break
					}
				}
			}
		}
	}

	for d := 2; len(shell) > 0; d++ {
		var next []cell
		for _, c := range shell {
			for _, o := range neighbours26 {
				n := cell{c.x + o.x, c.y + o.y, c.z + o.z}
				if g.At(n.x, n.y, n.z) && dist[n.x][n.y][n.z] == 0 {
					dist[n.x][n.y][n.z] = d
					next = append(next, n)
				}
			}
		}
		shell = next
	}
	return dist
}
