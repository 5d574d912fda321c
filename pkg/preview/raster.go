package preview

import (
	"image"
	"image/color"
	"math"
)

type screenPoint struct{ x, y, z float64 }

// fillTriangle fills a projected triangle with a scanline sweep. A pixel is
// only written when it is closer than the depth already stored for it.
func fillTriangle(img *image.RGBA, zbuffer []float64, p [3]screenPoint, col color.RGBA) {
	// sort by y
	if p[0].y > p[1].y {
		p[0], p[1] = p[1], p[0]
	}
	if p[1].y > p[2].y {
		p[1], p[2] = p[2], p[1]
	}
	if p[0].y > p[1].y {
		p[0], p[1] = p[1], p[0]
	}

	bounds := img.Bounds()
	width := bounds.Max.X
	edges := [3][2]screenPoint{{p[0], p[1]}, {p[1], p[2]}, {p[0], p[2]}}

	for y := int(math.Max(0, math.Ceil(p[0].y))); y <= int(math.Min(float64(bounds.Max.Y-1), p[2].y)); y++ {
		fy := float64(y)

		var hits [2]screenPoint
		n := 0
		for i, e := range edges {
			a, b := e[0], e[1]
			// the upper edge is half open so the middle vertex is hit once
			if a.y == b.y || fy < a.y || fy > b.y || (i == 0 && fy == b.y) || n == 2 {
				continue
			}
			t := (fy - a.y) / (b.y - a.y)
			hits[n] = screenPoint{x: a.x + t*(b.x-a.x), z: a.z + t*(b.z-a.z)}
			n++
		}
		if n < 2 {
			continue
		}
		start, end := hits[0], hits[1]
		if start.x > end.x {
			start, end = end, start
		}

		for x := int(math.Max(0, math.Ceil(start.x))); x <= int(math.Min(float64(width-1), end.x)); x++ {
			t := 0.0
			if end.x != start.x {
				t = (float64(x) - start.x) / (end.x - start.x)
			}
			z := start.z + t*(end.z-start.z)

			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line with Bresenham's algorithm, clipped to the image
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if image.Pt(x1, y1).In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawDot fills a square of the given radius around (x, y)
func drawDot(img *image.RGBA, x, y, radius int, col color.RGBA) {
	bounds := img.Bounds()
	for py := y - radius; py <= y+radius; py++ {
		for px := x - radius; px <= x+radius; px++ {
			if image.Pt(px, py).In(bounds) {
				img.SetRGBA(px, py, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
