package skeleton

// Direction is an octant direction, each component -1 or 1
type Direction [3]int

// Directions lists the eight sub-pass directions in the order Thin visits them
var Directions = [8]Direction{
	{-1, 1, -1}, {1, -1, 1}, {1, 1, -1}, {-1, -1, 1},
	{-1, 1, 1}, {1, -1, -1}, {1, 1, 1}, {-1, -1, -1},
}

var (
	orbit       []GridTemplate
	directional [8][]GridTemplate
)

func init() {
	orbit = expand(B1USW, B2USW, B3USW)
	for i, d := range Directions {
		for _, t := range orbit {
			if facing(t.openSide(), d) {
				directional[i] = append(directional[i], t)
			}
		}
	}
}

// expand closes seeds under the three mirrors and three reflections
func expand(seeds ...GridTemplate) []GridTemplate {
	var out []GridTemplate
	seen := map[[3][3][3]PointType]bool{}
	queue := append([]GridTemplate(nil), seeds...)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if seen[t.cells] {
			continue
		}
		seen[t.cells] = true
		out = append(out, t)
		for _, p := range []Plane{PlaneXY, PlaneXZ, PlaneYZ} {
			queue = append(queue, t.MirrorInPlane(p))
		}
		for _, r := range []Reflection{R1, R2, R3} {
			queue = append(queue, t.Reflect(r))
		}
	}
	return out
}

func facing(side [3]int, d Direction) bool {
	for i := range 3 {
		if side[i] != 0 && side[i] != d[i] {
			return false
		}
	}
	return true
}

// Orbit returns every deletion template: the canonical ones and all their
// mirror and reflection images.
func Orbit() []GridTemplate {
	return append([]GridTemplate(nil), orbit...)
}

// DirectionalTemplates returns the templates used in the sub-pass for
// Directions[i]
func DirectionalTemplates(i int) []GridTemplate {
	return append([]GridTemplate(nil), directional[i]...)
}
