// Package skeleton reduces solid voxel grids to one voxel wide skeletons
// by directional template thinning and turns them into node graphs.
package skeleton

import (
	"fmt"
	"strings"
)

// PointType is the role of one cell in a GridTemplate
type PointType int

const (
	// Ignored cells do not take part in a match
	Ignored PointType = iota
	// Black cells must be solid
	Black
	// White cells must be empty
	White
	// X cells are free, but at least one X cell of a template must be solid
	X
)

func (p PointType) String() string {
	switch p {
	case Black:
		return "B"
	case White:
		return "W"
	case X:
		return "X"
	default:
		return "."
	}
}

// Plane selects the mirror plane for MirrorInPlane
type Plane int

const (
	// PlaneXY mirrors along z
	PlaneXY Plane = iota
	// PlaneXZ mirrors along y
	PlaneXZ
	// PlaneYZ mirrors along x
	PlaneYZ
)

// Reflection selects a diagonal reflection for Reflect
type Reflection int

const (
	// R1 swaps the x and z axes
	R1 Reflection = iota
	// R2 reflects across the plane y + z = 2
	R2
	// R3 reflects across the plane x + y = 2
	R3
)

// GridTemplate is an immutable 3x3x3 neighbourhood pattern indexed [x][y][z].
// The centre cell is the voxel under test.
type GridTemplate struct {
	cells [3][3][3]PointType
}

// NewGridTemplate wraps cells in a template
func NewGridTemplate(cells [3][3][3]PointType) GridTemplate {
	return GridTemplate{cells: cells}
}

// ParseGridTemplate reads nine rows of three cells. Rows run over y within
// each x layer, characters over z. B, W, X and . (ignored) are accepted.
func ParseGridTemplate(rows ...string) (GridTemplate, error) {
	if len(rows) != 9 {
		return GridTemplate{}, fmt.Errorf("skeleton: template needs 9 rows, got %d", len(rows))
	}
	var t GridTemplate
	for i, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != 3 {
			return GridTemplate{}, fmt.Errorf("skeleton: template row %d %q needs 3 cells", i, row)
		}
		for z, r := range row {
			var p PointType
			switch r {
			case 'B':
				p = Black
			case 'W':
				p = White
			case 'X':
				p = X
			case '.':
				p = Ignored
			default:
				return GridTemplate{}, fmt.Errorf("skeleton: unknown template cell %q", r)
			}
			t.cells[i/3][i%3][z] = p
		}
	}
	return t, nil
}

func mustParse(rows ...string) GridTemplate {
	t, err := ParseGridTemplate(rows...)
	if err != nil {
		panic(err)
	}
	return t
}

// Canonical deletion templates. The open (white) side points up, south and
// west; the orbit covers every other direction.
var (
	B1USW = mustParse(
		"WWW", "WWW", "WWW",
		"WXX", "WBX", "WWW",
		"WXB", "WXX", "WWW",
	)
	B2USW = mustParse(
		"WWW", "WWW", "WWW",
		"XXX", "XBX", "WWW",
		"XBX", "XXX", "WWW",
	)
	B3USW = mustParse(
		"XXX", "XXX", "WWW",
		"XBX", "XBX", "WWW",
		"XXX", "XXX", "WWW",
	)
)

// At returns the cell at (x, y, z), each in 0..2
func (t GridTemplate) At(x, y, z int) PointType {
	return t.cells[x][y][z]
}

// Cells returns a copy of the pattern
func (t GridTemplate) Cells() [3][3][3]PointType {
	return t.cells
}

// Equal compares templates cell by cell
func (t GridTemplate) Equal(other GridTemplate) bool {
	return t.cells == other.cells
}

func (t GridTemplate) remap(from func(x, y, z int) (int, int, int)) GridTemplate {
	var out GridTemplate
	for x := range 3 {
		for y := range 3 {
			for z := range 3 {
				sx, sy, sz := from(x, y, z)
				out.cells[x][y][z] = t.cells[sx][sy][sz]
			}
		}
	}
	return out
}

// MirrorInPlane mirrors the template across a plane through its centre
func (t GridTemplate) MirrorInPlane(p Plane) GridTemplate {
	switch p {
	case PlaneXY:
		return t.remap(func(x, y, z int) (int, int, int) { return x, y, 2 - z })
	case PlaneXZ:
		return t.remap(func(x, y, z int) (int, int, int) { return x, 2 - y, z })
	default:
		return t.remap(func(x, y, z int) (int, int, int) { return 2 - x, y, z })
	}
}

// Reflect applies one of the diagonal reflections
func (t GridTemplate) Reflect(r Reflection) GridTemplate {
	switch r {
	case R1:
		return t.remap(func(x, y, z int) (int, int, int) { return z, y, x })
	case R2:
		return t.remap(func(x, y, z int) (int, int, int) { return x, 2 - z, 2 - y })
	default:
		return t.remap(func(x, y, z int) (int, int, int) { return 2 - y, 2 - x, z })
	}
}

// Neighbourhood is the occupancy around a voxel, indexed like a template
type Neighbourhood [3][3][3]bool

// Matches reports whether n fits the template: every Black cell solid,
// every White cell empty and, if the template has X cells, at least one of
// them solid.
func (t GridTemplate) Matches(n *Neighbourhood) bool {
	hasX, anyX := false, false
	for x := range 3 {
		for y := range 3 {
			for z := range 3 {
				switch t.cells[x][y][z] {
				case Black:
					if !n[x][y][z] {
						return false
					}
				case White:
					if n[x][y][z] {
						return false
					}
				case X:
					hasX = true
					anyX = anyX || n[x][y][z]
				}
			}
		}
	}
	return !hasX || anyX
}

// openSide is the direction the white side of a deletion template faces:
// opposite the black neighbour of the centre.
func (t GridTemplate) openSide() [3]int {
	for x := range 3 {
		for y := range 3 {
			for z := range 3 {
				if (x != 1 || y != 1 || z != 1) && t.cells[x][y][z] == Black {
					return [3]int{1 - x, 1 - y, 1 - z}
				}
			}
		}
	}
	return [3]int{}
}

func (t GridTemplate) String() string {
	var sb strings.Builder
	for x := range 3 {
		if x > 0 {
			sb.WriteString(" | ")
		}
		for y := range 3 {
			if y > 0 {
				sb.WriteByte(' ')
			}
			for z := range 3 {
				sb.WriteString(t.cells[x][y][z].String())
			}
		}
	}
	return sb.String()
}
