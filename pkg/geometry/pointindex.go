package geometry

import "math"

type cellKey struct {
	x, y, z int64
}

// PointIndex maps coordinates to integer ids so that lookups succeed for any
// coordinate Equal to a stored one. Points are bucketed on an Epsilon sized
// lattice and a lookup scans the 27 surrounding buckets.
type PointIndex struct {
	cells map[cellKey][]pointEntry
	size  int
}

type pointEntry struct {
	point Vect3
	id    int
}

// NewPointIndex creates an empty index
func NewPointIndex() *PointIndex {
	return &PointIndex{cells: make(map[cellKey][]pointEntry)}
}

func keyOf(p Vect3) cellKey {
	return cellKey{
		x: int64(math.Floor(p.X / Epsilon)),
		y: int64(math.Floor(p.Y / Epsilon)),
		z: int64(math.Floor(p.Z / Epsilon)),
	}
}

// Len returns the number of stored points
func (pi *PointIndex) Len() int {
	return pi.size
}

// Insert stores id under p. It does not check for an existing equal point.
func (pi *PointIndex) Insert(p Vect3, id int) {
	k := keyOf(p)
	pi.cells[k] = append(pi.cells[k], pointEntry{point: p, id: id})
	pi.size++
}

// Find returns the id stored for a point Equal to p
func (pi *PointIndex) Find(p Vect3) (int, bool) {
	k := keyOf(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, e := range pi.cells[cellKey{k.x + dx, k.y + dy, k.z + dz}] {
					if e.point.Equal(p) {
						return e.id, true
					}
				}
			}
		}
	}
	return 0, false
}

// Remove deletes the entry with the given id stored at a point Equal to p
func (pi *PointIndex) Remove(p Vect3, id int) bool {
	k := keyOf(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				ck := cellKey{k.x + dx, k.y + dy, k.z + dz}
				entries := pi.cells[ck]
				for i, e := range entries {
					if e.id != id || !e.point.Equal(p) {
						continue
					}
					entries = append(entries[:i], entries[i+1:]...)
					if len(entries) == 0 {
						delete(pi.cells, ck)
					} else {
						pi.cells[ck] = entries
					}
					pi.size--
					return true
				}
			}
		}
	}
	return false
}

// Replace changes the id stored for a point
func (pi *PointIndex) Replace(p Vect3, oldID, newID int) bool {
	if !pi.Remove(p, oldID) {
		return false
	}
	pi.Insert(p, newID)
	return true
}
