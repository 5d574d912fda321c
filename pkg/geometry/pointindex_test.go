package geometry

import "testing"

func TestPointIndexFind(t *testing.T) {
	idx := NewPointIndex()
	idx.Insert(NewVect3(1, 2, 3), 7)
	idx.Insert(NewVect3(-0.5, 0, 0.25), 9)

	if idx.Len() != 2 {
		t.Fatalf("Len failed: expected 2, got %d", idx.Len())
	}

	// lookups within tolerance may land in a neighbouring cell
	for _, p := range []Vect3{
		NewVect3(1, 2, 3),
		NewVect3(1+Epsilon/2, 2-Epsilon/2, 3),
		NewVect3(1-0.9*Epsilon, 2, 3+0.9*Epsilon),
	} {
		id, ok := idx.Find(p)
		if !ok || id != 7 {
			t.Errorf("Find(%v): expected 7, got %d (%v)", p, id, ok)
		}
	}

	if _, ok := idx.Find(NewVect3(1+3*Epsilon, 2, 3)); ok {
		t.Errorf("Find should miss a point outside the tolerance")
	}
}

func TestPointIndexRemoveReplace(t *testing.T) {
	idx := NewPointIndex()
	p := NewVect3(4, 4, 4)
	idx.Insert(p, 1)

	if !idx.Replace(p, 1, 5) {
		t.Fatalf("Replace failed")
	}
	if id, _ := idx.Find(p); id != 5 {
		t.Errorf("Replace failed: expected id 5, got %d", id)
	}
	if idx.Replace(p, 1, 6) {
		t.Errorf("Replace with a stale id should fail")
	}

	if idx.Remove(p, 1) {
		t.Errorf("Remove with wrong id should fail")
	}
	if !idx.Remove(p, 5) {
		t.Errorf("Remove failed")
	}
	if _, ok := idx.Find(p); ok || idx.Len() != 0 {
		t.Errorf("index should be empty after Remove")
	}
}
