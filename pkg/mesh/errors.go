package mesh

import "errors"

var (
	// ErrNegativeIndex is returned when a vertex or face index is negative.
	ErrNegativeIndex = errors.New("mesh: negative index")
	// ErrInvalidFace is returned for faces that do not reference exactly three
	// distinct vertices of their component or have no usable normal.
	ErrInvalidFace = errors.New("mesh: invalid face")
	// ErrIndexOutOfRange is returned by accessors addressed past the arena.
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
)
