package fastbump

import (
	"cmp"
	"strconv"
)

// Idx is a handle to a value in an arena of T.
//
// An Idx is a plain position: it is comparable with ==, usable as a map key
// and carries no generation. A handle taken before a rollback may alias a
// value allocated afterwards at the same position.
type Idx[T any] struct {
	index int
}

// IdxFromRaw builds a handle from a raw position.
func IdxFromRaw[T any](index int) Idx[T] {
	return Idx[T]{index: index}
}

// Raw returns the handle's position.
func (i Idx[T]) Raw() int {
	return i.index
}

// Compare orders handles by position. It returns -1, 0 or +1.
func (i Idx[T]) Compare(other Idx[T]) int {
	return cmp.Compare(i.index, other.index)
}

func (i Idx[T]) String() string {
	return "Idx(" + strconv.Itoa(i.index) + ")"
}
