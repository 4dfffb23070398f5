package fastbump

import (
	"cmp"
	"strconv"
)

// Checkpoint records an arena length for a later Rollback.
type Checkpoint[T any] struct {
	n int
}

// CheckpointFromLen builds a checkpoint for the given length.
func CheckpointFromLen[T any](n int) Checkpoint[T] {
	return Checkpoint[T]{n: n}
}

// Len returns the saved length.
func (c Checkpoint[T]) Len() int {
	return c.n
}

// IsEmpty reports whether the checkpoint was taken on an empty arena.
func (c Checkpoint[T]) IsEmpty() bool {
	return c.n == 0
}

// Compare orders checkpoints by saved length.
func (c Checkpoint[T]) Compare(other Checkpoint[T]) int {
	return cmp.Compare(c.n, other.n)
}

func (c Checkpoint[T]) String() string {
	return "Checkpoint(" + strconv.Itoa(c.n) + ")"
}
