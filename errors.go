package fastbump

import (
	"errors"
	"fmt"
)

var (
	// ErrArenaFull is returned (or carried by a panic) when a claim would
	// reach the arena's capacity. Grow the arena first.
	ErrArenaFull = errors.New("arena full")

	// ErrIndexOutOfBounds indicates a handle at or past the current length,
	// typically one taken before a rollback or reset.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidCheckpoint indicates a rollback to a checkpoint whose saved
	// length exceeds the current length.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrCapacityOverflow indicates that capacity arithmetic overflowed int.
	ErrCapacityOverflow = errors.New("capacity overflow")

	// ErrArenaFreed indicates use of an arena after Free.
	ErrArenaFreed = errors.New("arena freed")
)

func errArenaFull(slot, capacity int) error {
	return fmt.Errorf("%w: slot %d >= capacity %d", ErrArenaFull, slot, capacity)
}

func errOutOfBounds(index, length int) error {
	return fmt.Errorf("%w: index is %d but length is %d", ErrIndexOutOfBounds, index, length)
}

func errInvalidCheckpoint(cpLen, length int) error {
	return fmt.Errorf("%w: checkpoint %d beyond current length %d", ErrInvalidCheckpoint, cpLen, length)
}

func errCapacityOverflow(requested string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrCapacityOverflow, requested, cause)
}

func errFreed(op string) error {
	return fmt.Errorf("%w: %s after Free", ErrArenaFreed, op)
}
