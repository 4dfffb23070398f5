package slots

import (
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/fastbump/internal/conv"
)

// Storage is a contiguous buffer of value cells plus a readiness flag per cell.
type Storage[T any] struct {
	cells []T
	ready []atomic.Bool
}

// New allocates storage for capacity cells. All cells start zeroed and not ready.
func New[T any](capacity int) *Storage[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Storage[T]{
		cells: make([]T, capacity),
		ready: make([]atomic.Bool, capacity),
	}
}

// Footprint returns the number of bytes n cells of T occupy, flags included.
func Footprint[T any](n int) (int64, error) {
	var zero T
	var flag atomic.Bool
	per := int(unsafe.Sizeof(zero) + unsafe.Sizeof(flag))
	total, err := conv.MulInt(n, per)
	if err != nil {
		return 0, err
	}
	return int64(total), nil
}

// Cap returns the number of cells.
func (s *Storage[T]) Cap() int {
	return len(s.cells)
}

// Cell returns a pointer to cell i.
func (s *Storage[T]) Cell(i int) *T {
	return &s.cells[i]
}

// Fill writes v into cell i and then marks it ready.
// The caller must own cell i exclusively.
func (s *Storage[T]) Fill(i int, v T) {
	s.cells[i] = v
	s.ready[i].Store(true)
}

// IsReady reports whether cell i has been filled.
func (s *Storage[T]) IsReady(i int) bool {
	return s.ready[i].Load()
}

// Destroy drops the value in cell i, zeroes the cell and clears its flag.
// drop may be nil for element types without a Drop method.
func (s *Storage[T]) Destroy(i int, drop func(*T)) {
	if drop != nil {
		drop(&s.cells[i])
	}
	var zero T
	s.cells[i] = zero
	s.ready[i].Store(false)
}

// DestroyRange destroys cells [from, to) in reverse order.
func (s *Storage[T]) DestroyRange(from, to int, drop func(*T)) {
	if drop == nil {
		clear(s.cells[from:to])
		for i := from; i < to; i++ {
			s.ready[i].Store(false)
		}
		return
	}
	for i := to - 1; i >= from; i-- {
		s.Destroy(i, drop)
	}
}

// Take moves the value out of cell i without dropping it.
func (s *Storage[T]) Take(i int) T {
	v := s.cells[i]
	var zero T
	s.cells[i] = zero
	s.ready[i].Store(false)
	return v
}

// Prefix returns the first n cells as a slice whose capacity is clipped to n.
func (s *Storage[T]) Prefix(n int) []T {
	return s.cells[:n:n]
}

// Relocate moves the first n cells and their flags into a new Storage with
// the given capacity and releases s. No value is dropped: ownership moves
// with the value.
func (s *Storage[T]) Relocate(capacity, n int) *Storage[T] {
	dst := New[T](capacity)
	copy(dst.cells, s.cells[:n])
	for i := range n {
		dst.ready[i].Store(s.ready[i].Load())
	}
	s.Release()
	return dst
}

// Release forgets the backing buffers. Live values are not dropped.
func (s *Storage[T]) Release() {
	s.cells = nil
	s.ready = nil
}
