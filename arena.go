package fastbump

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/fastbump/internal/conv"
	"github.com/hupe1980/fastbump/internal/slots"
)

// Arena is the single-goroutine counterpart of ConcurrentArena, backed by a
// growable slice. It never runs out of room: Alloc grows the slice as needed.
//
// Used from one goroutine, Arena and ConcurrentArena return the same handles,
// values and lengths for the same sequence of calls, and drop values in the
// same order. Arena is not safe for concurrent use.
type Arena[T any] struct {
	items []T
	drop  func(*T)
	freed bool

	opts  options
	stats atomicStats
}

// New creates an arena with room for capacity values before its first
// reallocation. A non-positive capacity allocates nothing up front.
func New[T any](capacity int, opts ...Option) *Arena[T] {
	a := &Arena[T]{
		drop: slots.DropFunc[T](),
		opts: buildOptions(opts),
	}
	if capacity > 0 {
		a.items = make([]T, 0, capacity)
	}
	return a
}

// Collect builds an arena holding every value of seq, in order.
func Collect[T any](seq iter.Seq[T], opts ...Option) *Arena[T] {
	a := New[T](0, opts...)
	a.items = slices.AppendSeq(a.items, seq)
	return a
}

func (a *Arena[T]) live(op string) {
	if a.freed {
		panic(errFreed(op))
	}
}

// Alloc appends value and returns its handle.
func (a *Arena[T]) Alloc(value T) Idx[T] {
	a.live("Alloc")
	a.items = append(a.items, value)
	return Idx[T]{index: len(a.items) - 1}
}

// AllocExtend appends every value of seq and returns the handle of the first,
// or false if seq is empty. The values are contiguous.
func (a *Arena[T]) AllocExtend(seq iter.Seq[T]) (Idx[T], bool) {
	a.live("AllocExtend")
	start := len(a.items)
	a.items = slices.AppendSeq(a.items, seq)
	if len(a.items) == start {
		return Idx[T]{}, false
	}
	return Idx[T]{index: start}, true
}

// Extend appends every value of seq.
func (a *Arena[T]) Extend(seq iter.Seq[T]) {
	a.live("Extend")
	a.items = slices.AppendSeq(a.items, seq)
}

// Get returns a pointer to the value of h.
// It panics with an error wrapping ErrIndexOutOfBounds if h is out of range.
func (a *Arena[T]) Get(h Idx[T]) *T {
	p, ok := a.TryGet(h)
	if !ok {
		panic(errOutOfBounds(h.index, len(a.items)))
	}
	return p
}

// GetMut returns a pointer to the value of h for writing.
func (a *Arena[T]) GetMut(h Idx[T]) *T {
	return a.Get(h)
}

// TryGet returns a pointer to the value of h, or false if h is out of range.
func (a *Arena[T]) TryGet(h Idx[T]) (*T, bool) {
	a.live("Get")
	if h.index < 0 || h.index >= len(a.items) {
		return nil, false
	}
	return &a.items[h.index], true
}

// TryGetMut is TryGet for writing.
func (a *Arena[T]) TryGetMut(h Idx[T]) (*T, bool) {
	return a.TryGet(h)
}

// IsValid reports whether h is in range.
func (a *Arena[T]) IsValid(h Idx[T]) bool {
	_, ok := a.TryGet(h)
	return ok
}

// Len returns the number of values.
func (a *Arena[T]) Len() int {
	a.live("Len")
	return len(a.items)
}

// IsEmpty reports whether the arena holds no value.
func (a *Arena[T]) IsEmpty() bool {
	return a.Len() == 0
}

// Cap returns the capacity of the backing slice.
func (a *Arena[T]) Cap() int {
	a.live("Cap")
	return cap(a.items)
}

// Reserve makes room for at least additional more values.
func (a *Arena[T]) Reserve(additional int) {
	a.live("Reserve")
	if additional <= 0 {
		return
	}
	if _, err := conv.AddInt(len(a.items), additional); err != nil {
		panic(errCapacityOverflow(fmt.Sprintf("reserve %d more slots", additional), err))
	}
	a.items = slices.Grow(a.items, additional)
}

// ShrinkToFit drops unused capacity.
func (a *Arena[T]) ShrinkToFit() {
	a.live("ShrinkToFit")
	a.items = slices.Clip(slices.Clone(a.items))
}

// Checkpoint records the current length for a later Rollback.
func (a *Arena[T]) Checkpoint() Checkpoint[T] {
	return Checkpoint[T]{n: a.Len()}
}

// Rollback drops every value allocated after cp, last first.
// It panics with an error wrapping ErrInvalidCheckpoint if cp is beyond the
// current length.
func (a *Arena[T]) Rollback(cp Checkpoint[T]) {
	a.live("Rollback")
	n := len(a.items)
	if cp.n < 0 || cp.n > n {
		panic(errInvalidCheckpoint(cp.n, n))
	}

	a.truncate(cp.n)

	a.stats.rollbacks.Add(1)
	a.opts.logger.LogRollback(n, cp.n)
	a.opts.metricsCollector.RecordRollback(n - cp.n)
}

// Reset drops every value, last first. Capacity is kept.
func (a *Arena[T]) Reset() {
	a.live("Reset")
	dropped := a.truncate(0)

	a.stats.resets.Add(1)
	a.opts.logger.LogReset(dropped)
	a.opts.metricsCollector.RecordReset(dropped)
}

func (a *Arena[T]) truncate(n int) int {
	dropped := len(a.items) - n
	slots.DropReverse(a.items[n:], a.drop)
	a.items = a.items[:n]
	d64, _ := conv.IntToUint64(dropped)
	a.stats.dropped.Add(d64)
	return dropped
}

// Values iterates over pointers to the values.
func (a *Arena[T]) Values() iter.Seq[*T] {
	a.live("Values")
	return values(a.items)
}

// All iterates over the values with their handles.
func (a *Arena[T]) All() iter.Seq2[Idx[T], *T] {
	a.live("All")
	return indexed(a.items)
}

// ValuesMut is Values for writing.
func (a *Arena[T]) ValuesMut() iter.Seq[*T] {
	return a.Values()
}

// AllMut is All for writing.
func (a *Arena[T]) AllMut() iter.Seq2[Idx[T], *T] {
	return a.All()
}

// Drain moves every value out, in order, without dropping any.
// Capacity is kept.
func (a *Arena[T]) Drain() []T {
	a.live("Drain")
	out := slices.Clone(a.items)
	clear(a.items)
	a.items = a.items[:0]

	n64, _ := conv.IntToUint64(len(out))
	a.stats.drained.Add(n64)
	a.opts.logger.LogDrain(len(out))
	a.opts.metricsCollector.RecordDrain(len(out))
	return out
}

// Consume frees the arena and returns its values for a single pass in order.
// Values left unvisited when the caller stops early are dropped.
func (a *Arena[T]) Consume() iter.Seq[T] {
	items := a.Drain()
	a.Free()
	return consume(items, a.drop)
}

// Free drops every value, last first, and releases the backing slice. Any
// later use of the arena panics with an error wrapping ErrArenaFreed. Calling
// Free again is a no-op.
func (a *Arena[T]) Free() {
	if a.freed {
		return
	}
	n := len(a.items)
	slots.DropReverse(a.items, a.drop)
	a.items = nil
	a.freed = true

	n64, _ := conv.IntToUint64(n)
	a.stats.dropped.Add(n64)
	a.opts.logger.LogFree(n, 0)
	a.opts.metricsCollector.RecordFree(n)
}

// Stats returns a snapshot of the arena. It is safe to call after Free.
func (a *Arena[T]) Stats() Stats {
	st := Stats{
		Len:     len(a.items),
		Cap:     cap(a.items),
		Claimed: len(a.items),
		Freed:   a.freed,
	}
	a.stats.load(&st)
	return st
}

// String returns a one-line summary of the arena.
func (a *Arena[T]) String() string {
	return formatStats("Arena", a.opts.name, a.Stats())
}
