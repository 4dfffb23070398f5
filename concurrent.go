package fastbump

import (
	"fmt"
	"iter"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
	"golang.org/x/time/rate"

	"github.com/hupe1980/fastbump/internal/conv"
	"github.com/hupe1980/fastbump/internal/slots"
)

// ConcurrentArena is a fixed-capacity bump allocator that many goroutines can
// allocate from and read from at once without locks.
//
// # Concurrency Model
//
// Alloc, TryAlloc, Get, TryGet, IsValid, AsSlice, Values, All, Len, IsEmpty,
// Cap, Checkpoint, Stats and String are safe to call concurrently.
//
// GetMut, TryGetMut, AsMutSlice, ValuesMut, AllMut, Rollback, Reset, Grow,
// GrowTo, Drain, Consume and Free require exclusive access: no other goroutine
// may be allocating or holding a pointer into the arena during the call.
// There is no internal lock that enforces this; the caller synchronizes.
//
// # Publication
//
// A value becomes visible to readers once every slot before it has been
// written. Any goroutine that finishes a write advances the published length
// past all contiguous ready slots, including those claimed earlier by other
// goroutines, so no writer waits on a dedicated publisher.
type ConcurrentArena[T any] struct {
	cursor    atomic.Int64
	_         cpu.CacheLinePad
	published atomic.Int64
	_         cpu.CacheLinePad

	storage    *slots.Storage[T]
	drop       func(*T)
	pressureAt int
	footprint  int64

	opts    options
	limiter *rate.Limiter
	stats   atomicStats
}

// NewConcurrent creates a concurrent arena with room for capacity values.
// A non-positive capacity selects DefaultCapacity.
//
// It fails only if the memory acquirer refuses the initial storage.
func NewConcurrent[T any](capacity int, opts ...Option) (*ConcurrentArena[T], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	o := buildOptions(opts)

	footprint, err := slots.Footprint[T](capacity)
	if err != nil {
		panic(errCapacityOverflow(fmt.Sprintf("%d slots", capacity), err))
	}
	if o.acquirer != nil {
		if err := o.acquirer.TryAcquireMemory(footprint); err != nil {
			return nil, fmt.Errorf("fastbump: reserve %d slots (%d bytes): %w", capacity, footprint, err)
		}
	}

	a := &ConcurrentArena[T]{
		storage:   slots.New[T](capacity),
		drop:      slots.DropFunc[T](),
		footprint: footprint,
		opts:      o,
		limiter:   newPressureLimiter(o.pressureInterval),
	}
	a.pressureAt = pressureSlot(capacity, o.pressureThreshold)

	return a, nil
}

// CollectConcurrent builds a concurrent arena holding every value of seq, in
// order, with capacity max(n, 1).
func CollectConcurrent[T any](seq iter.Seq[T], opts ...Option) (*ConcurrentArena[T], error) {
	var items []T
	for v := range seq {
		items = append(items, v)
	}

	a, err := NewConcurrent[T](max(len(items), 1), opts...)
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		a.Alloc(v)
	}
	return a, nil
}

func newPressureLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// pressureSlot returns the claim count that triggers a pressure warning,
// or 0 when the warning is disabled.
func pressureSlot(capacity int, ratio float64) int {
	if ratio <= 0 || ratio > 1 || math.IsNaN(ratio) {
		return 0
	}
	return max(int(math.Ceil(float64(capacity)*ratio)), 1)
}

func (a *ConcurrentArena[T]) live(op string) *slots.Storage[T] {
	s := a.storage
	if s == nil {
		panic(errFreed(op))
	}
	return s
}

// Alloc stores value in the next free slot and returns its handle.
//
// It panics with an error wrapping ErrArenaFull if the arena has no free
// slot. The cursor never moves past the capacity, so a failed Alloc leaves the
// arena usable once it has grown.
func (a *ConcurrentArena[T]) Alloc(value T) Idx[T] {
	h, err := a.TryAlloc(value)
	if err != nil {
		panic(err)
	}
	return h
}

// TryAlloc is like Alloc but returns an error wrapping ErrArenaFull instead
// of panicking.
func (a *ConcurrentArena[T]) TryAlloc(value T) (Idx[T], error) {
	s := a.live("Alloc")
	capacity := s.Cap()

	slot, ok := a.claim(capacity)
	if !ok {
		return Idx[T]{}, errArenaFull(slot, capacity)
	}

	s.Fill(slot, value)
	a.publish(s, slot)

	if slot+1 == a.pressureAt {
		a.reportPressure(slot+1, capacity)
	}

	return Idx[T]{index: slot}, nil
}

// claim reserves the next slot. The cursor only advances while it is below
// capacity.
func (a *ConcurrentArena[T]) claim(capacity int) (int, bool) {
	limit := int64(capacity)
	for {
		c := a.cursor.Load()
		if c >= limit {
			return int(c), false
		}
		if a.cursor.CompareAndSwap(c, c+1) {
			return int(c), true
		}
	}
}

// publish advances the published length until it covers slot. Slots before
// slot that are still being written are waited for; every ready slot found on
// the way is published, whoever wrote it.
func (a *ConcurrentArena[T]) publish(s *slots.Storage[T], slot int) {
	for {
		p := a.published.Load()
		if p > int64(slot) {
			return
		}
		if !s.IsReady(int(p)) {
			runtime.Gosched()
			continue
		}
		a.published.CompareAndSwap(p, p+1)
	}
}

func (a *ConcurrentArena[T]) reportPressure(claimed, capacity int) {
	if !a.limiter.Allow() {
		return
	}
	a.opts.logger.LogPressure(claimed, capacity)
	a.opts.metricsCollector.RecordPressure(claimed, capacity)
}

// AllocExtend allocates every value of seq and returns the handle of the
// first one, or false if seq is empty.
//
// The values are allocated one by one. With concurrent callers they may
// interleave with other allocations, so only the first handle is meaningful
// and the rest are not necessarily contiguous.
func (a *ConcurrentArena[T]) AllocExtend(seq iter.Seq[T]) (Idx[T], bool) {
	var (
		first Idx[T]
		ok    bool
	)
	for v := range seq {
		h := a.Alloc(v)
		if !ok {
			first, ok = h, true
		}
	}
	return first, ok
}

// Extend allocates every value of seq.
func (a *ConcurrentArena[T]) Extend(seq iter.Seq[T]) {
	for v := range seq {
		a.Alloc(v)
	}
}

// Get returns a pointer to the value of h.
// It panics with an error wrapping ErrIndexOutOfBounds if h is not published.
func (a *ConcurrentArena[T]) Get(h Idx[T]) *T {
	p, ok := a.TryGet(h)
	if !ok {
		panic(errOutOfBounds(h.index, a.Len()))
	}
	return p
}

// TryGet returns a pointer to the value of h, or false if h is not published.
func (a *ConcurrentArena[T]) TryGet(h Idx[T]) (*T, bool) {
	s := a.live("Get")
	if h.index < 0 || int64(h.index) >= a.published.Load() {
		return nil, false
	}
	return s.Cell(h.index), true
}

// GetMut is Get for callers with exclusive access, who may write through the
// returned pointer.
func (a *ConcurrentArena[T]) GetMut(h Idx[T]) *T {
	return a.Get(h)
}

// TryGetMut is TryGet for callers with exclusive access.
func (a *ConcurrentArena[T]) TryGetMut(h Idx[T]) (*T, bool) {
	return a.TryGet(h)
}

// IsValid reports whether h refers to a published value.
func (a *ConcurrentArena[T]) IsValid(h Idx[T]) bool {
	_, ok := a.TryGet(h)
	return ok
}

// AsSlice returns the published values as one contiguous slice. Its capacity
// is clipped to its length, so appending to it never writes into the arena.
//
// The slice keeps referring to the current storage: values published later
// are not part of it, and after Grow it no longer sees writes to the arena.
func (a *ConcurrentArena[T]) AsSlice() []T {
	s := a.live("AsSlice")
	return s.Prefix(int(a.published.Load()))
}

// AsMutSlice is AsSlice for callers with exclusive access.
func (a *ConcurrentArena[T]) AsMutSlice() []T {
	return a.AsSlice()
}

// Values iterates over pointers to the values published at call time.
func (a *ConcurrentArena[T]) Values() iter.Seq[*T] {
	return values(a.AsSlice())
}

// All iterates over the values published at call time with their handles.
func (a *ConcurrentArena[T]) All() iter.Seq2[Idx[T], *T] {
	return indexed(a.AsSlice())
}

// ValuesMut is Values for callers with exclusive access.
func (a *ConcurrentArena[T]) ValuesMut() iter.Seq[*T] {
	return values(a.AsMutSlice())
}

// AllMut is All for callers with exclusive access.
func (a *ConcurrentArena[T]) AllMut() iter.Seq2[Idx[T], *T] {
	return indexed(a.AsMutSlice())
}

// Len returns the number of published values.
func (a *ConcurrentArena[T]) Len() int {
	a.live("Len")
	return int(a.published.Load())
}

// IsEmpty reports whether no value is published.
func (a *ConcurrentArena[T]) IsEmpty() bool {
	return a.Len() == 0
}

// Cap returns the number of slots.
func (a *ConcurrentArena[T]) Cap() int {
	return a.live("Cap").Cap()
}

// Checkpoint records the current length for a later Rollback.
func (a *ConcurrentArena[T]) Checkpoint() Checkpoint[T] {
	return Checkpoint[T]{n: a.Len()}
}

// Rollback drops every value allocated after cp, last first, and makes their
// slots available again. Handles to them become invalid.
//
// It panics with an error wrapping ErrInvalidCheckpoint if cp is beyond the
// current length. Requires exclusive access.
func (a *ConcurrentArena[T]) Rollback(cp Checkpoint[T]) {
	s := a.live("Rollback")
	n := int(a.published.Load())
	if cp.n < 0 || cp.n > n {
		panic(errInvalidCheckpoint(cp.n, n))
	}

	a.truncate(s, cp.n)

	a.stats.rollbacks.Add(1)
	a.opts.logger.LogRollback(n, cp.n)
	a.opts.metricsCollector.RecordRollback(n - cp.n)
}

// Reset drops every value, last first. Capacity is kept.
// Requires exclusive access.
func (a *ConcurrentArena[T]) Reset() {
	s := a.live("Reset")
	dropped := a.truncate(s, 0)

	a.stats.resets.Add(1)
	a.opts.logger.LogReset(dropped)
	a.opts.metricsCollector.RecordReset(dropped)
}

func (a *ConcurrentArena[T]) truncate(s *slots.Storage[T], n int) int {
	end := int(a.published.Load())
	s.DestroyRange(n, end, a.drop)
	a.cursor.Store(int64(n))
	a.published.Store(int64(n))

	dropped := end - n
	d64, _ := conv.IntToUint64(dropped) // Safe: end >= n
	a.stats.dropped.Add(d64)
	return dropped
}

// Grow doubles the capacity. See GrowTo.
func (a *ConcurrentArena[T]) Grow() error {
	s := a.live("Grow")
	target, err := conv.MulInt(s.Cap(), 2)
	if err != nil {
		panic(errCapacityOverflow("doubling capacity", err))
	}
	return a.GrowTo(target)
}

// GrowTo ensures the arena has at least minCapacity slots. Values move to the
// new storage without being dropped and keep their positions, so every handle
// and checkpoint stays valid. It is a no-op if the capacity already suffices.
//
// If the memory acquirer refuses the extra storage, GrowTo returns its error
// and the arena is unchanged. Requires exclusive access.
func (a *ConcurrentArena[T]) GrowTo(minCapacity int) error {
	s := a.live("GrowTo")
	oldCap := s.Cap()
	if minCapacity <= oldCap {
		return nil
	}

	footprint, err := slots.Footprint[T](minCapacity)
	if err != nil {
		panic(errCapacityOverflow(fmt.Sprintf("%d slots", minCapacity), err))
	}

	n := int(a.published.Load())

	if a.opts.acquirer != nil {
		if err := a.opts.acquirer.TryAcquireMemory(footprint - a.footprint); err != nil {
			err = fmt.Errorf("fastbump: grow from %d to %d slots: %w", oldCap, minCapacity, err)
			a.opts.logger.LogGrow(oldCap, minCapacity, n, err)
			a.opts.metricsCollector.RecordGrow(oldCap, minCapacity, err)
			return err
		}
	}

	a.storage = s.Relocate(minCapacity, n)
	a.cursor.Store(int64(n))
	a.footprint = footprint
	a.pressureAt = pressureSlot(minCapacity, a.opts.pressureThreshold)

	a.stats.grows.Add(1)
	a.opts.logger.LogGrow(oldCap, minCapacity, n, nil)
	a.opts.metricsCollector.RecordGrow(oldCap, minCapacity, nil)
	return nil
}

// Drain moves every value out of the arena, in position order, without
// dropping any. The arena is left empty with its capacity intact.
// Requires exclusive access.
func (a *ConcurrentArena[T]) Drain() []T {
	s := a.live("Drain")
	n := int(a.published.Load())

	out := make([]T, n)
	for i := range n {
		out[i] = s.Take(i)
	}
	a.cursor.Store(0)
	a.published.Store(0)

	n64, _ := conv.IntToUint64(n)
	a.stats.drained.Add(n64)
	a.opts.logger.LogDrain(n)
	a.opts.metricsCollector.RecordDrain(n)
	return out
}

// Consume frees the arena and returns its values for a single pass in
// position order. Values left unvisited when the caller stops early are
// dropped. Requires exclusive access.
func (a *ConcurrentArena[T]) Consume() iter.Seq[T] {
	items := a.Drain()
	a.Free()
	return consume(items, a.drop)
}

// Free drops every value, last first, releases the storage and returns its
// footprint to the memory acquirer. Any later use of the arena panics with
// an error wrapping ErrArenaFreed. Calling Free again is a no-op.
// Requires exclusive access.
func (a *ConcurrentArena[T]) Free() {
	s := a.storage
	if s == nil {
		return
	}

	n := int(a.published.Load())
	s.DestroyRange(0, n, a.drop)
	s.Release()
	a.storage = nil
	a.cursor.Store(0)
	a.published.Store(0)

	released := a.footprint
	if a.opts.acquirer != nil {
		a.opts.acquirer.ReleaseMemory(released)
	}
	a.footprint = 0

	n64, _ := conv.IntToUint64(n)
	a.stats.dropped.Add(n64)
	a.opts.logger.LogFree(n, released)
	a.opts.metricsCollector.RecordFree(n)
}

// Stats returns a snapshot of the arena. It is safe to call after Free.
func (a *ConcurrentArena[T]) Stats() Stats {
	st := Stats{
		Len:            int(a.published.Load()),
		Claimed:        int(a.cursor.Load()),
		FootprintBytes: a.footprint,
	}
	if s := a.storage; s != nil {
		st.Cap = s.Cap()
	} else {
		st.Freed = true
	}
	a.stats.load(&st)
	return st
}

// String returns a one-line summary of the arena.
func (a *ConcurrentArena[T]) String() string {
	return formatStats("ConcurrentArena", a.opts.name, a.Stats())
}
