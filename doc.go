// Package fastbump provides typed bump allocators addressed by stable handles.
//
// An arena stores values of one type contiguously and hands out an Idx for
// each allocation. Values are never freed one by one: callers take a
// Checkpoint, allocate speculatively and Rollback the suffix, or Reset the
// whole arena.
//
// # Quick Start
//
//	a, _ := fastbump.NewConcurrent[Node](1024)
//	defer a.Free()
//
//	h := a.Alloc(Node{Name: "root"})
//	fmt.Println(a.Get(h).Name)
//
// # Variants
//
// ConcurrentArena allocates from many goroutines at once without locks, reads
// are wait-free and AsSlice exposes the published values as one slice. Its
// capacity is fixed between explicit calls to Grow or GrowTo.
//
// Arena is the single-goroutine variant backed by a growable slice. Used
// from one goroutine the two produce identical handles, values and drop
// order, so one can replace the other.
//
// # Exclusive Operations
//
// Mutating access (GetMut, AsMutSlice, ValuesMut, AllMut), Rollback, Reset,
// Grow, GrowTo, Drain, Consume and Free require that no other goroutine uses
// the arena during the call. fastbump does not lock; the caller synchronizes,
// typically with a sync.WaitGroup or errgroup.Group around the allocating
// phase.
//
// # Dropping Values
//
// A value whose type (or pointer type) implements Dropper has its Drop
// method called when Rollback, Reset or Free destroys it, last allocated
// first. Drain and Consume move values out without dropping them.
//
// # Errors
//
// Misuse panics with an error that wraps one of ErrArenaFull,
// ErrIndexOutOfBounds, ErrInvalidCheckpoint, ErrCapacityOverflow or
// ErrArenaFreed, so a recovered value can be tested with errors.Is.
// TryAlloc, TryGet and IsValid report the same conditions without panicking.
//
// # Observability
//
// WithLogger, WithMetricsCollector and WithMemoryAcquirer attach a
// structured logger, a metrics sink and a memory budget
// (see package resource).
package fastbump

// Dropper is implemented by values that release resources when an arena
// destroys them.
type Dropper interface {
	Drop()
}
