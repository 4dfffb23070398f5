package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Ints returns n pseudo-random numbers in [0, limit).
// Locks only once per call.
func (r *RNG) Ints(n, limit int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(limit)
	}
	return out
}

// DropLog records the IDs of dropped values in the order their Drop ran.
// It is safe for concurrent use.
type DropLog struct {
	mu    sync.Mutex
	order []int
}

// NewDropLog returns an empty log.
func NewDropLog() *DropLog {
	return &DropLog{}
}

// Track returns a value with the given id that reports to l when dropped.
func (l *DropLog) Track(id int) Tracked {
	return Tracked{ID: id, log: l}
}

// Count returns the number of drops recorded so far.
func (l *DropLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Order returns a copy of the recorded drop order.
func (l *DropLog) Order() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.order)
}

// Times returns how often id has been dropped.
func (l *DropLog) Times(id int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, v := range l.order {
		if v == id {
			n++
		}
	}
	return n
}

// Reset clears the log.
func (l *DropLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = l.order[:0]
}

func (l *DropLog) record(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = append(l.order, id)
}

// Tracked is a value whose Drop method is recorded in a DropLog.
// The zero value drops silently.
type Tracked struct {
	ID  int
	log *DropLog
}

// Drop records t in its log.
func (t Tracked) Drop() {
	if t.log != nil {
		t.log.record(t.ID)
	}
}
