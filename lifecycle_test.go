package fastbump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastbump/resource"
	"github.com/hupe1980/fastbump/testutil"
)

// TestUseAfterFree verifies that every operation on a freed arena panics with
// ErrArenaFreed, and that Free itself stays idempotent.
func TestUseAfterFree(t *testing.T) {
	c, err := NewConcurrent[int](4)
	require.NoError(t, err)
	h := c.Alloc(1)
	c.Free()
	c.Free()

	concurrentOps := map[string]func(){
		"Alloc":      func() { c.Alloc(2) },
		"TryAlloc":   func() { _, _ = c.TryAlloc(2) },
		"Get":        func() { c.Get(h) },
		"TryGet":     func() { c.TryGet(h) },
		"IsValid":    func() { c.IsValid(h) },
		"AsSlice":    func() { c.AsSlice() },
		"Len":        func() { c.Len() },
		"Cap":        func() { c.Cap() },
		"Checkpoint": func() { c.Checkpoint() },
		"Rollback":   func() { c.Rollback(CheckpointFromLen[int](0)) },
		"Reset":      func() { c.Reset() },
		"Grow":       func() { _ = c.Grow() },
		"GrowTo":     func() { _ = c.GrowTo(8) },
		"Drain":      func() { c.Drain() },
		"Values":     func() { c.Values() },
	}
	for name, op := range concurrentOps {
		t.Run("concurrent/"+name, func(t *testing.T) {
			assert.ErrorIs(t, panicErr(op), ErrArenaFreed)
		})
	}

	s := New[int](4)
	s.Alloc(1)
	s.Free()
	s.Free()

	sequentialOps := map[string]func(){
		"Alloc":   func() { s.Alloc(2) },
		"Get":     func() { s.Get(h) },
		"Len":     func() { s.Len() },
		"Reserve": func() { s.Reserve(1) },
		"Reset":   func() { s.Reset() },
		"Drain":   func() { s.Drain() },
		"All":     func() { s.All() },
	}
	for name, op := range sequentialOps {
		t.Run("sequential/"+name, func(t *testing.T) {
			assert.ErrorIs(t, panicErr(op), ErrArenaFreed)
		})
	}
}

func TestFreeDropsInReverseOrder(t *testing.T) {
	log := testutil.NewDropLog()

	c, err := NewConcurrent[item](8)
	require.NoError(t, err)
	s := New[item](8)
	for i := range 4 {
		c.Alloc(newItem(log, i, "c"))
	}
	c.Free()
	assert.Equal(t, []int{3, 2, 1, 0}, log.Order())

	log.Reset()
	for i := range 4 {
		s.Alloc(newItem(log, i, "s"))
	}
	s.Free()
	assert.Equal(t, []int{3, 2, 1, 0}, log.Order())
}

func TestFreeReleasesBudgetOfManyArenas(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})

	arenas := make([]*ConcurrentArena[int64], 0, 4)
	for range 4 {
		a, err := NewConcurrent[int64](128, WithMemoryAcquirer(rc))
		require.NoError(t, err)
		require.NoError(t, a.Grow())
		arenas = append(arenas, a)
	}
	assert.Positive(t, rc.MemoryUsage())

	var charged int64
	for _, a := range arenas {
		charged += a.Stats().FootprintBytes
	}
	assert.Equal(t, charged, rc.MemoryUsage())

	for _, a := range arenas {
		a.Free()
	}
	assert.Zero(t, rc.MemoryUsage())
	assert.Equal(t, charged, rc.PeakMemoryUsage())
}

// pointerDropper checks that pointer element types drop through their pointee.
type pointerDropper struct {
	dropped *int
}

func (p *pointerDropper) Drop() { *p.dropped++ }

func TestPointerElementsDrop(t *testing.T) {
	var n int
	a, err := NewConcurrent[*pointerDropper](4)
	require.NoError(t, err)
	a.Alloc(&pointerDropper{dropped: &n})
	a.Alloc(&pointerDropper{dropped: &n})

	a.Free()
	assert.Equal(t, 2, n)
}

func TestInterfaceElementsDrop(t *testing.T) {
	log := testutil.NewDropLog()
	a := New[any](0)
	a.Alloc(log.Track(1))
	a.Alloc("no drop")
	a.Alloc(log.Track(2))

	a.Reset()
	assert.Equal(t, []int{2, 1}, log.Order())
}
