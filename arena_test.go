package fastbump

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastbump/testutil"
)

func TestArena_AllocGet(t *testing.T) {
	a := New[string](0)
	assert.True(t, a.IsEmpty())

	h0 := a.Alloc("a")
	h1 := a.Alloc("b")

	assert.Equal(t, 0, h0.Raw())
	assert.Equal(t, 1, h1.Raw())
	assert.Equal(t, "a", *a.Get(h0))
	assert.Equal(t, "b", *a.Get(h1))
	assert.Equal(t, 2, a.Len())

	*a.GetMut(h0) = "A"
	assert.Equal(t, "A", *a.Get(h0))
}

func TestArena_NeverFull(t *testing.T) {
	a := New[int](2)
	for i := range 100 {
		a.Alloc(i)
	}
	assert.Equal(t, 100, a.Len())
	assert.GreaterOrEqual(t, a.Cap(), 100)
}

func TestArena_GetOutOfBounds(t *testing.T) {
	a := New[int](4)
	a.Alloc(1)

	err := panicErr(func() { a.Get(IdxFromRaw[int](3)) })
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	assert.EqualError(t, err, "index out of bounds: index is 3 but length is 1")

	_, ok := a.TryGet(IdxFromRaw[int](1))
	assert.False(t, ok)
	_, ok = a.TryGetMut(IdxFromRaw[int](-2))
	assert.False(t, ok)
	assert.True(t, a.IsValid(IdxFromRaw[int](0)))
}

func TestArena_RollbackScenario(t *testing.T) {
	log := testutil.NewDropLog()
	a := New[item](4)

	h0 := a.Alloc(newItem(log, 0, "a"))
	cp := a.Checkpoint()
	h1 := a.Alloc(newItem(log, 1, "b"))
	h2 := a.Alloc(newItem(log, 2, "c"))

	a.Rollback(cp)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, "a", a.Get(h0).Name)
	assert.False(t, a.IsValid(h1))
	assert.False(t, a.IsValid(h2))
	assert.Equal(t, []int{2, 1}, log.Order())

	a.Free()
	assert.Equal(t, []int{2, 1, 0}, log.Order())
}

func TestArena_InvalidCheckpoint(t *testing.T) {
	a := New[int](4)
	a.Alloc(1)
	cp := a.Checkpoint()
	a.Reset()

	err := panicErr(func() { a.Rollback(cp) })
	require.ErrorIs(t, err, ErrInvalidCheckpoint)
	assert.EqualError(t, err, "invalid checkpoint: checkpoint 1 beyond current length 0")
}

func TestArena_ResetKeepsCapacity(t *testing.T) {
	log := testutil.NewDropLog()
	a := New[item](8)
	for i := range 3 {
		a.Alloc(newItem(log, i, "x"))
	}

	a.Reset()

	assert.True(t, a.IsEmpty())
	assert.Equal(t, 8, a.Cap())
	assert.Equal(t, []int{2, 1, 0}, log.Order())
	assert.Equal(t, uint64(3), a.Stats().Dropped)
}

func TestArena_ReserveShrink(t *testing.T) {
	a := New[int](0)
	a.Reserve(32)
	assert.GreaterOrEqual(t, a.Cap(), 32)

	a.Alloc(1)
	a.Alloc(2)
	a.ShrinkToFit()
	assert.Equal(t, 2, a.Cap())
	assert.Equal(t, 2, *a.Get(IdxFromRaw[int](1)))

	a.Reserve(0)
	assert.Equal(t, 2, a.Cap())
}

func TestArena_AllocExtend(t *testing.T) {
	a := New[int](0)
	a.Alloc(0)

	first, ok := a.AllocExtend(slices.Values([]int{1, 2}))
	require.True(t, ok)
	assert.Equal(t, 1, first.Raw())

	_, ok = a.AllocExtend(slices.Values([]int{}))
	assert.False(t, ok)

	a.Extend(slices.Values([]int{3}))
	assert.Equal(t, []int{0, 1, 2, 3}, slices.Collect(func(yield func(int) bool) {
		for v := range a.Values() {
			if !yield(*v) {
				return
			}
		}
	}))
}

func TestArena_Iteration(t *testing.T) {
	a := Collect(slices.Values([]string{"x", "y", "z"}))

	for v := range a.ValuesMut() {
		*v += "1"
	}

	var got []string
	for h, v := range a.All() {
		assert.Equal(t, v, a.Get(h))
		got = append(got, *v)
	}
	assert.Equal(t, []string{"x1", "y1", "z1"}, got)

	for h, v := range a.AllMut() {
		if h.Raw() == 2 {
			*v = "Z"
		}
	}
	assert.Equal(t, "Z", *a.Get(IdxFromRaw[string](2)))
}

func TestArena_DrainAndConsume(t *testing.T) {
	log := testutil.NewDropLog()
	a := New[item](4)
	for i := range 3 {
		a.Alloc(newItem(log, i, "x"))
	}

	out := a.Drain()
	require.Len(t, out, 3)
	assert.Zero(t, log.Count())
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 4, a.Cap())

	for i := range 3 {
		a.Alloc(newItem(log, 10+i, "y"))
	}
	for v := range a.Consume() {
		assert.Equal(t, 10, v.ID)
		break
	}
	assert.Equal(t, []int{12, 11}, log.Order())
	assert.ErrorIs(t, panicErr(func() { a.Alloc(item{}) }), ErrArenaFreed)
}

func TestArena_Metrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	a := New[int](0, WithMetricsCollector(mc))

	a.Alloc(1)
	a.Alloc(2)
	a.Rollback(CheckpointFromLen[int](1))
	a.Drain()
	a.Alloc(3)
	a.Reset()
	a.Free()

	st := mc.GetStats()
	assert.Equal(t, int64(1), st.RollbackCount)
	assert.Equal(t, int64(1), st.DrainCount)
	assert.Equal(t, int64(1), st.DrainedValues)
	assert.Equal(t, int64(1), st.ResetCount)
	assert.Equal(t, int64(1), st.FreeCount)
	assert.Equal(t, int64(2), st.DroppedValues)
}

func TestArena_String(t *testing.T) {
	a := New[int](4)
	a.Alloc(1)
	assert.Equal(t,
		"Arena{len: 1, cap: 4, usage: 25.0%, grows: 0, rollbacks: 0, resets: 0, dropped: 0}",
		a.String(),
	)
}

func TestArena_ReserveOverflow(t *testing.T) {
	a := New[int](0)
	a.Alloc(1)

	err := panicErr(func() { a.Reserve(math.MaxInt) })
	require.ErrorIs(t, err, ErrCapacityOverflow)
	assert.Equal(t, 1, a.Len())
}
