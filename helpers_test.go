package fastbump

import (
	"github.com/stretchr/testify/mock"

	"github.com/hupe1980/fastbump/testutil"
)

// item embeds Tracked, so arenas of item drop through it.
type item struct {
	testutil.Tracked
	Name string
}

func newItem(log *testutil.DropLog, id int, name string) item {
	return item{Tracked: log.Track(id), Name: name}
}

// panicErr runs fn and returns the error it panicked with, or nil.
func panicErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

type mockAcquirer struct {
	mock.Mock
}

func (m *mockAcquirer) TryAcquireMemory(bytes int64) error {
	args := m.Called(bytes)
	return args.Error(0)
}

func (m *mockAcquirer) ReleaseMemory(bytes int64) {
	m.Called(bytes)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordGrow(oldCap, newCap int, err error) { m.Called(oldCap, newCap, err) }
func (m *mockMetrics) RecordRollback(dropped int)               { m.Called(dropped) }
func (m *mockMetrics) RecordReset(dropped int)                  { m.Called(dropped) }
func (m *mockMetrics) RecordDrain(count int)                    { m.Called(count) }
func (m *mockMetrics) RecordFree(dropped int)                   { m.Called(dropped) }
func (m *mockMetrics) RecordPressure(claimed, capacity int)     { m.Called(claimed, capacity) }
