package fastbump

import (
	"fmt"
	"sync/atomic"
)

// Stats is a point-in-time snapshot of an arena.
//
// Note on semantics:
//   - Len: published values
//   - Claimed: slots handed out, published or still being written
//   - Dropped: values destroyed by Rollback, Reset or Free
//   - Drained: values moved out by Drain or Consume
//   - FootprintBytes: slot storage charged to the memory acquirer
type Stats struct {
	Len            int
	Cap            int
	Claimed        int
	Grows          uint64
	Rollbacks      uint64
	Resets         uint64
	Dropped        uint64
	Drained        uint64
	FootprintBytes int64
	Freed          bool
}

// Usage returns Len as a percentage of Cap.
func (s Stats) Usage() float64 {
	if s.Cap == 0 {
		return 0
	}
	return float64(s.Len) / float64(s.Cap) * 100
}

type atomicStats struct {
	grows     atomic.Uint64
	rollbacks atomic.Uint64
	resets    atomic.Uint64
	dropped   atomic.Uint64
	drained   atomic.Uint64
}

func (s *atomicStats) load(into *Stats) {
	into.Grows = s.grows.Load()
	into.Rollbacks = s.rollbacks.Load()
	into.Resets = s.resets.Load()
	into.Dropped = s.dropped.Load()
	into.Drained = s.drained.Load()
}

func formatStats(kind, name string, st Stats) string {
	if st.Freed {
		if name != "" {
			return fmt.Sprintf("%s(%s){freed}", kind, name)
		}
		return kind + "{freed}"
	}
	label := kind
	if name != "" {
		label = fmt.Sprintf("%s(%s)", kind, name)
	}
	return fmt.Sprintf(
		"%s{len: %d, cap: %d, usage: %.1f%%, grows: %d, rollbacks: %d, resets: %d, dropped: %d}",
		label, st.Len, st.Cap, st.Usage(), st.Grows, st.Rollbacks, st.Resets, st.Dropped,
	)
}
