// Package resource implements a memory budget shared by one or more arenas.
//
// Arenas charge the byte footprint of their slot storage to a Controller when
// they are created and when they grow, and give it back when they are freed.
// A Controller with a hard limit makes growth fail fast instead of letting a
// runaway workload exhaust the process:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64 MiB across all arenas
//	})
//
//	a, err := fastbump.NewConcurrent[Node](1024, fastbump.WithMemoryAcquirer(rc))
//	if err != nil {
//	    // ErrMemoryLimitExceeded - initial storage did not fit
//	}
//	if err := a.Grow(); errors.Is(err, resource.ErrMemoryLimitExceeded) {
//	    // arena unchanged; caller decides what to discard
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. Hard limits use a
// weighted semaphore; usage is tracked with an atomic counter.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional budgeting without nil checks everywhere.
package resource
