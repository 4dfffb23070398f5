// Package testutil provides testing utilities for fastbump.
//
// This package is intended for use in tests and benchmarks only.
// It provides values that record when they are dropped, and a seeded,
// goroutine-safe RNG for generating reproducible operation histories.
//
// # Drop Tracking
//
//	log := testutil.NewDropLog()
//	a := fastbump.New[testutil.Tracked](0)
//	a.Alloc(log.Track(1))
//	a.Reset()
//	log.Order() // [1]
//
// # Random Histories
//
//	rng := testutil.NewRNG(seed)
//	n := rng.Intn(10)
package testutil
