// Package conv provides safe integer conversion and capacity arithmetic.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between signed/unsigned integer types or when scaling slot
// counts into byte footprints.
//
// Use cases:
//   - Doubling and scaling arena capacities without silent wrap-around
//   - Converting between Go's int and the fixed-width counters in stats
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices bounded by a slice length), use direct type casts instead.
package conv
