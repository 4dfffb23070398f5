// Package slots provides the typed slot storage behind the arenas.
//
// A Storage is a fixed-capacity run of value cells with one readiness flag per
// cell. It knows nothing about claiming or publishing; the concurrent arena
// layers its cursor and published boundary on top and relies on the flags to
// learn which claimed cells have been fully written.
//
// # Lifecycle of a cell
//
//   - zero value until claimed
//   - holds a live value from Fill until Destroy, Take or Release
//   - Destroy runs the element's Drop method (if any) and zeroes the cell
//   - Relocate moves live cells into a larger Storage without dropping them
//
// Storage is not synchronized. Fill, IsReady and Cell may be used concurrently
// on distinct cells; everything else requires exclusive access.
package slots
