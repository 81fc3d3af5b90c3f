// Package container implements the packed heterogeneous container engine.
//
// Packed composes an arena with a view index. Every element occupies one
// contiguous region of the arena; its view records where the region starts
// relative to the arena base and how to reinterpret the bytes. The public
// polyvec types wrap Packed with a concrete descriptor kind.
//
// # Addressing
//
// Reads walk the view index and resolve each element against the arena base
// of that moment. Nothing ever stores an absolute address, so growth that
// moves the arena leaves every view valid.
//
// # Contract Violations
//
// Out-of-range positions passed to Insert, Remove or At are programming
// errors. They panic with an *IndexError carrying the position and the
// length, the same way a slice index out of range panics.
package container
