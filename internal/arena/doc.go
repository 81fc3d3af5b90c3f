// Package arena provides the growable byte buffer behind a packed container.
//
// The arena owns one contiguous region and a logical length. Elements are
// appended at the end, moved with an overlap-safe shift when the container
// inserts or removes in the middle, and cut off by truncation.
//
// # Backing
//
// The region is either a 64-byte aligned heap slice (default) or an
// anonymous off-heap mapping (WithOffHeap). Growing past capacity moves the
// bytes to a new region: the base address changes, displacements do not.
//
// # Capacity
//
// Reserve/ReserveExact grow amortized or exactly and panic with an
// *AllocError on failure; TryReserve/TryReserveExact return that error
// instead. ShrinkToFit and ShrinkTo give surplus capacity back.
//
// # Budget
//
// An optional Budget (resource.Controller) is charged for every byte of
// capacity and credited when capacity is released or the arena is freed.
//
// # Safety
//
// An Arena is not safe for concurrent use. Addresses derived from Base are
// invalid after any call that may relocate, and for the off-heap backing the
// old pages are unmapped immediately.
package arena
