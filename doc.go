// Package polyvec provides heterogeneous contiguous containers for Go.
//
// A Vec[T] stores values of differing concrete types that all satisfy the
// interface T, packed back to back into a single growable arena instead of
// one heap allocation per boxed value. A Slices[E] does the same for []E
// runs of differing lengths.
//
// # Quick Start
//
//	v := polyvec.New[fmt.Stringer]()
//	polyvec.Push(v, Celsius{21.5})
//	polyvec.Push(v, Point{X: 1, Y: 2, Z: 3})
//
//	for _, s := range v.All() {
//	    fmt.Println(s)
//	}
//
// Runs:
//
//	s := polyvec.NewSlices[uint32]()
//	s.Push([]uint32{3, 3, 3})
//	s.Push([]uint32{10, 10})
//
// # Element Access
//
// Every element is read back through a view: a displacement relative to the
// arena base plus a descriptor. For Vec the descriptor is the dispatch
// table of *U for T, and the element comes back as a T whose dynamic value
// is a *U pointing into the arena. For Slices it is the run length, and the
// element comes back as a []E with len == cap.
//
// The arena may move whenever it grows or shrinks. Views only store
// relative displacements, so they survive relocation, but values obtained
// from At, All, Values or Backward do not: they are valid until the next
// mutation of the container.
//
// # Storable Types
//
// Only pointer-free types can be stored: booleans, numbers, and arrays and
// structs of those. A type holding strings, slices, maps, pointers,
// interfaces, funcs or channels would hide Go pointers from the garbage
// collector, so Push panics with an *UnsupportedTypeError.
//
// # Errors
//
// Push, Insert, Reserve and the capacity constructors panic with an
// *AllocError when memory cannot be obtained. TryReserve and friends return
// it instead. PushWithinCapacity returns a *RejectedError holding the value
// when there is not enough spare capacity. Out-of-range positions passed to
// Insert, Remove or At panic with an *IndexError.
//
// # Memory
//
//	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	v := polyvec.New[fmt.Stringer](
//	    polyvec.WithMemoryController(ctrl),
//	    polyvec.WithOffHeap(),
//	)
//	defer v.Free()
//
// Off-heap containers live outside the Go heap and are never scanned by the
// garbage collector; they must be released with Free.
package polyvec
