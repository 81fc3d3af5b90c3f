// Package view holds the per-element records of a packed container and turns
// them back into usable values.
//
// A View is {displacement, descriptor}: where an element starts relative to
// the arena base, and how to reinterpret its bytes. Displacements are
// relative on purpose. The arena may move to a new address whenever it grows,
// so an absolute address is computed on every access from the base the
// arena reports at that moment, and never stored.
//
// Two descriptor kinds exist:
//
//   - Dispatch[T]: the dispatch table of a concrete *U for interface T
//   - Run[E]: the element count of a []E run
package view
