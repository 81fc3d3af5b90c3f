package view

import "unsafe"

// View records one stored element.
type View[D any] struct {
	// Disp is the byte offset of the element from the arena base.
	Disp int
	// Desc reinterprets the bytes at Disp.
	Desc D
}

// Resolve returns the absolute address of the element for the given base.
// base must be the arena base at the time of the call.
func (v View[D]) Resolve(base unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(base, v.Disp) //nolint:gosec // displacement is bounded by the arena length
}

// Index is the ordered sequence of views. Its length is the logical element
// count; for i < j, element i's byte range precedes element j's.
type Index[D any] struct {
	views []View[D]
}

// NewIndex creates an index with room for n views.
func NewIndex[D any](n int) Index[D] {
	if n <= 0 {
		return Index[D]{}
	}
	return Index[D]{views: make([]View[D], 0, n)}
}

// Len returns the number of views.
func (x *Index[D]) Len() int {
	return len(x.views)
}

// Cap returns the number of views the index can hold without growing.
func (x *Index[D]) Cap() int {
	return cap(x.views)
}

// At returns the i-th view.
func (x *Index[D]) At(i int) View[D] {
	return x.views[i]
}

// End returns the displacement one past the i-th element: the next
// element's displacement, or arenaLen for the last element.
func (x *Index[D]) End(i, arenaLen int) int {
	if i+1 < len(x.views) {
		return x.views[i+1].Disp
	}
	return arenaLen
}

// Append adds a view at the end.
func (x *Index[D]) Append(v View[D]) {
	x.views = append(x.views, v)
}

// Insert places v at position i, moving later views up by one.
func (x *Index[D]) Insert(i int, v View[D]) {
	var zero View[D]
	x.views = append(x.views, zero)
	copy(x.views[i+1:], x.views[i:])
	x.views[i] = v
}

// Remove deletes the view at position i.
func (x *Index[D]) Remove(i int) {
	copy(x.views[i:], x.views[i+1:])
	var zero View[D]
	x.views[len(x.views)-1] = zero
	x.views = x.views[:len(x.views)-1]
}

// Rebase adds delta to the displacement of every view from position i on.
func (x *Index[D]) Rebase(i, delta int) {
	for j := i; j < len(x.views); j++ {
		x.views[j].Disp += delta
	}
}

// Set overwrites the view at position i.
func (x *Index[D]) Set(i int, v View[D]) {
	x.views[i] = v
}

// Truncate drops every view from position n on.
func (x *Index[D]) Truncate(n int) {
	if n >= len(x.views) {
		return
	}
	clear(x.views[n:])
	x.views = x.views[:n]
}

// Grow ensures room for n more views.
func (x *Index[D]) Grow(n int) {
	if n <= 0 || cap(x.views)-len(x.views) >= n {
		return
	}
	grown := make([]View[D], len(x.views), len(x.views)+n)
	copy(grown, x.views)
	x.views = grown
}

// ShrinkToFit releases unused view slots.
func (x *Index[D]) ShrinkToFit() {
	if cap(x.views) == len(x.views) {
		return
	}
	if len(x.views) == 0 {
		x.views = nil
		return
	}
	shrunk := make([]View[D], len(x.views))
	copy(shrunk, x.views)
	x.views = shrunk
}
