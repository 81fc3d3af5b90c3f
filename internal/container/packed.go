package container

import (
	"bytes"
	"iter"

	"github.com/hupe1980/polyvec/internal/arena"
	"github.com/hupe1980/polyvec/internal/bitmap"
	"github.com/hupe1980/polyvec/internal/conv"
	"github.com/hupe1980/polyvec/internal/view"
)

// Packed stores elements of differing footprints back to back in one arena.
// R is the type elements are read back as; D describes how.
type Packed[R any, D view.Descriptor[R]] struct {
	arena *arena.Arena
	views view.Index[D]
}

// New creates a container over a, with room for n views.
func New[R any, D view.Descriptor[R]](a *arena.Arena, n int) *Packed[R, D] {
	return &Packed[R, D]{
		arena: a,
		views: view.NewIndex[D](n),
	}
}

// Arena returns the underlying arena.
func (p *Packed[R, D]) Arena() *arena.Arena {
	return p.arena
}

// Len returns the number of elements.
func (p *Packed[R, D]) Len() int {
	return p.views.Len()
}

// ViewCap returns how many elements the view index holds without growing.
func (p *Packed[R, D]) ViewCap() int {
	return p.views.Cap()
}

// GrowViews ensures room for n more views.
func (p *Packed[R, D]) GrowViews(n int) {
	p.views.Grow(n)
}

// detach returns src, or a copy of it when src points into the arena.
// Growth may unmap the old region and Insert shifts bytes before writing,
// so bytes taken from the container itself must be copied out first.
func (p *Packed[R, D]) detach(src []byte) []byte {
	if p.arena.Overlaps(src) {
		return bytes.Clone(src)
	}
	return src
}

// Push appends an element. src is copied to the end of the arena and
// zero-padded to footprint bytes. Existing displacements never change.
// src may alias an element of the container.
func (p *Packed[R, D]) Push(src []byte, footprint int, desc D) {
	src = p.detach(src)
	at := p.arena.Append(src, footprint)
	p.views.Append(view.View[D]{Disp: at, Desc: desc})
}

// PushWithinCapacity is like Push but reports false, leaving the container
// untouched, when the arena lacks footprint spare bytes.
func (p *Packed[R, D]) PushWithinCapacity(src []byte, footprint int, desc D) bool {
	if p.arena.Spare() < footprint {
		return false
	}
	p.Push(src, footprint, desc)
	return true
}

// Insert places an element at position index, shifting the bytes and views
// of every later element up by footprint. src may alias an element of the
// container.
func (p *Packed[R, D]) Insert(index int, src []byte, footprint int, desc D) {
	n := p.views.Len()
	if index < 0 || index > n {
		panic(&IndexError{Op: OpInsert, Index: index, Len: n})
	}
	src = p.detach(src)
	if index == n {
		p.Push(src, footprint, desc)
		return
	}

	p.arena.Reserve(footprint)
	at := p.views.At(index).Disp
	tail := p.arena.Len() - at
	p.arena.Extend(footprint)
	p.arena.Shift(at, at+footprint, tail)
	p.arena.Write(at, src, footprint)

	p.views.Insert(index, view.View[D]{Disp: at, Desc: desc})
	p.views.Rebase(index+1, footprint)
}

// Remove deletes the element at position index and closes the gap.
// It returns the number of arena bytes released.
func (p *Packed[R, D]) Remove(index int) int {
	n := p.views.Len()
	if index < 0 || index >= n {
		panic(&IndexError{Op: OpRemove, Index: index, Len: n})
	}

	at := p.views.At(index).Disp
	end := p.views.End(index, p.arena.Len())
	size := end - at

	p.arena.Shift(end, at, p.arena.Len()-end)
	p.arena.Truncate(p.arena.Len() - size)

	p.views.Remove(index)
	p.views.Rebase(index, -size)
	return size
}

// RemoveSet deletes every element whose position is in set, compacting the
// survivors in a single pass. It returns the number of elements removed.
func (p *Packed[R, D]) RemoveSet(set *bitmap.Set) int {
	if set.IsEmpty() {
		return 0
	}
	n := p.views.Len()
	if last, err := conv.Uint32ToInt(set.Maximum()); err != nil || last >= n {
		panic(&IndexError{Op: OpRemove, Index: last, Len: n})
	}

	first := int(set.Minimum())
	write := p.views.At(first).Disp
	out := first
	for i := first; i < n; i++ {
		v := p.views.At(i)
		// End reads the view at i+1, which the compaction has not overwritten yet.
		size := p.views.End(i, p.arena.Len()) - v.Disp
		if pos, err := conv.IntToUint32(i); err == nil && set.Contains(pos) {
			continue
		}
		p.arena.Shift(v.Disp, write, size)
		v.Disp = write
		p.views.Set(out, v)
		out++
		write += size
	}

	p.views.Truncate(out)
	p.arena.Truncate(write)
	return n - out
}

// Truncate keeps the first n elements. The arena is cut at the start of the
// first discarded element. It has no effect if n >= Len.
func (p *Packed[R, D]) Truncate(n int) {
	if n < 0 || n >= p.views.Len() {
		return
	}
	if n == 0 {
		p.Clear()
		return
	}
	cut := p.views.At(n).Disp
	p.views.Truncate(n)
	p.arena.Truncate(cut)
}

// Clear removes all elements but keeps the capacity.
func (p *Packed[R, D]) Clear() {
	p.views.Truncate(0)
	p.arena.Reset()
}

// Free removes all elements and releases the arena and the view storage.
// The container stays usable.
func (p *Packed[R, D]) Free() {
	p.views.Truncate(0)
	p.views.ShrinkToFit()
	p.arena.Free()
}

// ShrinkViews releases unused view slots.
func (p *Packed[R, D]) ShrinkViews() {
	p.views.ShrinkToFit()
}

// Footprint returns the number of arena bytes the element at index occupies.
func (p *Packed[R, D]) Footprint(index int) int {
	p.check(index)
	return p.views.End(index, p.arena.Len()) - p.views.At(index).Disp
}

// Displacement returns the offset of the element at index from the arena base.
func (p *Packed[R, D]) Displacement(index int) int {
	p.check(index)
	return p.views.At(index).Disp
}

// At materializes the element at index against the current arena base.
func (p *Packed[R, D]) At(index int) R {
	p.check(index)
	v := p.views.At(index)
	return v.Desc.Materialize(v.Resolve(p.arena.Base()))
}

// All returns an iterator over positions and elements in order. The element
// count is fixed when iteration starts and each element is resolved against
// the arena base at the moment it is produced.
func (p *Packed[R, D]) All() iter.Seq2[int, R] {
	return func(yield func(int, R) bool) {
		n := p.views.Len()
		for i := 0; i < n; i++ {
			v := p.views.At(i)
			if !yield(i, v.Desc.Materialize(v.Resolve(p.arena.Base()))) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (p *Packed[R, D]) Values() iter.Seq[R] {
	return func(yield func(R) bool) {
		for _, r := range p.All() {
			if !yield(r) {
				return
			}
		}
	}
}

// Backward returns an iterator over positions and elements in reverse order.
func (p *Packed[R, D]) Backward() iter.Seq2[int, R] {
	return func(yield func(int, R) bool) {
		for i := p.views.Len() - 1; i >= 0; i-- {
			v := p.views.At(i)
			if !yield(i, v.Desc.Materialize(v.Resolve(p.arena.Base()))) {
				return
			}
		}
	}
}

func (p *Packed[R, D]) check(index int) {
	if n := p.views.Len(); index < 0 || index >= n {
		panic(&IndexError{Op: OpAccess, Index: index, Len: n})
	}
}
