package polyvec

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/hupe1980/polyvec/internal/layout"
	"github.com/hupe1980/polyvec/internal/view"
)

// Slices is a growable sequence of []E runs of differing lengths, packed
// back to back into one arena. Elements are read back as []E with
// len == cap, so appending to a returned run copies it instead of
// overwriting the next run.
//
// A Slices is not safe for concurrent use.
type Slices[E any] struct {
	core[[]E, view.Run[E]]
	elem layout.Layout
}

// NewSlices creates an empty Slices. It panics with an
// *UnsupportedTypeError if E holds Go pointers.
func NewSlices[E any](opts ...Option) *Slices[E] {
	return newSlices[E](0, 0, applyOptions(opts))
}

// SlicesWithCapacity creates an empty Slices with room for runs runs of
// elemsPerRun elements each without growing.
func SlicesWithCapacity[E any](runs, elemsPerRun int, opts ...Option) *Slices[E] {
	o := applyOptions(opts)
	l := elemLayout[E]()
	fp := o.footprint.Reserve(mulSat(elemsPerRun, l.Size), l.Align)
	return newSlices[E](runs, mulSat(runs, fp), o)
}

// SlicesWithRawCapacity creates an empty Slices with room for runs views
// and rawBytes arena bytes.
func SlicesWithRawCapacity[E any](runs, rawBytes int, opts ...Option) *Slices[E] {
	return newSlices[E](runs, rawBytes, applyOptions(opts))
}

func newSlices[E any](runs, rawBytes int, o options) *Slices[E] {
	l := elemLayout[E]()
	return &Slices[E]{
		core: newCore[[]E, view.Run[E]]("slices", reflect.SliceOf(l.Type), runs, rawBytes, o),
		elem: l,
	}
}

func elemLayout[E any]() layout.Layout {
	return layout.Must(reflect.TypeFor[E]())
}

// footprint returns the arena bytes a run of n elements occupies.
func (s *Slices[E]) footprint(n int) int {
	return s.opts.footprint.Reserve(mulSat(n, s.elem.Size), s.elem.Align)
}

func (s *Slices[E]) bytes(run []E) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(run))), len(run)*s.elem.Size) //nolint:gosec // E is pointer-free
}

// Push appends a copy of run. It panics with an *AllocError if growth fails.
func (s *Slices[E]) Push(run []E) {
	s.c.Push(s.bytes(run), s.footprint(len(run)), view.Run[E]{Count: len(run)})
}

// PushWithinCapacity appends a copy of run only if the arena has enough
// spare capacity. Otherwise s is unchanged and a *RejectedError holding run
// is returned; it matches ErrNoSpareCapacity.
func (s *Slices[E]) PushWithinCapacity(run []E) error {
	fp := s.footprint(len(run))
	if !s.c.PushWithinCapacity(s.bytes(run), fp, view.Run[E]{Count: len(run)}) {
		return &RejectedError[[]E]{Value: run, Need: fp, Spare: s.Spare()}
	}
	return nil
}

// Insert places a copy of run at index, shifting later runs up.
// It panics with an *IndexError if index > Len.
func (s *Slices[E]) Insert(index int, run []E) {
	s.c.Insert(index, s.bytes(run), s.footprint(len(run)), view.Run[E]{Count: len(run)})
}

// CapacityRuns returns how many runs of elemsPerRun elements fit into the
// arena capacity.
func (s *Slices[E]) CapacityRuns(elemsPerRun int) int {
	return s.Capacity() / s.footprint(elemsPerRun)
}

// ReserveRuns ensures room for at least runs more runs of elemsPerRun
// elements. It panics with an *AllocError on failure.
func (s *Slices[E]) ReserveRuns(runs, elemsPerRun int) {
	s.Reserve(mulSat(runs, s.footprint(elemsPerRun)))
	s.c.GrowViews(runs)
}

// TryReserveRuns is like ReserveRuns but returns an *AllocError on failure.
func (s *Slices[E]) TryReserveRuns(runs, elemsPerRun int) error {
	if err := s.TryReserve(mulSat(runs, s.footprint(elemsPerRun))); err != nil {
		return err
	}
	s.c.GrowViews(runs)
	return nil
}

// Flatten returns an iterator over every element of every run in order.
func (s *Slices[E]) Flatten() iter.Seq[E] {
	return func(yield func(E) bool) {
		for run := range s.Values() {
			for _, e := range run {
				if !yield(e) {
					return
				}
			}
		}
	}
}
