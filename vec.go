package polyvec

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/hupe1980/polyvec/internal/layout"
	"github.com/hupe1980/polyvec/internal/view"
)

// Vec is a growable sequence of values of differing concrete types that all
// satisfy the interface T. Values are copied into one contiguous arena;
// there is no per-element allocation.
//
// Elements are read back as T values whose dynamic type is *U, pointing
// into the arena. Methods with pointer receivers therefore mutate the
// stored element in place.
//
// A Vec is not safe for concurrent use. Any number of readers or a single
// writer may access it at a time.
type Vec[T any] struct {
	core[T, view.Dispatch[T]]
}

// New creates an empty Vec. It panics with an *UnsupportedTypeError if T is
// not an interface type.
func New[T any](opts ...Option) *Vec[T] {
	return newVec[T](0, 0, applyOptions(opts))
}

// WithCapacity creates an empty Vec with room for count values of type U
// without growing. The arena size is an estimate: the true footprint
// depends on the concrete types eventually pushed. It panics with an
// *AllocError if the memory cannot be obtained.
func WithCapacity[T, U any](count int, opts ...Option) *Vec[T] {
	o := applyOptions(opts)
	d := dispatchOf[T, U]()
	return newVec[T](count, mulSat(count, o.footprint.Of(d.Layout)), o)
}

// WithRawCapacity creates an empty Vec with room for count views and
// rawBytes arena bytes.
func WithRawCapacity[T any](count, rawBytes int, opts ...Option) *Vec[T] {
	return newVec[T](count, rawBytes, applyOptions(opts))
}

func newVec[T any](count, rawBytes int, o options) *Vec[T] {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		panic(&UnsupportedTypeError{Type: t, Reason: "container element type must be an interface"})
	}
	return &Vec[T]{
		core: newCore[T, view.Dispatch[T]]("vec", t, count, rawBytes, o),
	}
}

var dispatches sync.Map // [2]reflect.Type{T, U} -> view.Dispatch[T]

// dispatchOf returns the cached descriptor for storing a U behind T.
// It panics with an *UnsupportedTypeError if U cannot be stored.
func dispatchOf[T, U any]() view.Dispatch[T] {
	key := [2]reflect.Type{reflect.TypeFor[T](), reflect.TypeFor[U]()}
	if d, ok := dispatches.Load(key); ok {
		return d.(view.Dispatch[T])
	}
	d, err := view.DispatchFor[T, U]()
	if err != nil {
		panic(err)
	}
	dispatches.Store(key, d)
	return d
}

// bytesOf returns the in-memory representation of *p.
func bytesOf[U any](p *U, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), size) //nolint:gosec // U is pointer-free, checked by layout
}

// Push appends value to v. The bytes of value are copied; the caller's
// copy is not retained. Push never moves existing elements relative to
// each other, but may relocate the arena.
//
// It panics with an *UnsupportedTypeError if *U does not implement T or U
// holds Go pointers, and with an *AllocError if growth fails.
func Push[T, U any](v *Vec[T], value U) {
	d := dispatchOf[T, U]()
	v.c.Push(bytesOf(&value, d.Layout.Size), v.reserve(d.Layout), d)
}

// PushWithinCapacity appends value only if the arena has enough spare
// capacity for it. Otherwise v is unchanged and a *RejectedError holding
// value is returned; it matches ErrNoSpareCapacity.
func PushWithinCapacity[T, U any](v *Vec[T], value U) error {
	d := dispatchOf[T, U]()
	fp := v.reserve(d.Layout)
	if !v.c.PushWithinCapacity(bytesOf(&value, d.Layout.Size), fp, d) {
		return &RejectedError[U]{Value: value, Need: fp, Spare: v.Spare()}
	}
	return nil
}

// Insert places value at index, shifting later elements up.
// It panics with an *IndexError if index > Len.
func Insert[T, U any](v *Vec[T], index int, value U) {
	d := dispatchOf[T, U]()
	v.c.Insert(index, bytesOf(&value, d.Layout.Size), v.reserve(d.Layout), d)
}

// FootprintOf returns the number of arena bytes a U occupies in v.
func FootprintOf[U, T any](v *Vec[T]) int {
	return v.reserve(dispatchOf[T, U]().Layout)
}

// CapacityFor returns how many values of type U fit into the arena
// capacity of v.
func CapacityFor[U, T any](v *Vec[T]) int {
	return v.Capacity() / FootprintOf[U](v)
}

// ReserveFor ensures room for at least count more values of type U.
func ReserveFor[U, T any](v *Vec[T], count int) {
	v.Reserve(mulSat(count, FootprintOf[U](v)))
	v.c.GrowViews(count)
}

// ReserveExactFor ensures room for exactly count more values of type U.
func ReserveExactFor[U, T any](v *Vec[T], count int) {
	v.ReserveExact(mulSat(count, FootprintOf[U](v)))
	v.c.GrowViews(count)
}

// TryReserveFor is like ReserveFor but returns an *AllocError on failure.
func TryReserveFor[U, T any](v *Vec[T], count int) error {
	if err := v.TryReserve(mulSat(count, FootprintOf[U](v))); err != nil {
		return err
	}
	v.c.GrowViews(count)
	return nil
}

// TryReserveExactFor is like ReserveExactFor but returns an *AllocError on
// failure.
func TryReserveExactFor[U, T any](v *Vec[T], count int) error {
	if err := v.TryReserveExact(mulSat(count, FootprintOf[U](v))); err != nil {
		return err
	}
	v.c.GrowViews(count)
	return nil
}

// ShrinkToFor releases capacity down to room for count values of type U,
// or the stored bytes if more.
func ShrinkToFor[U, T any](v *Vec[T], count int) {
	v.ShrinkTo(mulSat(count, FootprintOf[U](v)))
}

// Layout returns the size and alignment of U as seen by polyvec.
// It returns an *UnsupportedTypeError if U cannot be stored.
func Layout[U any]() (size, align int, err error) {
	l, err := layout.For[U]()
	if err != nil {
		return 0, 0, err
	}
	return l.Size, l.Align, nil
}
