package view

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/hupe1980/polyvec/internal/layout"
)

// Dispatch is the capability descriptor for an interface-typed container.
//
// It holds a prototype T whose dynamic type is *U and whose data word is
// nil; the itab inside is the dispatch table. Materialize copies the
// prototype and points its data word at the element's bytes.
type Dispatch[T any] struct {
	proto  T
	Layout layout.Layout
}

// iface mirrors the two-word representation shared by every Go interface
// value: a type or itab word followed by a data word.
type iface struct {
	tab  unsafe.Pointer
	data unsafe.Pointer
}

// DispatchFor captures the descriptor for storing a U behind interface T.
// It returns an *layout.UnsupportedTypeError if T is not an interface, *U
// does not implement T, or U is not storable.
func DispatchFor[T, U any]() (Dispatch[T], error) {
	tt := reflect.TypeFor[T]()
	ut := reflect.TypeFor[U]()
	if tt.Kind() != reflect.Interface {
		return Dispatch[T]{}, &layout.UnsupportedTypeError{
			Type:   tt,
			Reason: "container element type must be an interface",
		}
	}

	proto, ok := any((*U)(nil)).(T)
	if !ok {
		return Dispatch[T]{}, &layout.UnsupportedTypeError{
			Type:   ut,
			Reason: fmt.Sprintf("*%v does not implement %v", ut, tt),
		}
	}

	l, err := layout.Of(ut)
	if err != nil {
		return Dispatch[T]{}, err
	}

	return Dispatch[T]{proto: proto, Layout: l}, nil
}

// Materialize returns a T whose dynamic value is a *U pointing at p.
func (d Dispatch[T]) Materialize(p unsafe.Pointer) T {
	t := d.proto
	(*iface)(unsafe.Pointer(&t)).data = p //nolint:gosec // T is an interface, checked in DispatchFor
	return t
}

// Run is the capability descriptor for a run of E values.
type Run[E any] struct {
	Count int
}

// Materialize returns the run stored at p. The result has len == cap so an
// append on it reallocates instead of overwriting the next element.
func (r Run[E]) Materialize(p unsafe.Pointer) []E {
	return unsafe.Slice((*E)(p), r.Count) //nolint:gosec // p addresses Count elements inside the arena
}

// Descriptor turns the bytes at an address back into an R.
type Descriptor[R any] interface {
	Materialize(p unsafe.Pointer) R
}
