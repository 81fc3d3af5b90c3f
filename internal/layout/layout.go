package layout

import (
	"fmt"
	"reflect"
	"sync"
)

// Granule is the unit every footprint is rounded to. It is at least the
// alignment of every storable Go type.
const Granule = 8

// Layout describes a storable concrete type.
type Layout struct {
	Type  reflect.Type
	Size  int
	Align int
}

// UnsupportedTypeError reports a type that cannot be stored in an arena.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("polyvec: cannot store %v: %s", e.Type, e.Reason)
}

var cache sync.Map // reflect.Type -> Layout or *UnsupportedTypeError

// Of returns the layout of t, or an *UnsupportedTypeError if values of t
// hold Go pointers or are otherwise unsuitable for raw byte storage.
func Of(t reflect.Type) (Layout, error) {
	if t == nil {
		return Layout{}, &UnsupportedTypeError{Reason: "nil type"}
	}
	if v, ok := cache.Load(t); ok {
		switch v := v.(type) {
		case Layout:
			return v, nil
		case *UnsupportedTypeError:
			return Layout{}, v
		}
	}

	l, err := compute(t)
	if err != nil {
		cache.Store(t, err)
		return Layout{}, err
	}
	cache.Store(t, l)
	return l, nil
}

// For returns the layout of U.
func For[U any]() (Layout, error) {
	return Of(reflect.TypeFor[U]())
}

// Must is like Of but panics with the *UnsupportedTypeError.
func Must(t reflect.Type) Layout {
	l, err := Of(t)
	if err != nil {
		panic(err)
	}
	return l
}

func compute(t reflect.Type) (Layout, error) {
	if path, ok := pointerPath(t); ok {
		return Layout{}, &UnsupportedTypeError{
			Type:   t,
			Reason: fmt.Sprintf("contains Go pointers (%s)", path),
		}
	}

	align := t.Align()
	if align > Granule {
		return Layout{}, &UnsupportedTypeError{
			Type:   t,
			Reason: fmt.Sprintf("alignment %d exceeds the %d-byte granule", align, Granule),
		}
	}

	return Layout{Type: t, Size: int(t.Size()), Align: align}, nil
}

// pointerPath reports whether values of t may hold a pointer, and where.
func pointerPath(t reflect.Type) (string, bool) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "", false
	case reflect.Array:
		if t.Len() == 0 {
			return "", false
		}
		if path, ok := pointerPath(t.Elem()); ok {
			return "[]" + path, true
		}
		return "", false
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if path, ok := pointerPath(f.Type); ok {
				return f.Name + "." + path, true
			}
		}
		return "", false
	default:
		return t.Kind().String(), true
	}
}
