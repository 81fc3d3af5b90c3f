package polyvec

import (
	"fmt"
	"unsafe"
)

type celsius struct {
	Deg float64
}

func (c *celsius) String() string { return fmt.Sprintf("%.1f°C", c.Deg) }

type counter int32

func (c *counter) String() string { return fmt.Sprintf("#%d", int32(*c)) }

type flag uint8

func (f flag) String() string { return fmt.Sprintf("flag(%d)", uint8(f)) }

type point struct {
	X, Y, Z int64
}

func (p *point) String() string { return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z) }

// keyed values carry a key so tests can compare them with a reference.
type keyed interface {
	Key() uint64
	Bump()
}

type small struct{ K uint64 }

func (s *small) Key() uint64 { return s.K }
func (s *small) Bump()       { s.K++ }

type pair struct {
	A uint32
	B uint32
	K uint64
}

func (p *pair) Key() uint64 { return p.K }
func (p *pair) Bump()       { p.K++ }

type wide struct {
	Pad [5]uint64
	K   uint64
}

func (w *wide) Key() uint64 { return w.K }
func (w *wide) Bump()       { w.K++ }

// pushKeyed stores a value of one of three shapes chosen by k.
func pushKeyed(v *Vec[keyed], k uint64) {
	switch k % 3 {
	case 0:
		Push(v, small{K: k})
	case 1:
		Push(v, pair{A: 1, B: 2, K: k})
	default:
		Push(v, wide{K: k})
	}
}

func insertKeyed(v *Vec[keyed], i int, k uint64) {
	switch k % 3 {
	case 0:
		Insert(v, i, small{K: k})
	case 1:
		Insert(v, i, pair{A: 1, B: 2, K: k})
	default:
		Insert(v, i, wide{K: k})
	}
}

func keys(v *Vec[keyed]) []uint64 {
	out := []uint64{}
	for e := range v.Values() {
		out = append(out, e.Key())
	}
	return out
}

// addr returns the data word of an interface value, which for stored
// elements is the element's address inside the arena.
func addr(v any) uintptr {
	type iface struct{ tab, data unsafe.Pointer }
	return uintptr((*iface)(unsafe.Pointer(&v)).data)
}
