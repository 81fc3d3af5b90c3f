package layout

import "fmt"

// Footprint selects how many arena bytes an element reserves.
type Footprint int

const (
	// Padded reserves size + alignment, rounded up to a granule.
	Padded Footprint = iota
	// Compact reserves the size rounded up to a granule.
	Compact
)

func (f Footprint) String() string {
	switch f {
	case Padded:
		return "padded"
	case Compact:
		return "compact"
	default:
		return fmt.Sprintf("Footprint(%d)", int(f))
	}
}

// Reserve returns the number of arena bytes reserved for a value of the
// given size and alignment. The result is always a positive multiple of
// Granule.
func (f Footprint) Reserve(size, align int) int {
	n := size
	if f == Padded {
		n += align
	}
	if n <= 0 {
		return Granule
	}
	return RoundUp(n, Granule)
}

// Of returns the reservation for a layout.
func (f Footprint) Of(l Layout) int {
	return f.Reserve(l.Size, l.Align)
}

// RoundUp rounds n up to a multiple of align, which must be a power of two.
func RoundUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
