package polyvec

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats is a snapshot of a container's memory use.
type Stats struct {
	Len          int       // Current: number of elements
	Bytes        int       // Current: arena bytes in use
	Capacity     int       // Current: arena capacity in bytes
	ViewCapacity int       // Current: elements the view index holds without growing
	OffHeap      bool      // Config: arena backed by memory mappings
	Footprint    Footprint // Config: reservation policy

	Relocations   uint64 // Historical: arena base address changes
	BytesMoved    uint64 // Historical: bytes copied by relocations
	BytesShifted  uint64 // Historical: bytes moved by insert and remove
	AllocFailures uint64 // Historical: failed capacity requests
}

// Usage returns the used share of the arena capacity in percent.
func (s Stats) Usage() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Bytes) / float64(s.Capacity) * 100
}

// AvgFootprint returns the mean number of arena bytes per element.
func (s Stats) AvgFootprint() float64 {
	if s.Len == 0 {
		return 0
	}
	return float64(s.Bytes) / float64(s.Len)
}

func (s Stats) String() string {
	backing := "heap"
	if s.OffHeap {
		backing = "off-heap"
	}
	return fmt.Sprintf(
		"Stats{len: %s, bytes: %s, cap: %s (%.1f%%), backing: %s, footprint: %s, relocations: %s, moved: %s, shifted: %s, alloc failures: %d}",
		humanize.Comma(int64(s.Len)),
		humanize.IBytes(uint64(s.Bytes)),
		humanize.IBytes(uint64(s.Capacity)),
		s.Usage(),
		backing,
		s.Footprint,
		humanize.Comma(int64(s.Relocations)),
		humanize.IBytes(s.BytesMoved),
		humanize.IBytes(s.BytesShifted),
		s.AllocFailures,
	)
}
