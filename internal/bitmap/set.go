package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of element positions.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *Set {
	return &Set{
		rb: roaring.New(),
	}
}

// Add adds a position to the set.
func (s *Set) Add(pos uint32) {
	s.rb.Add(pos)
}

// Contains checks if a position is in the set.
func (s *Set) Contains(pos uint32) bool {
	return s.rb.Contains(pos)
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of positions in the set.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Minimum returns the smallest position. The set must not be empty.
func (s *Set) Minimum() uint32 {
	return s.rb.Minimum()
}

// Maximum returns the largest position. The set must not be empty.
func (s *Set) Maximum() uint32 {
	return s.rb.Maximum()
}

// Values returns an iterator over the positions in ascending order.
func (s *Set) Values() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clear removes all positions.
func (s *Set) Clear() {
	s.rb.Clear()
}
