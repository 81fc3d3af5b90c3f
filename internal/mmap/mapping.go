package mmap

import (
	"os"
	"sync/atomic"
)

// Mapping is an anonymous read-write memory mapping.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// PageSize returns the granularity of anonymous mappings.
func PageSize() int {
	return os.Getpagesize()
}

// RoundToPage rounds size up to a whole number of pages.
func RoundToPage(size int) int {
	page := PageSize()
	return (size + page - 1) &^ (page - 1)
}

// MapAnon creates a zero-filled anonymous mapping of at least size bytes.
// The mapping size is rounded up to the page size.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	size = RoundToPage(size)

	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:  data,
		size:  size,
		unmap: unmapFunc,
	}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		data := m.data
		m.data = nil
		return m.unmap(data)
	}
	return nil
}

// Bytes returns the underlying byte slice.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// AdviseRange applies an access hint to the whole pages contained in
// [offset, offset+length). Partial pages at either end are skipped, so the
// hint never touches bytes outside the range.
func (m *Mapping) AdviseRange(offset, length int, pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if offset < 0 || length < 0 || offset+length > m.size {
		return ErrOutOfBounds
	}
	page := PageSize()
	start := (offset + page - 1) &^ (page - 1)
	end := (offset + length) &^ (page - 1)
	if start >= end {
		return nil
	}
	return osAdvise(m.data[start:end], pattern)
}
