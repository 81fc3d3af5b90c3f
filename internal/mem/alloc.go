// Package mem provides memory allocation utilities.
package mem

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrTooLarge is returned when the runtime rejects an allocation size.
var ErrTooLarge = errors.New("mem: allocation too large")

// Alignment is the default byte alignment (one cache line).
const Alignment = 64

// AllocAligned allocates a zeroed byte slice of the given size whose first
// byte sits at an address divisible by align. align must be a power of two;
// values <= 0 select Alignment.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align <= 0 {
		align = Alignment
	}

	// Allocate size + align so the start can be shifted up by at most align-1 bytes
	buf := make([]byte, size+align)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := (uintptr(align) - (addr & mask)) & mask

	// Full slice expression keeps append from spilling into the slack.
	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// TryAllocAligned is like AllocAligned but returns ErrTooLarge instead of
// panicking when the runtime cannot represent the requested size.
func TryAllocAligned(size, align int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %d bytes: %v", ErrTooLarge, size, r)
		}
	}()
	return AllocAligned(size, align), nil
}

// IsAligned reports whether the first byte of b sits on an align boundary.
// An empty slice is considered aligned.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // unsafe is required for memory alignment
	return addr&uintptr(align-1) == 0
}
