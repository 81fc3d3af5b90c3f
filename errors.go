package polyvec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/polyvec/internal/arena"
	"github.com/hupe1980/polyvec/internal/container"
	"github.com/hupe1980/polyvec/internal/layout"
)

var (
	// ErrAllocationFailed is matched by every *AllocError.
	ErrAllocationFailed = arena.ErrAllocationFailed
	// ErrCapacityOverflow is matched when a request exceeds the maximum
	// arena size.
	ErrCapacityOverflow = arena.ErrCapacityOverflow
	// ErrNoSpareCapacity is matched by every *RejectedError.
	ErrNoSpareCapacity = errors.New("polyvec: no spare capacity")
	// ErrIndexOutOfRange is matched by every *IndexError.
	ErrIndexOutOfRange = container.ErrIndexOutOfRange
)

// AllocError reports a failed capacity request. Fallible operations return
// it; infallible ones panic with it.
//
// The underlying cause (for example resource.ErrMemoryLimitExceeded) can be
// accessed via errors.Unwrap.
type AllocError = arena.AllocError

// IndexError is the panic value of Insert, Remove and At when the position
// is out of range. It carries the offending index and the length.
type IndexError = container.IndexError

// UnsupportedTypeError is the panic value when a type cannot be stored:
// it holds Go pointers, is over-aligned, or does not satisfy the
// container's interface.
type UnsupportedTypeError = layout.UnsupportedTypeError

// RejectedError is returned by PushWithinCapacity when the arena lacks the
// spare bytes for a value. The container is unchanged and the value is
// handed back.
type RejectedError[U any] struct {
	// Value is the rejected value.
	Value U
	// Need is the footprint the value requires in bytes.
	Need int
	// Spare is the spare capacity at the time of the call in bytes.
	Spare int
}

func (e *RejectedError[U]) Error() string {
	return fmt.Sprintf("polyvec: no spare capacity for %T (need %d bytes, have %d)", e.Value, e.Need, e.Spare)
}

// Is reports whether target is ErrNoSpareCapacity.
func (e *RejectedError[U]) Is(target error) bool { return target == ErrNoSpareCapacity }
