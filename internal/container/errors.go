package container

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("polyvec: index out of range")

// Op names the operation that received an out-of-range position.
type Op string

const (
	OpInsert Op = "insertion"
	OpRemove Op = "removal"
	OpAccess Op = "access"
)

// IndexError is the panic value for an out-of-range position.
type IndexError struct {
	Op    Op
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	switch e.Op {
	case OpInsert:
		return fmt.Sprintf("polyvec: insertion index (is %d) should be <= len (is %d)", e.Index, e.Len)
	case OpRemove:
		return fmt.Sprintf("polyvec: removal index (is %d) should be < len (is %d)", e.Index, e.Len)
	default:
		return fmt.Sprintf("polyvec: index out of range [%d] with length %d", e.Index, e.Len)
	}
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }
