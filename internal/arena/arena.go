package arena

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/polyvec/internal/conv"
	"github.com/hupe1980/polyvec/internal/layout"
	"github.com/hupe1980/polyvec/internal/mem"
	"github.com/hupe1980/polyvec/internal/mmap"
)

var (
	// ErrAllocationFailed is matched by every *AllocError.
	ErrAllocationFailed = errors.New("arena: allocation failed")
	// ErrCapacityOverflow is returned when a requested capacity exceeds MaxCapacity.
	ErrCapacityOverflow = errors.New("arena: capacity overflow")
)

const (
	// MaxCapacity bounds the arena size so byte arithmetic never overflows int.
	MaxCapacity = math.MaxInt >> 1
	// minGrowth is the smallest non-zero capacity chosen by amortized growth.
	minGrowth = 64
)

// AllocError reports a failed capacity request.
type AllocError struct {
	// Requested is the capacity in bytes that could not be provided
	// (MaxCapacity when the request itself overflowed).
	Requested int
	cause     error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("arena: cannot allocate %d bytes: %v", e.Requested, e.cause)
}

// Unwrap returns the underlying cause.
func (e *AllocError) Unwrap() error { return e.cause }

// Is reports whether target is ErrAllocationFailed.
func (e *AllocError) Is(target error) bool { return target == ErrAllocationFailed }

// Budget is charged for arena capacity.
// resource.Controller implements it.
type Budget interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Observer receives capacity and layout events.
type Observer interface {
	// OnResize is called after capacity changed from oldCap to newCap.
	// Every resize to a non-zero capacity moves the base address.
	OnResize(oldCap, newCap int)
	// OnShift is called after n bytes were moved by Shift.
	OnShift(n int)
	// OnAllocFailure is called when a capacity request failed.
	OnAllocFailure(requested int, err error)
}

// Stats tracks arena usage.
type Stats struct {
	Len          int    // Current: logical length in bytes
	Cap          int    // Current: capacity in bytes
	Relocations  uint64 // Historical: number of base address changes
	BytesMoved   uint64 // Historical: bytes copied by relocations
	BytesShifted uint64 // Historical: bytes moved by Shift
	AllocFails   uint64 // Historical: failed capacity requests
}

// Option configures an Arena.
type Option func(*Arena)

// WithBudget charges capacity against b.
func WithBudget(b Budget) Option {
	return func(a *Arena) {
		a.budget = b
	}
}

// WithOffHeap backs the arena with anonymous memory mappings.
func WithOffHeap() Option {
	return func(a *Arena) {
		a.offHeap = true
	}
}

// WithObserver registers an event observer.
func WithObserver(o Observer) Option {
	return func(a *Arena) {
		a.observer = o
	}
}

// Arena is a growable byte buffer with relative addressing.
type Arena struct {
	buf     []byte        // len(buf) is the capacity
	mapping *mmap.Mapping // set when buf is off-heap
	n       int           // logical length

	offHeap  bool
	budget   Budget
	observer Observer

	relocations  uint64
	bytesMoved   uint64
	bytesShifted uint64
	allocFails   uint64
}

// New creates an arena with room for capacity bytes.
func New(capacity int, opts ...Option) (*Arena, error) {
	a := &Arena{}
	for _, opt := range opts {
		opt(a)
	}
	if capacity > 0 {
		if err := a.TryReserveExact(capacity); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Len returns the logical length in bytes.
func (a *Arena) Len() int {
	return a.n
}

// Cap returns the capacity in bytes.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Spare returns the number of bytes that can be appended without growing.
func (a *Arena) Spare() int {
	return len(a.buf) - a.n
}

// OffHeap reports whether the arena lives outside the Go heap.
func (a *Arena) OffHeap() bool {
	return a.offHeap
}

// Base returns the current base address, or nil if the arena has no capacity.
// The address must not be retained across any call that may relocate.
func (a *Arena) Base() unsafe.Pointer {
	if len(a.buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&a.buf[0]) //nolint:gosec // base of the live region
}

// Overlaps reports whether b shares memory with the arena's current
// region, including its spare capacity.
func (a *Arena) Overlaps(b []byte) bool {
	if len(b) == 0 || len(a.buf) == 0 {
		return false
	}
	//nolint:gosec // addresses are only compared, never dereferenced
	lo, p := uintptr(unsafe.Pointer(&a.buf[0])), uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return p < lo+uintptr(len(a.buf)) && p+uintptr(len(b)) > lo
}

// Bytes returns the used part of the arena.
func (a *Arena) Bytes() []byte {
	return a.buf[:a.n:a.n]
}

// Append copies src to the end of the arena and zero-fills up to n bytes,
// growing if needed. It returns the displacement of the written region.
// n must be >= len(src).
func (a *Arena) Append(src []byte, n int) int {
	a.Reserve(n)
	at := a.n
	a.n += n
	a.Write(at, src, n)
	return at
}

// Extend grows the logical length by n bytes without writing them.
// The caller must have reserved the space.
func (a *Arena) Extend(n int) {
	if n > a.Spare() {
		panic(fmt.Sprintf("arena: extend by %d exceeds spare capacity %d", n, a.Spare()))
	}
	a.n += n
}

// Write copies src to [at, at+n) and zero-fills the rest of that range.
func (a *Arena) Write(at int, src []byte, n int) {
	dst := a.buf[at : at+n]
	c := copy(dst, src)
	clear(dst[c:])
}

// Shift moves count bytes from src to dst. The ranges may overlap.
func (a *Arena) Shift(src, dst, count int) {
	if count <= 0 || src == dst {
		return
	}
	copy(a.buf[dst:dst+count], a.buf[src:src+count])
	a.bytesShifted += uint64(count)
	if a.observer != nil {
		a.observer.OnShift(count)
	}
}

// Truncate shortens the logical length to n. It has no effect if n >= Len.
func (a *Arena) Truncate(n int) {
	if n < 0 || n >= a.n {
		return
	}
	a.n = n
}

// Reset empties the arena but keeps its capacity. Off-heap pages are handed
// back to the kernel; they read as zeros when touched again.
func (a *Arena) Reset() {
	a.n = 0
	if a.mapping != nil {
		_ = a.mapping.AdviseRange(0, len(a.buf), mmap.AccessDontNeed)
	}
}

// Reserve ensures room for at least additional more bytes, growing
// geometrically. It panics with an *AllocError if the memory cannot be
// obtained.
func (a *Arena) Reserve(additional int) {
	if err := a.TryReserve(additional); err != nil {
		panic(err)
	}
}

// ReserveExact ensures room for exactly additional more bytes, without
// speculative over-allocation. It panics with an *AllocError on failure.
func (a *Arena) ReserveExact(additional int) {
	if err := a.TryReserveExact(additional); err != nil {
		panic(err)
	}
}

// TryReserve is like Reserve but returns the failure.
func (a *Arena) TryReserve(additional int) error {
	need, err := a.required(additional)
	if err != nil || need <= len(a.buf) {
		return err
	}
	target := max(need, 2*len(a.buf), minGrowth)
	if target > MaxCapacity {
		target = need
	}
	return a.resize(target)
}

// TryReserveExact is like ReserveExact but returns the failure.
func (a *Arena) TryReserveExact(additional int) error {
	need, err := a.required(additional)
	if err != nil || need <= len(a.buf) {
		return err
	}
	return a.resize(need)
}

func (a *Arena) required(additional int) (int, error) {
	if additional <= 0 {
		return a.n, nil
	}
	need, err := conv.AddInt(a.n, additional)
	if err != nil || need > MaxCapacity {
		cause := ErrCapacityOverflow
		if err != nil {
			cause = fmt.Errorf("%w: %v", ErrCapacityOverflow, err)
		}
		return 0, a.fail(MaxCapacity, cause)
	}
	return need, nil
}

// ShrinkToFit releases all capacity beyond the logical length.
func (a *Arena) ShrinkToFit() {
	a.ShrinkTo(0)
}

// ShrinkTo releases capacity down to max(Len, minCapacity).
// It has no effect if the capacity is already at or below that floor.
func (a *Arena) ShrinkTo(minCapacity int) {
	target := a.roundCapacity(max(a.n, minCapacity))
	if target >= len(a.buf) {
		return
	}
	// Shrinking only returns memory; a failure leaves the arena untouched.
	_ = a.resize(target)
}

// Free releases all memory. The arena is empty and reusable afterwards.
func (a *Arena) Free() {
	a.n = 0
	a.release()
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return Stats{
		Len:          a.n,
		Cap:          len(a.buf),
		Relocations:  a.relocations,
		BytesMoved:   a.bytesMoved,
		BytesShifted: a.bytesShifted,
		AllocFails:   a.allocFails,
	}
}

// Usage returns the used share of the capacity in percent.
func (a *Arena) Usage() float64 {
	if len(a.buf) == 0 {
		return 0
	}
	return float64(a.n) / float64(len(a.buf)) * 100
}

func (a *Arena) String() string {
	backing := "heap"
	if a.offHeap {
		backing = "off-heap"
	}
	return fmt.Sprintf(
		"Arena{%s, len: %s, cap: %s, usage: %.1f%%, relocations: %d, shifted: %s}",
		backing,
		humanize.IBytes(uint64(a.n)),
		humanize.IBytes(uint64(len(a.buf))),
		a.Usage(),
		a.relocations,
		humanize.IBytes(a.bytesShifted),
	)
}

// resize moves the contents into a new region of (at least) capacity bytes.
func (a *Arena) resize(capacity int) error {
	if capacity == 0 {
		a.n = 0
		a.release()
		return nil
	}

	capacity = a.roundCapacity(capacity)

	oldCap := len(a.buf)
	delta := capacity - oldCap
	if err := a.acquire(delta); err != nil {
		return a.fail(capacity, err)
	}

	var (
		buf     []byte
		mapping *mmap.Mapping
	)
	if a.offHeap {
		m, err := mmap.MapAnon(capacity)
		if err != nil {
			a.credit(delta)
			return a.fail(capacity, err)
		}
		mapping = m
		buf = m.Bytes()
	} else {
		b, err := mem.TryAllocAligned(capacity, mem.Alignment)
		if err != nil {
			a.credit(delta)
			return a.fail(capacity, err)
		}
		buf = b
	}

	copy(buf, a.buf[:a.n])
	if a.mapping != nil {
		_ = a.mapping.Close()
	}
	a.buf = buf
	a.mapping = mapping
	a.credit(-delta)

	a.relocations++
	a.bytesMoved += uint64(a.n)
	if a.observer != nil {
		a.observer.OnResize(oldCap, capacity)
	}
	return nil
}

// roundCapacity rounds a capacity to the backing's allocation unit.
func (a *Arena) roundCapacity(n int) int {
	if n <= 0 {
		return 0
	}
	if a.offHeap {
		return mmap.RoundToPage(n)
	}
	return layout.RoundUp(n, layout.Granule)
}

func (a *Arena) release() {
	oldCap := len(a.buf)
	if oldCap == 0 {
		return
	}
	if a.mapping != nil {
		_ = a.mapping.Close()
		a.mapping = nil
	}
	a.credit(oldCap)
	a.buf = nil
	if a.observer != nil {
		a.observer.OnResize(oldCap, 0)
	}
}

// acquire charges n bytes to the budget. Non-positive n is a no-op.
func (a *Arena) acquire(n int) error {
	if a.budget == nil || n <= 0 {
		return nil
	}
	n64, err := conv.IntToInt64(n)
	if err != nil {
		return err
	}
	return a.budget.AcquireMemory(n64)
}

// credit returns n bytes to the budget. Non-positive n is a no-op.
func (a *Arena) credit(n int) {
	if a.budget == nil || n <= 0 {
		return
	}
	n64, err := conv.IntToInt64(n)
	if err != nil {
		return
	}
	a.budget.ReleaseMemory(n64)
}

func (a *Arena) fail(requested int, cause error) error {
	a.allocFails++
	err := &AllocError{Requested: requested, cause: cause}
	if a.observer != nil {
		a.observer.OnAllocFailure(requested, err)
	}
	return err
}
