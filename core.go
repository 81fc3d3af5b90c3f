package polyvec

import (
	"context"
	"iter"
	"reflect"

	"github.com/hupe1980/polyvec/internal/arena"
	"github.com/hupe1980/polyvec/internal/bitmap"
	"github.com/hupe1980/polyvec/internal/container"
	"github.com/hupe1980/polyvec/internal/conv"
	"github.com/hupe1980/polyvec/internal/layout"
	"github.com/hupe1980/polyvec/internal/view"
)

// saturated is returned by byte-size arithmetic that overflowed. It exceeds
// the maximum arena size, so any reservation of it fails with
// ErrCapacityOverflow instead of wrapping around.
const saturated = arena.MaxCapacity + 1

// mulSat returns a*b, saturating at saturated. Non-positive operands yield 0.
func mulSat(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	n, err := conv.MulInt(a, b)
	if err != nil || n > saturated {
		return saturated
	}
	return n
}

// core is the state and behavior shared by Vec and Slices.
type core[R any, D view.Descriptor[R]] struct {
	c    *container.Packed[R, D]
	opts options
	log  *Logger
}

// events forwards arena events to the configured logger and metrics.
type events struct {
	log     *Logger
	metrics MetricsCollector
}

func (e *events) OnResize(oldCap, newCap int) {
	e.metrics.RecordResize(oldCap, newCap)
	e.log.LogResize(context.Background(), oldCap, newCap)
}

func (e *events) OnShift(n int) {
	e.metrics.RecordShift(n)
}

func (e *events) OnAllocFailure(requested int, err error) {
	e.metrics.RecordAllocFailure(requested, err)
	e.log.LogAllocFailure(context.Background(), requested, err)
}

// newCore creates the container state with room for views elements and
// rawBytes arena bytes. It panics with an *AllocError if the initial
// capacity cannot be obtained.
func newCore[R any, D view.Descriptor[R]](kind string, elem reflect.Type, views, rawBytes int, o options) core[R, D] {
	log := o.logger.WithContainer(kind, elem.String()).WithBacking(o.offHeap)

	aopts := []arena.Option{
		arena.WithObserver(&events{log: log, metrics: o.metricsCollector}),
	}
	if o.offHeap {
		aopts = append(aopts, arena.WithOffHeap())
	}
	if o.controller != nil {
		aopts = append(aopts, arena.WithBudget(o.controller))
	}

	a, err := arena.New(max(rawBytes, 0), aopts...)
	if err != nil {
		panic(err)
	}

	return core[R, D]{
		c:    container.New[R, D](a, max(views, 0)),
		opts: o,
		log:  log,
	}
}

// Len returns the number of elements.
func (c *core[R, D]) Len() int {
	return c.c.Len()
}

// IsEmpty reports whether the container holds no elements.
func (c *core[R, D]) IsEmpty() bool {
	return c.c.Len() == 0
}

// Capacity returns the arena capacity in bytes.
func (c *core[R, D]) Capacity() int {
	return c.c.Arena().Cap()
}

// Spare returns the number of arena bytes usable without growing.
func (c *core[R, D]) Spare() int {
	return c.c.Arena().Spare()
}

// Reserve ensures room for at least additional more bytes. Growth is
// amortized: the capacity at least doubles. It panics with an *AllocError
// if the memory cannot be obtained.
func (c *core[R, D]) Reserve(additional int) {
	c.c.Arena().Reserve(additional)
}

// ReserveExact ensures room for exactly additional more bytes, rounded to
// the allocation unit. It panics with an *AllocError on failure.
func (c *core[R, D]) ReserveExact(additional int) {
	c.c.Arena().ReserveExact(additional)
}

// TryReserve is like Reserve but returns an *AllocError instead of
// panicking. The container is unchanged on failure.
func (c *core[R, D]) TryReserve(additional int) error {
	return c.c.Arena().TryReserve(additional)
}

// TryReserveExact is like ReserveExact but returns an *AllocError instead
// of panicking. The container is unchanged on failure.
func (c *core[R, D]) TryReserveExact(additional int) error {
	return c.c.Arena().TryReserveExact(additional)
}

// ShrinkToFit releases the arena capacity beyond the stored bytes and the
// unused view slots. Shrinking relocates the arena.
func (c *core[R, D]) ShrinkToFit() {
	c.c.Arena().ShrinkToFit()
	c.c.ShrinkViews()
}

// ShrinkTo releases arena capacity down to max(stored bytes, minBytes).
// It has no effect if the capacity is already at or below that floor.
func (c *core[R, D]) ShrinkTo(minBytes int) {
	c.c.Arena().ShrinkTo(minBytes)
}

// Remove deletes the element at index and shifts later elements down.
// The removed value is not returned; read it with At beforehand if needed.
// It panics with an *IndexError if index is out of range.
func (c *core[R, D]) Remove(index int) {
	c.c.Remove(index)
}

// RemoveIndices deletes the elements at the given positions in one pass.
// Duplicates are removed once. It returns the number of elements removed
// and panics with an *IndexError if any position is out of range, leaving
// the container unchanged. Positions above math.MaxUint32 are out of range.
func (c *core[R, D]) RemoveIndices(indices ...int) int {
	if len(indices) == 0 {
		return 0
	}
	n := c.c.Len()
	set := bitmap.New()
	for _, i := range indices {
		addPosition(set, i, n)
	}
	return c.c.RemoveSet(set)
}

// RemoveFunc deletes every element for which pred returns true, in one
// pass, and returns the number removed. pred must not retain its argument.
// Matches are collected before anything is removed; a match above
// math.MaxUint32 panics with an *IndexError and leaves the container
// unchanged.
func (c *core[R, D]) RemoveFunc(pred func(R) bool) int {
	n := c.c.Len()
	set := bitmap.New()
	for i, r := range c.c.All() {
		if pred(r) {
			addPosition(set, i, n)
		}
	}
	return c.c.RemoveSet(set)
}

// addPosition adds i to set, panicking if it is not below n or does not fit
// the set's uint32 domain.
func addPosition(set *bitmap.Set, i, n int) {
	pos, err := conv.IntToUint32(i)
	if err != nil || i >= n {
		panic(&IndexError{Op: container.OpRemove, Index: i, Len: n})
	}
	set.Add(pos)
}

// Truncate keeps the first n elements and discards the rest. It has no
// effect if n >= Len. The capacity is unchanged.
func (c *core[R, D]) Truncate(n int) {
	c.c.Truncate(n)
}

// Clear removes all elements but keeps the capacity.
func (c *core[R, D]) Clear() {
	c.c.Clear()
}

// Free removes all elements and releases all memory, returning it to the
// memory controller if one is configured. Off-heap containers must be
// freed; heap containers may be. The container stays usable.
func (c *core[R, D]) Free() {
	c.log.LogFree(context.Background(), c.c.Len(), c.c.Arena().Cap())
	c.c.Free()
}

// At returns the element at index. The result points into the arena and
// is valid until the next mutation of the container.
// It panics with an *IndexError if index is out of range.
func (c *core[R, D]) At(index int) R {
	return c.c.At(index)
}

// All returns an iterator over positions and elements in order. Yielded
// elements are valid until the next mutation; the container must not be
// mutated during iteration.
func (c *core[R, D]) All() iter.Seq2[int, R] {
	return c.c.All()
}

// Values returns an iterator over the elements in order.
func (c *core[R, D]) Values() iter.Seq[R] {
	return c.c.Values()
}

// Backward returns an iterator over positions and elements in reverse order.
func (c *core[R, D]) Backward() iter.Seq2[int, R] {
	return c.c.Backward()
}

// Stats returns a snapshot of the container's memory statistics.
func (c *core[R, D]) Stats() Stats {
	a := c.c.Arena()
	as := a.Stats()
	return Stats{
		Len:           c.c.Len(),
		Bytes:         as.Len,
		Capacity:      as.Cap,
		ViewCapacity:  c.c.ViewCap(),
		OffHeap:       a.OffHeap(),
		Footprint:     c.opts.footprint,
		Relocations:   as.Relocations,
		BytesMoved:    as.BytesMoved,
		BytesShifted:  as.BytesShifted,
		AllocFailures: as.AllocFails,
	}
}

// reserve returns the footprint of a value with layout l.
func (c *core[R, D]) reserve(l layout.Layout) int {
	return c.opts.footprint.Of(l)
}
