// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides cache-line aligned byte buffers for the heap-backed arena, so that
// any displacement that is a multiple of a value's alignment is also an
// aligned absolute address.
package mem
