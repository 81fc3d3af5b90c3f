// Package mmap provides anonymous memory mappings for off-heap arena storage.
//
// # Overview
//
// An anonymous mapping is a page-aligned, zero-filled region obtained directly
// from the operating system. The arena uses it as an alternative backing to
// the Go heap: the garbage collector never scans it, and every displacement
// that is a multiple of a value's alignment lands on an aligned address.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
//	// Release physical pages of an unused tail without unmapping it
//	_ = m.AdviseRange(used, len(m.Bytes())-used, mmap.AccessDontNeed)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE and madvise(2)
//   - Windows: VirtualAlloc/VirtualFree (advice is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by an atomic flag. Callers must ensure no
// goroutine touches Bytes() after Close returns; the pages are gone.
package mmap
