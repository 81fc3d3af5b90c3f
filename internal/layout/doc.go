// Package layout captures the memory layout of concrete types stored in a
// packed arena and computes how many arena bytes each one reserves.
//
// # Storable Types
//
// Only pointer-free types can live in an arena: the arena is raw bytes, so
// the garbage collector would never see a pointer copied into it. Booleans,
// numbers, complex numbers, arrays and structs built from those qualify;
// strings, slices, maps, pointers, interfaces, funcs and channels do not.
//
// # Footprint
//
// Every element reserves a whole number of granules (8 bytes). Displacements
// therefore stay granule-aligned no matter how elements are inserted or
// removed, and a granule-aligned displacement from an aligned base satisfies
// the alignment of every storable type.
//
//   - Padded:  size + align, rounded up to a granule
//   - Compact: size, rounded up to a granule (at least one granule)
package layout
