// Package bitmap provides compressed sets of element positions.
//
// Batch removal marks every position to drop in a Set and then compacts the
// container in one forward pass, instead of paying one shift of the tail per
// removed element. The set wraps a 32-bit Roaring bitmap, so container
// positions handed to it must fit in uint32.
package bitmap
