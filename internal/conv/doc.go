// Package conv provides checked integer conversions.
//
// Container lengths and byte counts are plain ints inside polyvec, but the
// roaring index sets speak uint32, the memory budget speaks int64 and the
// statistics speak uint64. Crossing those boundaries goes through conv so an
// out-of-range value surfaces as an error instead of silently wrapping.
//
// For conversions that are provably safe by construction (loop indices,
// values already bounded by a slice length), use direct casts instead.
package conv
