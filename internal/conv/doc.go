// Package conv provides checked integer conversions for 32-bit range bounds.
//
// Slice ranges are stored as uint32 pairs while Go lengths are int. Every
// crossing between the two goes through this package so that a length that
// does not fit is reported instead of silently wrapping.
//
// Use cases:
//   - Converting buffer lengths into range bounds on append
//   - Lowering range bounds during compaction
//
// Conversions that are provably safe (a bound read back from a live range on a
// 64-bit host) may use direct casts instead.
package conv
