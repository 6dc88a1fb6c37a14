// Package buffer provides the flat storage backends used for item buffers and
// positional range stores.
//
// Two backends are available:
//
//   - Vec: heap-growable, append never fails
//   - Fixed: fixed capacity with a head pointer, never reallocates
//
// Both expose the same method set (length, reset, ranged read, push, extend,
// remove, drain, read-only and in-place iteration), so a slice container can
// run unmodified over either.
//
// # Capacity Semantics
//
// Fixed returns ErrCapacityExceeded when an append would exceed its capacity.
// Extend stops at the first element that does not fit: elements already
// appended by that call remain, the rest of the sequence is not consumed.
//
// # Concurrency
//
// Buffers are not safe for concurrent mutation. Concurrent readers are fine as
// long as no writer runs at the same time.
package buffer
