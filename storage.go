package slicemap

import (
	"iter"

	"github.com/hupe1980/slicemap/buffer"
)

// Compile time checks that the bundled backends satisfy Storage.
var (
	_ Storage[int]   = (*buffer.Vec[int])(nil)
	_ Storage[int]   = (*buffer.Fixed[int])(nil)
	_ Storage[Range] = (*buffer.Vec[Range])(nil)
	_ Storage[Range] = (*buffer.Fixed[Range])(nil)
)

// Storage is the contract for a flat backend holding the item buffer or a
// positional range store.
//
// Implement Storage to plug a new backend into New. Bounded backends report
// ErrCapacityExceeded instead of growing.
type Storage[T any] interface {
	// Len returns the number of stored elements.
	Len() int

	// Reset removes all elements. It never fails.
	Reset()

	// Slice returns the elements in [start, end), or false if the range is
	// outside the stored elements. The result is a view, valid until the next
	// mutation.
	Slice(start, end int) ([]T, bool)

	// Get returns the element at index i, or false if out of range.
	Get(i int) (T, bool)

	// Push appends a single element.
	Push(item T) error

	// Extend appends all elements of items in order. On a capacity failure,
	// elements appended before the failure may remain.
	Extend(items iter.Seq[T]) error

	// RemoveAt removes and returns the element at index i, shifting later
	// elements down, or false if out of range.
	RemoveAt(i int) (T, bool)

	// Drain removes the elements in [start, end), shifting later elements down.
	// An empty range is a no-op.
	Drain(start, end int)

	// Values returns a restartable iterator over the stored elements.
	Values() iter.Seq[T]

	// ValuesMut returns a restartable iterator over pointers to the stored
	// elements for in-place updates.
	ValuesMut() iter.Seq[*T]
}
