package buffer

import (
	"iter"
	"slices"
)

// Vec is a heap-growable buffer backed by a Go slice.
//
// Appends never fail; the backing array grows with the usual append strategy.
type Vec[T any] struct {
	data []T
}

// NewVec creates an empty Vec with room for capacity elements.
func NewVec[T any](capacity int) *Vec[T] {
	return &Vec[T]{data: make([]T, 0, max(capacity, 0))}
}

// Len returns the number of stored elements.
func (v *Vec[T]) Len() int {
	return len(v.data)
}

// Cap returns the capacity of the backing array.
func (v *Vec[T]) Cap() int {
	return cap(v.data)
}

// Reset removes all elements but keeps the backing array for reuse.
func (v *Vec[T]) Reset() {
	clear(v.data)
	v.data = v.data[:0]
}

// Slice returns the elements in [start, end).
// The returned slice has its capacity clipped to its length, so appending to
// it never overwrites neighbouring elements.
func (v *Vec[T]) Slice(start, end int) ([]T, bool) {
	if start < 0 || end < start || end > len(v.data) {
		return nil, false
	}
	return v.data[start:end:end], true
}

// Get returns the element at index i.
func (v *Vec[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(v.data) {
		var zero T
		return zero, false
	}
	return v.data[i], true
}

// Push appends a single element.
func (v *Vec[T]) Push(item T) error {
	v.data = append(v.data, item)
	return nil
}

// Extend appends every element of items in iteration order.
func (v *Vec[T]) Extend(items iter.Seq[T]) error {
	v.data = slices.AppendSeq(v.data, items)
	return nil
}

// RemoveAt removes and returns the element at index i, shifting later
// elements down by one.
func (v *Vec[T]) RemoveAt(i int) (T, bool) {
	if i < 0 || i >= len(v.data) {
		var zero T
		return zero, false
	}
	item := v.data[i]
	v.data = slices.Delete(v.data, i, i+1)
	return item, true
}

// Drain removes the elements in [start, end), shifting later elements down.
// Vacated tail slots are zeroed. Panics if the range is out of bounds.
func (v *Vec[T]) Drain(start, end int) {
	if start == end {
		return
	}
	v.data = slices.Delete(v.data, start, end)
}

// Values returns an iterator over the stored elements.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.data {
			if !yield(item) {
				return
			}
		}
	}
}

// ValuesMut returns an iterator over pointers to the stored elements,
// allowing in-place updates.
func (v *Vec[T]) ValuesMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range v.data {
			if !yield(&v.data[i]) {
				return
			}
		}
	}
}
