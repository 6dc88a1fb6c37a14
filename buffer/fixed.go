package buffer

import (
	"fmt"
	"iter"
)

// Fixed is a buffer with a fixed capacity.
//
// The backing array is allocated once by NewFixed and never reallocated.
// head marks the end of the live elements; slots at or beyond head hold zero
// values.
type Fixed[T any] struct {
	data []T
	head int
}

// NewFixed creates an empty Fixed buffer holding at most capacity elements.
func NewFixed[T any](capacity int) *Fixed[T] {
	return &Fixed[T]{data: make([]T, max(capacity, 0))}
}

// Len returns the number of stored elements.
func (f *Fixed[T]) Len() int {
	return f.head
}

// Cap returns the fixed capacity.
func (f *Fixed[T]) Cap() int {
	return len(f.data)
}

// Reset removes all elements.
func (f *Fixed[T]) Reset() {
	clear(f.data[:f.head])
	f.head = 0
}

// Slice returns the elements in [start, end).
// Ranges reaching past the live elements are reported as not found, even if
// they are within capacity.
func (f *Fixed[T]) Slice(start, end int) ([]T, bool) {
	if start < 0 || end < start || end > f.head {
		return nil, false
	}
	return f.data[start:end:end], true
}

// Get returns the element at index i.
func (f *Fixed[T]) Get(i int) (T, bool) {
	if i < 0 || i >= f.head {
		var zero T
		return zero, false
	}
	return f.data[i], true
}

// Push appends a single element, or returns ErrCapacityExceeded when full.
func (f *Fixed[T]) Push(item T) error {
	if f.head >= len(f.data) {
		return fmt.Errorf("%w: fixed buffer holds at most %d elements", ErrCapacityExceeded, len(f.data))
	}
	f.data[f.head] = item
	f.head++
	return nil
}

// Extend appends the elements of items in iteration order.
//
// If the buffer fills up, Extend stops and returns ErrCapacityExceeded. The
// elements appended before the failure remain in the buffer.
func (f *Fixed[T]) Extend(items iter.Seq[T]) error {
	for item := range items {
		if err := f.Push(item); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAt removes and returns the element at index i, shifting later
// elements down by one.
func (f *Fixed[T]) RemoveAt(i int) (T, bool) {
	if i < 0 || i >= f.head {
		var zero T
		return zero, false
	}
	item := f.data[i]
	f.Drain(i, i+1)
	return item, true
}

// Drain removes the elements in [start, end), shifting later elements down.
// Panics if the range is out of bounds.
func (f *Fixed[T]) Drain(start, end int) {
	if start < 0 || end < start || end > f.head {
		panic(fmt.Sprintf("buffer: drain range [%d:%d] out of bounds with length %d", start, end, f.head))
	}
	if start == end {
		return
	}
	n := copy(f.data[start:], f.data[end:f.head])
	clear(f.data[start+n : f.head])
	f.head = start + n
}

// Values returns an iterator over the stored elements.
func (f *Fixed[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range f.data[:f.head] {
			if !yield(item) {
				return
			}
		}
	}
}

// ValuesMut returns an iterator over pointers to the stored elements.
func (f *Fixed[T]) ValuesMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range f.data[:f.head] {
			if !yield(&f.data[i]) {
				return
			}
		}
	}
}
