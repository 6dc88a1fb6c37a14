package slicemap

import "iter"

// Slices returns an iterator over every slice in registry order: insertion
// order for index keys, slot order for generational keys.
func (m *SliceMap[K, T]) Slices() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, r := range m.slices.All() {
			if !yield(m.view(r)) {
				return
			}
		}
	}
}

// All returns an iterator over keys and their slices in registry order.
func (m *SliceMap[K, T]) All() iter.Seq2[K, []T] {
	return func(yield func(K, []T) bool) {
		for k, r := range m.slices.All() {
			if !yield(k, m.view(r)) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in registry order.
func (m *SliceMap[K, T]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.slices.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Items returns an iterator over the whole item buffer, ignoring slice
// boundaries.
func (m *SliceMap[K, T]) Items() iter.Seq[T] {
	return m.items.Values()
}
