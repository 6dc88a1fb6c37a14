package slotmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

type sparseEntry[V any] struct {
	value V
	gen   uint32
}

// SparseSecondaryMap associates values with keys issued by a SlotMap.
//
// Entries live in a hash map; a Roaring bitmap of occupied indices gives
// ordered iteration without sorting.
type SparseSecondaryMap[V any] struct {
	entries  map[uint32]*sparseEntry[V]
	occupied *roaring.Bitmap
}

// NewSparseSecondary creates an empty SparseSecondaryMap.
func NewSparseSecondary[V any]() *SparseSecondaryMap[V] {
	return &SparseSecondaryMap[V]{
		entries:  make(map[uint32]*sparseEntry[V]),
		occupied: roaring.New(),
	}
}

// Len returns the number of stored values.
func (m *SparseSecondaryMap[V]) Len() int {
	return len(m.entries)
}

// IsEmpty reports whether the map holds no values.
func (m *SparseSecondaryMap[V]) IsEmpty() bool {
	return len(m.entries) == 0
}

// Insert stores v under k, with the same replacement rules as
// SecondaryMap.Insert.
func (m *SparseSecondaryMap[V]) Insert(k Key, v V) (V, bool, error) {
	var zero V
	if k.IsNull() {
		return zero, false, ErrNullKey
	}

	if e, ok := m.entries[k.idx]; ok {
		switch {
		case e.gen == k.gen:
			old := e.value
			e.value = v
			return old, true, nil
		case k.olderThan(Key{idx: k.idx, gen: e.gen}):
			return zero, false, ErrStaleKey
		}
	}

	m.entries[k.idx] = &sparseEntry[V]{value: v, gen: k.gen}
	m.occupied.Add(k.idx)
	return zero, false, nil
}

// Occupant returns the key currently holding the slot that k refers to.
func (m *SparseSecondaryMap[V]) Occupant(k Key) (Key, bool) {
	e, ok := m.entries[k.idx]
	if !ok {
		return Key{}, false
	}
	return Key{idx: k.idx, gen: e.gen}, true
}

// Remove deletes the value stored under k and returns it.
func (m *SparseSecondaryMap[V]) Remove(k Key) (V, bool) {
	e, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.entries, k.idx)
	m.occupied.Remove(k.idx)
	return e.value, true
}

// Get returns the value stored under k.
func (m *SparseSecondaryMap[V]) Get(k Key) (V, bool) {
	e, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Contains reports whether k holds a value.
func (m *SparseSecondaryMap[V]) Contains(k Key) bool {
	_, ok := m.lookup(k)
	return ok
}

// Clear removes every value.
func (m *SparseSecondaryMap[V]) Clear() {
	clear(m.entries)
	m.occupied.Clear()
}

// All returns an iterator over keys and values in slot index order.
func (m *SparseSecondaryMap[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		it := m.occupied.Iterator()
		for it.HasNext() {
			idx := it.Next()
			e := m.entries[idx]
			if !yield(Key{idx: idx, gen: e.gen}, e.value) {
				return
			}
		}
	}
}

// ValuesMut returns an iterator over pointers to stored values in slot
// index order.
func (m *SparseSecondaryMap[V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		it := m.occupied.Iterator()
		for it.HasNext() {
			if !yield(&m.entries[it.Next()].value) {
				return
			}
		}
	}
}

func (m *SparseSecondaryMap[V]) lookup(k Key) (*sparseEntry[V], bool) {
	if k.IsNull() {
		return nil, false
	}
	e, ok := m.entries[k.idx]
	if !ok || e.gen != k.gen {
		return nil, false
	}
	return e, true
}
