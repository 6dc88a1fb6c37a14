package slotmap

import "iter"

// SecondaryMap associates values with keys issued by a SlotMap.
//
// Storage is dense: the map keeps one slot per index up to the highest key
// index it has seen.
type SecondaryMap[V any] struct {
	slots []slot[V]
	len   int
}

// NewSecondary creates an empty SecondaryMap.
func NewSecondary[V any]() *SecondaryMap[V] {
	return &SecondaryMap[V]{}
}

// Len returns the number of stored values.
func (m *SecondaryMap[V]) Len() int {
	return m.len
}

// IsEmpty reports whether the map holds no values.
func (m *SecondaryMap[V]) IsEmpty() bool {
	return m.len == 0
}

// Insert stores v under k.
//
// If k already holds a value it is replaced and returned. If the slot is held
// by an older key, that entry is dropped. If the slot is held by a newer key,
// nothing is stored and ErrStaleKey is returned.
func (m *SecondaryMap[V]) Insert(k Key, v V) (V, bool, error) {
	var zero V
	if k.IsNull() {
		return zero, false, ErrNullKey
	}
	if uint64(k.idx) >= uint64(len(m.slots)) {
		m.slots = append(m.slots, make([]slot[V], int(k.idx)+1-len(m.slots))...)
	}

	s := &m.slots[k.idx]
	if s.occupied {
		switch {
		case s.gen == k.gen:
			old := s.value
			s.value = v
			return old, true, nil
		case k.olderThan(Key{idx: k.idx, gen: s.gen}):
			return zero, false, ErrStaleKey
		}
		m.len--
	}

	s.value = v
	s.gen = k.gen
	s.occupied = true
	m.len++
	return zero, false, nil
}

// Occupant returns the key currently holding the slot that k refers to,
// whether or not it equals k.
func (m *SecondaryMap[V]) Occupant(k Key) (Key, bool) {
	if uint64(k.idx) >= uint64(len(m.slots)) {
		return Key{}, false
	}
	s := &m.slots[k.idx]
	if !s.occupied {
		return Key{}, false
	}
	return Key{idx: k.idx, gen: s.gen}, true
}

// Remove deletes the value stored under k and returns it.
func (m *SecondaryMap[V]) Remove(k Key) (V, bool) {
	s, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	v := s.value
	*s = slot[V]{}
	m.len--
	return v, true
}

// Get returns the value stored under k.
func (m *SecondaryMap[V]) Get(k Key) (V, bool) {
	s, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Contains reports whether k holds a value.
func (m *SecondaryMap[V]) Contains(k Key) bool {
	_, ok := m.lookup(k)
	return ok
}

// Clear removes every value.
func (m *SecondaryMap[V]) Clear() {
	clear(m.slots)
	m.slots = m.slots[:0]
	m.len = 0
}

// All returns an iterator over keys and values in slot index order.
func (m *SecondaryMap[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for i := range m.slots {
			s := &m.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Key{idx: uint32(i), gen: s.gen}, s.value) {
				return
			}
		}
	}
}

// ValuesMut returns an iterator over pointers to stored values.
func (m *SecondaryMap[V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for i := range m.slots {
			if !m.slots[i].occupied {
				continue
			}
			if !yield(&m.slots[i].value) {
				return
			}
		}
	}
}

func (m *SecondaryMap[V]) lookup(k Key) (*slot[V], bool) {
	if k.IsNull() || uint64(k.idx) >= uint64(len(m.slots)) {
		return nil, false
	}
	s := &m.slots[k.idx]
	if !s.occupied || s.gen != k.gen {
		return nil, false
	}
	return s, true
}
