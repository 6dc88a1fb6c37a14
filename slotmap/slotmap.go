package slotmap

import (
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxSlots is the number of distinct slot indices a SlotMap can issue.
const MaxSlots = math.MaxUint32

type slot[V any] struct {
	value    V
	gen      uint32
	occupied bool
}

// SlotMap stores values under generational keys it issues itself.
//
// Insert, Remove and Get are O(1). SlotMap is not safe for concurrent
// mutation.
type SlotMap[V any] struct {
	slots []slot[V]
	free  *roaring.Bitmap // vacant, reusable slot indices
	len   int
}

// New creates an empty SlotMap.
func New[V any]() *SlotMap[V] {
	return WithCapacity[V](0)
}

// WithCapacity creates an empty SlotMap with room for n slots.
func WithCapacity[V any](n int) *SlotMap[V] {
	return &SlotMap[V]{
		slots: make([]slot[V], 0, max(n, 0)),
		free:  roaring.New(),
	}
}

// Len returns the number of stored values.
func (m *SlotMap[V]) Len() int {
	return m.len
}

// IsEmpty reports whether the map holds no values.
func (m *SlotMap[V]) IsEmpty() bool {
	return m.len == 0
}

// Insert stores v and returns the key issued for it.
// Returns ErrFull if every slot index is occupied or retired.
func (m *SlotMap[V]) Insert(v V) (Key, error) {
	if !m.free.IsEmpty() {
		idx := m.free.Minimum()
		m.free.Remove(idx)

		s := &m.slots[idx]
		s.value = v
		s.occupied = true
		m.len++
		return Key{idx: idx, gen: s.gen}, nil
	}

	if uint64(len(m.slots)) >= MaxSlots {
		return Key{}, ErrFull
	}

	idx := uint32(len(m.slots))
	m.slots = append(m.slots, slot[V]{value: v, gen: 1, occupied: true})
	m.len++
	return Key{idx: idx, gen: 1}, nil
}

// Remove deletes the value stored under k and returns it.
// Every key issued for this insertion becomes stale.
func (m *SlotMap[V]) Remove(k Key) (V, bool) {
	s, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}

	v := s.value
	var zero V
	s.value = zero
	s.occupied = false
	s.gen++
	m.len--

	// A wrapped generation could alias an old key; retire the slot instead.
	if s.gen != 0 {
		m.free.Add(k.idx)
	}
	return v, true
}

// Get returns the value stored under k.
func (m *SlotMap[V]) Get(k Key) (V, bool) {
	s, ok := m.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	return s.value, true
}

// GetMut returns a pointer to the value stored under k.
// The pointer is valid until the next Insert, Remove or Clear.
func (m *SlotMap[V]) GetMut(k Key) (*V, bool) {
	s, ok := m.lookup(k)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// Contains reports whether k refers to a live value.
func (m *SlotMap[V]) Contains(k Key) bool {
	_, ok := m.lookup(k)
	return ok
}

// Clear removes every value. All previously issued keys become stale.
func (m *SlotMap[V]) Clear() {
	for i := range m.slots {
		if m.slots[i].occupied {
			m.Remove(Key{idx: uint32(i), gen: m.slots[i].gen})
		}
	}
}

// All returns an iterator over keys and values in slot index order.
func (m *SlotMap[V]) All() iter.Seq2[Key, V] {
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

// Keys returns an iterator over live keys in slot index order.
func (m *SlotMap[V]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over live values in slot index order.
func (m *SlotMap[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// ValuesMut returns an iterator over pointers to live values.
func (m *SlotMap[V]) ValuesMut() iter.Seq[*V] {
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

func (m *SlotMap[V]) lookup(k Key) (*slot[V], bool) {
	if k.IsNull() || uint64(k.idx) >= uint64(len(m.slots)) {
		return nil, false
	}
	s := &m.slots[k.idx]
	if !s.occupied || s.gen != k.gen {
		return nil, false
	}
	return s, true
}
