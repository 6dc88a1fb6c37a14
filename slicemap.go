package slicemap

import (
	"iter"
	"slices"

	"github.com/hupe1980/slicemap/internal/conv"
)

// SliceMap packs many variable-length slices of T into one contiguous item
// buffer and addresses each slice by a key of type K.
//
// Removing a slice drains its items and shifts every later item down, so
// the buffer never holds gaps. Slices returned by GetSlice and the iterators
// are views into the buffer and are only valid until the next mutating call.
//
// SliceMap is not safe for concurrent use. Any number of readers may share
// an instance as long as no add, remove or clear runs at the same time.
type SliceMap[K comparable, T any] struct {
	items    Storage[T]
	slices   Registry[K]
	maxItems int
	logger   *Logger
	metrics  MetricsCollector
}

// New creates a SliceMap over the given item buffer and registry.
//
// New takes ownership of both and resets them; they must not be used
// directly afterwards.
func New[K comparable, T any](items Storage[T], registry Registry[K], optFns ...Option) *SliceMap[K, T] {
	return newSliceMap(items, registry, applyOptions(optFns))
}

func newSliceMap[K comparable, T any](items Storage[T], registry Registry[K], o options) *SliceMap[K, T] {
	items.Reset()
	registry.Reset()
	return &SliceMap[K, T]{
		items:    items,
		slices:   registry,
		maxItems: o.maxItems,
		logger:   o.logger,
		metrics:  o.metricsCollector,
	}
}

// Add appends items as a new slice. See AddItems.
func (m *SliceMap[K, T]) Add(items ...T) (K, error) {
	return m.AddItems(slices.Values(items))
}

// AddItems appends the items yielded by seq as a new slice and returns its
// key. An empty seq yields a valid empty slice.
//
// On failure no key is registered and the item buffer is truncated back to
// its length before the call. Capacity failures satisfy
// errors.Is(err, ErrCapacityExceeded). Registries that only accept external
// keys return ErrKeyRequired.
func (m *SliceMap[K, T]) AddItems(seq iter.Seq[T]) (K, error) {
	var zero K

	r, err := m.appendItems(seq)
	if err != nil {
		m.recordAdd(zero, r, err)
		return zero, err
	}

	key, err := m.slices.Insert(r)
	if err != nil {
		m.truncate(int(r.Start))
		err = wrapCapacity("slices", err)
		m.recordAdd(zero, r, err)
		return zero, err
	}

	m.recordAdd(key, r, nil)
	return key, nil
}

// AddAt appends items as a new slice under key. See AddItemsAt.
func (m *SliceMap[K, T]) AddAt(key K, items ...T) error {
	return m.AddItemsAt(key, slices.Values(items))
}

// AddItemsAt appends the items yielded by seq as a new slice stored under an
// externally issued key.
//
// It fails with ErrKeyExists if key already holds a slice and with
// ErrStaleKey if the key's slot holds a slice under a newer key. A slice
// stored under an older key of the same slot is removed first; that removal
// is not undone if the append then fails. Registries that issue their own
// keys return ErrKeysIssued.
func (m *SliceMap[K, T]) AddItemsAt(key K, seq iter.Seq[T]) error {
	stale, evicted, err := m.slices.Claim(key)
	if err != nil {
		m.recordAdd(key, Range{}, err)
		return err
	}
	if evicted {
		stats := m.compact(stale)
		m.logger.LogEvict(key, stats)
		m.metrics.RecordRemove(stats, true)
	}

	r, err := m.appendItems(seq)
	if err != nil {
		m.recordAdd(key, r, err)
		return err
	}

	if err := m.slices.InsertAt(key, r); err != nil {
		m.truncate(int(r.Start))
		err = wrapCapacity("slices", err)
		m.recordAdd(key, r, err)
		return err
	}

	m.recordAdd(key, r, nil)
	return nil
}

// GetSlice returns the items of the slice stored under key, or false if the
// key is unknown or its slice was removed.
func (m *SliceMap[K, T]) GetSlice(key K) ([]T, bool) {
	r, ok := m.slices.Get(key)
	if !ok {
		return nil, false
	}
	return m.view(r), true
}

// RangeOf returns the current position of the slice stored under key.
func (m *SliceMap[K, T]) RangeOf(key K) (Range, bool) {
	return m.slices.Get(key)
}

// Contains reports whether key holds a slice.
func (m *SliceMap[K, T]) Contains(key K) bool {
	_, ok := m.slices.Get(key)
	return ok
}

// SliceLen returns the length of the slice stored under key.
func (m *SliceMap[K, T]) SliceLen(key K) (int, bool) {
	r, ok := m.slices.Get(key)
	return r.Len(), ok
}

// RemoveSlice removes the slice stored under key and returns the range it
// occupied before removal. Unknown or stale keys return false and leave the
// container untouched.
//
// Every item after the removed range moves down by its length, and every
// range after it is lowered by the same amount.
func (m *SliceMap[K, T]) RemoveSlice(key K) (Range, bool) {
	r, ok := m.slices.Remove(key)
	if !ok {
		m.logger.LogRemove(key, CompactionStats{}, false)
		m.metrics.RecordRemove(CompactionStats{}, false)
		return Range{}, false
	}

	stats := m.compact(r)
	m.logger.LogRemove(key, stats, true)
	m.metrics.RecordRemove(stats, true)
	return r, true
}

// ItemsLen returns the total number of items across all slices.
func (m *SliceMap[K, T]) ItemsLen() int {
	return m.items.Len()
}

// SlicesLen returns the number of slices.
func (m *SliceMap[K, T]) SlicesLen() int {
	return m.slices.Len()
}

// IsEmpty reports whether the container holds no slices. Empty slices count.
func (m *SliceMap[K, T]) IsEmpty() bool {
	return m.slices.Len() == 0
}

// MaxItems returns the item ceiling in effect.
func (m *SliceMap[K, T]) MaxItems() int {
	return m.maxItems
}

// Flat returns a view of the whole item buffer.
func (m *SliceMap[K, T]) Flat() []T {
	s, _ := m.items.Slice(0, m.items.Len())
	return s
}

// Clear removes all slices and items. Keys issued before Clear no longer
// resolve.
func (m *SliceMap[K, T]) Clear() {
	items, n := m.items.Len(), m.slices.Len()
	m.items.Reset()
	m.slices.Reset()
	m.logger.LogClear(items, n)
	m.metrics.RecordClear(items, n)
}

// appendItems extends the item buffer with seq and returns the new range.
// On failure the buffer is truncated back to its previous length.
func (m *SliceMap[K, T]) appendItems(seq iter.Seq[T]) (Range, error) {
	start := m.items.Len()
	room := m.maxItems - start

	overflow := false
	limited := func(yield func(T) bool) {
		n := 0
		for item := range seq {
			if n >= room {
				overflow = true
				return
			}
			if !yield(item) {
				return
			}
			n++
		}
	}

	err := m.items.Extend(limited)
	if err == nil && overflow {
		err = &CapacityError{Resource: "items", Limit: m.maxItems}
	}
	if err != nil {
		m.truncate(start)
		return Range{}, wrapCapacity("items", err)
	}

	s, err := conv.IntToUint32(start)
	if err != nil {
		m.truncate(start)
		return Range{}, &CapacityError{Resource: "items", Limit: maxItemsInt, cause: err}
	}
	e, err := conv.IntToUint32(m.items.Len())
	if err != nil {
		m.truncate(start)
		return Range{}, &CapacityError{Resource: "items", Limit: maxItemsInt, cause: err}
	}
	return Range{Start: s, End: e}, nil
}

// truncate drops every item at or after n.
func (m *SliceMap[K, T]) truncate(n int) {
	m.items.Drain(n, m.items.Len())
}

// compact drains removed from the item buffer and lowers every range after it.
func (m *SliceMap[K, T]) compact(removed Range) CompactionStats {
	stats := CompactionStats{Removed: removed}
	if int(removed.End) > m.items.Len() || removed.Start > removed.End {
		panic(&InvariantError{Range: removed, Removed: removed, cause: errOutOfBounds})
	}
	if removed.IsEmpty() {
		return stats
	}

	stats.ItemsShifted = m.items.Len() - int(removed.End)
	m.items.Drain(int(removed.Start), int(removed.End))

	for r := range m.slices.Ranges() {
		if r.rebase(removed) {
			stats.SlicesRebased++
		}
	}
	return stats
}

// view returns the items covered by r. A range outside the buffer means the
// registry is corrupt.
func (m *SliceMap[K, T]) view(r Range) []T {
	s, ok := m.items.Slice(int(r.Start), int(r.End))
	if !ok || r.Start > r.End {
		panic(&InvariantError{Range: r, cause: errOutOfBounds})
	}
	return s
}

func (m *SliceMap[K, T]) recordAdd(key K, r Range, err error) {
	m.logger.LogAdd(key, r, err)
	m.metrics.RecordAdd(r.Len(), err)
}
