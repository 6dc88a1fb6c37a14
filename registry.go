package slicemap

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/slicemap/internal/conv"
	"github.com/hupe1980/slicemap/slotmap"
)

// Compile time checks that the bundled registries satisfy Registry.
var (
	_ Registry[int]         = (*IndexRegistry)(nil)
	_ Registry[slotmap.Key] = (*SlotRegistry)(nil)
	_ Registry[slotmap.Key] = (*SecondaryRegistry)(nil)
)

// Registry maps slice keys to ranges in the item buffer.
//
// A registry either issues keys (Insert) or accepts keys issued elsewhere
// (Claim followed by InsertAt); the other path returns ErrKeysIssued or
// ErrKeyRequired.
type Registry[K comparable] interface {
	// Len returns the number of registered ranges.
	Len() int

	// Reset removes every range. Issued keys must not resolve afterwards.
	Reset()

	// Insert registers r under a newly issued key.
	Insert(r Range) (K, error)

	// Claim prepares key for InsertAt. It fails if key already holds a range
	// or is older than the current holder of its slot. If an older key holds
	// the slot, that entry is removed and its range returned with evicted set.
	Claim(key K) (stale Range, evicted bool, err error)

	// InsertAt registers r under an externally issued key.
	InsertAt(key K, r Range) error

	// Get returns the range registered under key.
	Get(key K) (Range, bool)

	// Remove unregisters key and returns its range.
	Remove(key K) (Range, bool)

	// All returns an iterator over keys and ranges in registry order.
	All() iter.Seq2[K, Range]

	// Ranges returns an iterator over pointers to every registered range,
	// used to rebase ranges in place during compaction.
	Ranges() iter.Seq[*Range]
}

// IndexRegistry is a sequential registry over a Storage of ranges.
//
// Keys are issued in insertion order and are never reused: removing a slice
// leaves a tombstone at its position, so the removed key and the keys of
// every other slice keep their meaning. Reset drops all positions, and keys
// issued afterwards continue from where the previous ones stopped.
//
// Tombstones keep occupying the range store until Reset, so a fixed-capacity
// range store bounds the number of slices added since the last Reset.
type IndexRegistry struct {
	ranges Storage[Range]
	dead   *roaring.Bitmap // removed positions
	base   int             // key of position 0
}

// NewIndexRegistry creates a sequential registry backed by ranges.
func NewIndexRegistry(ranges Storage[Range]) *IndexRegistry {
	return &IndexRegistry{ranges: ranges, dead: roaring.New()}
}

// Len implements Registry.
func (r *IndexRegistry) Len() int {
	return r.ranges.Len() - int(r.dead.GetCardinality())
}

// Reset implements Registry. Keys issued before Reset never resolve again.
func (r *IndexRegistry) Reset() {
	r.base += r.ranges.Len()
	r.ranges.Reset()
	r.dead.Clear()
}

// Insert implements Registry.
func (r *IndexRegistry) Insert(rng Range) (int, error) {
	pos := r.ranges.Len()
	if _, err := conv.IntToUint32(pos); err != nil {
		return 0, fmt.Errorf("%w: range store holds %d positions", ErrCapacityExceeded, pos)
	}
	if err := r.ranges.Push(rng); err != nil {
		return 0, err
	}
	return r.base + pos, nil
}

// Claim implements Registry. Sequential keys cannot be supplied.
func (r *IndexRegistry) Claim(int) (Range, bool, error) {
	return Range{}, false, ErrKeysIssued
}

// InsertAt implements Registry. Sequential keys cannot be supplied.
func (r *IndexRegistry) InsertAt(int, Range) error {
	return ErrKeysIssued
}

// Get implements Registry.
func (r *IndexRegistry) Get(key int) (Range, bool) {
	pos, ok := r.position(key)
	if !ok {
		return Range{}, false
	}
	return r.ranges.Get(pos)
}

// Remove implements Registry. The position becomes a tombstone.
func (r *IndexRegistry) Remove(key int) (Range, bool) {
	pos, ok := r.position(key)
	if !ok {
		return Range{}, false
	}
	rng, ok := r.ranges.Get(pos)
	if !ok {
		return Range{}, false
	}
	r.dead.Add(uint32(pos))
	return rng, true
}

// All implements Registry in insertion order.
func (r *IndexRegistry) All() iter.Seq2[int, Range] {
	return func(yield func(int, Range) bool) {
		pos := 0
		for rng := range r.ranges.Values() {
			if !r.dead.Contains(uint32(pos)) && !yield(r.base+pos, rng) {
				return
			}
			pos++
		}
	}
}

// Ranges implements Registry. Tombstones are skipped.
func (r *IndexRegistry) Ranges() iter.Seq[*Range] {
	return func(yield func(*Range) bool) {
		pos := 0
		for rng := range r.ranges.ValuesMut() {
			if !r.dead.Contains(uint32(pos)) && !yield(rng) {
				return
			}
			pos++
		}
	}
}

// position maps a live key to its position in the range store.
// Positions never exceed MaxUint32, which Insert enforces.
func (r *IndexRegistry) position(key int) (int, bool) {
	pos := key - r.base
	if key < r.base || pos >= r.ranges.Len() || r.dead.Contains(uint32(pos)) {
		return 0, false
	}
	return pos, true
}

// SlotRegistry is a generational registry that issues its own keys.
//
// Keys stay valid until their own slice is removed, regardless of other
// insertions and removals, and are never reused for a different slice.
type SlotRegistry struct {
	slots *slotmap.SlotMap[Range]
}

// NewSlotRegistry creates a generational registry backed by slots.
// If slots is nil, a new SlotMap is created.
func NewSlotRegistry(slots *slotmap.SlotMap[Range]) *SlotRegistry {
	if slots == nil {
		slots = slotmap.New[Range]()
	}
	return &SlotRegistry{slots: slots}
}

// Len implements Registry.
func (r *SlotRegistry) Len() int { return r.slots.Len() }

// Reset implements Registry. All issued keys become stale.
func (r *SlotRegistry) Reset() { r.slots.Clear() }

// Insert implements Registry.
func (r *SlotRegistry) Insert(rng Range) (slotmap.Key, error) {
	return r.slots.Insert(rng)
}

// Claim implements Registry. SlotRegistry issues its own keys.
func (r *SlotRegistry) Claim(slotmap.Key) (Range, bool, error) {
	return Range{}, false, ErrKeysIssued
}

// InsertAt implements Registry. SlotRegistry issues its own keys.
func (r *SlotRegistry) InsertAt(slotmap.Key, Range) error {
	return ErrKeysIssued
}

// Get implements Registry.
func (r *SlotRegistry) Get(k slotmap.Key) (Range, bool) { return r.slots.Get(k) }

// Remove implements Registry.
func (r *SlotRegistry) Remove(k slotmap.Key) (Range, bool) { return r.slots.Remove(k) }

// All implements Registry in slot index order.
func (r *SlotRegistry) All() iter.Seq2[slotmap.Key, Range] { return r.slots.All() }

// Ranges implements Registry.
func (r *SlotRegistry) Ranges() iter.Seq[*Range] { return r.slots.ValuesMut() }

// secondaryStore is the method set shared by slotmap.SecondaryMap and
// slotmap.SparseSecondaryMap.
type secondaryStore interface {
	Len() int
	Clear()
	Insert(k slotmap.Key, v Range) (Range, bool, error)
	Occupant(k slotmap.Key) (slotmap.Key, bool)
	Contains(k slotmap.Key) bool
	Get(k slotmap.Key) (Range, bool)
	Remove(k slotmap.Key) (Range, bool)
	All() iter.Seq2[slotmap.Key, Range]
	ValuesMut() iter.Seq[*Range]
}

// SecondaryRegistry is a pre-keyed registry: slices are stored under keys
// issued by an associated slotmap.SlotMap (for example an entity registry).
type SecondaryRegistry struct {
	m secondaryStore
}

// NewSecondaryRegistry creates a pre-keyed registry with dense storage.
// If m is nil, a new SecondaryMap is created.
func NewSecondaryRegistry(m *slotmap.SecondaryMap[Range]) *SecondaryRegistry {
	if m == nil {
		m = slotmap.NewSecondary[Range]()
	}
	return &SecondaryRegistry{m: m}
}

// NewSparseRegistry creates a pre-keyed registry with sparse storage.
// If m is nil, a new SparseSecondaryMap is created.
func NewSparseRegistry(m *slotmap.SparseSecondaryMap[Range]) *SecondaryRegistry {
	if m == nil {
		m = slotmap.NewSparseSecondary[Range]()
	}
	return &SecondaryRegistry{m: m}
}

// Len implements Registry.
func (r *SecondaryRegistry) Len() int { return r.m.Len() }

// Reset implements Registry.
func (r *SecondaryRegistry) Reset() { r.m.Clear() }

// Insert implements Registry. Keys must be supplied with AddItemsAt.
func (r *SecondaryRegistry) Insert(Range) (slotmap.Key, error) {
	return slotmap.Key{}, ErrKeyRequired
}

// Claim implements Registry.
func (r *SecondaryRegistry) Claim(k slotmap.Key) (Range, bool, error) {
	if k.IsNull() {
		return Range{}, false, ErrNullKey
	}
	occ, ok := r.m.Occupant(k)
	if !ok {
		return Range{}, false, nil
	}
	switch {
	case occ == k:
		return Range{}, false, fmt.Errorf("%w: %s", ErrKeyExists, k)
	case occ.Generation() > k.Generation():
		return Range{}, false, fmt.Errorf("%w: %s is older than %s", ErrStaleKey, k, occ)
	}
	stale, _ := r.m.Remove(occ)
	return stale, true, nil
}

// InsertAt implements Registry.
func (r *SecondaryRegistry) InsertAt(k slotmap.Key, rng Range) error {
	if r.m.Contains(k) {
		return fmt.Errorf("%w: %s", ErrKeyExists, k)
	}
	_, _, err := r.m.Insert(k, rng)
	return err
}

// Get implements Registry.
func (r *SecondaryRegistry) Get(k slotmap.Key) (Range, bool) { return r.m.Get(k) }

// Remove implements Registry.
func (r *SecondaryRegistry) Remove(k slotmap.Key) (Range, bool) { return r.m.Remove(k) }

// All implements Registry in slot index order.
func (r *SecondaryRegistry) All() iter.Seq2[slotmap.Key, Range] { return r.m.All() }

// Ranges implements Registry.
func (r *SecondaryRegistry) Ranges() iter.Seq[*Range] { return r.m.ValuesMut() }
