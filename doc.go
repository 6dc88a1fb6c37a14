// Package slicemap stores many variable-length slices of one element type in
// a single contiguous buffer, addressed by key.
//
// Each slice is recorded as a Range into the shared item buffer. Adding a
// slice appends to the end of the buffer; removing one drains its items and
// lowers the range of every slice after it, so the buffer never holds gaps.
//
// # Quick Start
//
//	m := slicemap.NewSlots[int]()
//	a, _ := m.Add(1, 2, 3, 4, 5)
//	b, _ := m.Add(6, 7)
//	m.RemoveSlice(a)
//	s, _ := m.GetSlice(b) // [6 7]
//
// # Backends
//
// The item buffer is any Storage; the registry is any Registry. The bundled
// combinations are:
//
//   - NewVec: growable buffer, index keys
//   - NewArray: fixed-capacity buffer and range store, index keys
//   - NewSlots: growable buffer, generational keys (slotmap.Key)
//   - NewSecondary, NewSparseSecondary: growable buffer, keys issued by an
//     external slotmap.SlotMap
//
// Keys never shift when other slices are removed, and a removed key never
// resolves again. Index keys are issued in insertion order and are not
// reused, even after Clear.
//
// # Capacity
//
// Ranges use 32-bit bounds, so a container addresses at most MaxItems items.
// WithMaxItems lowers that ceiling. An add that fails for lack of room
// returns an error matching ErrCapacityExceeded, registers no key and
// truncates the item buffer back to its length before the append. When
// AddItemsAt replaces a slice stored under an older key of the same slot,
// that slice is removed before the append and stays removed if the append
// fails.
//
// # Concurrency
//
// A SliceMap has no internal locking. Share it between goroutines only
// behind an external lock, or give each goroutine its own instance.
package slicemap
