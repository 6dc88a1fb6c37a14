// Package slotmap provides generation-keyed associative containers.
//
// A SlotMap issues a Key on every insert. A Key pairs a slot index with the
// generation the slot had when the value was inserted. Removing a value bumps
// the slot's generation, so every Key issued for it becomes stale: lookups
// with a stale Key report not found, even after the slot is reused.
//
// Secondary maps associate extra data with keys issued by a SlotMap:
//
//   - SecondaryMap: dense, one slot per index, best when most primary keys
//     carry data
//   - SparseSecondaryMap: hash-backed with an ordered occupancy index, best
//     when only a few primary keys carry data
//
// Secondary maps never issue keys. Inserting with a key that is older than
// the current occupant of its slot fails with ErrStaleKey; inserting with a
// newer key replaces the older occupant.
//
// # Iteration Order
//
// All containers iterate in ascending slot index order. The order is
// deterministic for a given sequence of operations but is not insertion
// order once slots are reused.
//
// # Free Slots
//
// SlotMap tracks vacant slots in a Roaring bitmap and always reuses the
// lowest vacant index first. A slot whose generation would wrap around is
// retired and never handed out again.
package slotmap
