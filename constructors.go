package slicemap

import (
	"github.com/hupe1980/slicemap/buffer"
	"github.com/hupe1980/slicemap/slotmap"
)

// NewVec creates a growable SliceMap keyed by insertion index.
//
// Index keys are issued in insertion order and never reused; see IndexRegistry.
func NewVec[T any](optFns ...Option) *SliceMap[int, T] {
	o := applyOptions(optFns)
	return newSliceMap[int, T](
		buffer.NewVec[T](o.itemCapacity),
		NewIndexRegistry(buffer.NewVec[Range](o.sliceCapacity)),
		o,
	)
}

// NewArray creates a SliceMap with fixed capacity for itemCap items and
// sliceCap slices. It never reallocates; adds beyond either capacity fail
// with ErrCapacityExceeded.
//
// Keys are insertion indices, as with NewVec. A removed slice keeps its
// place in the range store until Clear, so sliceCap bounds the slices added
// since the last Clear.
func NewArray[T any](itemCap, sliceCap int, optFns ...Option) *SliceMap[int, T] {
	o := applyOptions(optFns)
	return newSliceMap[int, T](
		buffer.NewFixed[T](itemCap),
		NewIndexRegistry(buffer.NewFixed[Range](sliceCap)),
		o,
	)
}

// NewSlots creates a growable SliceMap with generational keys. Keys stay
// valid until their own slice is removed.
func NewSlots[T any](optFns ...Option) *SliceMap[slotmap.Key, T] {
	o := applyOptions(optFns)
	return newSliceMap[slotmap.Key, T](
		buffer.NewVec[T](o.itemCapacity),
		NewSlotRegistry(slotmap.WithCapacity[Range](o.sliceCapacity)),
		o,
	)
}

// NewSecondary creates a growable SliceMap storing slices under keys issued
// by another slotmap.SlotMap. Slices are added with AddItemsAt.
func NewSecondary[T any](optFns ...Option) *SliceMap[slotmap.Key, T] {
	o := applyOptions(optFns)
	return newSliceMap[slotmap.Key, T](buffer.NewVec[T](o.itemCapacity), NewSecondaryRegistry(nil), o)
}

// NewSparseSecondary is like NewSecondary but backs the registry with a
// hash map, for keys drawn sparsely from a large slot map.
func NewSparseSecondary[T any](optFns ...Option) *SliceMap[slotmap.Key, T] {
	o := applyOptions(optFns)
	return newSliceMap[slotmap.Key, T](buffer.NewVec[T](o.itemCapacity), NewSparseRegistry(nil), o)
}
