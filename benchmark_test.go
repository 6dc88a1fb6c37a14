package slicemap

import (
	"strconv"
	"testing"

	"github.com/hupe1980/slicemap/slotmap"
	"github.com/hupe1980/slicemap/testutil"
)

func BenchmarkAdd(b *testing.B) {
	for _, dist := range []struct {
		name    string
		batches [][]int
	}{
		{"uniform", testutil.NewRNG(4711).Batches(1024, 16)},
		{"zipf", testutil.NewRNG(4711).ZipfBatches(1024, 64, 1.2)},
	} {
		batches := dist.batches

		b.Run("vec/"+dist.name, func(b *testing.B) {
			m := NewVec[int](WithItemCapacity(1<<16), WithSliceCapacity(1024))
			b.ReportAllocs()
			for i := 0; b.Loop(); i++ {
				if i%len(batches) == 0 {
					m.Clear()
				}
				_, _ = m.Add(batches[i%len(batches)]...)
			}
		})

		b.Run("slots/"+dist.name, func(b *testing.B) {
			m := NewSlots[int](WithItemCapacity(1<<16), WithSliceCapacity(1024))
			b.ReportAllocs()
			for i := 0; b.Loop(); i++ {
				if i%len(batches) == 0 {
					m.Clear()
				}
				_, _ = m.Add(batches[i%len(batches)]...)
			}
		})
	}
}

func BenchmarkRemove(b *testing.B) {
	for _, n := range []int{64, 1024} {
		for _, dist := range []struct {
			name    string
			batches [][]int
		}{
			{"uniform", testutil.NewRNG(4711).Batches(n, 16)},
			{"zipf", testutil.NewRNG(4711).ZipfBatches(n, 64, 1.2)},
		} {
			batches := dist.batches

			b.Run(strconv.Itoa(n)+"/"+dist.name, func(b *testing.B) {
				m := NewSlots[int]()
				keys := make([]slotmap.Key, 0, n)
				fill := func() {
					m.Clear()
					keys = keys[:0]
					for _, batch := range batches {
						k, _ := m.Add(batch...)
						keys = append(keys, k)
					}
				}
				fill()

				i := 0
				for b.Loop() {
					if i == len(keys) {
						b.StopTimer()
						fill()
						i = 0
						b.StartTimer()
					}
					// Remove from the front: worst case shift.
					m.RemoveSlice(keys[i])
					i++
				}
			})
		}
	}
}

func BenchmarkIterate(b *testing.B) {
	m := NewSlots[int]()
	for _, batch := range testutil.NewRNG(4711).Batches(4096, 16) {
		_, _ = m.Add(batch...)
	}

	b.ReportAllocs()
	for b.Loop() {
		sum := 0
		for s := range m.Slices() {
			sum += len(s)
		}
		if sum != m.ItemsLen() {
			b.Fatal("length mismatch")
		}
	}
}
