package slicemap

import (
	"slices"
	"sync"
	"testing"

	"github.com/hupe1980/slicemap/slotmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentReaders(t *testing.T) {
	m := NewSlots[int]()

	want := map[slotmap.Key]int{}
	for i := range 200 {
		items := make([]int, i%7)
		for j := range items {
			items[j] = i
		}
		k, err := m.Add(items...)
		require.NoError(t, err)
		want[k] = len(items) * i
	}
	total := 0
	for _, sum := range want {
		total += sum
	}

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			for k, s := range m.All() {
				sum := 0
				for _, v := range s {
					sum += v
				}
				if !assert.Equal(t, want[k], sum) {
					return nil
				}
			}

			sum := 0
			for v := range m.Items() {
				sum += v
			}
			assert.Equal(t, total, sum)
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestExternalLock(t *testing.T) {
	var (
		mu sync.RWMutex
		m  = NewVec[int]()
	)

	var g errgroup.Group
	for w := range 4 {
		g.Go(func() error {
			for i := range 50 {
				mu.Lock()
				_, err := m.Add(w, i)
				mu.Unlock()
				if err != nil {
					return err
				}

				mu.RLock()
				n := m.ItemsLen()
				mu.RUnlock()
				assert.Positive(t, n)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 200, m.SlicesLen())
	assert.Equal(t, 400, m.ItemsLen())
	for s := range m.Slices() {
		assert.Len(t, s, 2)
		assert.True(t, slices.Contains([]int{0, 1, 2, 3}, s[0]))
	}
}
