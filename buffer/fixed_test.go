package buffer

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	t.Run("push until full", func(t *testing.T) {
		f := NewFixed[int](2)
		require.NoError(t, f.Push(1))
		require.NoError(t, f.Push(2))

		err := f.Push(3)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 2, f.Len())
		assert.Equal(t, 2, f.Cap())
	})

	t.Run("extend overflow keeps appended prefix", func(t *testing.T) {
		f := NewFixed[int](3)
		require.NoError(t, f.Push(0))

		err := f.Extend(slices.Values([]int{1, 2, 3, 4}))
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, []int{0, 1, 2}, slices.Collect(f.Values()))
	})

	t.Run("extend stops consuming the sequence", func(t *testing.T) {
		f := NewFixed[int](1)
		pulled := 0
		seq := func(yield func(int) bool) {
			for i := range 10 {
				pulled++
				if !yield(i) {
					return
				}
			}
		}

		require.ErrorIs(t, f.Extend(seq), ErrCapacityExceeded)
		assert.Equal(t, 2, pulled)
	})

	t.Run("slice is bounded by head not capacity", func(t *testing.T) {
		f := NewFixed[int](10)
		require.NoError(t, f.Extend(slices.Values([]int{1, 2, 3})))

		got, ok := f.Slice(0, 3)
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 3}, got)

		_, ok = f.Slice(0, 4)
		assert.False(t, ok)
	})

	t.Run("values ignore unused capacity", func(t *testing.T) {
		f := NewFixed[int](10)
		require.NoError(t, f.Push(7))

		assert.Equal(t, []int{7}, slices.Collect(f.Values()))
	})

	t.Run("drain shifts and zeroes tail", func(t *testing.T) {
		f := NewFixed[int](6)
		require.NoError(t, f.Extend(slices.Values([]int{1, 2, 3, 4, 5, 6})))

		f.Drain(1, 3)
		assert.Equal(t, []int{1, 4, 5, 6}, slices.Collect(f.Values()))
		assert.Equal(t, []int{1, 4, 5, 6, 0, 0}, f.data)

		require.NoError(t, f.Extend(slices.Values([]int{7, 8})))
		assert.Equal(t, []int{1, 4, 5, 6, 7, 8}, slices.Collect(f.Values()))
	})

	t.Run("drain empty range is a no-op", func(t *testing.T) {
		f := NewFixed[int](2)
		require.NoError(t, f.Push(1))

		f.Drain(1, 1)
		assert.Equal(t, 1, f.Len())
	})

	t.Run("drain out of bounds panics", func(t *testing.T) {
		f := NewFixed[int](4)
		require.NoError(t, f.Push(1))

		assert.Panics(t, func() { f.Drain(0, 2) })
	})

	t.Run("remove at", func(t *testing.T) {
		f := NewFixed[string](3)
		require.NoError(t, f.Extend(slices.Values([]string{"a", "b", "c"})))

		got, ok := f.RemoveAt(0)
		require.True(t, ok)
		assert.Equal(t, "a", got)
		assert.Equal(t, []string{"b", "c"}, slices.Collect(f.Values()))

		_, ok = f.RemoveAt(2)
		assert.False(t, ok)
	})

	t.Run("values mut", func(t *testing.T) {
		f := NewFixed[int](3)
		require.NoError(t, f.Extend(slices.Values([]int{1, 2})))

		for p := range f.ValuesMut() {
			*p++
		}
		assert.Equal(t, []int{2, 3}, slices.Collect(f.Values()))
	})

	t.Run("reset makes room again", func(t *testing.T) {
		f := NewFixed[int](2)
		require.NoError(t, f.Extend(slices.Values([]int{1, 2})))

		f.Reset()
		assert.Equal(t, 0, f.Len())
		require.NoError(t, f.Extend(slices.Values([]int{3, 4})))
		assert.Equal(t, []int{3, 4}, slices.Collect(f.Values()))
	})

	t.Run("zero capacity", func(t *testing.T) {
		f := NewFixed[int](0)
		require.ErrorIs(t, f.Push(1), ErrCapacityExceeded)
		require.NoError(t, f.Extend(slices.Values([]int{})))
	})
}
