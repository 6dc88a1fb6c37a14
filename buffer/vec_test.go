package buffer

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec(t *testing.T) {
	t.Run("extend and slice", func(t *testing.T) {
		v := NewVec[int](4)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3})))
		require.NoError(t, v.Push(4))

		assert.Equal(t, 4, v.Len())
		got, ok := v.Slice(1, 3)
		require.True(t, ok)
		assert.Equal(t, []int{2, 3}, got)
	})

	t.Run("slice out of bounds is not found", func(t *testing.T) {
		v := NewVec[int](0)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2})))

		_, ok := v.Slice(1, 3)
		assert.False(t, ok)
		_, ok = v.Slice(2, 1)
		assert.False(t, ok)
		_, ok = v.Slice(-1, 1)
		assert.False(t, ok)
	})

	t.Run("slice capacity is clipped", func(t *testing.T) {
		v := NewVec[int](8)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3, 4})))

		head, ok := v.Slice(0, 2)
		require.True(t, ok)
		assert.Equal(t, 2, cap(head))

		_ = append(head, 99)
		got, _ := v.Get(2)
		assert.Equal(t, 3, got, "append to a view must not overwrite the buffer")
	})

	t.Run("get", func(t *testing.T) {
		v := NewVec[string](0)
		require.NoError(t, v.Push("a"))

		got, ok := v.Get(0)
		assert.True(t, ok)
		assert.Equal(t, "a", got)

		_, ok = v.Get(1)
		assert.False(t, ok)
	})

	t.Run("remove at", func(t *testing.T) {
		v := NewVec[int](0)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3})))

		got, ok := v.RemoveAt(1)
		require.True(t, ok)
		assert.Equal(t, 2, got)
		assert.Equal(t, []int{1, 3}, slices.Collect(v.Values()))

		_, ok = v.RemoveAt(5)
		assert.False(t, ok)
	})

	t.Run("drain shifts later elements", func(t *testing.T) {
		v := NewVec[int](0)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3, 4, 5, 6})))

		v.Drain(1, 3)
		assert.Equal(t, []int{1, 4, 5, 6}, slices.Collect(v.Values()))

		v.Drain(2, 2)
		assert.Equal(t, 4, v.Len())
	})

	t.Run("drain out of bounds panics", func(t *testing.T) {
		v := NewVec[int](0)
		require.NoError(t, v.Push(1))

		assert.Panics(t, func() { v.Drain(0, 2) })
	})

	t.Run("values mut updates in place", func(t *testing.T) {
		v := NewVec[int](0)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3})))

		for p := range v.ValuesMut() {
			*p *= 10
		}
		assert.Equal(t, []int{10, 20, 30}, slices.Collect(v.Values()))
	})

	t.Run("iterators are restartable and stop early", func(t *testing.T) {
		v := NewVec[int](0)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3})))

		seq := v.Values()
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(seq))
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(seq))

		var first []int
		for x := range seq {
			first = append(first, x)
			break
		}
		assert.Equal(t, []int{1}, first)
	})

	t.Run("reset keeps capacity", func(t *testing.T) {
		v := NewVec[int](16)
		require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3})))

		v.Reset()
		assert.Equal(t, 0, v.Len())
		assert.GreaterOrEqual(t, v.Cap(), 16)
	})
}
