package slicemap

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/hupe1980/slicemap/slotmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	m := NewSlots[int](WithMetricsCollector(mc), WithMaxItems(8))

	a, _ := m.Add(1, 2, 3)
	b, _ := m.Add(4, 5)
	_, _ = m.Add(6, 7, 8)
	_, err := m.Add(9)
	require.Error(t, err)

	m.RemoveSlice(a)
	m.RemoveSlice(a)
	m.RemoveSlice(b)
	m.Clear()

	stats := mc.GetStats()
	assert.Equal(t, int64(4), stats.AddCount)
	assert.Equal(t, int64(1), stats.AddErrors)
	assert.Equal(t, int64(8), stats.ItemsAdded)
	assert.Equal(t, int64(2), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.RemoveMisses)
	assert.Equal(t, int64(5), stats.ItemsRemoved)
	// Removing a shifts 5 items and rebases 2 slices; removing b then shifts 3
	// and rebases 1.
	assert.Equal(t, int64(8), stats.ItemsShifted)
	assert.Equal(t, int64(3), stats.SlicesRebased)
	assert.Equal(t, int64(4), stats.AvgShiftPerRemove)
	assert.Equal(t, int64(1), stats.ClearCount)
}

func TestMetricsCollectorNil(t *testing.T) {
	m := NewVec[int](WithMetricsCollector(nil), WithLogger(nil))

	_, err := m.Add(1)
	require.NoError(t, err)
	m.RemoveSlice(0)
	m.Clear()
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).WithName("test")
	m := NewSlots[int](WithLogger(logger), WithMaxItems(3))

	k, err := m.Add(1, 2)
	require.NoError(t, err)
	_, err = m.Add(3, 4)
	require.Error(t, err)
	m.RemoveSlice(k)
	m.RemoveSlice(k)
	m.Clear()

	var records []map[string]any
	for line := range strings.Lines(buf.String()) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 5)

	msgs := make([]string, len(records))
	for i, rec := range records {
		msgs[i] = rec["msg"].(string)
		assert.Equal(t, "test", rec["slicemap"])
	}
	assert.Equal(t, []string{
		"slice added",
		"add failed",
		"slice removed",
		"remove: key not found",
		"slicemap cleared",
	}, msgs)

	assert.Equal(t, "WARN", records[1]["level"])
	assert.Equal(t, float64(2), records[2]["end"])
	assert.Equal(t, float64(0), records[4]["items"])
}

func TestLoggerInfoLevelSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	m := NewVec[int](WithLogger(logger))

	_, _ = m.Add(1, 2, 3)
	m.RemoveSlice(0)

	assert.Empty(t, buf.String())
}

func TestLoggerEviction(t *testing.T) {
	evict := func(t *testing.T, logger *Logger) {
		t.Helper()
		m := NewSecondary[int](WithLogger(logger))
		entities := slotmap.New[struct{}]()

		k1, err := entities.Insert(struct{}{})
		require.NoError(t, err)
		require.NoError(t, m.AddAt(k1, 1, 2, 3))

		entities.Remove(k1)
		k2, err := entities.Insert(struct{}{})
		require.NoError(t, err)
		require.NoError(t, m.AddAt(k2, 4))
	}

	t.Run("debug", func(t *testing.T) {
		var buf bytes.Buffer
		evict(t, NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

		var records []map[string]any
		for line := range strings.Lines(buf.String()) {
			var rec map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &rec))
			records = append(records, rec)
		}
		require.Len(t, records, 3)

		rec := records[1]
		assert.Equal(t, "stale slice evicted", rec["msg"])
		assert.Equal(t, "DEBUG", rec["level"])
		assert.Equal(t, float64(0), rec["start"])
		assert.Equal(t, float64(3), rec["end"])
	})

	t.Run("info", func(t *testing.T) {
		var buf bytes.Buffer
		evict(t, NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

		assert.Empty(t, buf.String())
	})
}
