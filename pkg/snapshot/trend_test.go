package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-grc/resilscore/pkg/maturity"
)

func seedSnapshots(t *testing.T, tr *Tracker, points []struct {
	d     time.Time
	level maturity.Level
	pct   float64
}) {
	t.Helper()
	for _, p := range points {
		_, err := tr.Record(context.Background(), resultAt(p.d, p.level, p.pct), "", "")
		require.NoError(t, err)
	}
}

func TestTrendImprovingWithProjection(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	seedSnapshots(t, tr, []struct {
		d     time.Time
		level maturity.Level
		pct   float64
	}{
		{day(2026, 1, 1), maturity.L1, 40},
		{day(2026, 3, 1), maturity.L2, 55},
	})

	trend, err := tr.Trend(context.Background(), "org-1", "",
		day(2025, 12, 1), day(2026, 4, 1), maturity.L3)
	require.NoError(t, err)

	assert.Equal(t, Improving, trend.Direction)
	assert.Equal(t, 1, trend.LevelChange)
	assert.InDelta(t, 15, trend.PctChange, 0.001)
	assert.Equal(t, Improving, trend.PillarTrends["p1"])

	// 40% -> 55% is 0.6 fractional levels over 59 days. Reaching L3
	// (75%) needs another 0.8 levels, roughly 79 more days.
	require.NotNil(t, trend.ProjectedDate)
	expected := day(2026, 3, 1).AddDate(0, 0, 79)
	assert.WithinDuration(t, expected, *trend.ProjectedDate, 48*time.Hour)
}

func TestTrendDeclining(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	seedSnapshots(t, tr, []struct {
		d     time.Time
		level maturity.Level
		pct   float64
	}{
		{day(2026, 1, 1), maturity.L3, 75},
		{day(2026, 2, 1), maturity.L2, 60},
	})

	trend, err := tr.Trend(context.Background(), "org-1", "",
		day(2025, 12, 1), day(2026, 3, 1), maturity.L4)
	require.NoError(t, err)
	assert.Equal(t, Declining, trend.Direction)
	assert.Nil(t, trend.ProjectedDate, "no projection while not improving")
}

func TestTrendNoProjectionWhenTargetReached(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	seedSnapshots(t, tr, []struct {
		d     time.Time
		level maturity.Level
		pct   float64
	}{
		{day(2026, 1, 1), maturity.L2, 55},
		{day(2026, 2, 1), maturity.L3, 78},
	})

	trend, err := tr.Trend(context.Background(), "org-1", "",
		day(2025, 12, 1), day(2026, 3, 1), maturity.L3)
	require.NoError(t, err)
	assert.Equal(t, Improving, trend.Direction)
	assert.Nil(t, trend.ProjectedDate, "target already reached")
}

func TestTrendSingleSnapshotIsStable(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	seedSnapshots(t, tr, []struct {
		d     time.Time
		level maturity.Level
		pct   float64
	}{
		{day(2026, 1, 1), maturity.L2, 55},
	})

	trend, err := tr.Trend(context.Background(), "org-1", "",
		day(2025, 12, 1), day(2026, 3, 1), maturity.L4)
	require.NoError(t, err)
	assert.Equal(t, Stable, trend.Direction)
	assert.Equal(t, 1, trend.SnapshotCount)
	assert.Nil(t, trend.ProjectedDate)
}

func TestTrendWindowExcludesOutsideSnapshots(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	seedSnapshots(t, tr, []struct {
		d     time.Time
		level maturity.Level
		pct   float64
	}{
		{day(2025, 6, 1), maturity.L0, 10},
		{day(2026, 1, 1), maturity.L2, 55},
		{day(2026, 2, 1), maturity.L2, 57},
	})

	trend, err := tr.Trend(context.Background(), "org-1", "",
		day(2025, 12, 1), day(2026, 3, 1), maturity.L4)
	require.NoError(t, err)
	assert.Equal(t, 2, trend.SnapshotCount)
	assert.InDelta(t, 2, trend.PctChange, 0.001, "the old snapshot outside the window is ignored")
}
