package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/gaps"
	"github.com/meridian-grc/resilscore/pkg/maturity"
	"github.com/meridian-grc/resilscore/pkg/scoring"
)

func resultAt(day time.Time, level maturity.Level, pct float64, gapItems ...gaps.GapItem) *assess.Result {
	return &assess.Result{
		ID:                "res-" + day.Format("20060102"),
		Framework:         catalog.FrameworkDORA,
		OrganizationID:    "org-1",
		AssessedAt:        day,
		OverallLevel:      level,
		OverallPercentage: pct,
		Pillars: []scoring.PillarScore{
			{ID: "p1", MaturityLevel: level, PercentageScore: pct, RequirementsMet: 3, RequirementsTotal: 5},
		},
		Gaps: gapItems,
	}
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 10, 30, 0, 0, time.UTC)
}

func TestRecordFirstSnapshot(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	s, err := tr.Record(ctx, resultAt(day(2026, 1, 5), maturity.L2, 55), "tester", "baseline")
	require.NoError(t, err)
	assert.Nil(t, s.ChangeFromPrevious)
	assert.Equal(t, "tester", s.CreatedBy)
	assert.Equal(t, "2026-01-05", s.Date.Format("2006-01-02"))
}

func TestRecordDuplicateDayRejected(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := tr.Record(ctx, resultAt(day(2026, 1, 5), maturity.L2, 55), "", "")
	require.NoError(t, err)

	_, err = tr.Record(ctx, resultAt(day(2026, 1, 5), maturity.L3, 72), "", "")
	assert.ErrorIs(t, err, ErrSnapshotExists)

	// The original snapshot survives untouched.
	latest, err := tr.Latest(ctx, "org-1", "")
	require.NoError(t, err)
	assert.Equal(t, maturity.L2, latest.OverallLevel)
}

func TestRecordComputesChangeAndChangelog(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	ctx := context.Background()

	openGaps := []gaps.GapItem{
		{RequirementID: "R1", Priority: catalog.PriorityHigh},
		{RequirementID: "R2", Priority: catalog.PriorityLow},
	}
	_, err := tr.Record(ctx, resultAt(day(2026, 1, 5), maturity.L1, 40, openGaps...), "", "")
	require.NoError(t, err)

	s, err := tr.Record(ctx, resultAt(day(2026, 2, 5), maturity.L2, 58, openGaps[0]), "", "")
	require.NoError(t, err)

	require.NotNil(t, s.ChangeFromPrevious)
	c := s.ChangeFromPrevious
	assert.Equal(t, 1, c.LevelDelta)
	assert.InDelta(t, 18, c.PercentageDelta, 0.001)
	assert.Equal(t, 1, c.GapsClosed)
	assert.Zero(t, c.GapsOpened)
	assert.Equal(t, maturity.L1, c.PreviousLevel)

	entries, err := tr.Changes(ctx, "org-1", "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1, "level movement produces one changelog entry")
	assert.Equal(t, maturity.L1, entries[0].PreviousLevel)
	assert.Equal(t, maturity.L2, entries[0].NewLevel)
}

func TestRecordNoChangelogWithoutLevelMovement(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := tr.Record(ctx, resultAt(day(2026, 1, 5), maturity.L2, 55), "", "")
	require.NoError(t, err)
	_, err = tr.Record(ctx, resultAt(day(2026, 1, 6), maturity.L2, 57), "", "")
	require.NoError(t, err)

	entries, err := tr.Changes(ctx, "org-1", "", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVendorScopedKeysAreIndependent(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	ctx := context.Background()

	orgRes := resultAt(day(2026, 1, 5), maturity.L2, 55)
	vendorRes := resultAt(day(2026, 1, 5), maturity.L1, 30)
	vendorRes.VendorID = "vendor-9"

	_, err := tr.Record(ctx, orgRes, "", "")
	require.NoError(t, err)
	_, err = tr.Record(ctx, vendorRes, "", "")
	require.NoError(t, err, "same day, different vendor key")

	v, err := tr.Latest(ctx, "org-1", "vendor-9")
	require.NoError(t, err)
	assert.Equal(t, maturity.L1, v.OverallLevel)
}

func TestLatestNotFound(t *testing.T) {
	tr := NewTracker(NewMemoryStore(), nil)
	_, err := tr.Latest(context.Background(), "nobody", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
