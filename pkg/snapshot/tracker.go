package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/maturity"
)

// Tracker turns assessment results into stored snapshots and changelog
// entries.
type Tracker struct {
	store Store
	log   *zap.Logger
}

func NewTracker(store Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{store: store, log: log}
}

// Record builds a snapshot from an assessment result, diffs it against
// the most recent prior snapshot for the same key, and writes it. A
// second snapshot on the same calendar day fails with ErrSnapshotExists;
// callers decide whether that is a conflict or simply already-done work.
func (t *Tracker) Record(ctx context.Context, res *assess.Result, createdBy, notes string) (*Snapshot, error) {
	s := FromResult(res)
	s.CreatedBy = createdBy
	s.Notes = notes

	prev, err := t.store.Latest(ctx, s.OrganizationID, s.VendorID)
	switch {
	case err == nil:
		s.ChangeFromPrevious = diff(prev, s)
	case errors.Is(err, ErrNotFound):
		// First snapshot for this key; nothing to diff against.
	default:
		return nil, fmt.Errorf("loading previous snapshot: %w", err)
	}

	if err := t.store.Insert(ctx, s); err != nil {
		return nil, err
	}

	if c := s.ChangeFromPrevious; c != nil && c.LevelDelta != 0 {
		entry := ChangeLogEntry{
			ID:              uuid.NewString(),
			SnapshotID:      s.ID,
			OrganizationID:  s.OrganizationID,
			VendorID:        s.VendorID,
			OccurredAt:      s.CreatedAt,
			PreviousLevel:   c.PreviousLevel,
			NewLevel:        s.OverallLevel,
			PercentageDelta: c.PercentageDelta,
			Summary:         fmt.Sprintf("overall maturity moved from %s to %s", c.PreviousLevel, s.OverallLevel),
		}
		if err := t.store.AppendChange(ctx, entry); err != nil {
			return nil, fmt.Errorf("appending changelog entry: %w", err)
		}
	}

	t.log.Info("snapshot recorded",
		zap.String("organization", s.OrganizationID),
		zap.String("vendor", s.VendorID),
		zap.Time("date", s.Date),
		zap.Int("level", int(s.OverallLevel)))
	return s, nil
}

// Latest returns the most recent snapshot for a key, or ErrNotFound.
func (t *Tracker) Latest(ctx context.Context, orgID, vendorID string) (*Snapshot, error) {
	return t.store.Latest(ctx, orgID, vendorID)
}

// Changes returns the most recent changelog entries for a key.
func (t *Tracker) Changes(ctx context.Context, orgID, vendorID string, limit int) ([]ChangeLogEntry, error) {
	return t.store.Changes(ctx, orgID, vendorID, limit)
}

// FromResult converts an assessment result into an unsaved snapshot
// dated on the result's assessment day.
func FromResult(res *assess.Result) *Snapshot {
	s := &Snapshot{
		ID:                   uuid.NewString(),
		OrganizationID:       res.OrganizationID,
		VendorID:             res.VendorID,
		Framework:            res.Framework,
		Date:                 res.AssessedAt.UTC().Truncate(24 * time.Hour),
		OverallLevel:         res.OverallLevel,
		OverallPercentage:    res.OverallPercentage,
		PillarLevels:         make(map[string]maturity.Level, len(res.Pillars)),
		PillarPercentages:    make(map[string]float64, len(res.Pillars)),
		GapCounts:            make(map[catalog.Priority]int),
		CriticalGaps:         res.CriticalGaps,
		EstimatedRemediation: res.EstimatedRemediation,
		CreatedAt:            res.AssessedAt.UTC(),
	}
	for _, p := range res.Pillars {
		s.PillarLevels[p.ID] = p.MaturityLevel
		s.PillarPercentages[p.ID] = p.PercentageScore
		s.RequirementsMet += p.RequirementsMet
		s.RequirementsTotal += p.RequirementsTotal
	}
	for _, g := range res.Gaps {
		s.GapCounts[g.Priority]++
	}
	return s
}

func diff(prev, cur *Snapshot) *Change {
	return &Change{
		PreviousDate:       prev.Date,
		PreviousLevel:      prev.OverallLevel,
		PreviousPercentage: prev.OverallPercentage,
		LevelDelta:         int(cur.OverallLevel) - int(prev.OverallLevel),
		PercentageDelta:    cur.OverallPercentage - prev.OverallPercentage,
		GapsClosed:         positive(prev.TotalGaps() - cur.TotalGaps()),
		GapsOpened:         positive(cur.TotalGaps() - prev.TotalGaps()),
	}
}

func positive(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
