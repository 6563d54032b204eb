package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-grc/resilscore/pkg/maturity"
)

// Direction is the overall movement over a trend window.
type Direction string

const (
	Improving Direction = "improving"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

// Trend summarizes maturity movement across the snapshots in a window.
type Trend struct {
	From          time.Time            `json:"from"`
	To            time.Time            `json:"to"`
	SnapshotCount int                  `json:"snapshot_count"`
	Direction     Direction            `json:"direction"`
	PillarTrends  map[string]Direction `json:"pillar_trends,omitempty"`
	LevelChange   int                  `json:"level_change"`
	PctChange     float64              `json:"pct_change"`
	TargetLevel   maturity.Level       `json:"target_level"`
	ProjectedDate *time.Time           `json:"projected_date,omitempty"`
}

// Trend loads the snapshots for a key inside [from, to] and derives
// direction from the first and last, per-pillar direction by sign
// comparison, and a linear projection of when targetLevel will be
// reached. Projection is attempted only while the trend is improving and
// the target has not yet been reached; otherwise ProjectedDate is nil.
func (t *Tracker) Trend(ctx context.Context, orgID, vendorID string, from, to time.Time, targetLevel maturity.Level) (*Trend, error) {
	snaps, err := t.store.Range(ctx, orgID, vendorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot range: %w", err)
	}
	tr := &Trend{From: from, To: to, SnapshotCount: len(snaps), TargetLevel: targetLevel.Clamp()}
	if len(snaps) < 2 {
		tr.Direction = Stable
		return tr, nil
	}

	first, last := snaps[0], snaps[len(snaps)-1]
	tr.LevelChange = int(last.OverallLevel) - int(first.OverallLevel)
	tr.PctChange = last.OverallPercentage - first.OverallPercentage
	tr.Direction = directionOf(tr.PctChange)
	tr.PillarTrends = pillarTrends(first, last)

	if tr.Direction == Improving && last.OverallLevel < tr.TargetLevel {
		tr.ProjectedDate = project(first, last, tr.TargetLevel)
	}
	return tr, nil
}

func directionOf(pctChange float64) Direction {
	switch {
	case pctChange > 0:
		return Improving
	case pctChange < 0:
		return Declining
	default:
		return Stable
	}
}

func pillarTrends(first, last Snapshot) map[string]Direction {
	out := make(map[string]Direction, len(last.PillarPercentages))
	for id, cur := range last.PillarPercentages {
		prev, ok := first.PillarPercentages[id]
		if !ok {
			out[id] = Stable
			continue
		}
		out[id] = directionOf(cur - prev)
	}
	return out
}

// project extrapolates the observed pace on the continuous level scale,
// since whole-level movement is too coarse inside a short window.
func project(first, last Snapshot, target maturity.Level) *time.Time {
	gain := last.FractionalLevel() - first.FractionalLevel()
	if gain <= 0 {
		return nil
	}
	days := last.Date.Sub(first.Date).Hours() / 24
	if days <= 0 {
		return nil
	}
	daysPerLevel := days / gain
	remaining := float64(target) - last.FractionalLevel()
	if remaining <= 0 {
		return nil
	}
	when := last.Date.AddDate(0, 0, int(remaining*daysPerLevel+0.5))
	return &when
}
