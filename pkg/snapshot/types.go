// Package snapshot persists dated aggregate compliance records and
// computes deltas and trends over them. Snapshots are immutable once
// written; corrections are new snapshots on a later day, never edits.
package snapshot

import (
	"time"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/gaps"
	"github.com/meridian-grc/resilscore/pkg/maturity"
)

// Change describes the movement between a snapshot and its predecessor
// for the same (organization, vendor) key.
type Change struct {
	PreviousDate       time.Time      `json:"previous_date"`
	PreviousLevel      maturity.Level `json:"previous_level"`
	PreviousPercentage float64        `json:"previous_percentage"`
	LevelDelta         int            `json:"level_delta"`
	PercentageDelta    float64        `json:"percentage_delta"`
	GapsClosed         int            `json:"gaps_closed"`
	GapsOpened         int            `json:"gaps_opened"`
}

// Snapshot is one dated aggregate compliance record. At most one exists
// per (organization, vendor-or-empty, calendar day).
type Snapshot struct {
	ID                   string                    `json:"id"`
	OrganizationID       string                    `json:"organization_id"`
	VendorID             string                    `json:"vendor_id,omitempty"`
	Framework            catalog.Framework         `json:"framework"`
	Date                 time.Time                 `json:"date"`
	OverallLevel         maturity.Level            `json:"overall_level"`
	OverallPercentage    float64                   `json:"overall_percentage"`
	PillarLevels         map[string]maturity.Level `json:"pillar_levels"`
	PillarPercentages    map[string]float64        `json:"pillar_percentages"`
	RequirementsMet      int                       `json:"requirements_met"`
	RequirementsTotal    int                       `json:"requirements_total"`
	GapCounts            map[catalog.Priority]int  `json:"gap_counts"`
	CriticalGaps         []gaps.GapItem            `json:"critical_gaps,omitempty"`
	EstimatedRemediation string                    `json:"estimated_remediation"`
	ChangeFromPrevious   *Change                   `json:"change_from_previous,omitempty"`
	CreatedBy            string                    `json:"created_by,omitempty"`
	Notes                string                    `json:"notes,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
}

// TotalGaps sums the per-priority gap counts.
func (s Snapshot) TotalGaps() int {
	var n int
	for _, c := range s.GapCounts {
		n += c
	}
	return n
}

// FractionalLevel is the percentage mapped onto the continuous 0-4
// scale, used for trend projection where whole levels are too coarse.
func (s Snapshot) FractionalLevel() float64 {
	return s.OverallPercentage / 25
}

// ChangeLogEntry records one maturity movement. Entries are append-only
// and never mutated or deleted.
type ChangeLogEntry struct {
	ID              string         `json:"id"`
	SnapshotID      string         `json:"snapshot_id"`
	OrganizationID  string         `json:"organization_id"`
	VendorID        string         `json:"vendor_id,omitempty"`
	OccurredAt      time.Time      `json:"occurred_at"`
	PreviousLevel   maturity.Level `json:"previous_level"`
	NewLevel        maturity.Level `json:"new_level"`
	PercentageDelta float64        `json:"percentage_delta"`
	Summary         string         `json:"summary"`
}
