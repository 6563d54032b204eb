package scoring

import (
	"math"
	"sort"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/maturity"
)

// PillarScore is the rollup for one pillar of a framework.
type PillarScore struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	MaturityLevel     maturity.Level     `json:"maturity_level"`
	PercentageScore   float64            `json:"percentage_score"`
	RequirementsMet   int                `json:"requirements_met"`
	RequirementsTotal int                `json:"requirements_total"`
	Status            Status             `json:"status"`
	Requirements      []RequirementScore `json:"requirements,omitempty"`
}

// OverallScore is the framework-level rollup across pillars.
type OverallScore struct {
	MaturityLevel   maturity.Level `json:"maturity_level"`
	PercentageScore float64        `json:"percentage_score"`
	Status          Status         `json:"status"`
}

// AggregatePillar rolls per-requirement scores up into one pillar score.
// Requirement levels are weighted by priority (critical 3, high 2, else
// 1), expressed as a percentage of the L4 ceiling, and the pillar level
// is re-derived from that percentage through the flat band table. met is
// counted against the framework's compliance floor.
func AggregatePillar(profile catalog.FrameworkProfile, pillarID string, scores []RequirementScore) PillarScore {
	ps := PillarScore{
		ID:                pillarID,
		Name:              profile.PillarName(pillarID),
		RequirementsTotal: len(scores),
		Requirements:      scores,
	}
	values := make([]float64, 0, len(scores))
	weights := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, s.MaturityLevel.Percentage())
		weights = append(weights, s.Priority.Weight())
		if s.MaturityLevel.AtLeast(profile.ComplianceFloor) && s.OperatingStatus != OperatingMissing {
			ps.RequirementsMet++
		}
	}
	ps.PercentageScore = Round1(WeightedAverage(values, weights))
	ps.MaturityLevel = maturity.ForPercentage(ps.PercentageScore)
	ps.Status = StatusForPercentage(ps.PercentageScore)
	return ps
}

// AggregateOverall combines pillar scores using the framework's fixed
// pillar weights. The overall level is floor-rounded from the weighted
// mean of pillar levels; the percentage is rounded arithmetically.
func AggregateOverall(profile catalog.FrameworkProfile, pillars []PillarScore) OverallScore {
	pcts := make([]float64, 0, len(pillars))
	levels := make([]float64, 0, len(pillars))
	weights := make([]float64, 0, len(pillars))
	for _, p := range pillars {
		pcts = append(pcts, p.PercentageScore)
		levels = append(levels, float64(p.MaturityLevel))
		weights = append(weights, profile.PillarWeight(p.ID))
	}
	pct := math.Round(WeightedAverage(pcts, weights))
	level := maturity.Level(math.Floor(WeightedAverage(levels, weights))).Clamp()
	return OverallScore{
		MaturityLevel:   level,
		PercentageScore: pct,
		Status:          StatusForPercentage(pct),
	}
}

// GroupByPillar partitions requirement scores by their pillar, keeping
// each group in requirement ID order, and returns pillar IDs in the
// profile's declared order with unknown pillars appended alphabetically.
func GroupByPillar(profile catalog.FrameworkProfile, scores []RequirementScore) (map[string][]RequirementScore, []string) {
	groups := make(map[string][]RequirementScore)
	for _, s := range scores {
		groups[s.Pillar] = append(groups[s.Pillar], s)
	}
	order := make([]string, 0, len(groups))
	seen := make(map[string]bool)
	for _, def := range profile.Pillars {
		if _, ok := groups[def.ID]; ok {
			order = append(order, def.ID)
			seen[def.ID] = true
		}
	}
	var extra []string
	for id := range groups {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return groups, append(order, extra...)
}
