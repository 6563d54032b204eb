package mappings

import (
	"math"

	"github.com/meridian-grc/resilscore/pkg/catalog"
)

// TransferResult reports how much of a target requirement is considered
// covered by compliance already demonstrated in a source framework.
type TransferResult struct {
	TargetFramework     catalog.Framework `json:"target_framework"`
	TargetRequirementID string            `json:"target_requirement_id"`
	SourceFramework     catalog.Framework `json:"source_framework"`
	TransferredPercent  float64           `json:"transferred_percent"`
	MappingCount        int               `json:"mapping_count"`
}

// TransferredCoverage computes the portion of sourceCompliancePct that
// carries over to the target requirement through the graph's mappings.
//
// Each mapping contributes coverage * confidence * type weight. The sum is
// normalized against a perfect score of 100 per mapping, so several weak
// mappings cannot outvote a single strong one. A requirement with no
// inbound mappings transfers nothing.
func (g *Graph) TransferredCoverage(sourceFramework, targetFramework catalog.Framework, targetRequirementID string, sourceCompliancePct float64) TransferResult {
	res := TransferResult{
		TargetFramework:     targetFramework,
		TargetRequirementID: targetRequirementID,
		SourceFramework:     sourceFramework,
	}
	edges := g.IntoRequirement(targetFramework, targetRequirementID)
	var total float64
	for _, m := range edges {
		if m.SourceFramework != sourceFramework {
			continue
		}
		total += m.CoveragePercentage * m.Confidence * m.MappingType.Weight()
		res.MappingCount++
	}
	if res.MappingCount == 0 {
		return res
	}
	ratio := total / (float64(res.MappingCount) * 100)
	res.TransferredPercent = math.Round(ratio * sourceCompliancePct)
	return res
}

// OverlapSummary aggregates the mapping surface between two frameworks.
type OverlapSummary struct {
	SourceFramework   catalog.Framework   `json:"source_framework"`
	TargetFramework   catalog.Framework   `json:"target_framework"`
	TotalMappings     int                 `json:"total_mappings"`
	CountsByType      map[MappingType]int `json:"counts_by_type"`
	AverageCoverage   float64             `json:"average_coverage"`
	AverageConfidence float64             `json:"average_confidence"`
}

// Overlap summarizes all mappings from src into dst, counting each type
// and averaging coverage and confidence across them.
func (g *Graph) Overlap(src, dst catalog.Framework) OverlapSummary {
	sum := OverlapSummary{
		SourceFramework: src,
		TargetFramework: dst,
		CountsByType:    make(map[MappingType]int),
	}
	edges := g.Between(src, dst)
	if len(edges) == 0 {
		return sum
	}
	var cov, conf float64
	for _, m := range edges {
		sum.CountsByType[m.MappingType]++
		cov += m.CoveragePercentage
		conf += m.Confidence
	}
	sum.TotalMappings = len(edges)
	sum.AverageCoverage = cov / float64(len(edges))
	sum.AverageConfidence = conf / float64(len(edges))
	return sum
}
