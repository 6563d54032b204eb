// Package gaps derives the prioritized remediation list from scored
// requirements. A gap exists exactly when a requirement's maturity sits
// below the framework's compliance floor or its operating status is
// partial or missing; nothing else produces one.
package gaps

import (
	"fmt"
	"sort"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/scoring"
)

// CrossFrameworkRef points at a requirement in another framework that
// the same remediation work would advance.
type CrossFrameworkRef struct {
	Framework     catalog.Framework    `json:"framework"`
	RequirementID string               `json:"requirement_id"`
	MappingType   mappings.MappingType `json:"mapping_type"`
	Coverage      float64              `json:"coverage"`
}

// GapItem is one entry of the remediation list. Ordering is significant:
// lists are always sorted critical, high, medium, low.
type GapItem struct {
	RequirementID              string              `json:"requirement_id"`
	ArticleRef                 string              `json:"article_ref"`
	GapType                    scoring.GapType     `json:"gap_type"`
	GapDescription             string              `json:"gap_description"`
	RemediationGuidance        string              `json:"remediation_guidance"`
	Priority                   catalog.Priority    `json:"priority"`
	EstimatedEffort            string              `json:"estimated_effort"`
	CrossFrameworkSatisfaction []CrossFrameworkRef `json:"cross_framework_satisfaction,omitempty"`
}

// Analyzer turns requirement scores into gap items. The crosswalk graph
// is optional; without it gaps simply omit cross-framework references.
type Analyzer struct {
	cat   *catalog.Catalog
	graph *mappings.Graph
}

func NewAnalyzer(cat *catalog.Catalog, graph *mappings.Graph) *Analyzer {
	return &Analyzer{cat: cat, graph: graph}
}

// Analyze returns the gap list for a scored requirement set, sorted by
// priority with requirement ID breaking ties deterministically.
func (a *Analyzer) Analyze(scores []scoring.RequirementScore) []GapItem {
	floor := a.cat.Profile().ComplianceFloor
	var items []GapItem
	for _, s := range scores {
		belowFloor := !s.MaturityLevel.AtLeast(floor)
		opGap := s.OperatingStatus == scoring.OperatingPartial || s.OperatingStatus == scoring.OperatingMissing
		if !belowFloor && !opGap {
			continue
		}
		items = append(items, a.buildItem(s))
	}
	sort.Slice(items, func(i, j int) bool {
		ri, rj := items[i].Priority.Rank(), items[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].RequirementID < items[j].RequirementID
	})
	return items
}

// Critical filters a gap list down to its critical entries.
func Critical(items []GapItem) []GapItem {
	var out []GapItem
	for _, g := range items {
		if g.Priority == catalog.PriorityCritical {
			out = append(out, g)
		}
	}
	return out
}

func (a *Analyzer) buildItem(s scoring.RequirementScore) GapItem {
	req, _ := a.cat.Requirement(s.RequirementID)
	priority := req.Priority
	// Total absence of evidence outranks a weak showing of it.
	if len(s.EvidenceSources) == 0 {
		priority = priority.Escalate()
	}
	item := GapItem{
		RequirementID:       s.RequirementID,
		ArticleRef:          s.ArticleRef,
		GapType:             s.GapType,
		GapDescription:      s.GapDescription,
		RemediationGuidance: guidance(req, s),
		Priority:            priority,
		EstimatedEffort:     EffortEstimate(priority),
	}
	if item.GapDescription == "" {
		item.GapDescription = fmt.Sprintf("%s (%s) is below the compliance floor", req.Title, req.ArticleRef)
	}
	if a.graph != nil {
		item.CrossFrameworkSatisfaction = a.crossRefs(req)
	}
	return item
}

func (a *Analyzer) crossRefs(req catalog.Requirement) []CrossFrameworkRef {
	var refs []CrossFrameworkRef
	for _, m := range a.graph.FromRequirement(req.Framework, req.ID) {
		refs = append(refs, CrossFrameworkRef{
			Framework:     m.TargetFramework,
			RequirementID: m.TargetRequirementID,
			MappingType:   m.MappingType,
			Coverage:      m.CoveragePercentage,
		})
	}
	return refs
}

func guidance(req catalog.Requirement, s scoring.RequirementScore) string {
	switch s.GapType {
	case scoring.GapDesign:
		return fmt.Sprintf("design and document controls addressing %s; current coverage %.0f%%",
			req.Title, s.EffectiveCoverage)
	case scoring.GapOperational:
		return fmt.Sprintf("remediate the noted exceptions and re-test the controls behind %s", req.Title)
	case scoring.GapBoth:
		return fmt.Sprintf("establish controls for %s and collect operating evidence; none currently mapped", req.Title)
	default:
		return fmt.Sprintf("raise maturity of %s above the framework's compliance floor", req.Title)
	}
}
