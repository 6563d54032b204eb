package gaps

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/evidence"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/maturity"
	"github.com/meridian-grc/resilscore/pkg/scoring"
)

func gapCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.FrameworkProfile{
		Framework:       "testfw",
		Pillars:         []catalog.PillarDef{{ID: "p1", Name: "Pillar", Weight: 1}},
		ComplianceFloor: maturity.L2,
	}, []catalog.Requirement{
		{ID: "R1", Pillar: "p1", Title: "Alpha", ArticleRef: "Art. 1", Priority: catalog.PriorityLow},
		{ID: "R2", Pillar: "p1", Title: "Beta", ArticleRef: "Art. 2", Priority: catalog.PriorityCritical},
		{ID: "R3", Pillar: "p1", Title: "Gamma", ArticleRef: "Art. 3", Priority: catalog.PriorityMedium},
		{ID: "R4", Pillar: "p1", Title: "Delta", ArticleRef: "Art. 4", Priority: catalog.PriorityHigh},
	}, nil)
	require.NoError(t, err)
	return cat
}

func scored(id string, level maturity.Level, op scoring.OperatingStatus, sources int) scoring.RequirementScore {
	s := scoring.RequirementScore{
		RequirementID:   id,
		MaturityLevel:   level,
		OperatingStatus: op,
		GapType:         scoring.GapDesign,
		GapDescription:  id + " description",
	}
	for i := 0; i < sources; i++ {
		s.EvidenceSources = append(s.EvidenceSources, evidence.Source{ControlID: "C"})
	}
	return s
}

func TestGapIffRule(t *testing.T) {
	a := NewAnalyzer(gapCatalog(t), nil)

	items := a.Analyze([]scoring.RequirementScore{
		scored("R1", maturity.L3, scoring.OperatingValidated, 1), // above floor, clean: no gap
		scored("R2", maturity.L1, scoring.OperatingValidated, 1), // below floor: gap
		scored("R3", maturity.L3, scoring.OperatingPartial, 1),   // above floor, partial: gap
		scored("R4", maturity.L2, scoring.OperatingValidated, 1), // exactly at floor, clean: no gap
	})

	ids := make([]string, 0, len(items))
	for _, g := range items {
		ids = append(ids, g.RequirementID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"R2", "R3"}, ids)
}

func TestGapPriorityEscalationWithoutEvidence(t *testing.T) {
	a := NewAnalyzer(gapCatalog(t), nil)

	items := a.Analyze([]scoring.RequirementScore{
		scored("R1", maturity.L0, scoring.OperatingNotTested, 0), // low -> medium
		scored("R2", maturity.L0, scoring.OperatingNotTested, 0), // critical stays critical
		scored("R3", maturity.L1, scoring.OperatingPartial, 2),   // medium, has evidence: no escalation
	})
	byID := map[string]GapItem{}
	for _, g := range items {
		byID[g.RequirementID] = g
	}
	assert.Equal(t, catalog.PriorityMedium, byID["R1"].Priority)
	assert.Equal(t, catalog.PriorityCritical, byID["R2"].Priority)
	assert.Equal(t, catalog.PriorityMedium, byID["R3"].Priority)
}

func TestGapSortOrder(t *testing.T) {
	a := NewAnalyzer(gapCatalog(t), nil)

	items := a.Analyze([]scoring.RequirementScore{
		scored("R1", maturity.L1, scoring.OperatingPartial, 1), // low
		scored("R2", maturity.L1, scoring.OperatingPartial, 1), // critical
		scored("R3", maturity.L1, scoring.OperatingPartial, 1), // medium
		scored("R4", maturity.L1, scoring.OperatingPartial, 1), // high
	})
	require.Len(t, items, 4)
	assert.Equal(t, catalog.PriorityCritical, items[0].Priority)
	assert.Equal(t, catalog.PriorityHigh, items[1].Priority)
	assert.Equal(t, catalog.PriorityMedium, items[2].Priority)
	assert.Equal(t, catalog.PriorityLow, items[3].Priority)
}

func TestGapCrossFrameworkRefs(t *testing.T) {
	graph := mappings.NewGraph([]mappings.CrossFrameworkMapping{{
		ID:                  "x1",
		SourceFramework:     "testfw",
		SourceRequirementID: "R2",
		TargetFramework:     catalog.FrameworkISO27001,
		TargetRequirementID: "ISO-A.5.24",
		MappingType:         mappings.TypeEquivalent,
		CoveragePercentage:  90,
		Confidence:          0.9,
	}})
	a := NewAnalyzer(gapCatalog(t), graph)

	items := a.Analyze([]scoring.RequirementScore{
		scored("R2", maturity.L0, scoring.OperatingNotTested, 0),
	})
	require.Len(t, items, 1)
	require.Len(t, items[0].CrossFrameworkSatisfaction, 1)
	assert.Equal(t, "ISO-A.5.24", items[0].CrossFrameworkSatisfaction[0].RequirementID)
}

func TestEffortEstimates(t *testing.T) {
	assert.Equal(t, "4-8 weeks", EffortEstimate(catalog.PriorityCritical))
	assert.Equal(t, "2-4 weeks", EffortEstimate(catalog.PriorityHigh))
	assert.Equal(t, "1-2 weeks", EffortEstimate(catalog.PriorityMedium))
	assert.Equal(t, "<1 week", EffortEstimate(catalog.PriorityLow))
}

func TestAggregateRemediation(t *testing.T) {
	items := []GapItem{
		{Priority: catalog.PriorityCritical}, // 6
		{Priority: catalog.PriorityHigh},     // 3
		{Priority: catalog.PriorityMedium},   // 1.5
		{Priority: catalog.PriorityLow},      // 0.5
	}
	// 11 * 0.55 = 6.05 -> ceil 7.
	assert.Equal(t, 7, AggregateRemediationWeeks(items))
	assert.Equal(t, "7 weeks", AggregateRemediationTime(items))

	assert.Zero(t, AggregateRemediationWeeks(nil))
	assert.Equal(t, "none", AggregateRemediationTime(nil))

	one := []GapItem{{Priority: catalog.PriorityMedium}} // 1.5*0.55 = 0.825 -> 1
	assert.Equal(t, "1 week", AggregateRemediationTime(one))
}
