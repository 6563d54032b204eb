package mappings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-grc/resilscore/pkg/catalog"
)

func TestMappingTypeWeight(t *testing.T) {
	assert.Equal(t, 1.0, TypeEquivalent.Weight())
	assert.Equal(t, 0.7, TypePartial.Weight())
	assert.Equal(t, 0.5, TypeSupports.Weight())
	assert.Equal(t, 0.3, TypeRelated.Weight())
	assert.Equal(t, 0.0, MappingType("bogus").Weight())
}

func TestTransferredCoverageSingleEquivalent(t *testing.T) {
	g := NewGraph([]CrossFrameworkMapping{{
		ID:                  "m1",
		SourceFramework:     catalog.FrameworkDORA,
		SourceRequirementID: "DORA-ART10",
		TargetFramework:     catalog.FrameworkISO27001,
		TargetRequirementID: "ISO-A.5.24",
		MappingType:         TypeEquivalent,
		CoveragePercentage:  90,
		Confidence:          0.95,
	}})

	res := g.TransferredCoverage(catalog.FrameworkDORA, catalog.FrameworkISO27001, "ISO-A.5.24", 80)
	assert.Equal(t, 1, res.MappingCount)
	// weight 90*0.95*1.0 = 85.5, ratio 0.855, 0.855*80 rounds to 68.
	assert.Equal(t, 68.0, res.TransferredPercent)
}

func TestTransferredCoverageNoMappings(t *testing.T) {
	g := NewGraph(nil)
	res := g.TransferredCoverage(catalog.FrameworkDORA, catalog.FrameworkNIS2, "NIS2-23", 95)
	assert.Equal(t, 0, res.MappingCount)
	assert.Equal(t, 0.0, res.TransferredPercent, "zero mappings transfer zero, not NaN")
}

func TestTransferredCoverageIgnoresOtherSources(t *testing.T) {
	g := NewGraph([]CrossFrameworkMapping{
		{ID: "m1", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART10",
			TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.24",
			MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95},
		{ID: "m2", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.B",
			TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.24",
			MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95},
	})
	res := g.TransferredCoverage(catalog.FrameworkDORA, catalog.FrameworkISO27001, "ISO-A.5.24", 80)
	assert.Equal(t, 1, res.MappingCount, "only mappings from the requested source count")
}

func TestBidirectionalLookup(t *testing.T) {
	g := NewGraph([]CrossFrameworkMapping{{
		ID:                  "m1",
		SourceFramework:     catalog.FrameworkDORA,
		SourceRequirementID: "DORA-ART17",
		TargetFramework:     catalog.FrameworkNIS2,
		TargetRequirementID: "NIS2-21.2.B",
		MappingType:         TypeEquivalent,
		CoveragePercentage:  90,
		Confidence:          0.95,
		Bidirectional:       true,
	}})

	forward := g.Between(catalog.FrameworkDORA, catalog.FrameworkNIS2)
	reverse := g.Between(catalog.FrameworkNIS2, catalog.FrameworkDORA)
	require.Len(t, forward, 1)
	require.Len(t, reverse, 1)
	assert.Equal(t, "NIS2-21.2.B", reverse[0].SourceRequirementID)
}

func TestOverlapSummary(t *testing.T) {
	g := DefaultGraph()
	sum := g.Overlap(catalog.FrameworkDORA, catalog.FrameworkISO27001)
	require.NotZero(t, sum.TotalMappings)
	assert.Greater(t, sum.AverageCoverage, 0.0)
	assert.Greater(t, sum.AverageConfidence, 0.0)
	assert.LessOrEqual(t, sum.AverageConfidence, 1.0)

	var counted int
	for _, n := range sum.CountsByType {
		counted += n
	}
	assert.Equal(t, sum.TotalMappings, counted)
}

func TestOverlapEmptyPair(t *testing.T) {
	g := NewGraph(nil)
	sum := g.Overlap(catalog.FrameworkDORA, catalog.FrameworkGDPR32)
	assert.Zero(t, sum.TotalMappings)
	assert.Zero(t, sum.AverageCoverage)
}

func TestDefaultGraphReferencesKnownRequirements(t *testing.T) {
	reg := catalog.DefaultRegistry()
	for _, m := range DefaultGraph().Edges() {
		src, ok := reg.Catalog(m.SourceFramework)
		require.True(t, ok, "%s: unknown source framework", m.ID)
		_, ok = src.Requirement(m.SourceRequirementID)
		assert.True(t, ok, "%s: unknown source requirement %s", m.ID, m.SourceRequirementID)

		dst, ok := reg.Catalog(m.TargetFramework)
		require.True(t, ok, "%s: unknown target framework", m.ID)
		_, ok = dst.Requirement(m.TargetRequirementID)
		assert.True(t, ok, "%s: unknown target requirement %s", m.ID, m.TargetRequirementID)
	}
}
