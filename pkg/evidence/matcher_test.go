package evidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/maturity"
)

func testCatalog(t *testing.T, mappings []catalog.ControlMapping) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.FrameworkProfile{
		Framework:       "testfw",
		Pillars:         []catalog.PillarDef{{ID: "p1", Name: "Pillar", Weight: 1}},
		ComplianceFloor: maturity.L2,
	}, []catalog.Requirement{
		{ID: "R1", Pillar: "p1", Title: "Controls exist", ArticleRef: "Art. 1", Priority: catalog.PriorityHigh},
		{ID: "R2", Pillar: "p1", Title: "Nothing maps here", ArticleRef: "Art. 2", Priority: catalog.PriorityMedium},
	}, mappings)
	require.NoError(t, err)
	return cat
}

func TestMatchRequirementTerminalWithoutMappings(t *testing.T) {
	cat := testCatalog(t, nil)
	req, _ := cat.Requirement("R2")

	m := MatchRequirement(cat, req, Bundle{Controls: []Control{{ID: "CC1.1", Category: "CC1"}}})
	assert.True(t, m.Terminal)
	assert.Empty(t, m.Controls)
	assert.False(t, m.HasEvidence())
	assert.Zero(t, m.AverageCoverage())
}

func TestMatchRequirementTerminalWhenAllMappingsNone(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R2", Strength: catalog.StrengthNone, Categories: []string{"CC1"}},
	})
	req, _ := cat.Requirement("R2")
	m := MatchRequirement(cat, req, Bundle{Controls: []Control{{ID: "CC1.1"}}})
	assert.True(t, m.Terminal, "strength-none mappings count as no mappings")
}

func TestMatchRequirementSelectsByCategoryPrefix(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 90, Confidence: 0.9, Categories: []string{"CC7"}},
	})
	req, _ := cat.Requirement("R1")

	bundle := Bundle{Controls: []Control{
		{ID: "CC7.1", Category: "CC7", Description: strings.Repeat("x", 150)},
		{ID: "CC7.2", Category: "CC7", Description: "short"},
		{ID: "CC8.1", Category: "CC8"},
	}}
	m := MatchRequirement(cat, req, bundle)
	require.Len(t, m.Controls, 2)
	assert.Len(t, m.Sources, 2)
	assert.Equal(t, 0.9, m.Sources[0].Confidence)
	assert.False(t, m.WellDocumented(), "one thin description spoils it")
}

func TestAverageCoverageRequiresMatchedControls(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 100, Confidence: 0.95, Categories: []string{"CC7"}},
	})
	req, _ := cat.Requirement("R1")

	m := MatchRequirement(cat, req, Bundle{})
	assert.False(t, m.Terminal, "mappings exist, only the evidence is absent")
	assert.False(t, m.HasEvidence())
	assert.Zero(t, m.AverageCoverage(), "mapping coverage asserts nothing without a matched control")

	m = MatchRequirement(cat, req, Bundle{Controls: []Control{{ID: "CC7.1", Category: "CC7"}}})
	assert.Equal(t, 100.0, m.AverageCoverage())
}

func TestSourcesCarryDocumentRefs(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 90, Confidence: 0.9, Categories: []string{"CC7"}},
	})
	req, _ := cat.Requirement("R1")

	m := MatchRequirement(cat, req, Bundle{Controls: []Control{
		{ID: "CC7.1", Category: "CC7", DocumentID: "soc2-2025.pdf", PageRef: "p. 41"},
	}})
	require.Len(t, m.Sources, 1)
	assert.Equal(t, "soc2-2025.pdf", m.Sources[0].DocumentID)
	assert.Equal(t, "p. 41", m.Sources[0].PageRef)
	assert.Equal(t, "CC7.1", m.Sources[0].ControlID)
}

func TestMatchRequirementSelectsByPattern(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 85, Pattern: `^SEC-[0-9]{3}$`},
	})
	req, _ := cat.Requirement("R1")

	m := MatchRequirement(cat, req, Bundle{Controls: []Control{
		{ID: "SEC-001"}, {ID: "SEC-01"}, {ID: "OPS-001"},
	}})
	require.Len(t, m.Controls, 1)
	assert.Equal(t, "SEC-001", m.Controls[0].ID)
}

func TestMatchRequirementLinksExceptionsThroughControls(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 90, Categories: []string{"CC7"}},
	})
	req, _ := cat.Requirement("R1")

	bundle := Bundle{
		Controls: []Control{{ID: "CC7.1", Category: "CC7"}},
		Exceptions: []ControlException{
			{ControlID: "CC7.1", Type: OperatingDeficiency, Impact: ImpactMedium},
			{ControlID: "CC9.9", Type: DesignDeficiency, Impact: ImpactHigh},
		},
	}
	m := MatchRequirement(cat, req, bundle)
	require.Len(t, m.Exceptions, 1, "only exceptions on matched controls attach")
	assert.Equal(t, "CC7.1", m.Exceptions[0].ControlID)
}

func TestMatchRequirementDeduplicatesAcrossMappings(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 100, Categories: []string{"CC7"}},
		{RequirementID: "R1", Strength: catalog.StrengthPartial, CoveragePercentage: 60, Categories: []string{"CC7"}},
	})
	req, _ := cat.Requirement("R1")

	m := MatchRequirement(cat, req, Bundle{Controls: []Control{{ID: "CC7.1", Category: "CC7"}}})
	assert.Len(t, m.Controls, 1, "a control matched by two mappings appears once")
	assert.Equal(t, 80.0, m.AverageCoverage(), "coverage averages across mappings")
}

func TestMatchAllOrdersByRequirementID(t *testing.T) {
	cat := testCatalog(t, []catalog.ControlMapping{
		{RequirementID: "R1", Strength: catalog.StrengthFull, CoveragePercentage: 90, Categories: []string{"CC7"}},
	})
	matches := MatchAll(cat, Bundle{})
	require.Len(t, matches, 2)
	assert.Equal(t, "R1", matches[0].Requirement.ID)
	assert.Equal(t, "R2", matches[1].Requirement.ID)
}

func TestBundleMergeAndEmpty(t *testing.T) {
	var b Bundle
	assert.True(t, b.Empty())
	b.Merge(Bundle{Controls: []Control{{ID: "C1"}}})
	b.Merge(Bundle{Vendors: []VendorRecord{{ID: "v1"}}})
	assert.False(t, b.Empty())
	assert.Len(t, b.Controls, 1)
	assert.Len(t, b.Vendors, 1)
}
