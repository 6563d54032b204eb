package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-grc/resilscore/pkg/maturity"
)

func testProfile() FrameworkProfile {
	return FrameworkProfile{
		Framework:       "testfw",
		Name:            "Test Framework",
		Pillars:         []PillarDef{{ID: "p1", Name: "Pillar One", Weight: 3}, {ID: "p2", Name: "Pillar Two", Weight: 1}},
		ComplianceFloor: maturity.L2,
	}
}

func TestNewValidation(t *testing.T) {
	t.Run("missing framework", func(t *testing.T) {
		_, err := New(FrameworkProfile{Pillars: []PillarDef{{ID: "p"}}}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("no pillars", func(t *testing.T) {
		_, err := New(FrameworkProfile{Framework: "x"}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("duplicate requirement", func(t *testing.T) {
		_, err := New(testProfile(), []Requirement{
			{ID: "R1", Pillar: "p1"},
			{ID: "R1", Pillar: "p1"},
		}, nil)
		assert.Error(t, err)
	})

	t.Run("mapping to unknown requirement", func(t *testing.T) {
		_, err := New(testProfile(), []Requirement{{ID: "R1", Pillar: "p1"}},
			[]ControlMapping{{RequirementID: "R9", Categories: []string{"CC1"}}})
		assert.Error(t, err)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := New(testProfile(), []Requirement{{ID: "R1", Pillar: "p1"}},
			[]ControlMapping{{RequirementID: "R1", Pattern: "(["}})
		assert.Error(t, err)
	})
}

func TestNewClampsAndDefaults(t *testing.T) {
	cat, err := New(testProfile(), []Requirement{{ID: "R1", Pillar: "p1"}, {ID: "R2", Pillar: "p1"}},
		[]ControlMapping{
			{RequirementID: "R1", CoveragePercentage: 140, Categories: []string{"CC1"}},
			{RequirementID: "R2", CoveragePercentage: -5, Confidence: 1.5, Categories: []string{"CC1"}},
		})
	require.NoError(t, err)

	m1 := cat.ControlMappings("R1")[0]
	assert.Equal(t, 100.0, m1.CoveragePercentage)
	assert.Equal(t, 0.85, m1.Confidence, "unset confidence falls back to the default")
	assert.Equal(t, StrengthPartial, m1.Strength)

	m2 := cat.ControlMappings("R2")[0]
	assert.Equal(t, 0.0, m2.CoveragePercentage)
	assert.Equal(t, 1.0, m2.Confidence)
}

func TestControlMappingMatches(t *testing.T) {
	cat, err := New(testProfile(), []Requirement{{ID: "R1", Pillar: "p1"}}, []ControlMapping{
		{RequirementID: "R1", Strength: StrengthFull, Pattern: `^CC7\.[0-9]+`, Categories: []string{"CC6"}},
	})
	require.NoError(t, err)
	m := cat.ControlMappings("R1")[0]

	assert.True(t, m.Matches("CC7.2", ""), "pattern match")
	assert.True(t, m.Matches("cc6.1", ""), "category prefix match is case-insensitive")
	assert.True(t, m.Matches("X-1", "cc6"), "category equality on the control's own category")
	assert.False(t, m.Matches("CC8.1", ""))

	none := &ControlMapping{RequirementID: "R1", Strength: StrengthNone, Categories: []string{"CC6"}}
	assert.False(t, none.Matches("CC6.1", ""), "strength none never matches")
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []Framework{FrameworkDORA, FrameworkNIS2, FrameworkGDPR32, FrameworkISO27001}, reg.Frameworks())

	dora, ok := reg.Catalog(FrameworkDORA)
	require.True(t, ok)
	assert.Len(t, dora.Requirements(), 18)
	assert.Equal(t, maturity.L2, dora.Profile().ComplianceFloor)

	// Every shipped requirement must sit in a pillar its profile
	// declares; otherwise it would aggregate with weight 1 silently.
	for _, fw := range reg.Frameworks() {
		cat, _ := reg.Catalog(fw)
		declared := make(map[string]bool)
		for _, p := range cat.Profile().Pillars {
			declared[p.ID] = true
		}
		for _, req := range cat.Requirements() {
			assert.True(t, declared[req.Pillar], "%s/%s pillar %q not declared", fw, req.ID, req.Pillar)
		}
	}
}

func TestRequirementsForPillar(t *testing.T) {
	reg := DefaultRegistry()
	dora, _ := reg.Catalog(FrameworkDORA)
	reqs := dora.RequirementsForPillar("incident_reporting")
	require.NotEmpty(t, reqs)
	for _, r := range reqs {
		assert.Equal(t, "incident_reporting", r.Pillar)
	}
}

func TestPriorityHelpers(t *testing.T) {
	assert.Equal(t, 3.0, PriorityCritical.Weight())
	assert.Equal(t, 2.0, PriorityHigh.Weight())
	assert.Equal(t, 1.0, PriorityMedium.Weight())
	assert.Equal(t, 1.0, PriorityLow.Weight())

	assert.Equal(t, PriorityMedium, PriorityLow.Escalate())
	assert.Equal(t, PriorityHigh, PriorityMedium.Escalate())
	assert.Equal(t, PriorityCritical, PriorityHigh.Escalate())
	assert.Equal(t, PriorityCritical, PriorityCritical.Escalate(), "escalation caps at critical")
}
