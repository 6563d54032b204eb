package catalog

import "github.com/meridian-grc/resilscore/pkg/maturity"

// GDPR Art. 32 pillar ids.
const (
	PillarProcessing     = "security_of_processing"
	PillarResilience     = "resilience_recovery"
	PillarVerification   = "testing_verification"
	PillarAccountability = "accountability"
)

// GDPR32 builds the built-in catalog for GDPR Article 32 (security of
// processing). Deliberately narrow: only the technical/organisational
// measures of Art. 32 itself, not the wider regulation.
func GDPR32() *Catalog {
	profile := FrameworkProfile{
		Framework: FrameworkGDPR32,
		Name:      "GDPR Article 32",
		Pillars: []PillarDef{
			{ID: PillarProcessing, Name: "Security of Processing", Weight: 3},
			{ID: PillarResilience, Name: "Resilience & Recovery", Weight: 2},
			{ID: PillarVerification, Name: "Testing & Verification", Weight: 2},
			{ID: PillarAccountability, Name: "Accountability", Weight: 1},
		},
		ComplianceFloor: maturity.L2,
	}

	reqs := []Requirement{
		{ID: "GDPR32-1A", ArticleRef: "Art. 32(1)(a)", Title: "Pseudonymisation and encryption of personal data", Pillar: PillarProcessing, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "policy"}, Applicability: []string{"controller", "processor"}},
		{ID: "GDPR32-1B", ArticleRef: "Art. 32(1)(b)", Title: "Confidentiality, integrity, availability and resilience", Pillar: PillarProcessing, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "GDPR32-1C", ArticleRef: "Art. 32(1)(c)", Title: "Restore availability and access after incidents", Pillar: PillarResilience, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"test_record", "audit_report"}},
		{ID: "GDPR32-1D", ArticleRef: "Art. 32(1)(d)", Title: "Regular testing and evaluation of measures", Pillar: PillarVerification, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"test_record"}},
		{ID: "GDPR32-2", ArticleRef: "Art. 32(2)", Title: "Risk-appropriate level of security", Pillar: PillarAccountability, Priority: PriorityMedium, Mandatory: true,
			EvidenceTypes: []string{"risk_register", "policy"}},
		{ID: "GDPR32-4", ArticleRef: "Art. 32(4)", Title: "Processing only on controller instructions", Pillar: PillarAccountability, Priority: PriorityMedium, Mandatory: true,
			EvidenceTypes: []string{"policy", "contract"}},
	}

	mappings := []ControlMapping{
		{RequirementID: "GDPR32-1A", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"C", "CC6"}, Confidence: 0.9},
		{RequirementID: "GDPR32-1B", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC6", "CC7", "A"}, Confidence: 0.9},
		{RequirementID: "GDPR32-1C", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"A", "CC7"}, Confidence: 0.9},
		{RequirementID: "GDPR32-1D", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC4"}, Confidence: 0.85},
		{RequirementID: "GDPR32-2", Strength: StrengthPartial, CoveragePercentage: 70, Categories: []string{"CC3"}, Confidence: 0.8},
		{RequirementID: "GDPR32-4", Strength: StrengthPartial, CoveragePercentage: 60, Categories: []string{"CC1", "CC9"}, Confidence: 0.75},
	}

	c, err := New(profile, reqs, mappings)
	if err != nil {
		panic("catalog: built-in GDPR Art.32 catalog invalid: " + err.Error())
	}
	return c
}
