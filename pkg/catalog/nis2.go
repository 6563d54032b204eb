package catalog

import "github.com/meridian-grc/resilscore/pkg/maturity"

// NIS2 pillar ids.
const (
	PillarGovernance   = "governance"
	PillarIncidentMgmt = "incident_handling"
	PillarContinuity   = "business_continuity"
	PillarSupplyChain  = "supply_chain"
	PillarTechnical    = "technical_measures"
)

// NIS2 builds the built-in NIS2 (EU 2022/2555) catalog, centred on the
// Article 21(2) minimum measures.
func NIS2() *Catalog {
	profile := FrameworkProfile{
		Framework: FrameworkNIS2,
		Name:      "NIS2 Directive",
		Pillars: []PillarDef{
			{ID: PillarGovernance, Name: "Governance & Risk Analysis", Weight: 3},
			{ID: PillarIncidentMgmt, Name: "Incident Handling", Weight: 3},
			{ID: PillarContinuity, Name: "Business Continuity", Weight: 2},
			{ID: PillarSupplyChain, Name: "Supply Chain Security", Weight: 3},
			{ID: PillarTechnical, Name: "Technical & Cyber Hygiene Measures", Weight: 2},
		},
		ComplianceFloor: maturity.L2,
	}

	reqs := []Requirement{
		{ID: "NIS2-21.2.A", ArticleRef: "Art. 21(2)(a)", Title: "Risk analysis and information system security policies", Pillar: PillarGovernance, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"policy", "audit_report"}, Applicability: []string{"essential_entity", "important_entity"}},
		{ID: "NIS2-21.2.B", ArticleRef: "Art. 21(2)(b)", Title: "Incident handling", Pillar: PillarIncidentMgmt, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"incident_log", "audit_report"}},
		{ID: "NIS2-21.2.C", ArticleRef: "Art. 21(2)(c)", Title: "Business continuity, backup and crisis management", Pillar: PillarContinuity, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"test_record", "audit_report"}},
		{ID: "NIS2-21.2.D", ArticleRef: "Art. 21(2)(d)", Title: "Supply chain security", Pillar: PillarSupplyChain, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"vendor_register", "contract"}},
		{ID: "NIS2-21.2.E", ArticleRef: "Art. 21(2)(e)", Title: "Security in acquisition, development and maintenance", Pillar: PillarTechnical, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "NIS2-21.2.F", ArticleRef: "Art. 21(2)(f)", Title: "Policies to assess effectiveness of measures", Pillar: PillarGovernance, Priority: PriorityMedium, Mandatory: true,
			EvidenceTypes: []string{"policy", "test_record"}},
		{ID: "NIS2-21.2.G", ArticleRef: "Art. 21(2)(g)", Title: "Cyber hygiene practices and training", Pillar: PillarTechnical, Priority: PriorityMedium, Mandatory: true,
			EvidenceTypes: []string{"policy"}},
		{ID: "NIS2-21.2.H", ArticleRef: "Art. 21(2)(h)", Title: "Cryptography and encryption policies", Pillar: PillarTechnical, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"policy", "audit_report"}},
		{ID: "NIS2-21.2.I", ArticleRef: "Art. 21(2)(i)", Title: "HR security, access control and asset management", Pillar: PillarTechnical, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "NIS2-21.2.J", ArticleRef: "Art. 21(2)(j)", Title: "Multi-factor authentication and secured communications", Pillar: PillarTechnical, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "NIS2-23", ArticleRef: "Art. 23", Title: "Incident notification to CSIRT", Pillar: PillarIncidentMgmt, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"incident_log"}},
		{ID: "NIS2-20", ArticleRef: "Art. 20", Title: "Management body accountability and oversight", Pillar: PillarGovernance, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"policy", "audit_report"}},
	}

	mappings := []ControlMapping{
		{RequirementID: "NIS2-21.2.A", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC1", "CC3"}, Confidence: 0.9},
		{RequirementID: "NIS2-21.2.B", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC7"}, Confidence: 0.9},
		{RequirementID: "NIS2-21.2.C", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"A", "CC9"}, Confidence: 0.9},
		{RequirementID: "NIS2-21.2.D", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC9"}, Confidence: 0.85},
		{RequirementID: "NIS2-21.2.E", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC8"}, Confidence: 0.85},
		{RequirementID: "NIS2-21.2.F", Strength: StrengthPartial, CoveragePercentage: 70, Categories: []string{"CC4"}, Confidence: 0.8},
		{RequirementID: "NIS2-21.2.G", Strength: StrengthPartial, CoveragePercentage: 60, Categories: []string{"CC1", "CC2"}, Confidence: 0.75},
		{RequirementID: "NIS2-21.2.H", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"C", "CC6"}, Confidence: 0.85},
		{RequirementID: "NIS2-21.2.I", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC5", "CC6"}, Confidence: 0.9},
		{RequirementID: "NIS2-21.2.J", Strength: StrengthPartial, CoveragePercentage: 80, Pattern: `^CC6\.[0-9]+`, Categories: []string{"CC6"}, Confidence: 0.85},
		{RequirementID: "NIS2-23", Strength: StrengthPartial, CoveragePercentage: 70, Categories: []string{"CC7", "CC2"}, Confidence: 0.8},
		{RequirementID: "NIS2-20", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC1"}, Confidence: 0.9},
	}

	c, err := New(profile, reqs, mappings)
	if err != nil {
		panic("catalog: built-in NIS2 catalog invalid: " + err.Error())
	}
	return c
}
