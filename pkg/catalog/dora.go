package catalog

import "github.com/meridian-grc/resilscore/pkg/maturity"

// DORA pillar ids.
const (
	PillarICTRisk     = "ict_risk_management"
	PillarIncidents   = "incident_reporting"
	PillarTesting     = "resilience_testing"
	PillarThirdParty  = "third_party_risk"
	PillarInfoSharing = "information_sharing"
)

// DORA builds the built-in DORA (EU 2022/2554) catalog. The article set
// covers Chapters II-VI; control mappings select SOC 2 TSC-style audit
// controls by category prefix.
func DORA() *Catalog {
	profile := FrameworkProfile{
		Framework: FrameworkDORA,
		Name:      "Digital Operational Resilience Act",
		Pillars: []PillarDef{
			{ID: PillarICTRisk, Name: "ICT Risk Management", Weight: 3},
			{ID: PillarIncidents, Name: "ICT Incident Reporting", Weight: 3},
			{ID: PillarTesting, Name: "Digital Operational Resilience Testing", Weight: 2},
			{ID: PillarThirdParty, Name: "ICT Third-Party Risk", Weight: 3},
			{ID: PillarInfoSharing, Name: "Information Sharing", Weight: 1},
		},
		ComplianceFloor: maturity.L2,
	}

	reqs := []Requirement{
		{ID: "DORA-ART5", ArticleRef: "Art. 5", Title: "ICT risk management framework", Pillar: PillarICTRisk, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "policy"}, Applicability: []string{"financial_entity"}},
		{ID: "DORA-ART6", ArticleRef: "Art. 6", Title: "ICT systems, protocols and tools", Pillar: PillarICTRisk, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}, Applicability: []string{"financial_entity", "ict_provider"}},
		{ID: "DORA-ART7", ArticleRef: "Art. 7", Title: "Identification of ICT risk and business functions", Pillar: PillarICTRisk, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "risk_register"}},
		{ID: "DORA-ART8", ArticleRef: "Art. 8", Title: "Protection and prevention", Pillar: PillarICTRisk, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "policy"}},
		{ID: "DORA-ART9", ArticleRef: "Art. 9", Title: "Detection of anomalous activities", Pillar: PillarICTRisk, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "DORA-ART10", ArticleRef: "Art. 10", Title: "Response and recovery", Pillar: PillarICTRisk, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "test_record"}},
		{ID: "DORA-ART11", ArticleRef: "Art. 11", Title: "Backup policies and restoration", Pillar: PillarICTRisk, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "test_record"}},
		{ID: "DORA-ART12", ArticleRef: "Art. 12", Title: "Learning and evolving", Pillar: PillarICTRisk, Priority: PriorityMedium, Mandatory: false,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "DORA-ART13", ArticleRef: "Art. 13", Title: "Crisis communication", Pillar: PillarICTRisk, Priority: PriorityMedium, Mandatory: false,
			EvidenceTypes: []string{"policy"}},

		{ID: "DORA-ART17", ArticleRef: "Art. 17", Title: "ICT incident management process", Pillar: PillarIncidents, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "incident_log"}},
		{ID: "DORA-ART18", ArticleRef: "Art. 18", Title: "Classification of ICT incidents", Pillar: PillarIncidents, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"incident_log", "policy"}},
		{ID: "DORA-ART19", ArticleRef: "Art. 19", Title: "Reporting of major ICT incidents", Pillar: PillarIncidents, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"incident_log"}},

		{ID: "DORA-ART24", ArticleRef: "Art. 24", Title: "Resilience testing programme", Pillar: PillarTesting, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"test_record"}},
		{ID: "DORA-ART25", ArticleRef: "Art. 25", Title: "Testing of ICT tools and systems", Pillar: PillarTesting, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"test_record", "audit_report"}},

		{ID: "DORA-ART28", ArticleRef: "Art. 28", Title: "Third-party ICT risk principles", Pillar: PillarThirdParty, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"vendor_register", "audit_report"}},
		{ID: "DORA-ART29", ArticleRef: "Art. 29", Title: "ICT concentration risk assessment", Pillar: PillarThirdParty, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"vendor_register"}},
		{ID: "DORA-ART30", ArticleRef: "Art. 30", Title: "Key contractual provisions", Pillar: PillarThirdParty, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"contract"}},

		{ID: "DORA-ART45", ArticleRef: "Art. 45", Title: "Cyber threat information sharing", Pillar: PillarInfoSharing, Priority: PriorityLow, Mandatory: false,
			EvidenceTypes: []string{"policy"}},
	}

	mappings := []ControlMapping{
		{RequirementID: "DORA-ART5", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC1", "CC3", "CC4", "CC9"}, Confidence: 0.9},
		{RequirementID: "DORA-ART6", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC6", "CC7", "CC8", "A"}, Confidence: 0.9},
		{RequirementID: "DORA-ART7", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC3", "CC6"}, Confidence: 0.85},
		{RequirementID: "DORA-ART8", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC5", "CC6", "CC7", "C"}, Confidence: 0.9},
		{RequirementID: "DORA-ART9", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC7", "CC4"}, Confidence: 0.85},
		{RequirementID: "DORA-ART10", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC7", "CC9", "A"}, Confidence: 0.9},
		{RequirementID: "DORA-ART11", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"A", "CC7", "CC9"}, Confidence: 0.9},
		{RequirementID: "DORA-ART12", Strength: StrengthPartial, CoveragePercentage: 60, Categories: []string{"CC4", "CC3"}, Confidence: 0.8},
		{RequirementID: "DORA-ART13", Strength: StrengthPartial, CoveragePercentage: 70, Categories: []string{"CC2", "CC7"}, Confidence: 0.8},

		{RequirementID: "DORA-ART17", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC7", "CC2"}, Confidence: 0.9},
		{RequirementID: "DORA-ART18", Strength: StrengthPartial, CoveragePercentage: 80, Pattern: `^CC7\.[0-9]+`, Categories: []string{"CC7"}, Confidence: 0.85},
		{RequirementID: "DORA-ART19", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC7", "CC2"}, Confidence: 0.9},

		{RequirementID: "DORA-ART24", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC4", "CC7", "A"}, Confidence: 0.9},
		{RequirementID: "DORA-ART25", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC7", "CC8", "A"}, Confidence: 0.85},

		{RequirementID: "DORA-ART28", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC9"}, Confidence: 0.9},
		{RequirementID: "DORA-ART29", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC3", "CC9"}, Confidence: 0.85},
		{RequirementID: "DORA-ART30", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC9"}, Confidence: 0.9},

		{RequirementID: "DORA-ART45", Strength: StrengthPartial, CoveragePercentage: 50, Categories: []string{"CC2", "CC7"}, Confidence: 0.75},
	}

	c, err := New(profile, reqs, mappings)
	if err != nil {
		panic("catalog: built-in DORA catalog invalid: " + err.Error())
	}
	return c
}
