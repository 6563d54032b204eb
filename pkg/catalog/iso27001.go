package catalog

import "github.com/meridian-grc/resilscore/pkg/maturity"

// ISO 27001 pillar ids (Annex A 2022 themes).
const (
	PillarOrganizational = "organizational"
	PillarPeople         = "people"
	PillarTechnological  = "technological"
)

// ISO27001 builds the built-in ISO/IEC 27001:2022 catalog, a selection
// of Annex A controls most relevant to operational resilience.
func ISO27001() *Catalog {
	profile := FrameworkProfile{
		Framework: FrameworkISO27001,
		Name:      "ISO/IEC 27001:2022",
		Pillars: []PillarDef{
			{ID: PillarOrganizational, Name: "Organizational Controls", Weight: 3},
			{ID: PillarPeople, Name: "People Controls", Weight: 2},
			{ID: PillarTechnological, Name: "Technological Controls", Weight: 3},
		},
		ComplianceFloor: maturity.L2,
	}

	reqs := []Requirement{
		{ID: "ISO-A.5.1", ArticleRef: "A.5.1", Title: "Policies for information security", Pillar: PillarOrganizational, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"policy", "certification"}},
		{ID: "ISO-A.5.7", ArticleRef: "A.5.7", Title: "Threat intelligence", Pillar: PillarOrganizational, Priority: PriorityMedium, Mandatory: false,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "ISO-A.5.19", ArticleRef: "A.5.19", Title: "Information security in supplier relationships", Pillar: PillarOrganizational, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"vendor_register", "contract"}},
		{ID: "ISO-A.5.24", ArticleRef: "A.5.24", Title: "Incident management planning and preparation", Pillar: PillarOrganizational, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"incident_log", "policy"}},
		{ID: "ISO-A.5.29", ArticleRef: "A.5.29", Title: "Information security during disruption", Pillar: PillarOrganizational, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"test_record"}},
		{ID: "ISO-A.5.30", ArticleRef: "A.5.30", Title: "ICT readiness for business continuity", Pillar: PillarOrganizational, Priority: PriorityCritical, Mandatory: true,
			EvidenceTypes: []string{"test_record", "audit_report"}},
		{ID: "ISO-A.6.3", ArticleRef: "A.6.3", Title: "Security awareness and training", Pillar: PillarPeople, Priority: PriorityMedium, Mandatory: true,
			EvidenceTypes: []string{"policy"}},
		{ID: "ISO-A.8.8", ArticleRef: "A.8.8", Title: "Management of technical vulnerabilities", Pillar: PillarTechnological, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"test_record", "audit_report"}},
		{ID: "ISO-A.8.13", ArticleRef: "A.8.13", Title: "Information backup", Pillar: PillarTechnological, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "test_record"}},
		{ID: "ISO-A.8.16", ArticleRef: "A.8.16", Title: "Monitoring activities", Pillar: PillarTechnological, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
		{ID: "ISO-A.8.24", ArticleRef: "A.8.24", Title: "Use of cryptography", Pillar: PillarTechnological, Priority: PriorityHigh, Mandatory: true,
			EvidenceTypes: []string{"audit_report", "policy"}},
		{ID: "ISO-A.8.25", ArticleRef: "A.8.25", Title: "Secure development life cycle", Pillar: PillarTechnological, Priority: PriorityMedium, Mandatory: true,
			EvidenceTypes: []string{"audit_report"}},
	}

	mappings := []ControlMapping{
		{RequirementID: "ISO-A.5.1", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC1", "CC2"}, Confidence: 0.9},
		{RequirementID: "ISO-A.5.7", Strength: StrengthPartial, CoveragePercentage: 60, Categories: []string{"CC3", "CC7"}, Confidence: 0.75},
		{RequirementID: "ISO-A.5.19", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC9"}, Confidence: 0.9},
		{RequirementID: "ISO-A.5.24", Strength: StrengthFull, CoveragePercentage: 100, Categories: []string{"CC7"}, Confidence: 0.9},
		{RequirementID: "ISO-A.5.29", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"A", "CC9"}, Confidence: 0.85},
		{RequirementID: "ISO-A.5.30", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"A", "CC7"}, Confidence: 0.9},
		{RequirementID: "ISO-A.6.3", Strength: StrengthPartial, CoveragePercentage: 70, Categories: []string{"CC1", "CC2"}, Confidence: 0.8},
		{RequirementID: "ISO-A.8.8", Strength: StrengthPartial, CoveragePercentage: 80, Categories: []string{"CC7", "CC8"}, Confidence: 0.85},
		{RequirementID: "ISO-A.8.13", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"A"}, Confidence: 0.9},
		{RequirementID: "ISO-A.8.16", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"CC7", "CC4"}, Confidence: 0.9},
		{RequirementID: "ISO-A.8.24", Strength: StrengthFull, CoveragePercentage: 90, Categories: []string{"C", "CC6"}, Confidence: 0.9},
		{RequirementID: "ISO-A.8.25", Strength: StrengthPartial, CoveragePercentage: 70, Categories: []string{"CC8"}, Confidence: 0.8},
	}

	c, err := New(profile, reqs, mappings)
	if err != nil {
		panic("catalog: built-in ISO 27001 catalog invalid: " + err.Error())
	}
	return c
}
