package mappings

import "github.com/meridian-grc/resilscore/pkg/catalog"

// DefaultGraph returns the built-in cross-framework equivalence graph
// between the four shipped catalogs. Coverage and confidence values are
// analyst estimates frozen as reference data; new assessments of the
// overlaps ship as a new graph version, not as runtime edits.
func DefaultGraph() *Graph {
	return NewGraph(defaultEdges)
}

var defaultEdges = []CrossFrameworkMapping{
	// DORA <-> ISO 27001
	{ID: "xw-dora-iso-001", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART5", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.1", MappingType: TypePartial, CoveragePercentage: 70, Confidence: 0.85, Bidirectional: true,
		Notes: "Governance framework overlaps policy suite; DORA adds board-level ICT accountability."},
	{ID: "xw-dora-iso-002", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART10", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.24", MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95, Bidirectional: true},
	{ID: "xw-dora-iso-003", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART11", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.13", MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95, Bidirectional: true},
	{ID: "xw-dora-iso-004", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART9", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.16", MappingType: TypeEquivalent, CoveragePercentage: 85, Confidence: 0.9, Bidirectional: true},
	{ID: "xw-dora-iso-005", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART28", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.19", MappingType: TypePartial, CoveragePercentage: 75, Confidence: 0.9, Bidirectional: true,
		Notes: "ISO supplier security lacks DORA's register-of-information and exit strategy demands."},
	{ID: "xw-dora-iso-006", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART24", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.8", MappingType: TypeSupports, CoveragePercentage: 50, Confidence: 0.8, Bidirectional: false,
		Notes: "Resilience testing subsumes vulnerability management but not vice versa."},
	{ID: "xw-dora-iso-007", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART10", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.30", MappingType: TypePartial, CoveragePercentage: 70, Confidence: 0.85, Bidirectional: true},

	// DORA <-> NIS2
	{ID: "xw-dora-nis2-001", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART5", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-21.2.A", MappingType: TypeEquivalent, CoveragePercentage: 85, Confidence: 0.9, Bidirectional: true},
	{ID: "xw-dora-nis2-002", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART17", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-21.2.B", MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95, Bidirectional: true},
	{ID: "xw-dora-nis2-003", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART19", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-23", MappingType: TypePartial, CoveragePercentage: 70, Confidence: 0.85, Bidirectional: true,
		Notes: "Reporting clocks and addressees differ (competent authority vs CSIRT)."},
	{ID: "xw-dora-nis2-004", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART11", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-21.2.C", MappingType: TypePartial, CoveragePercentage: 75, Confidence: 0.85, Bidirectional: true},
	{ID: "xw-dora-nis2-005", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART28", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-21.2.D", MappingType: TypePartial, CoveragePercentage: 70, Confidence: 0.85, Bidirectional: true},
	{ID: "xw-dora-nis2-006", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART8", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-21.2.I", MappingType: TypeSupports, CoveragePercentage: 60, Confidence: 0.8, Bidirectional: false},
	{ID: "xw-dora-nis2-007", SourceFramework: catalog.FrameworkDORA, SourceRequirementID: "DORA-ART45", TargetFramework: catalog.FrameworkNIS2, TargetRequirementID: "NIS2-21.2.G", MappingType: TypeRelated, CoveragePercentage: 30, Confidence: 0.6, Bidirectional: false},

	// NIS2 <-> ISO 27001
	{ID: "xw-nis2-iso-001", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.A", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.1", MappingType: TypeEquivalent, CoveragePercentage: 85, Confidence: 0.9, Bidirectional: true},
	{ID: "xw-nis2-iso-002", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.B", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.24", MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95, Bidirectional: true},
	{ID: "xw-nis2-iso-003", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.H", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.24", MappingType: TypeEquivalent, CoveragePercentage: 90, Confidence: 0.95, Bidirectional: true},
	{ID: "xw-nis2-iso-004", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.D", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.5.19", MappingType: TypePartial, CoveragePercentage: 75, Confidence: 0.9, Bidirectional: true},
	{ID: "xw-nis2-iso-005", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.G", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.6.3", MappingType: TypePartial, CoveragePercentage: 70, Confidence: 0.85, Bidirectional: true},
	{ID: "xw-nis2-iso-006", SourceFramework: catalog.FrameworkNIS2, SourceRequirementID: "NIS2-21.2.E", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.25", MappingType: TypePartial, CoveragePercentage: 75, Confidence: 0.85, Bidirectional: true},

	// GDPR Art. 32 <-> ISO 27001
	{ID: "xw-gdpr-iso-001", SourceFramework: catalog.FrameworkGDPR32, SourceRequirementID: "GDPR32-1A", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.24", MappingType: TypePartial, CoveragePercentage: 80, Confidence: 0.9, Bidirectional: true,
		Notes: "Art. 32 asks for encryption 'as appropriate'; ISO control is broader in scope."},
	{ID: "xw-gdpr-iso-002", SourceFramework: catalog.FrameworkGDPR32, SourceRequirementID: "GDPR32-1C", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.13", MappingType: TypeSupports, CoveragePercentage: 60, Confidence: 0.8, Bidirectional: false},
	{ID: "xw-gdpr-iso-003", SourceFramework: catalog.FrameworkGDPR32, SourceRequirementID: "GDPR32-1D", TargetFramework: catalog.FrameworkISO27001, TargetRequirementID: "ISO-A.8.8", MappingType: TypeRelated, CoveragePercentage: 40, Confidence: 0.7, Bidirectional: false},

	// GDPR Art. 32 <-> DORA
	{ID: "xw-gdpr-dora-001", SourceFramework: catalog.FrameworkGDPR32, SourceRequirementID: "GDPR32-1B", TargetFramework: catalog.FrameworkDORA, TargetRequirementID: "DORA-ART6", MappingType: TypeSupports, CoveragePercentage: 50, Confidence: 0.75, Bidirectional: true},
	{ID: "xw-gdpr-dora-002", SourceFramework: catalog.FrameworkGDPR32, SourceRequirementID: "GDPR32-1C", TargetFramework: catalog.FrameworkDORA, TargetRequirementID: "DORA-ART10", MappingType: TypeSupports, CoveragePercentage: 55, Confidence: 0.8, Bidirectional: true},
}
