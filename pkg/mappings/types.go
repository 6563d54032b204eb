// Package mappings holds the static cross-framework equivalence graph
// and the coverage-transfer arithmetic built on it. Edges are immutable
// reference data, loaded once (built-in or from YAML) and queried by the
// gap analyzer and the coverage calculator.
package mappings

import "github.com/meridian-grc/resilscore/pkg/catalog"

// MappingType is the qualitative closeness between a source requirement
// and a target requirement in another framework.
type MappingType string

const (
	TypeEquivalent MappingType = "equivalent"
	TypePartial    MappingType = "partial"
	TypeSupports   MappingType = "supports"
	TypeRelated    MappingType = "related"
)

// Weight returns the coverage-transfer weight for a mapping type:
// equivalent 1.0, partial 0.7, supports 0.5, related 0.3.
func (t MappingType) Weight() float64 {
	switch t {
	case TypeEquivalent:
		return 1.0
	case TypePartial:
		return 0.7
	case TypeSupports:
		return 0.5
	case TypeRelated:
		return 0.3
	default:
		return 0
	}
}

// CrossFrameworkMapping is one directed (optionally bidirectional) edge
// between requirements of two frameworks.
type CrossFrameworkMapping struct {
	ID                  string            `yaml:"id" json:"id"`
	SourceFramework     catalog.Framework `yaml:"source_framework" json:"source_framework"`
	SourceRequirementID string            `yaml:"source_requirement_id" json:"source_requirement_id"`
	TargetFramework     catalog.Framework `yaml:"target_framework" json:"target_framework"`
	TargetRequirementID string            `yaml:"target_requirement_id" json:"target_requirement_id"`
	MappingType         MappingType       `yaml:"mapping_type" json:"mapping_type"`
	CoveragePercentage  float64           `yaml:"coverage_percentage" json:"coverage_percentage"`
	Confidence          float64           `yaml:"confidence" json:"confidence"`
	Bidirectional       bool              `yaml:"bidirectional" json:"bidirectional"`
	Notes               string            `yaml:"notes" json:"notes,omitempty"`
}

// Reversed returns the mirror edge of a bidirectional mapping.
func (m CrossFrameworkMapping) Reversed() CrossFrameworkMapping {
	r := m
	r.SourceFramework, r.TargetFramework = m.TargetFramework, m.SourceFramework
	r.SourceRequirementID, r.TargetRequirementID = m.TargetRequirementID, m.SourceRequirementID
	return r
}
