package catalog

import (
	"regexp"
	"strings"

	"github.com/meridian-grc/resilscore/pkg/maturity"
)

// Framework identifies a supported regulation.
type Framework string

const (
	FrameworkDORA     Framework = "dora"
	FrameworkNIS2     Framework = "nis2"
	FrameworkGDPR32   Framework = "gdpr-art32"
	FrameworkISO27001 Framework = "iso27001"
)

// Priority classifies how urgent a requirement (or derived gap) is.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Weight returns the aggregation weight used when rolling requirement
// levels up into pillar scores: critical=3, high=2, everything else 1.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// Rank orders priorities for sorting: critical first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Escalate bumps a priority one tier toward critical.
func (p Priority) Escalate() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityCritical
	}
}

// Requirement is one regulatory requirement. Requirements are immutable
// reference data; they are loaded once and never mutated at runtime.
type Requirement struct {
	ID            string    `yaml:"id" json:"id"`
	Framework     Framework `yaml:"framework" json:"framework"`
	ArticleRef    string    `yaml:"article_ref" json:"article_ref"`
	Title         string    `yaml:"title" json:"title"`
	Pillar        string    `yaml:"pillar" json:"pillar"`
	Priority      Priority  `yaml:"priority" json:"priority"`
	Mandatory     bool      `yaml:"mandatory" json:"mandatory"`
	EvidenceTypes []string  `yaml:"evidence_types" json:"evidence_types,omitempty"`
	Applicability []string  `yaml:"applicability" json:"applicability,omitempty"`
}

// MappingStrength expresses how directly a control mapping satisfies a
// requirement.
type MappingStrength string

const (
	StrengthNone    MappingStrength = "none"
	StrengthPartial MappingStrength = "partial"
	StrengthFull    MappingStrength = "full"
)

// ControlMapping is the catalog-side rule that selects audit controls as
// evidence for one requirement. Controls match either the explicit
// Pattern (a regular expression over control identifiers) or one of the
// Categories as an identifier/category prefix. Patterns are compiled
// once when the catalog is built.
type ControlMapping struct {
	RequirementID      string          `yaml:"requirement_id" json:"requirement_id"`
	Strength           MappingStrength `yaml:"strength" json:"strength"`
	CoveragePercentage float64         `yaml:"coverage_percentage" json:"coverage_percentage"`
	Pattern            string          `yaml:"pattern" json:"pattern,omitempty"`
	Categories         []string        `yaml:"categories" json:"categories,omitempty"`
	Confidence         float64         `yaml:"confidence" json:"confidence"`

	re *regexp.Regexp
}

// Matches reports whether a control with the given identifier and
// category is selected by this mapping.
func (m *ControlMapping) Matches(controlID, controlCategory string) bool {
	if m.Strength == StrengthNone {
		return false
	}
	if m.re != nil && m.re.MatchString(controlID) {
		return true
	}
	for _, cat := range m.Categories {
		if strings.HasPrefix(strings.ToUpper(controlID), strings.ToUpper(cat)) {
			return true
		}
		if strings.EqualFold(controlCategory, cat) {
			return true
		}
	}
	return false
}

// PillarDef names one pillar of a framework and its fixed aggregation
// weight within the overall score.
type PillarDef struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// FrameworkProfile carries per-framework scoring parameters: the pillar
// set with its weights and the compliance floor below which a
// requirement is always a gap. The floor is data, not code; alternate
// catalog versions may raise it.
type FrameworkProfile struct {
	Framework       Framework      `yaml:"framework" json:"framework"`
	Name            string         `yaml:"name" json:"name"`
	Pillars         []PillarDef    `yaml:"pillars" json:"pillars"`
	ComplianceFloor maturity.Level `yaml:"compliance_floor" json:"compliance_floor"`
}

// PillarWeight returns the configured weight for a pillar id, or 1 for
// pillars the profile does not name.
func (p FrameworkProfile) PillarWeight(id string) float64 {
	for _, def := range p.Pillars {
		if def.ID == id {
			return def.Weight
		}
	}
	return 1
}

// PillarName returns the display name for a pillar id.
func (p FrameworkProfile) PillarName(id string) string {
	for _, def := range p.Pillars {
		if def.ID == id {
			return def.Name
		}
	}
	return id
}
