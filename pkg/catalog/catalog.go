package catalog

import (
	"fmt"
	"regexp"
)

// Catalog is the immutable requirement catalog for one framework,
// bundled with its control-selection mappings. Build one with New (or
// the built-in constructors) and inject it where needed; there is no
// package-level mutable state.
type Catalog struct {
	profile      FrameworkProfile
	requirements []Requirement
	byID         map[string]int
	mappings     map[string][]*ControlMapping
}

// New validates reference data, clamps out-of-range numeric fields, and
// compiles mapping patterns. Out-of-range coverage/confidence values in
// hand-edited catalog files are clamped rather than rejected.
func New(profile FrameworkProfile, requirements []Requirement, mappings []ControlMapping) (*Catalog, error) {
	if profile.Framework == "" {
		return nil, fmt.Errorf("catalog: profile missing framework")
	}
	if len(profile.Pillars) == 0 {
		return nil, fmt.Errorf("catalog %s: profile has no pillars", profile.Framework)
	}
	if !profile.ComplianceFloor.Valid() {
		profile.ComplianceFloor = profile.ComplianceFloor.Clamp()
	}

	c := &Catalog{
		profile:  profile,
		byID:     make(map[string]int, len(requirements)),
		mappings: make(map[string][]*ControlMapping),
	}

	for _, req := range requirements {
		if req.ID == "" {
			return nil, fmt.Errorf("catalog %s: requirement with empty id", profile.Framework)
		}
		if _, dup := c.byID[req.ID]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate requirement %s", profile.Framework, req.ID)
		}
		if req.Framework == "" {
			req.Framework = profile.Framework
		}
		if req.Priority == "" {
			req.Priority = PriorityMedium
		}
		c.byID[req.ID] = len(c.requirements)
		c.requirements = append(c.requirements, req)
	}

	for i := range mappings {
		m := mappings[i]
		if _, ok := c.byID[m.RequirementID]; !ok {
			return nil, fmt.Errorf("catalog %s: mapping references unknown requirement %s", profile.Framework, m.RequirementID)
		}
		m.CoveragePercentage = clamp(m.CoveragePercentage, 0, 100)
		if m.Confidence == 0 {
			m.Confidence = 0.85
		}
		m.Confidence = clamp(m.Confidence, 0, 1)
		if m.Strength == "" {
			m.Strength = StrengthPartial
		}
		if m.Pattern != "" {
			re, err := regexp.Compile(m.Pattern)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: mapping for %s: bad pattern %q: %w", profile.Framework, m.RequirementID, m.Pattern, err)
			}
			m.re = re
		}
		c.mappings[m.RequirementID] = append(c.mappings[m.RequirementID], &m)
	}

	return c, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Framework returns the framework this catalog describes.
func (c *Catalog) Framework() Framework { return c.profile.Framework }

// Profile returns the framework's scoring profile.
func (c *Catalog) Profile() FrameworkProfile { return c.profile }

// Requirements returns all requirements in catalog order.
func (c *Catalog) Requirements() []Requirement {
	out := make([]Requirement, len(c.requirements))
	copy(out, c.requirements)
	return out
}

// Requirement looks up a single requirement by id.
func (c *Catalog) Requirement(id string) (Requirement, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Requirement{}, false
	}
	return c.requirements[idx], true
}

// ControlMappings returns the control-selection mappings for one
// requirement. A requirement with no mappings (or only strength "none")
// cannot gather evidence and scores L0 immediately.
func (c *Catalog) ControlMappings(requirementID string) []*ControlMapping {
	return c.mappings[requirementID]
}

// RequirementsForPillar returns the requirements grouped under one
// pillar, in catalog order.
func (c *Catalog) RequirementsForPillar(pillarID string) []Requirement {
	var out []Requirement
	for _, req := range c.requirements {
		if req.Pillar == pillarID {
			out = append(out, req)
		}
	}
	return out
}

// Registry holds the loaded catalogs, keyed by framework. It is built
// once at startup and passed into the engine explicitly so tests can
// substitute fixture catalogs.
type Registry struct {
	catalogs map[Framework]*Catalog
}

// NewRegistry builds a registry from the given catalogs.
func NewRegistry(catalogs ...*Catalog) *Registry {
	r := &Registry{catalogs: make(map[Framework]*Catalog, len(catalogs))}
	for _, c := range catalogs {
		r.catalogs[c.Framework()] = c
	}
	return r
}

// DefaultRegistry returns the built-in catalogs for all supported
// frameworks.
func DefaultRegistry() *Registry {
	return NewRegistry(DORA(), NIS2(), GDPR32(), ISO27001())
}

// Catalog returns the catalog for a framework.
func (r *Registry) Catalog(fw Framework) (*Catalog, bool) {
	c, ok := r.catalogs[fw]
	return c, ok
}

// Frameworks lists the registered frameworks.
func (r *Registry) Frameworks() []Framework {
	out := make([]Framework, 0, len(r.catalogs))
	for _, fw := range []Framework{FrameworkDORA, FrameworkNIS2, FrameworkGDPR32, FrameworkISO27001} {
		if _, ok := r.catalogs[fw]; ok {
			out = append(out, fw)
		}
	}
	for fw := range r.catalogs {
		known := false
		for _, o := range out {
			if o == fw {
				known = true
				break
			}
		}
		if !known {
			out = append(out, fw)
		}
	}
	return out
}
