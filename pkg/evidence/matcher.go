package evidence

import (
	"sort"

	"github.com/meridian-grc/resilscore/pkg/catalog"
)

// RequirementMatch binds one requirement to the evidence selected for
// it. Terminal marks requirements with no usable control mappings; those
// are classified missing outright and the scorer does no further work on
// them.
type RequirementMatch struct {
	Requirement catalog.Requirement
	Mappings    []*catalog.ControlMapping
	Controls    []Control
	Exceptions  []ControlException
	Sources     []Source
	Terminal    bool
}

// HasEvidence reports whether any control matched the requirement.
func (m RequirementMatch) HasEvidence() bool { return len(m.Controls) > 0 }

// AverageCoverage is the mean coverage percentage across the
// requirement's mappings. A mapping's coverage figure describes the
// controls it selects; until at least one control has matched it
// asserts nothing, so a match without evidence reports 0.
func (m RequirementMatch) AverageCoverage() float64 {
	if len(m.Mappings) == 0 || len(m.Controls) == 0 {
		return 0
	}
	var sum float64
	for _, cm := range m.Mappings {
		sum += cm.CoveragePercentage
	}
	return sum / float64(len(m.Mappings))
}

// WellDocumented reports whether every matched control carries a
// substantive description, taken here as more than 100 characters.
func (m RequirementMatch) WellDocumented() bool {
	if len(m.Controls) == 0 {
		return false
	}
	for _, c := range m.Controls {
		if len(c.Description) <= 100 {
			return false
		}
	}
	return true
}

// MatchRequirement selects from the bundle the controls and exceptions
// that evidence one requirement. It is a pure function of its inputs.
func MatchRequirement(cat *catalog.Catalog, req catalog.Requirement, bundle Bundle) RequirementMatch {
	match := RequirementMatch{Requirement: req}
	for _, cm := range cat.ControlMappings(req.ID) {
		if cm.Strength == catalog.StrengthNone {
			continue
		}
		match.Mappings = append(match.Mappings, cm)
	}
	if len(match.Mappings) == 0 {
		match.Terminal = true
		return match
	}

	matched := make(map[string]bool)
	for _, cm := range match.Mappings {
		for _, ctl := range bundle.Controls {
			if matched[ctl.ID] || !cm.Matches(ctl.ID, ctl.Category) {
				continue
			}
			matched[ctl.ID] = true
			match.Controls = append(match.Controls, ctl)
			match.Sources = append(match.Sources, Source{
				DocumentID: ctl.DocumentID,
				ControlID:  ctl.ID,
				PageRef:    ctl.PageRef,
				Confidence: cm.Confidence,
			})
		}
	}

	// Exceptions attach through the controls they were raised against.
	for _, exc := range bundle.Exceptions {
		if matched[exc.ControlID] {
			match.Exceptions = append(match.Exceptions, exc)
		}
	}
	return match
}

// MatchAll runs the matcher over the whole catalog, in requirement ID
// order.
func MatchAll(cat *catalog.Catalog, bundle Bundle) []RequirementMatch {
	reqs := cat.Requirements()
	matches := make([]RequirementMatch, 0, len(reqs))
	for _, req := range reqs {
		matches = append(matches, MatchRequirement(cat, req, bundle))
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Requirement.ID < matches[j].Requirement.ID
	})
	return matches
}
