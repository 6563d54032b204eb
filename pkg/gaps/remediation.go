package gaps

import (
	"fmt"
	"math"

	"github.com/meridian-grc/resilscore/pkg/catalog"
)

// Remediation streams overlap in practice, so the aggregate estimate is
// discounted below the straight sum of per-gap durations.
const parallelizationFactor = 0.55

// EffortEstimate returns the human-readable duration band for one gap.
func EffortEstimate(p catalog.Priority) string {
	switch p {
	case catalog.PriorityCritical:
		return "4-8 weeks"
	case catalog.PriorityHigh:
		return "2-4 weeks"
	case catalog.PriorityMedium:
		return "1-2 weeks"
	default:
		return "<1 week"
	}
}

// effortWeeks is the midpoint-ish planning figure behind each band.
func effortWeeks(p catalog.Priority) float64 {
	switch p {
	case catalog.PriorityCritical:
		return 6
	case catalog.PriorityHigh:
		return 3
	case catalog.PriorityMedium:
		return 1.5
	default:
		return 0.5
	}
}

// AggregateRemediationWeeks estimates total calendar weeks to close a
// gap list, assuming partially parallel workstreams. Rounded up; an
// empty list costs nothing.
func AggregateRemediationWeeks(items []GapItem) int {
	var total float64
	for _, g := range items {
		total += effortWeeks(g.Priority)
	}
	return int(math.Ceil(total * parallelizationFactor))
}

// AggregateRemediationTime renders the estimate as display text.
func AggregateRemediationTime(items []GapItem) string {
	weeks := AggregateRemediationWeeks(items)
	switch {
	case weeks == 0:
		return "none"
	case weeks == 1:
		return "1 week"
	default:
		return fmt.Sprintf("%d weeks", weeks)
	}
}
