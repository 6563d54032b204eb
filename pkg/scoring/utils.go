// Package scoring converts matched evidence into maturity levels and
// percentage scores, first per requirement, then rolled up per pillar
// and overall. Everything here is pure and synchronous; callers supply
// the reference time explicitly so repeated runs over the same inputs
// produce identical results.
package scoring

import (
	"math"
	"time"
)

// Status is the coarse compliance verdict derived from a percentage.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusPartial      Status = "partial"
	StatusNonCompliant Status = "non_compliant"
)

// StatusForPercentage maps a 0-100 score onto a verdict: 85 and above is
// compliant, 50 and above partial, everything else non-compliant.
func StatusForPercentage(pct float64) Status {
	switch {
	case pct >= 85:
		return StatusCompliant
	case pct >= 50:
		return StatusPartial
	default:
		return StatusNonCompliant
	}
}

// WeightedAverage computes sum(value*weight)/sum(weight). A zero or
// negative weight total returns 0 rather than dividing by zero.
func WeightedAverage(values, weights []float64) float64 {
	var num, den float64
	for i, v := range values {
		if i >= len(weights) {
			break
		}
		num += v * weights[i]
		den += weights[i]
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

// FreshnessDecay discounts a score by the age of its supporting
// evidence: full value inside maxAge, then a linear fade to zero over a
// second maxAge period. Certifications older than twice maxAge count for
// nothing.
func FreshnessDecay(score float64, issuedAt, now time.Time, maxAge time.Duration) float64 {
	if maxAge <= 0 {
		return score
	}
	age := now.Sub(issuedAt)
	if age <= maxAge {
		return score
	}
	excess := float64(age-maxAge) / float64(maxAge)
	if excess >= 1 {
		return 0
	}
	return score * (1 - excess)
}

// Round1 rounds to one decimal place, the precision scores are reported
// at.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
