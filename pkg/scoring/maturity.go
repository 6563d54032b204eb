package scoring

import (
	"fmt"
	"time"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/evidence"
	"github.com/meridian-grc/resilscore/pkg/maturity"
)

// DesignStatus describes how adequately the control design covers a
// requirement.
type DesignStatus string

const (
	DesignEffective DesignStatus = "effective"
	DesignPartial   DesignStatus = "partial"
	DesignMissing   DesignStatus = "missing"
)

// OperatingStatus describes whether the designed controls have been
// shown to operate.
type OperatingStatus string

const (
	OperatingNotTested OperatingStatus = "not_tested"
	OperatingValidated OperatingStatus = "validated"
	OperatingPartial   OperatingStatus = "partial"
	OperatingMissing   OperatingStatus = "missing"
)

// GapType says which dimension of a requirement is deficient.
type GapType string

const (
	GapNone        GapType = "none"
	GapDesign      GapType = "design"
	GapOperational GapType = "operational"
	GapBoth        GapType = "both"
)

const (
	maxExceptionPenalty = 15
	maxTotalPenalty     = 50
)

// RequirementScore is the computed assessment of one requirement. It is
// rebuilt on every scoring run and persisted only inside snapshots.
type RequirementScore struct {
	RequirementID       string            `json:"requirement_id"`
	ArticleRef          string            `json:"article_ref"`
	Pillar              string            `json:"pillar"`
	Priority            catalog.Priority  `json:"priority"`
	DesignStatus        DesignStatus      `json:"design_status"`
	OperatingStatus     OperatingStatus   `json:"operating_status"`
	MaturityLevel       maturity.Level    `json:"maturity_level"`
	RawCoverage         float64           `json:"raw_coverage"`
	ExceptionPenalty    float64           `json:"exception_penalty"`
	EffectiveCoverage   float64           `json:"effective_coverage"`
	EvidenceSources     []evidence.Source `json:"evidence_sources,omitempty"`
	GapType             GapType           `json:"gap_type"`
	GapDescription      string            `json:"gap_description,omitempty"`
	RemediationPriority catalog.Priority  `json:"remediation_priority,omitempty"`
}

// ScoreRequirement converts one requirement's matched evidence into a
// maturity level. now is the reference time for remediation-date checks
// only; passing the same time reproduces the same result.
func ScoreRequirement(match evidence.RequirementMatch, now time.Time) RequirementScore {
	score := RequirementScore{
		RequirementID:   match.Requirement.ID,
		ArticleRef:      match.Requirement.ArticleRef,
		Pillar:          match.Requirement.Pillar,
		Priority:        match.Requirement.Priority,
		EvidenceSources: match.Sources,
	}

	if match.Terminal {
		score.DesignStatus = DesignMissing
		score.OperatingStatus = OperatingNotTested
		score.MaturityLevel = maturity.L0
		score.GapType = GapBoth
		score.GapDescription = fmt.Sprintf("no control mapping addresses %s (%s)",
			match.Requirement.Title, match.Requirement.ArticleRef)
		score.RemediationPriority = match.Requirement.Priority
		return score
	}

	score.RawCoverage = match.AverageCoverage()
	score.ExceptionPenalty = exceptionPenalty(match.Exceptions, now)
	score.EffectiveCoverage = score.RawCoverage * (100 - score.ExceptionPenalty) / 100

	severe := false
	for _, exc := range match.Exceptions {
		if exc.Severe() {
			severe = true
			break
		}
	}

	score.MaturityLevel = requirementLevel(score.EffectiveCoverage, match.WellDocumented(), match.HasEvidence())
	if severe {
		ceiling := maturity.L2
		if score.EffectiveCoverage < 50 {
			ceiling = maturity.L1
		}
		if score.MaturityLevel > ceiling {
			score.MaturityLevel = ceiling
		}
	}

	score.DesignStatus = designStatus(score.EffectiveCoverage, match.Exceptions)
	score.OperatingStatus = operatingStatus(match, severe)
	score.GapType = gapType(score.DesignStatus, score.OperatingStatus)
	if score.GapType != GapNone {
		score.GapDescription = describeGap(match.Requirement, score)
		score.RemediationPriority = match.Requirement.Priority
	}
	return score
}

// exceptionPenalty sums the severity-weighted deduction across linked
// exceptions, up to 15 points each and 50 points total.
func exceptionPenalty(excs []evidence.ControlException, now time.Time) float64 {
	var total float64
	for _, exc := range excs {
		total += exc.Severity(now) * maxExceptionPenalty
	}
	if total > maxTotalPenalty {
		return maxTotalPenalty
	}
	return total
}

// requirementLevel applies the per-requirement threshold table. The
// documentation check splits the two top bands; the pillar rollup uses a
// flat band table instead (maturity.ForPercentage), and the two are kept
// separate on purpose.
func requirementLevel(effective float64, wellDocumented, hasEvidence bool) maturity.Level {
	switch {
	case effective >= 85:
		if wellDocumented {
			return maturity.L4
		}
		return maturity.L3
	case effective >= 70:
		if wellDocumented {
			return maturity.L3
		}
		return maturity.L2
	case effective >= 50:
		return maturity.L2
	case effective >= 25 || hasEvidence:
		return maturity.L1
	default:
		return maturity.L0
	}
}

func designStatus(effective float64, excs []evidence.ControlException) DesignStatus {
	status := DesignMissing
	switch {
	case effective >= 70:
		status = DesignEffective
	case effective >= 25:
		status = DesignPartial
	}
	// An unremediated design deficiency contradicts an effective design
	// regardless of coverage.
	if status == DesignEffective {
		for _, exc := range excs {
			if exc.Type == evidence.DesignDeficiency && !exc.RemediationVerified {
				return DesignPartial
			}
		}
	}
	return status
}

func operatingStatus(match evidence.RequirementMatch, severe bool) OperatingStatus {
	switch {
	case !match.HasEvidence():
		return OperatingNotTested
	case severe:
		return OperatingMissing
	case len(match.Exceptions) == 0:
		return OperatingValidated
	default:
		return OperatingPartial
	}
}

func gapType(design DesignStatus, operating OperatingStatus) GapType {
	designGap := design != DesignEffective
	operatingGap := operating == OperatingPartial || operating == OperatingMissing
	switch {
	case designGap && operatingGap:
		return GapBoth
	case designGap:
		return GapDesign
	case operatingGap:
		return GapOperational
	default:
		return GapNone
	}
}

func describeGap(req catalog.Requirement, score RequirementScore) string {
	switch score.GapType {
	case GapDesign:
		return fmt.Sprintf("control design covers %.0f%% of %s (%s); design target not met",
			score.EffectiveCoverage, req.Title, req.ArticleRef)
	case GapOperational:
		return fmt.Sprintf("controls for %s (%s) show operating exceptions", req.Title, req.ArticleRef)
	default:
		return fmt.Sprintf("%s (%s) lacks both adequate design coverage and operating evidence",
			req.Title, req.ArticleRef)
	}
}
