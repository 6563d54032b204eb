package assess

import (
	"math"
	"time"

	"github.com/meridian-grc/resilscore/pkg/evidence"
	"github.com/meridian-grc/resilscore/pkg/scoring"
)

// PostureIndicators are supplementary 0-100 signals computed from the
// non-control evidence collections. They inform dashboards; they do not
// feed requirement maturity.
type PostureIndicators struct {
	VendorPosture        float64 `json:"vendor_posture"`
	IncidentPosture      float64 `json:"incident_posture"`
	TestingPosture       float64 `json:"testing_posture"`
	CertificationPosture float64 `json:"certification_posture"`
	VendorConcentration  float64 `json:"vendor_concentration"`
}

// An empty vendor registry scores low but nonzero: it usually means the
// register has not been built, which is itself a finding rather than an
// error. Absence of incidents is ambiguous between clean operations and
// no tracking, so it lands mid-range.
const (
	noVendorBaseline   = 30
	noIncidentBaseline = 50
)

// Posture derives the supplementary indicators from the bundle.
func Posture(b evidence.Bundle, now time.Time) PostureIndicators {
	return PostureIndicators{
		VendorPosture:        vendorPosture(b),
		IncidentPosture:      incidentPosture(b.Incidents),
		TestingPosture:       testingPosture(b.Tests, now),
		CertificationPosture: certificationPosture(b.Certifications, now),
		VendorConcentration:  Concentration(b.Vendors),
	}
}

func vendorPosture(b evidence.Bundle) float64 {
	if len(b.Vendors) == 0 {
		return noVendorBaseline
	}
	contracts := make(map[string]evidence.ContractRecord, len(b.Contracts))
	for _, c := range b.Contracts {
		contracts[c.VendorID] = c
	}
	score := 70.0
	for _, v := range b.Vendors {
		c, ok := contracts[v.ID]
		switch {
		case !ok:
			score -= 5
		case v.Criticality == "critical" && !c.HasExitStrategy:
			score -= 8
		case !c.HasAuditRights:
			score -= 3
		}
	}
	if score < 0 {
		return 0
	}
	return score
}

func incidentPosture(incidents []evidence.IncidentRecord) float64 {
	if len(incidents) == 0 {
		return noIncidentBaseline
	}
	resolved := 0
	for _, in := range incidents {
		if in.ResolvedAt != nil {
			resolved++
		}
	}
	// Tracking exists, so start above the ambiguity baseline and reward
	// closure discipline.
	return scoring.Round1(60 + 40*float64(resolved)/float64(len(incidents)))
}

func testingPosture(tests []evidence.TestRecord, now time.Time) float64 {
	if len(tests) == 0 {
		return 0
	}
	var score float64
	for _, t := range tests {
		base := 100.0
		if !t.Passed {
			base = 40
		}
		score += scoring.FreshnessDecay(base, t.PerformedAt, now, 365*24*time.Hour)
	}
	return scoring.Round1(score / float64(len(tests)))
}

// Certifications run on a three-year cycle at the longest, so a cert
// holds full weight for three years and fades out over the next three.
// An expired certification contributes nothing regardless of age.
func certificationPosture(certs []evidence.Certification, now time.Time) float64 {
	if len(certs) == 0 {
		return 0
	}
	var score float64
	for _, c := range certs {
		if c.Expired(now) {
			continue
		}
		score += scoring.FreshnessDecay(100, c.IssuedAt, now, 3*365*24*time.Hour)
	}
	return scoring.Round1(score / float64(len(certs)))
}

// Concentration computes a Herfindahl-Hirschman index over vendor spend
// shares, scaled to 0-100. Higher means more reliance on fewer vendors.
// Vendors without spend figures share the remainder equally.
func Concentration(vendors []evidence.VendorRecord) float64 {
	if len(vendors) == 0 {
		return 0
	}
	var total float64
	for _, v := range vendors {
		total += v.AnnualSpend
	}
	if total <= 0 {
		// Equal shares: HHI collapses to 1/n.
		return scoring.Round1(100 / float64(len(vendors)))
	}
	var hhi float64
	for _, v := range vendors {
		share := v.AnnualSpend / total
		hhi += share * share
	}
	return scoring.Round1(math.Min(hhi*100, 100))
}
