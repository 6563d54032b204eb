// Package assess runs a full compliance assessment for one framework:
// match evidence, score requirements, roll up pillars, derive gaps, and
// assemble the result object downstream consumers read.
package assess

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/evidence"
	"github.com/meridian-grc/resilscore/pkg/gaps"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/maturity"
	"github.com/meridian-grc/resilscore/pkg/scoring"
)

// EvidenceSummary counts requirements by how well their evidence holds
// up.
type EvidenceSummary struct {
	Sufficient   int `json:"sufficient"`
	Partial      int `json:"partial"`
	Insufficient int `json:"insufficient"`
}

// Result is the complete outcome of one assessment run.
type Result struct {
	ID                   string                     `json:"id"`
	Framework            catalog.Framework          `json:"framework"`
	OrganizationID       string                     `json:"organization_id"`
	VendorID             string                     `json:"vendor_id,omitempty"`
	AssessedAt           time.Time                  `json:"assessed_at"`
	OverallLevel         maturity.Level             `json:"overall_level"`
	OverallPercentage    float64                    `json:"overall_percentage"`
	OverallStatus        scoring.Status             `json:"overall_status"`
	Pillars              []scoring.PillarScore      `json:"pillars"`
	Requirements         []scoring.RequirementScore `json:"requirements"`
	Gaps                 []gaps.GapItem             `json:"gaps"`
	CriticalGaps         []gaps.GapItem             `json:"critical_gaps,omitempty"`
	EvidenceSummary      EvidenceSummary            `json:"evidence_summary"`
	EstimatedRemediation string                     `json:"estimated_remediation"`
	RemediationWeeks     int                        `json:"remediation_weeks"`
	Posture              PostureIndicators          `json:"posture"`
	SourceDocuments      []string                   `json:"source_documents,omitempty"`
}

// Input scopes one assessment run. A zero AssessedAt means now; passing
// an explicit time makes runs reproducible.
type Input struct {
	OrganizationID string
	VendorID       string
	Bundle         evidence.Bundle
	AssessedAt     time.Time
}

// Assessor wires the catalogs, the crosswalk graph, and a logger into a
// reusable assessment pipeline.
type Assessor struct {
	registry *catalog.Registry
	graph    *mappings.Graph
	log      *zap.Logger
}

func New(registry *catalog.Registry, graph *mappings.Graph, log *zap.Logger) *Assessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assessor{registry: registry, graph: graph, log: log}
}

// Assess scores the bundle against one framework's catalog. The context
// is accepted for interface symmetry with evidence collection; scoring
// itself is synchronous and does not block.
func (a *Assessor) Assess(ctx context.Context, fw catalog.Framework, in Input) (*Result, error) {
	cat, ok := a.registry.Catalog(fw)
	if !ok {
		return nil, fmt.Errorf("no catalog registered for framework %q", fw)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := in.AssessedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	matches := evidence.MatchAll(cat, in.Bundle)
	scores := make([]scoring.RequirementScore, 0, len(matches))
	for _, m := range matches {
		scores = append(scores, scoring.ScoreRequirement(m, now))
	}

	profile := cat.Profile()
	grouped, order := scoring.GroupByPillar(profile, scores)
	pillars := make([]scoring.PillarScore, 0, len(order))
	for _, pillarID := range order {
		pillars = append(pillars, scoring.AggregatePillar(profile, pillarID, grouped[pillarID]))
	}
	overall := scoring.AggregateOverall(profile, pillars)

	analyzer := gaps.NewAnalyzer(cat, a.graph)
	gapItems := analyzer.Analyze(scores)

	res := &Result{
		ID:                   uuid.NewString(),
		Framework:            fw,
		OrganizationID:       in.OrganizationID,
		VendorID:             in.VendorID,
		AssessedAt:           now,
		OverallLevel:         overall.MaturityLevel,
		OverallPercentage:    overall.PercentageScore,
		OverallStatus:        overall.Status,
		Pillars:              pillars,
		Requirements:         scores,
		Gaps:                 gapItems,
		CriticalGaps:         gaps.Critical(gapItems),
		EvidenceSummary:      summarize(scores),
		EstimatedRemediation: gaps.AggregateRemediationTime(gapItems),
		RemediationWeeks:     gaps.AggregateRemediationWeeks(gapItems),
		Posture:              Posture(in.Bundle, now),
		SourceDocuments:      sourceDocuments(scores),
	}

	a.log.Info("assessment complete",
		zap.String("framework", string(fw)),
		zap.String("organization", in.OrganizationID),
		zap.Int("level", int(res.OverallLevel)),
		zap.Float64("percentage", res.OverallPercentage),
		zap.Int("gaps", len(gapItems)))
	return res, nil
}

func summarize(scores []scoring.RequirementScore) EvidenceSummary {
	var s EvidenceSummary
	for _, sc := range scores {
		switch {
		case len(sc.EvidenceSources) == 0:
			s.Insufficient++
		case sc.OperatingStatus == scoring.OperatingValidated && sc.DesignStatus == scoring.DesignEffective:
			s.Sufficient++
		default:
			s.Partial++
		}
	}
	return s
}

func sourceDocuments(scores []scoring.RequirementScore) []string {
	seen := make(map[string]bool)
	var docs []string
	for _, sc := range scores {
		for _, src := range sc.EvidenceSources {
			if src.DocumentID == "" || seen[src.DocumentID] {
				continue
			}
			seen[src.DocumentID] = true
			docs = append(docs, src.DocumentID)
		}
	}
	return docs
}
