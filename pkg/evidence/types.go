// Package evidence defines the structured evidence shapes the scoring
// engine consumes and the matcher that associates them with individual
// requirements. The engine never extracts evidence from raw documents;
// upstream parsers hand it pre-structured bundles.
package evidence

import "time"

// Control is one audit control extracted from an assurance report.
// DocumentID and PageRef identify where in the source report the
// control was found; upstream parsers set them when known.
type Control struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	TestResult  string `json:"test_result"`
	DocumentID  string `json:"document_id,omitempty"`
	PageRef     string `json:"page_ref,omitempty"`
}

// Passed reports whether the control's test result reads as a pass.
func (c Control) Passed() bool {
	switch c.TestResult {
	case "passed", "no_exceptions_noted", "operating_effectively":
		return true
	}
	return false
}

// ExceptionType classifies an audit exception.
type ExceptionType string

const (
	DesignDeficiency    ExceptionType = "design_deficiency"
	OperatingDeficiency ExceptionType = "operating_deficiency"
	PopulationDeviation ExceptionType = "population_deviation"
)

// Weight returns the type's severity weight. Higher means milder:
// design deficiencies are structural, deviations are incidental.
func (t ExceptionType) Weight() float64 {
	switch t {
	case DesignDeficiency:
		return 0.3
	case OperatingDeficiency:
		return 0.5
	case PopulationDeviation:
		return 0.7
	default:
		return 0.5
	}
}

// ExceptionImpact is the auditor's assessed impact of an exception.
type ExceptionImpact string

const (
	ImpactHigh   ExceptionImpact = "high"
	ImpactMedium ExceptionImpact = "medium"
	ImpactLow    ExceptionImpact = "low"
)

// Weight returns the impact's severity weight. Higher means milder.
func (i ExceptionImpact) Weight() float64 {
	switch i {
	case ImpactHigh:
		return 0.4
	case ImpactMedium:
		return 0.6
	case ImpactLow:
		return 0.8
	default:
		return 0.6
	}
}

// ControlException is an audit exception noted against a control.
type ControlException struct {
	ControlID           string          `json:"control_id"`
	Type                ExceptionType   `json:"type"`
	Impact              ExceptionImpact `json:"impact"`
	Description         string          `json:"description,omitempty"`
	RemediationVerified bool            `json:"remediation_verified"`
	RemediationDate     *time.Time      `json:"remediation_date,omitempty"`
}

// Severe reports whether the exception caps maturity regardless of
// coverage: a design deficiency, or any exception with high impact.
func (e ControlException) Severe() bool {
	return e.Type == DesignDeficiency || e.Impact == ImpactHigh
}

// Severity scores the exception in [0,1], higher being worse. The base
// score is 1 minus the product of the type and impact weights. Verified
// remediation takes 0.3 off; a remediation date already past at the
// reference time takes 0.15 off.
func (e ControlException) Severity(now time.Time) float64 {
	s := 1 - e.Type.Weight()*e.Impact.Weight()
	if e.RemediationVerified {
		s -= 0.3
	} else if e.RemediationDate != nil && e.RemediationDate.Before(now) {
		s -= 0.15
	}
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Certification is a third-party attestation (ISO cert, SOC report).
type Certification struct {
	Name      string     `json:"name"`
	Issuer    string     `json:"issuer,omitempty"`
	Scope     string     `json:"scope,omitempty"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the certification has lapsed at now.
func (c Certification) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// VendorRecord is one third-party provider from the vendor registry.
type VendorRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Criticality string  `json:"criticality"`
	Service     string  `json:"service,omitempty"`
	AnnualSpend float64 `json:"annual_spend,omitempty"`
}

// IncidentRecord is one entry from the operational incident log.
type IncidentRecord struct {
	ID         string     `json:"id"`
	Severity   string     `json:"severity"`
	OccurredAt time.Time  `json:"occurred_at"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Summary    string     `json:"summary,omitempty"`
}

// TestRecord is one resilience or recovery test execution.
type TestRecord struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	PerformedAt time.Time `json:"performed_at"`
	Passed      bool      `json:"passed"`
	Notes       string    `json:"notes,omitempty"`
}

// ContractRecord captures the compliance-relevant clauses of a vendor
// contract.
type ContractRecord struct {
	VendorID        string     `json:"vendor_id"`
	HasExitStrategy bool       `json:"has_exit_strategy"`
	HasAuditRights  bool       `json:"has_audit_rights"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// Bundle is the full evidence set for one assessment run. Every
// collection is optional; an absent source contributes an empty slice.
type Bundle struct {
	Controls       []Control          `json:"controls,omitempty"`
	Exceptions     []ControlException `json:"exceptions,omitempty"`
	Certifications []Certification    `json:"certifications,omitempty"`
	Vendors        []VendorRecord     `json:"vendors,omitempty"`
	Incidents      []IncidentRecord   `json:"incidents,omitempty"`
	Tests          []TestRecord       `json:"tests,omitempty"`
	Contracts      []ContractRecord   `json:"contracts,omitempty"`
}

// Merge appends every collection of other onto b.
func (b *Bundle) Merge(other Bundle) {
	b.Controls = append(b.Controls, other.Controls...)
	b.Exceptions = append(b.Exceptions, other.Exceptions...)
	b.Certifications = append(b.Certifications, other.Certifications...)
	b.Vendors = append(b.Vendors, other.Vendors...)
	b.Incidents = append(b.Incidents, other.Incidents...)
	b.Tests = append(b.Tests, other.Tests...)
	b.Contracts = append(b.Contracts, other.Contracts...)
}

// Empty reports whether the bundle carries no evidence at all.
func (b Bundle) Empty() bool {
	return len(b.Controls) == 0 && len(b.Exceptions) == 0 &&
		len(b.Certifications) == 0 && len(b.Vendors) == 0 &&
		len(b.Incidents) == 0 && len(b.Tests) == 0 && len(b.Contracts) == 0
}

// Source is a pointer from a requirement to the raw evidence justifying
// it.
type Source struct {
	DocumentID string  `json:"document_id,omitempty"`
	ControlID  string  `json:"control_id"`
	PageRef    string  `json:"page_ref,omitempty"`
	Confidence float64 `json:"confidence"`
}
