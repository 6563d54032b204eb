// Package report renders assessment results as PDF documents for
// auditors and management review.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/scoring"
)

func reportID(res *assess.Result) string {
	hash := sha256.Sum256([]byte(res.ID + res.AssessedAt.String()))
	return strings.ToUpper(hex.EncodeToString(hash[:8]))
}

func frameworkLabel(fw catalog.Framework) string {
	switch fw {
	case catalog.FrameworkDORA:
		return "DORA"
	case catalog.FrameworkNIS2:
		return "NIS2"
	case catalog.FrameworkGDPR32:
		return "GDPR Article 32"
	case catalog.FrameworkISO27001:
		return "ISO/IEC 27001"
	default:
		return strings.ToUpper(string(fw))
	}
}

// GeneratePDF writes the assessment report to outputPath.
func GeneratePDF(res *assess.Result, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)

	id := reportID(res)
	timestamp := res.AssessedAt.Format("2006-01-02 15:04:05")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(0, 4, fmt.Sprintf("ResilScore | Report ID: %s | %s", id, timestamp), "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 7)
		pdf.CellFormat(0, 4, "Assessment output reflects supplied evidence only and is not legal advice", "", 0, "C", false, 0, "")
	})

	generateCoverPage(pdf, res)
	generateScopeNote(pdf, res)
	generatePillarBreakdown(pdf, res)
	generateGapRegister(pdf, res)

	return pdf.OutputFileAndClose(outputPath)
}

func generateCoverPage(pdf *gofpdf.Fpdf, res *assess.Result) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 32)
	pdf.SetTextColor(3, 102, 214)
	pdf.CellFormat(0, 20, "ResilScore", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 6, "Regulatory Maturity Assessment", "", 1, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 28)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 12, frameworkLabel(res.Framework)+" Compliance Report", "", "C", false)
	pdf.Ln(25)

	drawScoreCircle(pdf, res.OverallPercentage, res.OverallLevel.String())
	pdf.Ln(20)

	statsY := pdf.GetY()
	stat(pdf, 30, statsY, fmt.Sprintf("%d", len(res.Requirements)), "Requirements", 0, 0, 0)
	met := 0
	for _, p := range res.Pillars {
		met += p.RequirementsMet
	}
	stat(pdf, 85, statsY, fmt.Sprintf("%d", met), "Met", 40, 167, 69)
	stat(pdf, 140, statsY, fmt.Sprintf("%d", len(res.Gaps)), "Gaps", 220, 53, 69)

	pdf.SetY(250)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 5, fmt.Sprintf("Assessed: %s", res.AssessedAt.Format("January 2, 2006 at 3:04 PM")), "", 1, "C", false, 0, "")
	scope := fmt.Sprintf("Organization: %s", res.OrganizationID)
	if res.VendorID != "" {
		scope += fmt.Sprintf(" | Vendor: %s", res.VendorID)
	}
	pdf.CellFormat(0, 5, scope, "", 1, "C", false, 0, "")
}

func stat(pdf *gofpdf.Fpdf, x, y float64, value, label string, r, g, b int) {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(50, 10, value, "", 1, "C", false, 0, "")
	pdf.SetXY(x, pdf.GetY())
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(50, 6, label, "", 0, "C", false, 0, "")
}

func drawScoreCircle(pdf *gofpdf.Fpdf, score float64, level string) {
	centerX := 105.0
	centerY := pdf.GetY() + 25

	r, g, b := scoreColor(score)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(2.5)
	pdf.Circle(centerX, centerY, 22, "D")

	pdf.SetFont("Arial", "B", 26)
	pdf.SetTextColor(r, g, b)
	pdf.SetXY(centerX-25, centerY-9)
	pdf.CellFormat(50, 10, fmt.Sprintf("%.0f%%", score), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(centerX-25, centerY+2)
	pdf.CellFormat(50, 6, level, "", 0, "C", false, 0, "")

	pdf.SetY(centerY + 28)
}

func scoreColor(score float64) (int, int, int) {
	switch {
	case score >= 85:
		return 40, 167, 69
	case score >= 50:
		return 255, 193, 7
	default:
		return 220, 53, 69
	}
}

func generateScopeNote(pdf *gofpdf.Fpdf, res *assess.Result) {
	pdf.AddPage()

	pdf.SetFillColor(255, 243, 205)
	pdf.Rect(15, pdf.GetY(), 180, 42, "F")

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(133, 100, 4)
	pdf.SetY(pdf.GetY() + 8)
	pdf.CellFormat(0, 10, "SCOPE OF THIS ASSESSMENT", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(33, 37, 41)
	pdf.Ln(3)
	pdf.SetX(20)
	pdf.MultiCell(170, 5, fmt.Sprintf(
		"Scores are derived from %d structured evidence sources across %d requirements. "+
			"Requirements without mapped evidence are scored at the lowest maturity level "+
			"rather than excluded.", totalSources(res), len(res.Requirements)), "", "C", false)

	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Evidence Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	line := func(label string, n int) {
		pdf.SetX(20)
		pdf.CellFormat(90, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", n), "", 1, "R", false, 0, "")
	}
	line("Sufficient evidence", res.EvidenceSummary.Sufficient)
	line("Partial evidence", res.EvidenceSummary.Partial)
	line("Insufficient evidence", res.EvidenceSummary.Insufficient)

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Estimated Remediation", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetX(20)
	pdf.CellFormat(0, 7, res.EstimatedRemediation, "", 1, "L", false, 0, "")
}

func totalSources(res *assess.Result) int {
	n := 0
	for _, r := range res.Requirements {
		n += len(r.EvidenceSources)
	}
	return n
}

func generatePillarBreakdown(pdf *gofpdf.Fpdf, res *assess.Result) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Pillar Breakdown", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(233, 236, 239)
	pdf.CellFormat(70, 8, "Pillar", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Level", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Score", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Met", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range res.Pillars {
		r, g, b := statusColor(p.Status)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(70, 8, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("L%d", int(p.MaturityLevel)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.1f%%", p.PercentageScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d/%d", p.RequirementsMet, p.RequirementsTotal), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(25, 8, string(p.Status), "1", 1, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func statusColor(s scoring.Status) (int, int, int) {
	switch s {
	case scoring.StatusCompliant:
		return 40, 167, 69
	case scoring.StatusPartial:
		return 255, 193, 7
	default:
		return 220, 53, 69
	}
}

func generateGapRegister(pdf *gofpdf.Fpdf, res *assess.Result) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, fmt.Sprintf("Gap Register (%d)", len(res.Gaps)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(res.Gaps) == 0 {
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(40, 167, 69)
		pdf.CellFormat(0, 8, "No gaps identified against the compliance floor.", "", 1, "L", false, 0, "")
		return
	}

	for _, g := range res.Gaps {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		r, gr, b := priorityColor(g.Priority)
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(r, gr, b)
		pdf.CellFormat(0, 7, fmt.Sprintf("[%s] %s - %s", strings.ToUpper(string(g.Priority)), g.RequirementID, g.ArticleRef), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(33, 37, 41)
		pdf.SetX(20)
		pdf.MultiCell(170, 4.5, g.GapDescription, "", "L", false)
		pdf.SetX(20)
		pdf.MultiCell(170, 4.5, "Remediation: "+g.RemediationGuidance, "", "L", false)
		pdf.SetX(20)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(0, 4.5, "Estimated effort: "+g.EstimatedEffort, "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}
}

func priorityColor(p catalog.Priority) (int, int, int) {
	switch p {
	case catalog.PriorityCritical:
		return 220, 53, 69
	case catalog.PriorityHigh:
		return 253, 126, 20
	case catalog.PriorityMedium:
		return 255, 193, 7
	default:
		return 108, 117, 125
	}
}
