package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/config"
	"github.com/meridian-grc/resilscore/pkg/evidence"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/maturity"
	"github.com/meridian-grc/resilscore/pkg/report"
	"github.com/meridian-grc/resilscore/pkg/snapshot"
	"github.com/meridian-grc/resilscore/pkg/snapshot/postgres"
)

const CurrentVersion = "v0.3.0"

func main() {
	var (
		framework    = flag.String("framework", "dora", "Framework: dora, nis2, gdpr-art32, iso27001")
		org          = flag.String("org", "", "Organization identifier")
		vendor       = flag.String("vendor", "", "Vendor identifier (optional, scopes the assessment to one vendor)")
		evidenceFile = flag.String("evidence", "", "Path to a structured evidence bundle (JSON)")
		format       = flag.String("format", "text", "Output format (text, json, csv, pdf)")
		output       = flag.String("output", "", "Output file (default: stdout; required for pdf)")
		source       = flag.String("source", "", "Source framework for coverage transfer")
		target       = flag.String("target", "", "Target framework for coverage transfer")
		compliance   = flag.Float64("compliance", 0, "Source compliance percentage for coverage transfer")
		targetLevel  = flag.Int("target-level", 3, "Target maturity level for trend projection (0-4)")
		days         = flag.Int("days", 180, "Trend window in days")
		notes        = flag.String("notes", "", "Notes to attach to a snapshot")
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	flag.CommandLine.Parse(os.Args[2:])

	switch command {
	case "assess":
		runAssess(*framework, *org, *vendor, *evidenceFile, *format, *output)
	case "coverage":
		runCoverage(*source, *target, *compliance)
	case "snapshot":
		runSnapshot(*framework, *org, *vendor, *evidenceFile, *notes)
	case "trend":
		runTrend(*org, *vendor, *days, *targetLevel)
	case "report":
		runAssess(*framework, *org, *vendor, *evidenceFile, "pdf", *output)
	case "version":
		fmt.Printf("ResilScore %s - Regulatory maturity scoring (DORA, NIS2, GDPR Art. 32, ISO 27001)\n", CurrentVersion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ResilScore - Regulatory Scoring and Cross-Framework Mapping

Usage:
  resilscore assess [options]    Score an evidence bundle against a framework
  resilscore coverage [options]  Estimate cross-framework coverage transfer
  resilscore snapshot [options]  Assess and persist a dated snapshot
  resilscore trend [options]     Show maturity trend and target projection
  resilscore report [options]    Generate a PDF assessment report
  resilscore version             Show version

Options:
  -framework string   Framework: dora, nis2, gdpr-art32, iso27001 (default "dora")
  -org string         Organization identifier
  -vendor string      Vendor identifier (optional)
  -evidence string    Structured evidence bundle (JSON file)
  -format string      Output format (text, json, csv, pdf) (default "text")
  -output string      Output file (default: stdout; required for pdf)
  -source string      Source framework for coverage transfer
  -target string      Target framework for coverage transfer
  -compliance float   Source compliance percentage for coverage transfer
  -target-level int   Target maturity level for trend projection (default 3)
  -days int           Trend window in days (default 180)
  -notes string       Notes to attach to a snapshot

Examples:
  # Score a DORA evidence bundle
  resilscore assess -framework dora -org acme -evidence bundle.json

  # Gap register as CSV
  resilscore assess -framework nis2 -org acme -evidence bundle.json -format csv

  # How much ISO 27001 does 80% DORA compliance buy?
  resilscore coverage -source dora -target iso27001 -compliance 80

  # Persist today's snapshot (requires DATABASE_URL)
  resilscore snapshot -framework dora -org acme -evidence bundle.json

  # Projection toward L3 over the last year
  resilscore trend -org acme -days 365 -target-level 3`)
}

func newAssessor() *assess.Assessor {
	log, _ := zap.NewProduction()
	return assess.New(catalog.DefaultRegistry(), mappings.DefaultGraph(), log)
}

func loadBundle(path string) evidence.Bundle {
	if path == "" {
		fmt.Fprintf(os.Stderr, "Error: -evidence is required\n")
		os.Exit(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading evidence file: %v\n", err)
		os.Exit(1)
	}
	var b evidence.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing evidence file: %v\n", err)
		os.Exit(1)
	}
	return b
}

func runAssess(framework, org, vendor, evidenceFile, format, output string) {
	if org == "" {
		fmt.Fprintf(os.Stderr, "Error: -org is required\n")
		os.Exit(1)
	}
	bundle := loadBundle(evidenceFile)

	res, err := newAssessor().Assess(context.Background(), catalog.Framework(framework), assess.Input{
		OrganizationID: org,
		VendorID:       vendor,
		Bundle:         bundle,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assessment failed: %v\n", err)
		os.Exit(1)
	}

	switch strings.ToLower(format) {
	case "json":
		data, _ := json.MarshalIndent(res, "", "  ")
		writeOut(output, data)
	case "csv":
		writeGapCSV(res, output)
	case "pdf":
		if output == "" {
			output = fmt.Sprintf("resilscore-%s-%s.pdf", framework, time.Now().Format("2006-01-02"))
		}
		if err := report.GeneratePDF(res, output); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", output)
	case "text":
		printTextResult(res)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", format)
		os.Exit(1)
	}
}

func printTextResult(res *assess.Result) {
	fmt.Printf("\n%s assessment for %s\n", strings.ToUpper(string(res.Framework)), res.OrganizationID)
	if res.VendorID != "" {
		fmt.Printf("Vendor scope: %s\n", res.VendorID)
	}
	fmt.Printf("Overall: %s (%.0f%%, %s)\n\n", res.OverallLevel, res.OverallPercentage, res.OverallStatus)

	fmt.Println("Pillars:")
	for _, p := range res.Pillars {
		fmt.Printf("  %-35s L%d  %5.1f%%  %d/%d met  [%s]\n",
			p.Name, int(p.MaturityLevel), p.PercentageScore, p.RequirementsMet, p.RequirementsTotal, p.Status)
	}

	fmt.Printf("\nEvidence: %d sufficient, %d partial, %d insufficient\n",
		res.EvidenceSummary.Sufficient, res.EvidenceSummary.Partial, res.EvidenceSummary.Insufficient)

	if len(res.Gaps) > 0 {
		fmt.Printf("\nGaps (%d, estimated remediation %s):\n", len(res.Gaps), res.EstimatedRemediation)
		for _, g := range res.Gaps {
			fmt.Printf("  [%s] %s %s: %s (effort %s)\n",
				strings.ToUpper(string(g.Priority)), g.RequirementID, g.ArticleRef, g.GapDescription, g.EstimatedEffort)
		}
	} else {
		fmt.Println("\nNo gaps against the compliance floor.")
	}
}

func writeGapCSV(res *assess.Result, output string) {
	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	w := csv.NewWriter(out)
	defer w.Flush()
	w.Write([]string{"requirement_id", "article_ref", "gap_type", "priority", "estimated_effort", "description"})
	for _, g := range res.Gaps {
		w.Write([]string{g.RequirementID, g.ArticleRef, string(g.GapType), string(g.Priority), g.EstimatedEffort, g.GapDescription})
	}
}

func writeOut(output string, data []byte) {
	if output == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
}

func runCoverage(source, target string, compliance float64) {
	if source == "" || target == "" {
		fmt.Fprintf(os.Stderr, "Error: both -source and -target are required\n")
		os.Exit(1)
	}
	graph := mappings.DefaultGraph()
	src, dst := catalog.Framework(source), catalog.Framework(target)

	summary := graph.Overlap(src, dst)
	fmt.Printf("\nCoverage transfer %s -> %s at %.0f%% source compliance\n\n", source, target, compliance)
	fmt.Printf("Mappings: %d", summary.TotalMappings)
	if summary.TotalMappings > 0 {
		fmt.Printf(" (avg coverage %.0f%%, avg confidence %.2f)", summary.AverageCoverage, summary.AverageConfidence)
	}
	fmt.Println()
	for _, t := range []mappings.MappingType{mappings.TypeEquivalent, mappings.TypePartial, mappings.TypeSupports, mappings.TypeRelated} {
		if n := summary.CountsByType[t]; n > 0 {
			fmt.Printf("  %-12s %d\n", t, n)
		}
	}

	reg := catalog.DefaultRegistry()
	cat, ok := reg.Catalog(dst)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown target framework: %s\n", target)
		os.Exit(1)
	}
	fmt.Println("\nPer-requirement transfer:")
	for _, req := range cat.Requirements() {
		tr := graph.TransferredCoverage(src, dst, req.ID, compliance)
		if tr.MappingCount == 0 {
			continue
		}
		fmt.Printf("  %-14s %3.0f%%  (%d mapping(s))\n", req.ID, tr.TransferredPercent, tr.MappingCount)
	}
}

func openTracker(ctx context.Context) (*snapshot.Tracker, func()) {
	log, _ := zap.NewProduction()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: snapshots need a database: %v\n", err)
		os.Exit(1)
	}
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating database: %v\n", err)
		os.Exit(1)
	}
	return snapshot.NewTracker(db, log), db.Close
}

func runSnapshot(framework, org, vendor, evidenceFile, notes string) {
	if org == "" {
		fmt.Fprintf(os.Stderr, "Error: -org is required\n")
		os.Exit(1)
	}
	bundle := loadBundle(evidenceFile)
	ctx := context.Background()

	res, err := newAssessor().Assess(ctx, catalog.Framework(framework), assess.Input{
		OrganizationID: org,
		VendorID:       vendor,
		Bundle:         bundle,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assessment failed: %v\n", err)
		os.Exit(1)
	}

	tracker, closeDB := openTracker(ctx)
	defer closeDB()

	snap, err := tracker.Record(ctx, res, "resilscore-cli", notes)
	if errors.Is(err, snapshot.ErrSnapshotExists) {
		fmt.Fprintf(os.Stderr, "A snapshot already exists for today; re-run tomorrow or query the existing one\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Snapshot %s recorded for %s on %s: %s (%.0f%%)\n",
		snap.ID, org, snap.Date.Format("2006-01-02"), snap.OverallLevel, snap.OverallPercentage)
	if c := snap.ChangeFromPrevious; c != nil {
		fmt.Printf("Change since %s: %+d level(s), %+.1f%%, %d gap(s) closed, %d opened\n",
			c.PreviousDate.Format("2006-01-02"), c.LevelDelta, c.PercentageDelta, c.GapsClosed, c.GapsOpened)
	}
}

func runTrend(org, vendor string, days, targetLevel int) {
	if org == "" {
		fmt.Fprintf(os.Stderr, "Error: -org is required\n")
		os.Exit(1)
	}
	ctx := context.Background()
	tracker, closeDB := openTracker(ctx)
	defer closeDB()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	trend, err := tracker.Trend(ctx, org, vendor, from, to, maturity.Level(targetLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Trend failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTrend for %s over the last %d days (%d snapshot(s)): %s\n",
		org, days, trend.SnapshotCount, trend.Direction)
	if trend.SnapshotCount >= 2 {
		fmt.Printf("Change: %+d level(s), %+.1f%%\n", trend.LevelChange, trend.PctChange)
		for id, dir := range trend.PillarTrends {
			fmt.Printf("  %-25s %s\n", id, dir)
		}
	}
	if trend.ProjectedDate != nil {
		fmt.Printf("Projected to reach %s around %s\n", trend.TargetLevel, trend.ProjectedDate.Format("January 2, 2006"))
	} else if trend.Direction != snapshot.Improving {
		fmt.Println("No projection: trend is not improving")
	}
}
