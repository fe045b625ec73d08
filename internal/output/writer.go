// Package output writes pipeline artifacts as local file packages.
// Layout: <dir>/daily/<date>/ for daily reports and
// <dir>/<date>/<trend-slug>/concept_NN/ for per-concept packages.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Writer persists reports and concept packages under a base directory
type Writer struct {
	baseDir string
	log     *logger.Logger
}

// New creates a Writer rooted at baseDir
func New(baseDir string, log *logger.Logger) *Writer {
	return &Writer{
		baseDir: baseDir,
		log:     log.WithField("component", "output"),
	}
}

// WriteDailyReport writes the trend and niche reports plus a text
// summary for a daily run. Returns the report directory.
func (w *Writer) WriteDailyReport(runDate time.Time, trendReport contracts.TrendReport, nicheReport contracts.NicheReport) (string, error) {
	dir := filepath.Join(w.baseDir, "daily", runDate.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create daily report dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "trend_report.json"), trendReport); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "niche_report.json"), nicheReport); err != nil {
		return "", err
	}
	if err := w.writeDailySummary(dir, runDate, trendReport, nicheReport); err != nil {
		return "", err
	}

	w.log.WithFields(map[string]interface{}{
		"path":   dir,
		"trends": len(trendReport.Entries),
		"niches": len(nicheReport.Entries),
	}).Info("Daily report written")
	return dir, nil
}

func (w *Writer) writeDailySummary(dir string, runDate time.Time, trendReport contracts.TrendReport, nicheReport contracts.NicheReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "DAILY TREND REPORT - %s\n\n", runDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Geo: %s\n", trendReport.Geo)
	fmt.Fprintf(&b, "Timeframe: %s\n", trendReport.Timeframe)
	fmt.Fprintf(&b, "Trends Discovered: %d\n", len(trendReport.Entries))
	fmt.Fprintf(&b, "Niches Analyzed: %d\n\n", len(nicheReport.Entries))

	b.WriteString("=== TREND ENTRIES ===\n")
	for _, entry := range trendReport.Entries {
		if entry.Source != "" {
			fmt.Fprintf(&b, "  - %s [%s]\n", entry.Query, entry.Source)
		} else {
			fmt.Fprintf(&b, "  - %s\n", entry.Query)
		}
	}

	b.WriteString("\n=== NICHE ENTRIES ===\n")
	for _, entry := range nicheReport.Entries {
		fmt.Fprintf(&b, "  - %s (score: %.2f)\n", entry.NicheName, entry.Score.Opportunity())
	}

	return writeText(filepath.Join(dir, "summary.txt"), b.String())
}

// WritePackage writes every artifact for one generated concept.
// Returns the concept directory.
func (w *Writer) WritePackage(
	trendName string,
	conceptIndex int,
	trendReport contracts.TrendReport,
	nicheReport contracts.NicheReport,
	idea contracts.IdeaPackage,
	prompt contracts.DesignPrompt,
	report contracts.ComplianceReport,
) (string, error) {
	dir := filepath.Join(
		w.baseDir,
		time.Now().Format("2006-01-02"),
		Slugify(trendName),
		fmt.Sprintf("concept_%02d", conceptIndex),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create concept dir: %w", err)
	}

	artifacts := map[string]interface{}{
		"trend_report.json":      trendReport,
		"niche_report.json":      nicheReport,
		"idea_package.json":      idea,
		"design_prompt.json":     prompt,
		"compliance_report.json": report,
	}
	for name, artifact := range artifacts {
		if err := writeJSON(filepath.Join(dir, name), artifact); err != nil {
			return "", err
		}
	}

	if err := writeText(filepath.Join(dir, "listing.txt"), listingText(idea)); err != nil {
		return "", err
	}
	if err := writeText(filepath.Join(dir, "keywords.txt"), strings.Join(idea.Keywords, "\n")); err != nil {
		return "", err
	}
	if err := writeText(filepath.Join(dir, "final_summary.txt"), finalSummaryText(idea, report)); err != nil {
		return "", err
	}

	w.log.WithField("path", dir).Info("Output package written")
	return dir, nil
}

// Slugify turns a trend name into a filesystem-safe directory name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func listingText(idea contracts.IdeaPackage) string {
	var b strings.Builder
	b.WriteString(idea.Title)
	b.WriteString("\n\nBULLET POINTS:\n")
	for _, bp := range idea.BulletPoints {
		fmt.Fprintf(&b, "  - %s\n", bp)
	}
	b.WriteString("\nDESCRIPTION:\n")
	b.WriteString(idea.Description)
	return b.String()
}

func finalSummaryText(idea contracts.IdeaPackage, report contracts.ComplianceReport) string {
	status := strings.ToUpper(string(report.Status))

	var b strings.Builder
	fmt.Fprintf(&b, "PIPELINE SUMMARY - %s\n", idea.NicheName)
	fmt.Fprintf(&b, "Status: %s\n\n", status)
	fmt.Fprintf(&b, "Title: %s\n", idea.Title)
	fmt.Fprintf(&b, "Audience: %s\n", idea.Audience)
	fmt.Fprintf(&b, "Opportunity Score: %g\n", idea.OpportunityScore)
	fmt.Fprintf(&b, "Design Style: %s\n\n", idea.DesignStyle)
	fmt.Fprintf(&b, "Compliance: %s\n", status)
	fmt.Fprintf(&b, "Notes: %s", report.Notes)
	if len(report.RiskTermsDetected) > 0 {
		fmt.Fprintf(&b, "\nRisk Terms: %s", strings.Join(report.RiskTermsDetected, ", "))
	}
	return b.String()
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
