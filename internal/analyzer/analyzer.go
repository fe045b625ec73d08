// Package analyzer scores trend reports and filters them into a ranked
// niche report. Scoring is deterministic; the LLM only adds informational
// summaries and never influences ranking.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/internal/llm"
	"github.com/Diaa1123/amz-qoder/internal/scoring"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

const summarySystemPrompt = "You are a niche analysis assistant."

// TextCompleter produces a free-form completion for a system/user prompt
// pair. Satisfied by llm.Client; tests substitute a fake.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Analyzer turns a trend report into a ranked niche report
type Analyzer struct {
	completer TextCompleter
	log       *logger.Logger
	titler    cases.Caser
}

// New creates an Analyzer. completer may be nil, in which case every
// entry gets the fallback audience and an empty summary.
func New(completer TextCompleter, log *logger.Logger) *Analyzer {
	return &Analyzer{
		completer: completer,
		log:       log.WithField("component", "analyzer"),
		titler:    cases.Title(language.English),
	}
}

type nicheSummary struct {
	Audience string `json:"audience"`
	Summary  string `json:"summary"`
}

// Analyze scores every entry in the report, keeps those at or above
// minScore, and returns them sorted by opportunity score descending.
// Equal scores keep their discovery order.
func (a *Analyzer) Analyze(ctx context.Context, report contracts.TrendReport, minScore float64) (contracts.NicheReport, error) {
	entries := make([]contracts.NicheEntry, 0, len(report.Entries))

	for _, trend := range report.Entries {
		score := scoring.Score(trend)
		opportunity := score.Opportunity()
		if opportunity < minScore {
			a.log.WithFields(map[string]interface{}{
				"query": trend.Query,
				"score": opportunity,
			}).Debug("Skipping trend below threshold")
			continue
		}

		niche := contracts.NicheEntry{
			NicheName:     a.titler.String(trend.Query),
			TrendingQuery: trend.Query,
			Score:         score,
		}

		summary := a.summarize(ctx, niche)
		niche.Audience = summary.Audience
		niche.AnalysisSummary = summary.Summary

		entries = append(entries, niche)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score.Opportunity() > entries[j].Score.Opportunity()
	})

	a.log.WithFields(map[string]interface{}{
		"passed":    len(entries),
		"total":     len(report.Entries),
		"min_score": minScore,
	}).Info("Trend analysis complete")

	return contracts.NicheReport{Entries: entries, CreatedAt: time.Now()}, nil
}

// summarize asks the LLM for an audience line and a short analysis.
// Failures fall back to a generic audience so the pipeline keeps moving.
func (a *Analyzer) summarize(ctx context.Context, niche contracts.NicheEntry) nicheSummary {
	fallback := nicheSummary{Audience: "General consumers"}
	if a.completer == nil {
		return fallback
	}

	prompt := fmt.Sprintf(
		"Niche: %s\nQuery: %s\nOpportunity Score: %.2f\n\n"+
			"Provide a 2-sentence analysis summary and a one-line target audience "+
			"description for this print-on-demand niche.\n"+
			`Respond as JSON: {"audience": "...", "summary": "..."}`,
		niche.NicheName, niche.TrendingQuery, niche.Score.Opportunity(),
	)

	raw, err := a.completer.Complete(ctx, summarySystemPrompt, prompt)
	if err != nil {
		a.log.WithError(err).WithField("niche", niche.NicheName).Warn("LLM summary failed, using fallback")
		return fallback
	}

	var summary nicheSummary
	if err := llm.DecodeJSON(raw, &summary); err != nil {
		a.log.WithError(err).WithField("niche", niche.NicheName).Warn("LLM summary unparseable, using fallback")
		return fallback
	}
	if summary.Audience == "" {
		summary.Audience = fallback.Audience
	}
	return summary
}
