// Package orchestrator sequences the pipeline stages: discovery,
// analysis, content generation, compliance, and persistence. Stage
// failures for one niche are logged and skipped so a single bad concept
// never aborts a run.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// TrendScout discovers trend entries
type TrendScout interface {
	Discover(ctx context.Context, seedKeywords []string, geo, timeframe string) (contracts.TrendReport, error)
}

// NicheAnalyzer scores and filters a trend report
type NicheAnalyzer interface {
	Analyze(ctx context.Context, report contracts.TrendReport, minScore float64) (contracts.NicheReport, error)
}

// IdeaCreator generates listing content for a niche
type IdeaCreator interface {
	CreateIdeaPackage(ctx context.Context, niche contracts.NicheEntry) (contracts.IdeaPackage, error)
}

// PromptDesigner generates an image prompt for an idea
type PromptDesigner interface {
	CreateDesignPrompt(ctx context.Context, idea contracts.IdeaPackage) (contracts.DesignPrompt, error)
}

// ComplianceInspector runs the compliance gate
type ComplianceInspector interface {
	Inspect(ctx context.Context, idea contracts.IdeaPackage, prompt contracts.DesignPrompt) contracts.ComplianceReport
}

// PackageWriter persists local file artifacts
type PackageWriter interface {
	WriteDailyReport(runDate time.Time, trendReport contracts.TrendReport, nicheReport contracts.NicheReport) (string, error)
	WritePackage(trendName string, conceptIndex int, trendReport contracts.TrendReport, nicheReport contracts.NicheReport, idea contracts.IdeaPackage, prompt contracts.DesignPrompt, report contracts.ComplianceReport) (string, error)
}

// IdeaStore persists approved ideas
type IdeaStore interface {
	SaveIdea(ctx context.Context, runID string, runDate time.Time, trendName string, idea contracts.IdeaPackage, prompt contracts.DesignPrompt, report contracts.ComplianceReport) (int64, error)
}

// NicheStore persists weekly niche tracking rows
type NicheStore interface {
	SaveWeeklyNiche(ctx context.Context, entry contracts.NicheEntry, weekStart time.Time) (int64, error)
}

// Event is a progress notification emitted during a run
type Event struct {
	RunID     string    `json:"run_id"`
	Type      string    `json:"type"` // started, stage, concept, completed, failed
	Stage     string    `json:"stage,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier receives run events. The API's websocket hub implements it.
type Notifier interface {
	Publish(event Event)
}

// Orchestrator wires the pipeline stages together
type Orchestrator struct {
	cfg        *config.Config
	log        *logger.Logger
	scout      TrendScout
	analyzer   NicheAnalyzer
	strategist IdeaCreator
	designer   PromptDesigner
	inspector  ComplianceInspector
	writer     PackageWriter
	ideas      IdeaStore  // nil disables idea persistence
	niches     NicheStore // nil disables niche persistence
	notifier   Notifier   // nil disables events
}

// Deps bundles the orchestrator's collaborators
type Deps struct {
	Scout      TrendScout
	Analyzer   NicheAnalyzer
	Strategist IdeaCreator
	Designer   PromptDesigner
	Inspector  ComplianceInspector
	Writer     PackageWriter
	Ideas      IdeaStore
	Niches     NicheStore
	Notifier   Notifier
}

// New creates an Orchestrator
func New(cfg *config.Config, log *logger.Logger, deps Deps) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		log:        log.WithField("component", "orchestrator"),
		scout:      deps.Scout,
		analyzer:   deps.Analyzer,
		strategist: deps.Strategist,
		designer:   deps.Designer,
		inspector:  deps.Inspector,
		writer:     deps.Writer,
		ideas:      deps.Ideas,
		niches:     deps.Niches,
		notifier:   deps.Notifier,
	}
}

// DailyResult summarizes a daily run
type DailyResult struct {
	RunID        string                `json:"run_id"`
	NicheReport  contracts.NicheReport `json:"niche_report"`
	NichesSaved  int                   `json:"niches_saved"`
	ReportPath   string                `json:"report_path"`
	TrendsFound  int                   `json:"trends_found"`
	NichesPassed int                   `json:"niches_passed"`
}

// RunDaily discovers trends, scores them, writes the daily report, and
// records each passing niche in the weekly tracking table.
func (o *Orchestrator) RunDaily(ctx context.Context) (*DailyResult, error) {
	runID := uuid.NewString()
	runDate := time.Now()
	log := o.log.WithField("run_id", runID)
	log.Info("Starting daily pipeline")
	o.publish(runID, "started", "", "daily pipeline started")

	trendReport, nicheReport, err := o.discoverAndAnalyze(ctx, runID)
	if err != nil {
		o.publish(runID, "failed", "", err.Error())
		return nil, err
	}

	reportPath, err := o.writer.WriteDailyReport(runDate, trendReport, nicheReport)
	if err != nil {
		o.publish(runID, "failed", "output", err.Error())
		return nil, err
	}

	saved := 0
	if o.niches != nil {
		weekStart := weekStart(runDate)
		for _, entry := range nicheReport.Entries {
			if _, err := o.niches.SaveWeeklyNiche(ctx, entry, weekStart); err != nil {
				log.WithError(err).WithField("niche", entry.NicheName).Error("Failed to save weekly niche")
				continue
			}
			saved++
		}
	}

	log.WithFields(map[string]interface{}{
		"niches": len(nicheReport.Entries),
		"saved":  saved,
	}).Info("Daily pipeline done")
	o.publish(runID, "completed", "", "daily pipeline completed")

	return &DailyResult{
		RunID:        runID,
		NicheReport:  nicheReport,
		NichesSaved:  saved,
		ReportPath:   reportPath,
		TrendsFound:  len(trendReport.Entries),
		NichesPassed: len(nicheReport.Entries),
	}, nil
}

// ConceptResult summarizes one generated concept within a run
type ConceptResult struct {
	NicheName  string                     `json:"niche_name"`
	Status     contracts.ComplianceStatus `json:"status"`
	OutputDir  string                     `json:"output_dir"`
	IdeaID     int64                      `json:"idea_id,omitempty"`
	FailReason string                     `json:"fail_reason,omitempty"`
}

// WeeklyResult summarizes a weekly run
type WeeklyResult struct {
	RunID    string          `json:"run_id"`
	Concepts []ConceptResult `json:"concepts"`
	Saved    int             `json:"saved"`
}

// RunWeekly runs the full pipeline for the top scored niches. Local
// artifacts are written for every concept; only approved concepts are
// persisted to the database.
func (o *Orchestrator) RunWeekly(ctx context.Context) (*WeeklyResult, error) {
	runID := uuid.NewString()
	runDate := time.Now()
	log := o.log.WithField("run_id", runID)
	log.Info("Starting weekly pipeline")
	o.publish(runID, "started", "", "weekly pipeline started")

	trendReport, nicheReport, err := o.discoverAndAnalyze(ctx, runID)
	if err != nil {
		o.publish(runID, "failed", "", err.Error())
		return nil, err
	}

	topNiches := nicheReport.Entries
	if max := o.cfg.Pipeline.MaxDesignsPerRun; len(topNiches) > max {
		topNiches = topNiches[:max]
	}

	result := &WeeklyResult{RunID: runID}
	for idx, niche := range topNiches {
		concept := o.runConcept(ctx, runID, runDate, idx+1, niche, trendReport, nicheReport)
		if concept.IdeaID != 0 {
			result.Saved++
		}
		result.Concepts = append(result.Concepts, concept)
	}

	log.WithFields(map[string]interface{}{
		"concepts": len(result.Concepts),
		"saved":    result.Saved,
	}).Info("Weekly pipeline done")
	o.publish(runID, "completed", "", "weekly pipeline completed")
	return result, nil
}

// RunCreate runs the pipeline for a single operator-supplied keyword.
// The score threshold is waived; manual requests always produce a concept.
func (o *Orchestrator) RunCreate(ctx context.Context, keyword string) (*ConceptResult, error) {
	runID := uuid.NewString()
	runDate := time.Now()
	log := o.log.WithFields(map[string]interface{}{"run_id": runID, "keyword": keyword})
	log.Info("Starting create pipeline")
	o.publish(runID, "started", "", "create pipeline started for "+keyword)

	trendReport := contracts.TrendReport{
		Entries:   []contracts.TrendEntry{{Query: keyword, Source: contracts.SourceManual}},
		Geo:       o.cfg.Trends.Geo,
		Timeframe: o.cfg.Trends.Timeframe,
		CreatedAt: time.Now(),
	}

	nicheReport, err := o.analyzer.Analyze(ctx, trendReport, 0)
	if err != nil {
		o.publish(runID, "failed", "analyze", err.Error())
		return nil, err
	}
	if len(nicheReport.Entries) == 0 {
		log.Warn("No niches generated for keyword")
		o.publish(runID, "completed", "", "no niches generated")
		return &ConceptResult{FailReason: "no niches generated"}, nil
	}

	concept := o.runConcept(ctx, runID, runDate, 1, nicheReport.Entries[0], trendReport, nicheReport)
	log.WithField("status", concept.Status).Info("Create pipeline done")
	o.publish(runID, "completed", "", "create pipeline completed")
	return &concept, nil
}

// runConcept executes the generation half of the pipeline for one niche.
// Errors are captured in the result, never propagated.
func (o *Orchestrator) runConcept(
	ctx context.Context,
	runID string,
	runDate time.Time,
	index int,
	niche contracts.NicheEntry,
	trendReport contracts.TrendReport,
	nicheReport contracts.NicheReport,
) ConceptResult {
	log := o.log.WithFields(map[string]interface{}{"run_id": runID, "niche": niche.NicheName})
	result := ConceptResult{NicheName: niche.NicheName}

	idea, err := o.strategist.CreateIdeaPackage(ctx, niche)
	if err != nil {
		log.WithError(err).Error("Strategist failed")
		result.FailReason = err.Error()
		return result
	}

	prompt, err := o.designer.CreateDesignPrompt(ctx, idea)
	if err != nil {
		log.WithError(err).Error("Designer failed")
		result.FailReason = err.Error()
		return result
	}

	report := o.inspector.Inspect(ctx, idea, prompt)
	result.Status = report.Status
	o.publish(runID, "concept", "inspect", niche.NicheName+": "+string(report.Status))

	// Local artifacts are written for every concept, whatever the verdict
	outDir, err := o.writer.WritePackage(niche.TrendingQuery, index, trendReport, nicheReport, idea, prompt, report)
	if err != nil {
		log.WithError(err).Error("Output package failed")
		result.FailReason = err.Error()
		return result
	}
	result.OutputDir = outDir

	if report.Status != contracts.StatusApproved {
		log.WithField("status", report.Status).Info("Skipping persistence for unapproved concept")
		return result
	}
	if o.ideas == nil {
		return result
	}

	id, err := o.ideas.SaveIdea(ctx, runID, runDate, niche.TrendingQuery, idea, prompt, report)
	if err != nil {
		log.WithError(err).Error("Failed to save idea")
		result.FailReason = err.Error()
		return result
	}
	result.IdeaID = id
	return result
}

func (o *Orchestrator) discoverAndAnalyze(ctx context.Context, runID string) (contracts.TrendReport, contracts.NicheReport, error) {
	o.publish(runID, "stage", "discover", "discovering trends")
	trendReport, err := o.scout.Discover(ctx, o.cfg.Pipeline.SeedKeywords, o.cfg.Trends.Geo, o.cfg.Trends.Timeframe)
	if err != nil {
		return contracts.TrendReport{}, contracts.NicheReport{}, err
	}

	o.publish(runID, "stage", "analyze", "scoring trends")
	nicheReport, err := o.analyzer.Analyze(ctx, trendReport, o.cfg.Pipeline.MinNicheScore)
	if err != nil {
		return contracts.TrendReport{}, contracts.NicheReport{}, err
	}
	return trendReport, nicheReport, nil
}

func (o *Orchestrator) publish(runID, eventType, stage, message string) {
	if o.notifier == nil {
		return
	}
	o.notifier.Publish(Event{
		RunID:     runID,
		Type:      eventType,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// weekStart returns the Monday of t's week, truncated to midnight
func weekStart(t time.Time) time.Time {
	days := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -days)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}
