// Package jobs defines the scheduled pipeline jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/Diaa1123/amz-qoder/internal/orchestrator"
	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// DailyTrendJob runs the daily discovery and scoring pipeline
type DailyTrendJob struct {
	orch     *orchestrator.Orchestrator
	schedule string
	logger   *logger.Logger
}

// NewDailyTrendJob creates the daily trend job
func NewDailyTrendJob(orch *orchestrator.Orchestrator, cfg *config.Config, log *logger.Logger) *DailyTrendJob {
	return &DailyTrendJob{
		orch:     orch,
		schedule: cfg.Scheduler.DailySpec,
		logger:   log,
	}
}

// Name returns the job name
func (j *DailyTrendJob) Name() string {
	return "daily_trends"
}

// Schedule returns the cron schedule
func (j *DailyTrendJob) Schedule() string {
	return j.schedule
}

// Run executes the daily pipeline
func (j *DailyTrendJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled daily pipeline")

	result, err := j.orch.RunDaily(ctx)
	if err != nil {
		return fmt.Errorf("daily pipeline: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id": result.RunID,
		"trends": result.TrendsFound,
		"niches": result.NichesPassed,
	}).Info("Scheduled daily pipeline done")
	return nil
}
