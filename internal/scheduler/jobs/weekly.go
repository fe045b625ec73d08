package jobs

import (
	"context"
	"fmt"

	"github.com/Diaa1123/amz-qoder/internal/orchestrator"
	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// WeeklyGenerationJob runs the full weekly content generation pipeline
type WeeklyGenerationJob struct {
	orch     *orchestrator.Orchestrator
	schedule string
	logger   *logger.Logger
}

// NewWeeklyGenerationJob creates the weekly generation job
func NewWeeklyGenerationJob(orch *orchestrator.Orchestrator, cfg *config.Config, log *logger.Logger) *WeeklyGenerationJob {
	return &WeeklyGenerationJob{
		orch:     orch,
		schedule: cfg.Scheduler.WeeklySpec,
		logger:   log,
	}
}

// Name returns the job name
func (j *WeeklyGenerationJob) Name() string {
	return "weekly_generation"
}

// Schedule returns the cron schedule
func (j *WeeklyGenerationJob) Schedule() string {
	return j.schedule
}

// Run executes the weekly pipeline
func (j *WeeklyGenerationJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled weekly pipeline")

	result, err := j.orch.RunWeekly(ctx)
	if err != nil {
		return fmt.Errorf("weekly pipeline: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":   result.RunID,
		"concepts": len(result.Concepts),
		"saved":    result.Saved,
	}).Info("Scheduled weekly pipeline done")
	return nil
}
