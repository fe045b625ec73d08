package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Diaa1123/amz-qoder/internal/orchestrator"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

const helpText = `AMZ Qoder Bot Commands

/daily - Run daily trend discovery
/weekly - Run full weekly pipeline, end-to-end
/create <keyword> - Create a design package for a specific keyword
/help - Show this help message`

// PipelineRunner triggers pipeline runs on behalf of bot commands
type PipelineRunner interface {
	RunDaily(ctx context.Context) (*orchestrator.DailyResult, error)
	RunWeekly(ctx context.Context) (*orchestrator.WeeklyResult, error)
	RunCreate(ctx context.Context, keyword string) (*orchestrator.ConceptResult, error)
}

// Bot routes chat commands to the pipeline
type Bot struct {
	runner PipelineRunner
	logger *logger.Logger
}

// New creates a new command bot
func New(runner PipelineRunner, log *logger.Logger) *Bot {
	return &Bot{
		runner: runner,
		logger: log.WithField("component", "bot"),
	}
}

// HandleCommand dispatches one incoming message and returns the reply.
// Commands run synchronously; the webhook caller decides how to deliver
// the reply.
func (b *Bot) HandleCommand(ctx context.Context, message string) string {
	msg := strings.TrimSpace(message)

	switch {
	case msg == "/daily":
		return b.handleDaily(ctx)

	case msg == "/weekly":
		return b.handleWeekly(ctx)

	case strings.HasPrefix(msg, "/create"):
		keyword := strings.TrimSpace(strings.TrimPrefix(msg, "/create"))
		if keyword == "" {
			return "Usage: /create <keyword>"
		}
		return b.handleCreate(ctx, keyword)

	case msg == "/help":
		return helpText

	default:
		return "Unknown command. Type /help for available commands."
	}
}

func (b *Bot) handleDaily(ctx context.Context) string {
	result, err := b.runner.RunDaily(ctx)
	if err != nil {
		b.logger.WithError(err).Error("Daily pipeline failed")
		return fmt.Sprintf("Daily pipeline failed: %v", err)
	}
	return fmt.Sprintf("Daily pipeline complete.\nNiches found: %d", result.NichesPassed)
}

func (b *Bot) handleWeekly(ctx context.Context) string {
	result, err := b.runner.RunWeekly(ctx)
	if err != nil {
		b.logger.WithError(err).Error("Weekly pipeline failed")
		return fmt.Sprintf("Weekly pipeline failed: %v", err)
	}
	return fmt.Sprintf("Weekly pipeline complete.\nIdeas published: %d", result.Saved)
}

func (b *Bot) handleCreate(ctx context.Context, keyword string) string {
	result, err := b.runner.RunCreate(ctx, keyword)
	if err != nil {
		b.logger.WithError(err).Error("Create pipeline failed")
		return fmt.Sprintf("Create pipeline failed: %v", err)
	}
	if result.IdeaID > 0 {
		return fmt.Sprintf("Design package created. Record ID: %d", result.IdeaID)
	}
	return "Design package created but not approved for publishing."
}
