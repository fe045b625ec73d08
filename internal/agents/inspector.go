package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Diaa1123/amz-qoder/internal/compliance"
	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

const inspectorSystemPrompt = `You are a print-on-demand compliance inspector. Review the listing content
and design prompt for policy violations.

Marketplace policies prohibit:
- Hate speech, violence, adult content
- Copyrighted / trademarked material (characters, logos, brand names)
- Personal information
- Misleading claims (FDA, official, licensed -- unless true)

Respond with JSON:
{
  "compliant": true/false,
  "issues": ["list of specific issues found"],
  "notes": "overall assessment"
}`

// Inspector validates a listing package and its design prompt.
// The rule-based scan is authoritative for rejection; the LLM review is
// advisory and degrades to a permissive default when unavailable.
type Inspector struct {
	completer JSONCompleter
	log       *logger.Logger
}

func NewInspector(completer JSONCompleter, log *logger.Logger) *Inspector {
	return &Inspector{
		completer: completer,
		log:       log.WithField("agent", "inspector"),
	}
}

// Inspect runs the compliance checks and returns a report. It never
// returns an error: an unreachable LLM falls back to the default verdict
// and the rule-based scan always runs.
func (i *Inspector) Inspect(ctx context.Context, idea contracts.IdeaPackage, prompt contracts.DesignPrompt) contracts.ComplianceReport {
	allText := strings.Join([]string{
		idea.Title,
		strings.Join(idea.BulletPoints, " "),
		idea.Description,
		strings.Join(idea.Keywords, " "),
		prompt.PromptText,
		prompt.ColorMoodNotes,
	}, " ")

	banned := compliance.ScanBanned(allText)
	risk := compliance.ScanRisk(allText)

	verdict := i.reviewerVerdict(ctx, idea, prompt)
	status := compliance.Decide(banned, risk, verdict)

	report := contracts.ComplianceReport{
		NicheName:         idea.NicheName,
		Status:            status,
		Notes:             compliance.BuildNotes(banned, risk, verdict),
		RiskTermsDetected: append(banned, risk...),
		CreatedAt:         time.Now(),
	}

	i.log.WithFields(map[string]interface{}{
		"niche":  idea.NicheName,
		"status": status,
	}).Info("Inspection complete")
	return report
}

// reviewerVerdict asks the LLM for a compliance review. Any failure is
// logged and replaced with the permissive default.
func (i *Inspector) reviewerVerdict(ctx context.Context, idea contracts.IdeaPackage, prompt contracts.DesignPrompt) contracts.ReviewerVerdict {
	if i.completer == nil {
		return contracts.DefaultVerdict()
	}

	colorMood := prompt.ColorMoodNotes
	if colorMood == "" {
		colorMood = "N/A"
	}

	userMsg := fmt.Sprintf(
		"Title: %s\nBullet Points: %s\nDescription: %s\nKeywords: %s\nDesign Prompt: %s\nColor/Mood: %s\n",
		idea.Title,
		strings.Join(idea.BulletPoints, "\n"),
		idea.Description,
		strings.Join(idea.Keywords, ", "),
		prompt.PromptText,
		colorMood,
	)

	var verdict contracts.ReviewerVerdict
	if err := i.completer.CompleteJSON(ctx, inspectorSystemPrompt, userMsg, &verdict); err != nil {
		i.log.WithError(err).WithField("niche", idea.NicheName).Warn("LLM compliance check failed, assuming compliant")
		return contracts.DefaultVerdict()
	}
	return verdict
}
