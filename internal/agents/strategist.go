// Package agents holds the LLM-backed pipeline stages: the strategist
// writes listing content, the designer writes image prompts, and the
// inspector runs the compliance gate.
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// JSONCompleter asks the model for a structured answer and decodes it.
// Satisfied by llm.Client; tests substitute a fake.
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userMessage string, v interface{}) error
}

const strategistSystemPrompt = `You are a print-on-demand listing strategist. Your job is to create
compelling, policy-compliant listing content for t-shirt designs.

Rules:
- Title: max 60 characters, include primary keyword.
- Bullet points: exactly 5 items, each highlighting a unique selling point.
- Description: 150-350 characters, persuasive and keyword-rich.
- Keywords/tags: 10-15 relevant SEO terms.
- Design style: a short phrase describing the visual direction.
- NEVER reference trademarked brands, characters, or copyrighted material.`

// Strategist turns a scored niche into a complete listing package
type Strategist struct {
	completer JSONCompleter
	log       *logger.Logger
}

func NewStrategist(completer JSONCompleter, log *logger.Logger) *Strategist {
	return &Strategist{
		completer: completer,
		log:       log.WithField("agent", "strategist"),
	}
}

type strategyResponse struct {
	Title        string   `json:"title"`
	BulletPoints []string `json:"bullet_points"`
	Description  string   `json:"description"`
	Keywords     []string `json:"keywords"`
	DesignStyle  string   `json:"design_style"`
}

// CreateIdeaPackage generates listing content for the niche. Unlike the
// informational LLM calls elsewhere, a failure here is an error: there is
// no useful listing without the generated content.
func (s *Strategist) CreateIdeaPackage(ctx context.Context, niche contracts.NicheEntry) (contracts.IdeaPackage, error) {
	userMsg := fmt.Sprintf(
		"Niche: %s\nTrending query: %s\nTarget audience: %s\nOpportunity score: %.2f\nAnalysis: %s\n\n"+
			"Generate a complete merch listing package.",
		niche.NicheName, niche.TrendingQuery, niche.Audience,
		niche.Score.Opportunity(), niche.AnalysisSummary,
	)

	var result strategyResponse
	if err := s.completer.CompleteJSON(ctx, strategistSystemPrompt, userMsg, &result); err != nil {
		return contracts.IdeaPackage{}, fmt.Errorf("strategist for %q: %w", niche.NicheName, err)
	}
	if result.Title == "" {
		return contracts.IdeaPackage{}, fmt.Errorf("strategist for %q: empty title in response", niche.NicheName)
	}

	idea := contracts.IdeaPackage{
		NicheName:        niche.NicheName,
		Audience:         niche.Audience,
		OpportunityScore: niche.Score.Opportunity(),
		Title:            result.Title,
		BulletPoints:     result.BulletPoints,
		Description:      result.Description,
		Keywords:         result.Keywords,
		DesignStyle:      result.DesignStyle,
		CreatedAt:        time.Now(),
	}

	s.log.WithField("niche", idea.NicheName).Info("Created idea package")
	return idea, nil
}
