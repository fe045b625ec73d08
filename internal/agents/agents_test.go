package agents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// fakeJSONCompleter unmarshals a canned JSON payload into the target,
// recording the last user message it saw.
type fakeJSONCompleter struct {
	payload string
	err     error
	lastMsg string
}

func (f *fakeJSONCompleter) CompleteJSON(_ context.Context, _, userMessage string, v interface{}) error {
	f.lastMsg = userMessage
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.payload), v)
}

func sampleNiche() contracts.NicheEntry {
	return contracts.NicheEntry{
		NicheName:       "Retro Gaming Shirt",
		TrendingQuery:   "retro gaming shirt",
		Audience:        "Millennial gamers",
		AnalysisSummary: "Strong nostalgia niche.",
		Score: contracts.NicheScore{
			CommercialIntent: 7, Designability: 7, AudienceSize: 8,
			CompetitionLevel: 4, SeasonalityRisk: 3, TrademarkRisk: 2,
		},
	}
}

func sampleIdea() contracts.IdeaPackage {
	return contracts.IdeaPackage{
		NicheName:    "Retro Gaming Shirt",
		Audience:     "Millennial gamers",
		Title:        "Retro Pixel Controller Tee",
		BulletPoints: []string{"Soft cotton", "Vintage print", "Great gift", "Unisex fit", "Durable colors"},
		Description:  "A nostalgic pixel-art controller design for gamers who grew up in the arcade era.",
		Keywords:     []string{"retro", "gaming", "pixel", "arcade", "nostalgia", "controller"},
		DesignStyle:  "8-bit pixel art",
	}
}

func samplePrompt() contracts.DesignPrompt {
	return contracts.DesignPrompt{
		NicheName:      "Retro Gaming Shirt",
		PromptText:     "Centered pixel-art game controller with glowing scanlines.",
		DesignStyle:    "8-bit pixel art",
		ColorMoodNotes: "Neon purple and teal on dark background.",
	}
}

func TestStrategist_CreateIdeaPackage(t *testing.T) {
	completer := &fakeJSONCompleter{payload: `{
		"title": "Retro Pixel Controller Tee",
		"bullet_points": ["a", "b", "c", "d", "e"],
		"description": "desc",
		"keywords": ["retro", "gaming"],
		"design_style": "8-bit pixel art"
	}`}

	s := NewStrategist(completer, logger.NewNop())
	idea, err := s.CreateIdeaPackage(context.Background(), sampleNiche())
	require.NoError(t, err)

	assert.Equal(t, "Retro Gaming Shirt", idea.NicheName)
	assert.Equal(t, "Millennial gamers", idea.Audience)
	assert.InDelta(t, 7.50, idea.OpportunityScore, 1e-9)
	assert.Equal(t, "Retro Pixel Controller Tee", idea.Title)
	assert.Len(t, idea.BulletPoints, 5)
	assert.Equal(t, "8-bit pixel art", idea.DesignStyle)
	assert.False(t, idea.CreatedAt.IsZero())
	assert.Contains(t, completer.lastMsg, "retro gaming shirt")
}

func TestStrategist_ErrorPropagates(t *testing.T) {
	s := NewStrategist(&fakeJSONCompleter{err: errors.New("model down")}, logger.NewNop())
	_, err := s.CreateIdeaPackage(context.Background(), sampleNiche())
	assert.Error(t, err)
}

func TestStrategist_EmptyTitleRejected(t *testing.T) {
	s := NewStrategist(&fakeJSONCompleter{payload: `{"title": ""}`}, logger.NewNop())
	_, err := s.CreateIdeaPackage(context.Background(), sampleNiche())
	assert.Error(t, err)
}

func TestDesigner_CreateDesignPrompt(t *testing.T) {
	completer := &fakeJSONCompleter{payload: `{
		"prompt_text": "Centered pixel-art game controller.",
		"color_mood_notes": "Neon on dark."
	}`}

	d := NewDesigner(completer, logger.NewNop())
	prompt, err := d.CreateDesignPrompt(context.Background(), sampleIdea())
	require.NoError(t, err)

	assert.Equal(t, "Retro Gaming Shirt", prompt.NicheName)
	assert.Equal(t, "Centered pixel-art game controller.", prompt.PromptText)
	assert.Equal(t, "8-bit pixel art", prompt.DesignStyle)
	assert.Equal(t, "Neon on dark.", prompt.ColorMoodNotes)

	// only the first five keywords reach the prompt
	assert.Contains(t, completer.lastMsg, "retro, gaming, pixel, arcade, nostalgia")
	assert.NotContains(t, completer.lastMsg, "controller")
}

func TestDesigner_ErrorPropagates(t *testing.T) {
	d := NewDesigner(&fakeJSONCompleter{err: errors.New("model down")}, logger.NewNop())
	_, err := d.CreateDesignPrompt(context.Background(), sampleIdea())
	assert.Error(t, err)
}

func TestInspector_CleanListingApproved(t *testing.T) {
	completer := &fakeJSONCompleter{payload: `{"compliant": true, "issues": [], "notes": ""}`}
	ins := NewInspector(completer, logger.NewNop())

	report := ins.Inspect(context.Background(), sampleIdea(), samplePrompt())

	assert.Equal(t, contracts.StatusApproved, report.Status)
	assert.Equal(t, "All checks passed. No issues detected.", report.Notes)
	assert.Empty(t, report.RiskTermsDetected)
	assert.False(t, report.CreatedAt.IsZero())
}

func TestInspector_BannedTermRejects(t *testing.T) {
	idea := sampleIdea()
	idea.Description = "This shirt will kill the competition."

	ins := NewInspector(&fakeJSONCompleter{payload: `{"compliant": true}`}, logger.NewNop())
	report := ins.Inspect(context.Background(), idea, samplePrompt())

	assert.Equal(t, contracts.StatusRejected, report.Status)
	assert.Contains(t, report.Notes, "BANNED terms found: kill")
	assert.Equal(t, []string{"kill"}, report.RiskTermsDetected)
}

func TestInspector_RiskTermNeedsReview(t *testing.T) {
	prompt := samplePrompt()
	prompt.PromptText = "A swoosh reminiscent of nike branding."

	ins := NewInspector(&fakeJSONCompleter{payload: `{"compliant": true}`}, logger.NewNop())
	report := ins.Inspect(context.Background(), sampleIdea(), prompt)

	assert.Equal(t, contracts.StatusNeedsReview, report.Status)
	assert.Contains(t, report.Notes, "Risk terms found: nike")
	assert.Equal(t, []string{"nike"}, report.RiskTermsDetected)
}

func TestInspector_LLMRejection(t *testing.T) {
	completer := &fakeJSONCompleter{payload: `{
		"compliant": false,
		"issues": ["references a console logo", "implied brand endorsement"],
		"notes": "trademark concerns"
	}`}

	ins := NewInspector(completer, logger.NewNop())
	report := ins.Inspect(context.Background(), sampleIdea(), samplePrompt())

	assert.Equal(t, contracts.StatusRejected, report.Status)
	assert.Equal(t,
		"LLM: trademark concerns | LLM issues: references a console logo; implied brand endorsement",
		report.Notes)
}

func TestInspector_LLMFailureFallsBack(t *testing.T) {
	ins := NewInspector(&fakeJSONCompleter{err: errors.New("timeout")}, logger.NewNop())
	report := ins.Inspect(context.Background(), sampleIdea(), samplePrompt())

	assert.Equal(t, contracts.StatusApproved, report.Status)
	assert.Equal(t, "LLM: LLM check unavailable", report.Notes)
}

func TestInspector_NilCompleterFallsBack(t *testing.T) {
	ins := NewInspector(nil, logger.NewNop())
	report := ins.Inspect(context.Background(), sampleIdea(), samplePrompt())

	assert.Equal(t, contracts.StatusApproved, report.Status)
	assert.Equal(t, "LLM: LLM check unavailable", report.Notes)
}
