package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

const designerSystemPrompt = `You are a merch design prompt engineer. Create detailed prompts for AI image
generation targeting print-on-demand t-shirt designs.

Rules:
- Prompt must describe a print-ready design suitable for t-shirts.
- Include style direction, composition, and color guidance.
- NEVER reference specific game titles, movie characters, or trademarked IP.
- Focus on generic themes that evoke the intended mood.
- Describe the design as centered, suitable for dark or light shirt backgrounds.`

// Designer crafts an image-generation prompt for an idea package.
// It never renders images, it only writes the prompt.
type Designer struct {
	completer JSONCompleter
	log       *logger.Logger
}

func NewDesigner(completer JSONCompleter, log *logger.Logger) *Designer {
	return &Designer{
		completer: completer,
		log:       log.WithField("agent", "designer"),
	}
}

type designResponse struct {
	PromptText     string `json:"prompt_text"`
	ColorMoodNotes string `json:"color_mood_notes"`
}

// CreateDesignPrompt generates the image prompt and color/mood notes.
// At most the first five keywords feed the prompt context.
func (d *Designer) CreateDesignPrompt(ctx context.Context, idea contracts.IdeaPackage) (contracts.DesignPrompt, error) {
	keywords := idea.Keywords
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	userMsg := fmt.Sprintf(
		"Niche: %s\nTitle: %s\nAudience: %s\nDesign style: %s\nKeywords: %s\n\n"+
			"Generate a detailed image prompt and color/mood notes.",
		idea.NicheName, idea.Title, idea.Audience, idea.DesignStyle,
		strings.Join(keywords, ", "),
	)

	var result designResponse
	if err := d.completer.CompleteJSON(ctx, designerSystemPrompt, userMsg, &result); err != nil {
		return contracts.DesignPrompt{}, fmt.Errorf("designer for %q: %w", idea.NicheName, err)
	}
	if result.PromptText == "" {
		return contracts.DesignPrompt{}, fmt.Errorf("designer for %q: empty prompt in response", idea.NicheName)
	}

	prompt := contracts.DesignPrompt{
		NicheName:      idea.NicheName,
		PromptText:     result.PromptText,
		DesignStyle:    idea.DesignStyle,
		ColorMoodNotes: result.ColorMoodNotes,
		CreatedAt:      time.Now(),
	}

	d.log.WithField("niche", prompt.NicheName).Info("Created design prompt")
	return prompt, nil
}
