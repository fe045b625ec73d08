package contracts

import "time"

// IdeaPackage is the complete listing content generated for a niche
type IdeaPackage struct {
	NicheName        string    `json:"niche_name"`
	Audience         string    `json:"audience"`
	OpportunityScore float64   `json:"opportunity_score"`
	Title            string    `json:"title"`
	BulletPoints     []string  `json:"bullet_points"`
	Description      string    `json:"description"`
	Keywords         []string  `json:"keywords"`
	DesignStyle      string    `json:"design_style"`
	CreatedAt        time.Time `json:"created_at"`
}

// DesignPrompt is the image-generation prompt crafted for an idea package.
// No image is ever rendered here; the prompt text is the deliverable.
type DesignPrompt struct {
	NicheName      string    `json:"niche_name"`
	PromptText     string    `json:"prompt_text"`
	DesignStyle    string    `json:"design_style"`
	ColorMoodNotes string    `json:"color_mood_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
