package store

import "time"

// IdeaRecord is a persisted listing idea with its compliance outcome.
// List fields are flattened to delimited strings at the storage boundary.
type IdeaRecord struct {
	ID               int64
	RunID            string
	RunDate          time.Time
	TrendName        string
	NicheName        string
	Audience         string
	OpportunityScore float64
	Title            string
	BulletPoints     string // newline-joined
	Description      string
	Keywords         string // comma-joined
	DesignPrompt     string
	DesignStyle      string
	ComplianceStatus string
	ComplianceNotes  string
	RiskTerms        string // comma-joined
	Status           string // workflow status, starts at "draft"
	CreatedAt        time.Time
}

// NicheRecord is a weekly niche tracking row
type NicheRecord struct {
	ID               int64
	NicheName        string
	WeekStart        time.Time
	WeeklyGrowthPct  float64
	RisingStatus     string
	OpportunityScore float64
	Notes            string
	CreatedAt        time.Time
}

// Rising status values for weekly niche rows
const (
	TrendRising    = "rising"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// deriveTrendStatus maps an opportunity score onto a rising status and
// an estimated weekly growth percentage.
func deriveTrendStatus(opportunity float64) (string, float64) {
	switch {
	case opportunity >= 7.0:
		return TrendRising, 25.0
	case opportunity >= 5.0:
		return TrendStable, 10.0
	}
	return TrendDeclining, -5.0
}
