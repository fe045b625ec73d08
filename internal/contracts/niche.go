package contracts

import (
	"fmt"
	"math"
	"time"
)

// Opportunity score weights. They sum to 1.0; the three risk dimensions
// are inverted (11 - x) so that higher risk always lowers the aggregate.
const (
	weightCommercialIntent = 0.20
	weightDesignability    = 0.25
	weightAudienceSize     = 0.20
	weightCompetition      = 0.15
	weightSeasonality      = 0.10
	weightTrademark        = 0.10
)

// NicheScore holds the six sub-scores for a trend, each in [1,10].
// Values outside that range are a defect in the producing scorer,
// not a valid state.
type NicheScore struct {
	CommercialIntent int `json:"commercial_intent"`
	Designability    int `json:"designability"`
	AudienceSize     int `json:"audience_size"`
	CompetitionLevel int `json:"competition_level"`
	SeasonalityRisk  int `json:"seasonality_risk"`
	TrademarkRisk    int `json:"trademark_risk"`
}

// Opportunity computes the weighted opportunity score, rounded to
// 2 decimal places. Range is [1.0, 10.0] for valid sub-scores.
func (s NicheScore) Opportunity() float64 {
	raw := weightCommercialIntent*float64(s.CommercialIntent) +
		weightDesignability*float64(s.Designability) +
		weightAudienceSize*float64(s.AudienceSize) +
		weightCompetition*float64(11-s.CompetitionLevel) +
		weightSeasonality*float64(11-s.SeasonalityRisk) +
		weightTrademark*float64(11-s.TrademarkRisk)

	return math.Round(raw*100) / 100
}

// Validate checks the structural invariant that every sub-score is in [1,10]
func (s NicheScore) Validate() error {
	fields := map[string]int{
		"commercial_intent": s.CommercialIntent,
		"designability":     s.Designability,
		"audience_size":     s.AudienceSize,
		"competition_level": s.CompetitionLevel,
		"seasonality_risk":  s.SeasonalityRisk,
		"trademark_risk":    s.TrademarkRisk,
	}

	for name, v := range fields {
		if v < 1 || v > 10 {
			return fmt.Errorf("sub-score %s out of range [1,10]: %d", name, v)
		}
	}

	return nil
}

// NicheEntry is a trend that cleared the minimum opportunity threshold.
// Audience and AnalysisSummary are filled by the optional LLM enrichment
// and never influence the score.
type NicheEntry struct {
	NicheName       string     `json:"niche_name"`
	TrendingQuery   string     `json:"trending_query"`
	Score           NicheScore `json:"score"`
	Audience        string     `json:"audience"`
	AnalysisSummary string     `json:"analysis_summary"`
}

// NicheReport is the ranked output of the analyzer
type NicheReport struct {
	Entries   []NicheEntry `json:"entries"`
	CreatedAt time.Time    `json:"created_at"`
}
