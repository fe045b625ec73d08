package contracts

import "time"

// Trend source provenance tags
const (
	SourceTrendsAPI    = "trends_api"    // primary API
	SourceTrendingPage = "trending_page" // secondary HTML page
	SourceSeedList     = "seed_list"     // static fallback (degraded mode)
	SourceManual       = "manual"        // operator-supplied keyword
)

// TrendEntry represents a candidate search query with optional enrichment.
// Volume and GrowthRate are zero when the source provided no data; scoring
// treats zero as absent. Entries are immutable once scored.
type TrendEntry struct {
	Query      string  `json:"query"`
	Volume     int64   `json:"volume,omitempty"`
	GrowthRate float64 `json:"growth_rate,omitempty"`
	Category   string  `json:"category,omitempty"`
	Source     string  `json:"source"`
}

// TrendReport is the output of trend discovery, passed to the analyzer
type TrendReport struct {
	Entries   []TrendEntry `json:"entries"`
	Geo       string       `json:"geo"`
	Timeframe string       `json:"timeframe"`
	CreatedAt time.Time    `json:"created_at"`
}
