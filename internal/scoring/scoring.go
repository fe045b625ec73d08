// Package scoring maps a trend entry's signals to six sub-scores in [1,10].
//
// Every function here is pure and total: no I/O, no randomness, no shared
// state across calls. Missing optional fields (volume, growth rate,
// category) are treated as zero or absent, never as errors, so the same
// input always yields the same output regardless of call order or caller
// concurrency.
package scoring

import (
	"strings"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
)

// Score computes all six sub-scores for a trend entry
func Score(entry contracts.TrendEntry) contracts.NicheScore {
	return contracts.NicheScore{
		CommercialIntent: CommercialIntent(entry),
		Designability:    Designability(entry),
		AudienceSize:     AudienceSize(entry),
		CompetitionLevel: CompetitionLevel(entry),
		SeasonalityRisk:  SeasonalityRisk(entry),
		TrademarkRisk:    TrademarkRisk(entry),
	}
}

// CommercialIntent scores buyer-intent keywords in the query.
// More commercial keywords means a higher score; a shopping category is a
// weaker fallback signal.
func CommercialIntent(entry contracts.TrendEntry) int {
	hits := countWordHits(entry.Query, commercialKeywords)
	switch {
	case hits >= 3:
		return 10
	case hits == 2:
		return 9
	case hits == 1:
		return 7
	}

	if entry.Category != "" && strings.Contains(strings.ToLower(entry.Category), "shopping") {
		return 6
	}
	return 4
}

// Designability scores how easily the concept becomes a visual design.
// Concrete visual themes raise the score, abstract concepts lower it.
func Designability(entry contracts.TrendEntry) int {
	visualHits := countWordHits(entry.Query, visualKeywords)
	abstractHits := countWordHits(entry.Query, abstractKeywords)

	base := 5
	base += minInt(visualHits*2, 5)   // up to +5 for visual keywords
	base -= minInt(abstractHits*3, 4) // penalty for abstract terms
	return clamp(base)
}

// AudienceSize scores estimated search volume.
// Linear mapping: 0 -> 1, 100k+ -> 10.
func AudienceSize(entry contracts.TrendEntry) int {
	vol := entry.Volume
	if vol <= 0 {
		return 1
	}
	if vol >= 100_000 {
		return 10
	}
	return clamp(int(float64(vol)/100_000*9) + 1)
}

// CompetitionLevel scores estimated competition (lower is better for the
// niche). Higher growth rate means a newer trend, hence less competition.
func CompetitionLevel(entry contracts.TrendEntry) int {
	rate := entry.GrowthRate
	switch {
	case rate >= 50:
		return 3 // very new, low competition
	case rate >= 30:
		return 4
	case rate >= 15:
		return 5
	case rate >= 5:
		return 6
	}
	return 7 // stagnant, probably saturated
}

// SeasonalityRisk scores seasonal keyword presence (lower is better).
// Any holiday or seasonal keyword marks the niche as high risk.
func SeasonalityRisk(entry contracts.TrendEntry) int {
	lower := strings.ToLower(entry.Query)
	for _, pattern := range seasonalPatterns {
		if pattern.MatchString(lower) {
			return 8
		}
	}
	return 3 // no seasonal signal
}

// TrademarkRisk scores brand keyword presence (lower is better).
// Distinct brand hits are counted; even one known IP is a strong signal.
func TrademarkRisk(entry contracts.TrendEntry) int {
	lower := strings.ToLower(entry.Query)
	found := 0
	for _, pattern := range trademarkPatterns {
		if pattern.MatchString(lower) {
			found++
		}
	}
	switch {
	case found >= 2:
		return 10
	case found == 1:
		return 8
	}
	return 2 // no trademark signal
}

// countWordHits counts how many distinct query words appear in the set
func countWordHits(query string, set map[string]struct{}) int {
	hits := 0
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		if _, ok := set[word]; ok {
			hits++
		}
	}
	return hits
}

// clamp restricts a value to the 1-10 range
func clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
