package trends

import (
	"context"
	"time"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

const (
	maxTrendingEntries = 10
	maxReportEntries   = 20
)

// TrendingProvider is the subset of Source the fallback scraper offers
type TrendingProvider interface {
	TrendingSearches(ctx context.Context, geo string) ([]string, error)
}

// Scout discovers trends and assembles the trend report. Discovery
// degrades through a fallback chain instead of failing: JSON API first,
// then the HTML trending page, then the static list.
type Scout struct {
	source   Source
	fallback TrendingProvider
	log      *logger.Logger
}

// NewScout creates a Scout. fallback may be nil to skip the page
// scraper in the chain.
func NewScout(source Source, fallback TrendingProvider, log *logger.Logger) *Scout {
	return &Scout{
		source:   source,
		fallback: fallback,
		log:      log.WithField("component", "scout"),
	}
}

// Discover collects up to 20 trend entries: the top trending searches
// plus related queries for each seed keyword, deduplicated by query and
// enriched with volume and growth data.
func (s *Scout) Discover(ctx context.Context, seedKeywords []string, geo, timeframe string) (contracts.TrendReport, error) {
	entries := make([]contracts.TrendEntry, 0, maxReportEntries)
	seen := make(map[string]struct{})

	trending, source := s.trendingWithFallback(ctx, geo)
	for _, query := range headN(trending, maxTrendingEntries) {
		if _, dup := seen[query]; dup {
			continue
		}
		seen[query] = struct{}{}
		entries = append(entries, contracts.TrendEntry{Query: query, Source: source})
	}

	for _, keyword := range seedKeywords {
		related, err := s.source.RelatedQueries(ctx, keyword, geo, timeframe)
		if err != nil {
			s.log.WithError(err).WithField("keyword", keyword).Warn("Related queries failed, skipping keyword")
			continue
		}
		for _, query := range related {
			if _, dup := seen[query]; dup {
				continue
			}
			seen[query] = struct{}{}
			entries = append(entries, contracts.TrendEntry{Query: query, Source: contracts.SourceTrendsAPI})
		}
	}

	entries = entries[:minInt(len(entries), maxReportEntries)]
	for i, entry := range entries {
		entries[i] = s.enrich(ctx, entry, geo, timeframe)
	}

	s.log.WithFields(map[string]interface{}{
		"count": len(entries),
		"geo":   geo,
	}).Info("Trend discovery complete")

	return contracts.TrendReport{
		Entries:   entries,
		Geo:       geo,
		Timeframe: timeframe,
		CreatedAt: time.Now(),
	}, nil
}

// trendingWithFallback walks the source chain and reports which source
// actually answered.
func (s *Scout) trendingWithFallback(ctx context.Context, geo string) ([]string, string) {
	trending, err := s.source.TrendingSearches(ctx, geo)
	if err == nil && len(trending) > 0 {
		return trending, contracts.SourceTrendsAPI
	}
	if err != nil {
		s.log.WithError(err).Warn("Primary trending source failed")
	}

	if s.fallback != nil {
		trending, err = s.fallback.TrendingSearches(ctx, geo)
		if err == nil && len(trending) > 0 {
			return trending, contracts.SourceTrendingPage
		}
		if err != nil {
			s.log.WithError(err).Warn("Trending page fallback failed")
		}
	}

	s.log.Warn("All trending sources failed, using static seed list")
	return staticTrending, contracts.SourceSeedList
}

// enrich adds volume and growth data to an entry. Missing data or a
// failed lookup returns the entry unchanged.
func (s *Scout) enrich(ctx context.Context, entry contracts.TrendEntry, geo, timeframe string) contracts.TrendEntry {
	volume, growth, err := s.source.InterestOverTime(ctx, entry.Query, geo, timeframe)
	if err != nil {
		s.log.WithError(err).WithField("query", entry.Query).Warn("Failed to enrich entry, returning as-is")
		return entry
	}
	if volume == 0 && growth == 0 {
		return entry
	}

	entry.Volume = volume
	entry.GrowthRate = growth
	return entry
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
