package trends

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/httputil"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// Candidate selectors for the trending page markup, tried in order.
// The page layout changes occasionally; the first selector that yields
// results wins.
var trendingSelectors = []string{
	"div.feed-item div.title a",
	"td.title a",
	"ol.trends li",
}

// PageScraper extracts trending queries from the HTML trending page.
// It is the fallback when the JSON API is unreachable and only supports
// trending searches; related queries and interest data are API-only.
type PageScraper struct {
	http    *httputil.Client
	log     *logger.Logger
	baseURL string
}

func NewPageScraper(cfg *config.Config, log *logger.Logger) *PageScraper {
	return &PageScraper{
		http:    httputil.New(log),
		log:     log.WithField("component", "trends_scraper"),
		baseURL: strings.TrimRight(cfg.Trends.FallbackURL, "/"),
	}
}

// TrendingSearches scrapes the trending page for the given country
func (s *PageScraper) TrendingSearches(ctx context.Context, geo string) ([]string, error) {
	resp, err := s.http.Get(ctx, fmt.Sprintf("%s?geo=%s", s.baseURL, geo))
	if err != nil {
		return nil, fmt.Errorf("fetch trending page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trending page status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trending page: %w", err)
	}

	queries := extractQueries(doc)
	if len(queries) == 0 {
		return nil, fmt.Errorf("trending page for %s: no queries found", geo)
	}

	s.log.WithFields(map[string]interface{}{
		"geo":   geo,
		"count": len(queries),
	}).Debug("Scraped trending page")
	return queries, nil
}

func extractQueries(doc *goquery.Document) []string {
	var queries []string
	seen := make(map[string]struct{})

	for _, selector := range trendingSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			lower := strings.ToLower(text)
			if _, dup := seen[lower]; dup {
				return
			}
			seen[lower] = struct{}{}
			queries = append(queries, text)
		})
		if len(queries) > 0 {
			break
		}
	}
	return queries
}
