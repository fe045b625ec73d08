// Package trends discovers trending search queries. The primary source
// is a JSON trends API, with an HTML trending page as fallback and a
// static seed list as the last resort.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/httputil"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
	"github.com/Diaa1123/amz-qoder/pkg/redis"
)

// Source provides trend signals. APIClient is the production
// implementation; tests and the scout's fallback path use others.
type Source interface {
	TrendingSearches(ctx context.Context, geo string) ([]string, error)
	RelatedQueries(ctx context.Context, keyword, geo, timeframe string) ([]string, error)
	InterestOverTime(ctx context.Context, keyword, geo, timeframe string) (int64, float64, error)
}

// APIClient talks to the JSON trends API. Calls are rate limited
// locally and, when Redis is available, cached across processes.
type APIClient struct {
	http    *httputil.Client
	log     *logger.Logger
	baseURL string
	limiter *rate.Limiter
	cache   *redis.Cache
	ttl     time.Duration
}

// NewAPIClient creates a client for the primary trends API. cache may
// be a disabled cache; lookups then always miss.
func NewAPIClient(cfg *config.Config, log *logger.Logger, cache *redis.Cache) *APIClient {
	perMin := cfg.Trends.RatePerMin
	if perMin <= 0 {
		perMin = 30
	}

	return &APIClient{
		http:    httputil.New(log),
		log:     log.WithField("component", "trends"),
		baseURL: strings.TrimRight(cfg.Trends.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin),
		cache:   cache,
		ttl:     cfg.Trends.CacheTTL,
	}
}

type trendingResponse struct {
	Queries []string `json:"queries"`
}

// TrendingSearches returns the current top trending searches for a country
func (c *APIClient) TrendingSearches(ctx context.Context, geo string) ([]string, error) {
	cacheKey := "trending:" + geo
	var cached []string
	if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	var resp trendingResponse
	params := url.Values{"geo": {geo}}
	if err := c.getJSON(ctx, "/trending", params, &resp); err != nil {
		return nil, fmt.Errorf("trending searches for %s: %w", geo, err)
	}

	if err := c.cache.Set(ctx, cacheKey, resp.Queries, c.ttl); err != nil {
		c.log.WithError(err).Debug("Failed to cache trending searches")
	}
	return resp.Queries, nil
}

type relatedResponse struct {
	Top    []string `json:"top"`
	Rising []string `json:"rising"`
}

// RelatedQueries returns up to five top and five rising related queries
// for the keyword.
func (c *APIClient) RelatedQueries(ctx context.Context, keyword, geo, timeframe string) ([]string, error) {
	cacheKey := fmt.Sprintf("related:%s:%s:%s", geo, timeframe, keyword)
	var cached []string
	if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	var resp relatedResponse
	params := url.Values{
		"keyword":   {keyword},
		"geo":       {geo},
		"timeframe": {timeframe},
	}
	if err := c.getJSON(ctx, "/related", params, &resp); err != nil {
		return nil, fmt.Errorf("related queries for %q: %w", keyword, err)
	}

	queries := make([]string, 0, 10)
	queries = append(queries, headN(resp.Top, 5)...)
	queries = append(queries, headN(resp.Rising, 5)...)

	if err := c.cache.Set(ctx, cacheKey, queries, c.ttl); err != nil {
		c.log.WithError(err).Debug("Failed to cache related queries")
	}
	return queries, nil
}

type interestResponse struct {
	Points []float64 `json:"points"`
}

type interestMetrics struct {
	Volume int64   `json:"volume"`
	Growth float64 `json:"growth"`
}

// InterestOverTime returns (volume, growthRate) for the keyword.
// Volume is the series mean scaled by 1000; growth is the percent change
// between the first and second half of the window, rounded to one
// decimal. Missing data yields (0, 0) without an error.
func (c *APIClient) InterestOverTime(ctx context.Context, keyword, geo, timeframe string) (int64, float64, error) {
	cacheKey := fmt.Sprintf("interest:%s:%s:%s", geo, timeframe, keyword)
	var cached interestMetrics
	if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
		return cached.Volume, cached.Growth, nil
	}

	var resp interestResponse
	params := url.Values{
		"keyword":   {keyword},
		"geo":       {geo},
		"timeframe": {timeframe},
	}
	if err := c.getJSON(ctx, "/interest", params, &resp); err != nil {
		return 0, 0, fmt.Errorf("interest over time for %q: %w", keyword, err)
	}

	volume, growth := summarizeSeries(resp.Points)

	metrics := interestMetrics{Volume: volume, Growth: growth}
	if err := c.cache.Set(ctx, cacheKey, metrics, c.ttl); err != nil {
		c.log.WithError(err).Debug("Failed to cache interest series")
	}
	return volume, growth, nil
}

// summarizeSeries reduces an interest series to the pipeline's two
// signals. An empty series means no data, not an error.
func summarizeSeries(points []float64) (int64, float64) {
	if len(points) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, p := range points {
		sum += p
	}
	volume := int64(sum / float64(len(points)) * 1000)

	half := len(points) / 2
	if half == 0 {
		return volume, 0
	}

	firstSum, secondSum := 0.0, 0.0
	for _, p := range points[:half] {
		firstSum += p
	}
	for _, p := range points[half:] {
		secondSum += p
	}
	firstMean := firstSum / float64(half)
	secondMean := secondSum / float64(len(points)-half)

	if firstMean <= 0 {
		return volume, 0
	}
	growth := math.Round((secondMean-firstMean)/firstMean*100*10) / 10
	return volume, growth
}

func (c *APIClient) getJSON(ctx context.Context, path string, params url.Values, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.http.Get(ctx, c.baseURL+path+"?"+params.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trends API status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode trends response: %w", err)
	}
	return nil
}

func headN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
