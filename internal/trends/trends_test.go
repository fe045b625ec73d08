package trends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/config"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
	"github.com/Diaa1123/amz-qoder/pkg/redis"
)

type fakeSource struct {
	trending    []string
	trendingErr error
	related     map[string][]string
	relatedErr  error
	volume      int64
	growth      float64
	interestErr error
}

func (f *fakeSource) TrendingSearches(_ context.Context, _ string) ([]string, error) {
	return f.trending, f.trendingErr
}

func (f *fakeSource) RelatedQueries(_ context.Context, keyword, _, _ string) ([]string, error) {
	if f.relatedErr != nil {
		return nil, f.relatedErr
	}
	return f.related[keyword], nil
}

func (f *fakeSource) InterestOverTime(_ context.Context, _, _, _ string) (int64, float64, error) {
	return f.volume, f.growth, f.interestErr
}

type fakeFallback struct {
	trending []string
	err      error
	calls    int
}

func (f *fakeFallback) TrendingSearches(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.trending, f.err
}

func disabledCache(t *testing.T) *redis.Cache {
	t.Helper()
	client, err := redis.New(&config.Config{})
	require.NoError(t, err)
	return redis.NewCache(client, "test")
}

func TestSummarizeSeries(t *testing.T) {
	tests := []struct {
		name       string
		points     []float64
		wantVolume int64
		wantGrowth float64
	}{
		{"empty series", nil, 0, 0},
		{"single point", []float64{80}, 80_000, 0},
		{"flat series", []float64{50, 50, 50, 50}, 50_000, 0},
		{"doubling interest", []float64{50, 50, 100, 100}, 75_000, 100},
		{"declining interest", []float64{100, 100, 50, 50}, 75_000, -50},
		{"odd length splits low", []float64{10, 20, 30}, 20_000, 150},
		{"zero first half", []float64{0, 0, 40, 40}, 20_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			volume, growth := summarizeSeries(tt.points)
			assert.Equal(t, tt.wantVolume, volume)
			assert.InDelta(t, tt.wantGrowth, growth, 1e-9)
		})
	}
}

func apiConfig(baseURL string) *config.Config {
	return &config.Config{
		Trends: config.TrendsConfig{
			BaseURL:    baseURL,
			Geo:        "US",
			Timeframe:  "today 1-m",
			RatePerMin: 600,
			CacheTTL:   time.Minute,
		},
	}
}

func TestAPIClient_TrendingSearches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending", r.URL.Path)
		assert.Equal(t, "US", r.URL.Query().Get("geo"))
		json.NewEncoder(w).Encode(map[string][]string{
			"queries": {"retro gaming shirt", "plant mom gift"},
		})
	}))
	defer server.Close()

	client := NewAPIClient(apiConfig(server.URL), logger.NewNop(), disabledCache(t))

	queries, err := client.TrendingSearches(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, []string{"retro gaming shirt", "plant mom gift"}, queries)
}

func TestAPIClient_RelatedQueriesCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/related", r.URL.Path)
		top := make([]string, 8)
		rising := make([]string, 8)
		for i := range top {
			top[i] = fmt.Sprintf("top-%d", i)
			rising[i] = fmt.Sprintf("rising-%d", i)
		}
		json.NewEncoder(w).Encode(map[string][]string{"top": top, "rising": rising})
	}))
	defer server.Close()

	client := NewAPIClient(apiConfig(server.URL), logger.NewNop(), disabledCache(t))

	queries, err := client.RelatedQueries(context.Background(), "funny shirt", "US", "today 1-m")
	require.NoError(t, err)
	require.Len(t, queries, 10, "five top plus five rising")
	assert.Equal(t, "top-0", queries[0])
	assert.Equal(t, "rising-0", queries[5])
}

func TestAPIClient_InterestOverTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]float64{
			"points": {50, 50, 100, 100},
		})
	}))
	defer server.Close()

	client := NewAPIClient(apiConfig(server.URL), logger.NewNop(), disabledCache(t))

	volume, growth, err := client.InterestOverTime(context.Background(), "funny shirt", "US", "today 1-m")
	require.NoError(t, err)
	assert.Equal(t, int64(75_000), volume)
	assert.InDelta(t, 100.0, growth, 1e-9)
}

func TestAPIClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAPIClient(apiConfig(server.URL), logger.NewNop(), disabledCache(t))

	_, err := client.TrendingSearches(context.Background(), "US")
	assert.Error(t, err)
}

func TestPageScraper_TrendingSearches(t *testing.T) {
	const page = `<html><body>
		<div class="feed-item"><div class="title"><a>retro gaming shirt</a></div></div>
		<div class="feed-item"><div class="title"><a>plant mom gift</a></div></div>
		<div class="feed-item"><div class="title"><a>Retro Gaming Shirt</a></div></div>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	cfg := &config.Config{Trends: config.TrendsConfig{FallbackURL: server.URL}}
	scraper := NewPageScraper(cfg, logger.NewNop())

	queries, err := scraper.TrendingSearches(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, []string{"retro gaming shirt", "plant mom gift"}, queries,
		"duplicates collapse case-insensitively")
}

func TestPageScraper_NoQueries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer server.Close()

	cfg := &config.Config{Trends: config.TrendsConfig{FallbackURL: server.URL}}
	scraper := NewPageScraper(cfg, logger.NewNop())

	_, err := scraper.TrendingSearches(context.Background(), "US")
	assert.Error(t, err)
}

func TestScout_Discover(t *testing.T) {
	source := &fakeSource{
		trending: []string{"q1", "q2", "q3"},
		related: map[string][]string{
			"funny shirt": {"q2", "q4"}, // q2 is a duplicate
		},
		volume: 40_000,
		growth: 25,
	}

	scout := NewScout(source, nil, logger.NewNop())
	report, err := scout.Discover(context.Background(), []string{"funny shirt"}, "US", "today 1-m")
	require.NoError(t, err)

	require.Len(t, report.Entries, 4)
	assert.Equal(t, "q1", report.Entries[0].Query)
	assert.Equal(t, "q4", report.Entries[3].Query)
	assert.Equal(t, "US", report.Geo)
	assert.Equal(t, "today 1-m", report.Timeframe)
	assert.False(t, report.CreatedAt.IsZero())

	for _, entry := range report.Entries {
		assert.Equal(t, contracts.SourceTrendsAPI, entry.Source)
		assert.Equal(t, int64(40_000), entry.Volume)
		assert.InDelta(t, 25.0, entry.GrowthRate, 1e-9)
	}
}

func TestScout_TrendingCapped(t *testing.T) {
	trending := make([]string, 15)
	for i := range trending {
		trending[i] = fmt.Sprintf("trend-%d", i)
	}
	source := &fakeSource{trending: trending}

	scout := NewScout(source, nil, logger.NewNop())
	report, err := scout.Discover(context.Background(), nil, "US", "today 1-m")
	require.NoError(t, err)

	assert.Len(t, report.Entries, 10, "only the top ten trending searches")
}

func TestScout_ReportCapped(t *testing.T) {
	related := make([]string, 30)
	for i := range related {
		related[i] = fmt.Sprintf("related-%d", i)
	}
	source := &fakeSource{
		trending: []string{"t1"},
		related:  map[string][]string{"seed": related},
	}

	scout := NewScout(source, nil, logger.NewNop())
	report, err := scout.Discover(context.Background(), []string{"seed"}, "US", "today 1-m")
	require.NoError(t, err)

	assert.Len(t, report.Entries, 20)
}

func TestScout_FallbackChain(t *testing.T) {
	t.Run("scraper answers", func(t *testing.T) {
		source := &fakeSource{trendingErr: errors.New("api down")}
		fallback := &fakeFallback{trending: []string{"scraped query"}}

		scout := NewScout(source, fallback, logger.NewNop())
		report, err := scout.Discover(context.Background(), nil, "US", "today 1-m")
		require.NoError(t, err)

		require.Len(t, report.Entries, 1)
		assert.Equal(t, contracts.SourceTrendingPage, report.Entries[0].Source)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("static list as last resort", func(t *testing.T) {
		source := &fakeSource{trendingErr: errors.New("api down")}
		fallback := &fakeFallback{err: errors.New("page down")}

		scout := NewScout(source, fallback, logger.NewNop())
		report, err := scout.Discover(context.Background(), nil, "US", "today 1-m")
		require.NoError(t, err)

		require.Len(t, report.Entries, 10)
		for _, entry := range report.Entries {
			assert.Equal(t, contracts.SourceSeedList, entry.Source)
		}
	})
}

func TestScout_EnrichmentFailureKeepsEntry(t *testing.T) {
	source := &fakeSource{
		trending:    []string{"q1"},
		interestErr: errors.New("quota exceeded"),
	}

	scout := NewScout(source, nil, logger.NewNop())
	report, err := scout.Discover(context.Background(), nil, "US", "today 1-m")
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, int64(0), report.Entries[0].Volume)
	assert.InDelta(t, 0.0, report.Entries[0].GrowthRate, 1e-9)
}

func TestScout_RelatedErrorSkipsKeyword(t *testing.T) {
	source := &fakeSource{
		trending:   []string{"q1"},
		relatedErr: errors.New("quota exceeded"),
	}

	scout := NewScout(source, nil, logger.NewNop())
	report, err := scout.Discover(context.Background(), []string{"seed1", "seed2"}, "US", "today 1-m")
	require.NoError(t, err)

	assert.Len(t, report.Entries, 1, "trending entries survive related-query failures")
}
