package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func trendReport(entries ...contracts.TrendEntry) contracts.TrendReport {
	return contracts.TrendReport{Entries: entries}
}

func TestAnalyze_FilterAndRank(t *testing.T) {
	report := trendReport(
		// opportunity 7.50
		contracts.TrendEntry{Query: "retro gaming shirt", Volume: 82_000, GrowthRate: 45.3},
		// opportunity 4.55, below every reasonable threshold
		contracts.TrendEntry{Query: "weather forecast"},
		// opportunity 8.55
		contracts.TrendEntry{Query: "galaxy cat shirt", Volume: 100_000, GrowthRate: 50},
	)

	a := New(nil, logger.NewNop())
	result, err := a.Analyze(context.Background(), report, 6.5)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Galaxy Cat Shirt", result.Entries[0].NicheName)
	assert.Equal(t, "galaxy cat shirt", result.Entries[0].TrendingQuery)
	assert.Equal(t, "Retro Gaming Shirt", result.Entries[1].NicheName)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestAnalyze_ThresholdIsInclusive(t *testing.T) {
	report := trendReport(
		contracts.TrendEntry{Query: "retro gaming shirt", Volume: 82_000, GrowthRate: 45.3},
	)

	a := New(nil, logger.NewNop())

	result, err := a.Analyze(context.Background(), report, 7.50)
	require.NoError(t, err)
	assert.Len(t, result.Entries, 1, "entry exactly at the threshold passes")

	result, err = a.Analyze(context.Background(), report, 7.51)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestAnalyze_TieKeepsDiscoveryOrder(t *testing.T) {
	// Both queries produce identical sub-scores.
	report := trendReport(
		contracts.TrendEntry{Query: "galaxy cat shirt", Volume: 100_000, GrowthRate: 50},
		contracts.TrendEntry{Query: "sunset dog shirt", Volume: 100_000, GrowthRate: 50},
	)

	a := New(nil, logger.NewNop())
	result, err := a.Analyze(context.Background(), report, 6.5)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "galaxy cat shirt", result.Entries[0].TrendingQuery)
	assert.Equal(t, "sunset dog shirt", result.Entries[1].TrendingQuery)
}

func TestAnalyze_SummaryEnrichment(t *testing.T) {
	report := trendReport(
		contracts.TrendEntry{Query: "retro gaming shirt", Volume: 82_000, GrowthRate: 45.3},
	)

	completer := &fakeCompleter{
		response: `{"audience": "Millennial gamers", "summary": "Strong nostalgia niche."}`,
	}
	a := New(completer, logger.NewNop())

	result, err := a.Analyze(context.Background(), report, 6.5)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, "Millennial gamers", result.Entries[0].Audience)
	assert.Equal(t, "Strong nostalgia niche.", result.Entries[0].AnalysisSummary)
}

func TestAnalyze_SummaryFallback(t *testing.T) {
	report := trendReport(
		contracts.TrendEntry{Query: "retro gaming shirt", Volume: 82_000, GrowthRate: 45.3},
	)

	tests := []struct {
		name      string
		completer TextCompleter
	}{
		{"nil completer", nil},
		{"call error", &fakeCompleter{err: errors.New("boom")}},
		{"unparseable response", &fakeCompleter{response: "not json at all"}},
		{"missing audience", &fakeCompleter{response: `{"summary": "ok"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.completer, logger.NewNop())
			result, err := a.Analyze(context.Background(), report, 6.5)
			require.NoError(t, err)
			require.Len(t, result.Entries, 1)
			assert.Equal(t, "General consumers", result.Entries[0].Audience)
		})
	}
}

func TestAnalyze_SummaryNeverChangesScore(t *testing.T) {
	report := trendReport(
		contracts.TrendEntry{Query: "retro gaming shirt", Volume: 82_000, GrowthRate: 45.3},
	)

	withLLM := New(&fakeCompleter{response: `{"audience": "x", "summary": "y"}`}, logger.NewNop())
	withoutLLM := New(nil, logger.NewNop())

	a, err := withLLM.Analyze(context.Background(), report, 6.5)
	require.NoError(t, err)
	b, err := withoutLLM.Analyze(context.Background(), report, 6.5)
	require.NoError(t, err)

	require.Len(t, a.Entries, 1)
	require.Len(t, b.Entries, 1)
	assert.Equal(t, a.Entries[0].Score, b.Entries[0].Score)
}
