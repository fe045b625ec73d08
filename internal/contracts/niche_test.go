package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNicheScore_Opportunity(t *testing.T) {
	tests := []struct {
		name  string
		score NicheScore
		want  float64
	}{
		{
			name: "all ones",
			score: NicheScore{
				CommercialIntent: 1, Designability: 1, AudienceSize: 1,
				CompetitionLevel: 10, SeasonalityRisk: 10, TrademarkRisk: 10,
			},
			want: 1.0,
		},
		{
			name: "all tens",
			score: NicheScore{
				CommercialIntent: 10, Designability: 10, AudienceSize: 10,
				CompetitionLevel: 1, SeasonalityRisk: 1, TrademarkRisk: 1,
			},
			want: 10.0,
		},
		{
			name: "mixed",
			score: NicheScore{
				CommercialIntent: 7, Designability: 5, AudienceSize: 8,
				CompetitionLevel: 4, SeasonalityRisk: 3, TrademarkRisk: 2,
			},
			// 0.20*7 + 0.25*5 + 0.20*8 + 0.15*7 + 0.10*8 + 0.10*9
			want: 7.0,
		},
		{
			name: "rounding to 2 decimals",
			score: NicheScore{
				CommercialIntent: 7, Designability: 6, AudienceSize: 8,
				CompetitionLevel: 4, SeasonalityRisk: 8, TrademarkRisk: 2,
			},
			// 1.4 + 1.5 + 1.6 + 1.05 + 0.3 + 0.9 = 6.75
			want: 6.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.score.Opportunity(), 1e-9)
		})
	}
}

func TestNicheScore_OpportunityBounds(t *testing.T) {
	// Every combination of extreme sub-scores stays inside [1,10]
	for _, v := range []int{1, 10} {
		for _, r := range []int{1, 10} {
			score := NicheScore{
				CommercialIntent: v, Designability: v, AudienceSize: v,
				CompetitionLevel: r, SeasonalityRisk: r, TrademarkRisk: r,
			}
			opp := score.Opportunity()
			assert.GreaterOrEqual(t, opp, 1.0)
			assert.LessOrEqual(t, opp, 10.0)
		}
	}
}

func TestNicheScore_RiskInversion(t *testing.T) {
	base := NicheScore{
		CommercialIntent: 5, Designability: 5, AudienceSize: 5,
		CompetitionLevel: 5, SeasonalityRisk: 5, TrademarkRisk: 5,
	}

	// Raising any risk dimension must never raise the aggregate
	riskier := base
	riskier.CompetitionLevel = 9
	assert.Less(t, riskier.Opportunity(), base.Opportunity())

	riskier = base
	riskier.SeasonalityRisk = 9
	assert.Less(t, riskier.Opportunity(), base.Opportunity())

	riskier = base
	riskier.TrademarkRisk = 9
	assert.Less(t, riskier.Opportunity(), base.Opportunity())
}

func TestNicheScore_Validate(t *testing.T) {
	valid := NicheScore{
		CommercialIntent: 1, Designability: 10, AudienceSize: 5,
		CompetitionLevel: 5, SeasonalityRisk: 5, TrademarkRisk: 5,
	}
	require.NoError(t, valid.Validate())

	invalid := valid
	invalid.TrademarkRisk = 11
	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trademark_risk")

	invalid = valid
	invalid.AudienceSize = 0
	require.Error(t, invalid.Validate())
}

func TestDefaultVerdict(t *testing.T) {
	v := DefaultVerdict()
	assert.True(t, v.Compliant)
	assert.Empty(t, v.Issues)
	assert.NotEmpty(t, v.Notes)
}
