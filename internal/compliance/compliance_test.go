package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
)

func TestScanBanned(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"clean text", "funny cat shirt for animal lovers", []string{}},
		{"one banned term", "killer workout shirt will kill your excuses", []string{"kill"}},
		{"case-insensitive", "KILL la kill merch", []string{"kill"}},
		{"multi-word term", "documentary about a hate crime trial", []string{"hate crime"}},
		{"embedded word not matched", "methane gas detector", []string{}},
		{"term-list order", "naked murder scene", []string{"murder", "naked"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanBanned(tt.text))
		})
	}
}

func TestScanRisk(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"clean text", "retro sunset graphic tee", []string{}},
		{"brand name", "just do it nike style", []string{"nike"}},
		{"multi-word brand", "star wars inspired poster", []string{"star wars"}},
		{"embedded brand not matched", "I niked the ball past him", []string{}},
		{"misleading claim", "official fan merchandise", []string{"official"}},
		{"several terms in list order", "licensed disney pokemon art", []string{"disney", "pokemon", "licensed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanRisk(tt.text))
		})
	}
}

func TestValidateText(t *testing.T) {
	valid, detected := ValidateText("cute corgi mom shirt")
	assert.True(t, valid)
	assert.Empty(t, detected)

	valid, detected = ValidateText("nike swoosh parody")
	assert.True(t, valid, "risk terms alone stay valid")
	assert.Equal(t, []string{"nike"}, detected)

	valid, detected = ValidateText("murder mystery nike night")
	assert.False(t, valid)
	assert.Equal(t, []string{"murder", "nike"}, detected)
}

func TestDecide(t *testing.T) {
	compliant := contracts.ReviewerVerdict{Compliant: true}
	nonCompliant := contracts.ReviewerVerdict{Compliant: false, Issues: []string{"trademark reference"}}

	tests := []struct {
		name    string
		banned  []string
		risk    []string
		verdict contracts.ReviewerVerdict
		want    contracts.ComplianceStatus
	}{
		{"clean and compliant", nil, nil, compliant, contracts.StatusApproved},
		{"banned always rejects", []string{"kill"}, nil, compliant, contracts.StatusRejected},
		{"banned beats non-compliant verdict", []string{"kill"}, []string{"nike"}, nonCompliant, contracts.StatusRejected},
		{"verdict rejects without risk terms", nil, nil, nonCompliant, contracts.StatusRejected},
		{"risk terms go to review", nil, []string{"disney"}, compliant, contracts.StatusNeedsReview},
		{"default verdict with risk terms", nil, []string{"maga"}, contracts.DefaultVerdict(), contracts.StatusNeedsReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.banned, tt.risk, tt.verdict))
		})
	}
}

func TestBuildNotes(t *testing.T) {
	t.Run("all sections in order", func(t *testing.T) {
		verdict := contracts.ReviewerVerdict{
			Compliant: false,
			Issues:    []string{"brand logo", "misleading claim"},
			Notes:     "multiple violations",
		}
		got := BuildNotes([]string{"kill", "murder"}, []string{"nike"}, verdict)
		assert.Equal(t,
			"BANNED terms found: kill, murder | Risk terms found: nike | LLM: multiple violations | LLM issues: brand logo; misleading claim",
			got)
	})

	t.Run("clean run", func(t *testing.T) {
		got := BuildNotes(nil, nil, contracts.ReviewerVerdict{Compliant: true})
		assert.Equal(t, "All checks passed. No issues detected.", got)
	})

	t.Run("default verdict keeps its note", func(t *testing.T) {
		got := BuildNotes(nil, nil, contracts.DefaultVerdict())
		assert.Equal(t, "LLM: LLM check unavailable", got)
	})
}
