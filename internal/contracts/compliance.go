package contracts

import "time"

// ComplianceStatus is the terminal classification of a listing candidate
type ComplianceStatus string

const (
	StatusApproved    ComplianceStatus = "approved"
	StatusRejected    ComplianceStatus = "rejected"
	StatusNeedsReview ComplianceStatus = "needs_review"
)

// ComplianceReport is created once per listing candidate and never mutated.
// RiskTermsDetected is banned terms followed by risk terms, each list in
// its original order; duplicates across the two lists are kept.
type ComplianceReport struct {
	NicheName         string           `json:"niche_name"`
	Status            ComplianceStatus `json:"status"`
	Notes             string           `json:"notes"`
	RiskTermsDetected []string         `json:"risk_terms_detected"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ReviewerVerdict is the structured result of the external LLM compliance
// review. When the reviewer is unreachable, callers substitute
// DefaultVerdict() so the rule-based scan alone drives the decision.
type ReviewerVerdict struct {
	Compliant bool     `json:"compliant"`
	Issues    []string `json:"issues"`
	Notes     string   `json:"notes"`
}

// DefaultVerdict is the degraded-mode verdict used when the external
// reviewer call fails: trust the rule-based scan only, never block.
func DefaultVerdict() ReviewerVerdict {
	return ReviewerVerdict{
		Compliant: true,
		Issues:    []string{},
		Notes:     "LLM check unavailable",
	}
}
