package compliance

import (
	"fmt"
	"strings"

	"github.com/Diaa1123/amz-qoder/internal/contracts"
)

// Decide maps scan results and the reviewer verdict to a final status.
// Banned terms always reject, a non-compliant verdict rejects, risk terms
// with a compliant verdict go to review, everything else is approved.
func Decide(banned, risk []string, verdict contracts.ReviewerVerdict) contracts.ComplianceStatus {
	if len(banned) > 0 {
		return contracts.StatusRejected
	}
	if !verdict.Compliant {
		return contracts.StatusRejected
	}
	if len(risk) > 0 {
		return contracts.StatusNeedsReview
	}
	return contracts.StatusApproved
}

// BuildNotes assembles the human-readable audit trail for a report.
// Sections are joined with " | " in a fixed order.
func BuildNotes(banned, risk []string, verdict contracts.ReviewerVerdict) string {
	parts := make([]string, 0, 4)
	if len(banned) > 0 {
		parts = append(parts, fmt.Sprintf("BANNED terms found: %s", strings.Join(banned, ", ")))
	}
	if len(risk) > 0 {
		parts = append(parts, fmt.Sprintf("Risk terms found: %s", strings.Join(risk, ", ")))
	}
	if verdict.Notes != "" {
		parts = append(parts, fmt.Sprintf("LLM: %s", verdict.Notes))
	}
	if len(verdict.Issues) > 0 {
		parts = append(parts, fmt.Sprintf("LLM issues: %s", strings.Join(verdict.Issues, "; ")))
	}
	if len(parts) == 0 {
		return "All checks passed. No issues detected."
	}
	return strings.Join(parts, " | ")
}
