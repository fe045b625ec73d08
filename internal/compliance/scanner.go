// Package compliance implements rule-based policy scanning for listing
// text and the status decision that combines scan results with an
// optional reviewer verdict.
package compliance

import (
	"regexp"
	"strings"
)

// ScanBanned returns the banned terms found in text, in term-list order.
// Matching is case-insensitive on word boundaries, so a term embedded
// inside a longer word does not count.
func ScanBanned(text string) []string {
	return findTerms(text, bannedTerms, bannedPatterns)
}

// ScanRisk returns the risk terms found in text, in term-list order.
func ScanRisk(text string) []string {
	return findTerms(text, riskTerms, riskPatterns)
}

// ValidateText reports whether text is free of banned terms, along with
// every detected term (banned first, then risk). Risk terms alone do not
// make the text invalid.
func ValidateText(text string) (bool, []string) {
	banned := ScanBanned(text)
	risk := ScanRisk(text)
	return len(banned) == 0, append(banned, risk...)
}

func findTerms(text string, terms []string, patterns []*regexp.Regexp) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for i, pattern := range patterns {
		if pattern.MatchString(lower) {
			found = append(found, terms[i])
		}
	}
	return found
}
