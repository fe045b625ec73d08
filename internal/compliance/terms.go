package compliance

import "regexp"

// Hard-banned: content that must never appear in listings.
var bannedTerms = []string{
	// violence / hate
	"kill", "murder", "terrorist", "hate crime", "genocide",
	// adult content
	"pornography", "xxx", "nude", "naked",
	// drugs
	"cocaine", "heroin", "meth",
	// slurs (representative subset, extend as needed)
	"racial slur placeholder",
}

// Soft risk: may be acceptable in context but flagged for review.
var riskTerms = []string{
	// trademarked brands and franchises
	"nike", "adidas", "disney", "marvel", "nintendo", "pokemon",
	"star wars", "harry potter", "coca-cola", "pepsi",
	"minecraft", "fortnite", "roblox",
	// celebrity names (representative)
	"taylor swift", "beyonce", "elon musk",
	// potentially misleading claims
	"official", "licensed", "authentic brand",
	"fda approved", "clinically proven",
	// political
	"maga", "antifa",
}

var (
	bannedPatterns = compilePatterns(bannedTerms)
	riskPatterns   = compilePatterns(riskTerms)
)

// compilePatterns builds one case-insensitive word-boundary regex per term.
// Terms may be multi-word phrases; matching runs against lowercased text.
func compilePatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return patterns
}
