package scoring

import "regexp"

// Fixed keyword lists behind the scoring heuristics. These are shipped
// static data, not runtime configuration.

// commercialKeywords signal purchase intent when present in a query
var commercialKeywords = newWordSet(
	"shirt", "tshirt", "t-shirt", "tee", "hoodie", "sweatshirt",
	"mug", "gift", "merch", "merchandise", "apparel", "clothing",
	"buy", "shop", "store", "fashion", "wear", "outfit", "print",
)

// visualKeywords are concrete imagery themes that translate well to designs
var visualKeywords = newWordSet(
	"art", "design", "pixel", "retro", "vintage", "cartoon", "anime",
	"illustration", "graphic", "abstract", "floral", "geometric",
	"neon", "watercolor", "minimalist", "pattern", "sketch", "comic",
	"space", "galaxy", "sunset", "mountain", "ocean", "animal",
	"cat", "dog", "wolf", "dragon", "skull", "rose", "heart",
)

// abstractKeywords are concepts that rarely make a printable design
var abstractKeywords = newWordSet(
	"philosophy", "theory", "concept", "metaphysics", "epistemology",
	"ontology", "hermeneutics", "dialectic",
)

// seasonalKeywords mark queries tied to a holiday or season
var seasonalKeywords = []string{
	"christmas", "halloween", "valentine", "easter", "thanksgiving",
	"new year", "4th of july", "independence day", "mothers day",
	"fathers day", "black friday", "cyber monday", "summer", "winter",
	"spring break", "back to school",
}

// trademarkKeywords are known brands and IPs that carry infringement risk
var trademarkKeywords = []string{
	"nike", "adidas", "disney", "marvel", "dc comics", "nintendo",
	"pokemon", "pikachu", "mario", "zelda", "star wars", "harry potter",
	"coca-cola", "pepsi", "starbucks", "apple", "google", "amazon",
	"minecraft", "fortnite", "roblox", "call of duty", "fifa",
	"nba", "nfl", "mlb", "barbie", "lego", "transformers",
}

// Precompiled word-boundary patterns; terms may be multi-word phrases.
var (
	seasonalPatterns  = compileTermPatterns(seasonalKeywords)
	trademarkPatterns = compileTermPatterns(trademarkKeywords)
)

func newWordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// compileTermPatterns builds one word-boundary regex per term.
// Patterns match against lowercased input.
func compileTermPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return patterns
}
