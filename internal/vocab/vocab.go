// Package vocab holds the fixed vocabulary tables used by intent
// classification and relevance filtering. All tables are process-wide
// read-only reference data, loaded once and never mutated.
package vocab

import "strings"

// Cuisines is the fixed cuisine vocabulary, matched case-insensitively.
var Cuisines = []string{
	"italian", "chinese", "japanese", "thai", "indian", "mexican", "french",
	"greek", "mediterranean", "american", "korean", "vietnamese", "spanish",
	"lebanese", "turkish", "ethiopian", "moroccan", "brazilian", "peruvian",
	"caribbean",
}

// Locations is the fixed neighborhood vocabulary.
var Locations = []string{
	"flatiron", "manhattan", "brooklyn", "queens", "bronx", "staten island",
	"midtown", "downtown", "uptown", "chelsea", "west village", "east village",
	"soho", "noho", "tribeca", "financial district", "lower east side",
	"upper east side", "upper west side", "harlem", "washington heights",
}

// RestaurantKeywords mark a query as a restaurant lookup.
var RestaurantKeywords = []string{
	"restaurant", "cafe", "bistro", "diner", "eatery", "grill", "kitchen",
}

// DishKeywords mark a query as a dish recommendation request.
var DishKeywords = []string{
	"order", "dish", "menu", "recommend", "best", "popular",
}

// ComparisonMarkers mark a query as a comparison between two restaurants.
var ComparisonMarkers = []string{"vs", "versus", "difference between"}

// DiningTerms are the generic dining-domain words required by the relevance
// filter alongside any detected cuisine or location token.
var DiningTerms = []string{
	"restaurant", "food", "dining", "eat", "meal", "dish", "menu",
	"cuisine", "kitchen",
}

// NameStopwords are capitalized words excluded from restaurant-name runs.
var NameStopwords = newSet(
	"The", "And", "Or", "But", "In", "On", "At", "To", "For", "Of", "With",
)

// ComparisonStopwords terminate a capitalized run when scanning the two
// sides of a comparison query.
var ComparisonStopwords = newSet("Vs", "Versus", "And", "Or", "The")

func newSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// FirstSubstring returns the first vocabulary entry contained in s as a
// substring, or "". The caller is expected to pass lowercased text.
func FirstSubstring(s string, table []string) string {
	for _, entry := range table {
		if strings.Contains(s, entry) {
			return entry
		}
	}
	return ""
}

// FirstToken returns the first vocabulary entry that equals one of the given
// whitespace-split tokens, or "". Multi-word entries never match a single
// token; that asymmetry with FirstSubstring is intentional and preserved from
// the original filter behavior.
func FirstToken(tokens []string, table []string) string {
	for _, entry := range table {
		for _, tok := range tokens {
			if tok == entry {
				return entry
			}
		}
	}
	return ""
}

// ContainsAny reports whether s contains any vocabulary entry as a substring.
func ContainsAny(s string, table []string) bool {
	return FirstSubstring(s, table) != ""
}
