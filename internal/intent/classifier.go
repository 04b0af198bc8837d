// Package intent maps a raw user query to an intent category plus any
// entities extractable from the fixed vocabulary and capitalization
// heuristics. Classification is pure and deterministic: no I/O, no state.
package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/forkcast/forkcast/internal/schema"
	"github.com/forkcast/forkcast/internal/vocab"
)

// Classify reports the first matching category in priority order:
// restaurant lookup, comparison, cuisine search, dish recommendation,
// generic. A query can match several keyword sets; the ordering is the
// tie-break policy. Comparison outranks cuisine so that "X vs Y" stays a
// comparison even when one side names a cuisine.
func Classify(query string) schema.Intent {
	lower := strings.ToLower(query)

	switch {
	case vocab.ContainsAny(lower, vocab.RestaurantKeywords):
		return schema.Intent{
			Kind:           schema.IntentRestaurantLookup,
			RestaurantName: extractName(query),
		}

	case vocab.ContainsAny(lower, vocab.ComparisonMarkers):
		return schema.Intent{
			Kind:           schema.IntentComparison,
			ComparisonPair: extractComparisonPair(query),
		}

	case vocab.ContainsAny(lower, vocab.Cuisines):
		return schema.Intent{
			Kind:     schema.IntentCuisineSearch,
			Cuisine:  vocab.FirstSubstring(lower, vocab.Cuisines),
			Location: vocab.FirstSubstring(lower, vocab.Locations),
		}

	case vocab.ContainsAny(lower, vocab.DishKeywords):
		return schema.Intent{
			Kind:           schema.IntentDishRecommendation,
			RestaurantName: extractName(query),
		}
	}

	return schema.Intent{Kind: schema.IntentGeneric}
}

// extractName keeps capitalized words longer than two characters that are
// not name stopwords, joined with spaces. When nothing qualifies the full
// raw query stands in as the name. The heuristic is known to be imprecise
// for lowercase restaurant names; its behavior is kept as-is.
func extractName(query string) string {
	var kept []string
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) <= 2 || !isCapitalized(word) {
			continue
		}
		if _, stop := vocab.NameStopwords[word]; stop {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return query
	}
	return strings.Join(kept, " ")
}

// extractComparisonPair scans for runs of consecutive capitalized words and
// keeps the first two runs whose joined form is longer than three characters.
// Comparison stopwords terminate a run but never start one being rejected:
// the opening word of a run is only required to be capitalized and long
// enough.
func extractComparisonPair(query string) [2]string {
	words := strings.Fields(query)
	var pair [2]string
	n := 0
	for i := 0; i < len(words) && n < 2; i++ {
		if utf8.RuneCountInString(words[i]) <= 2 || !isCapitalized(words[i]) {
			continue
		}
		name := words[i]
		j := i + 1
		for j < len(words) && utf8.RuneCountInString(words[j]) > 2 && isCapitalized(words[j]) {
			if _, stop := vocab.ComparisonStopwords[words[j]]; stop {
				break
			}
			name += " " + words[j]
			j++
		}
		if len(name) > 3 {
			pair[n] = name
			n++
		}
		i = j - 1
	}
	return pair
}

func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}
