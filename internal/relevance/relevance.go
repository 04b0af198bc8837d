// Package relevance filters and ranks forum candidates before formatting.
// The filter trades recall for precision as query specificity increases:
// a detected cuisine and location must both appear alongside a dining term,
// a single detected topic must appear with a dining term, and an unscoped
// query must share at least three significant words with the post.
package relevance

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/forkcast/forkcast/internal/schema"
	"github.com/forkcast/forkcast/internal/vocab"
)

// MinContentLength is the shortest post body that can carry opinion signal.
const MinContentLength = 30

// DefaultTopN caps the ranked result set handed to the formatter.
const DefaultTopN = 10

// minWordMatches is the overlap required for queries with no detected topic.
const minWordMatches = 3

// DropShort removes posts whose body is too short to carry opinion signal.
func DropShort(posts []schema.ForumPost) []schema.ForumPost {
	kept := make([]schema.ForumPost, 0, len(posts))
	for _, p := range posts {
		if len(p.Content) > MinContentLength {
			kept = append(kept, p)
		}
	}
	return kept
}

// Dedupe collapses posts sharing a (title, author) key, keeping the first
// occurrence. Posts surfacing under multiple query variants or channels
// reduce to one entry.
func Dedupe(posts []schema.ForumPost) []schema.ForumPost {
	seen := make(map[string]struct{}, len(posts))
	kept := make([]schema.ForumPost, 0, len(posts))
	for _, p := range posts {
		key := p.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, p)
	}
	return kept
}

// Filter applies the hierarchical relevance policy against the original
// query. Topic detection here is token-based: a vocabulary entry must equal
// one of the query's significant words, so multi-word neighborhoods never
// bind at this stage. That matches the original behavior and is deliberate.
func Filter(posts []schema.ForumPost, query string) []schema.ForumPost {
	words := significantWords(query)
	cuisine := vocab.FirstToken(words, vocab.Cuisines)
	location := vocab.FirstToken(words, vocab.Locations)

	kept := make([]schema.ForumPost, 0, len(posts))
	for _, p := range posts {
		text := strings.ToLower(p.Title + " " + p.Content)
		if !vocab.ContainsAny(text, vocab.DiningTerms) {
			continue
		}
		switch {
		case cuisine != "" && location != "":
			if strings.Contains(text, cuisine) && strings.Contains(text, location) {
				kept = append(kept, p)
			}
		case cuisine != "":
			if strings.Contains(text, cuisine) {
				kept = append(kept, p)
			}
		case location != "":
			if strings.Contains(text, location) {
				kept = append(kept, p)
			}
		default:
			if countMatches(text, words) >= minWordMatches {
				kept = append(kept, p)
			}
		}
	}
	return kept
}

// Rank sorts posts by score descending and keeps at most topN entries.
// Scores are only comparable within one channel set, never across channels.
func Rank(posts []schema.ForumPost, topN int) []schema.ForumPost {
	if topN <= 0 {
		topN = DefaultTopN
	}
	ranked := make([]schema.ForumPost, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// significantWords lowercases and splits the query, keeping words longer
// than two characters.
func significantWords(query string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func countMatches(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
