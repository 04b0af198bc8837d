// Package format renders ranked retrieval results into the uniform,
// provenance-tagged text blocks consumed by the summarization collaborator.
// Each block is labeled by source so downstream claims stay attributable.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/forkcast/forkcast/internal/schema"
)

// Sentinel strings surfaced in place of evidence. The orchestrator treats
// them as "no usable evidence" rather than passing them downstream.
const (
	NoForumResults   = "No relevant Reddit discussions found for this query."
	ForumUnavailable = "Unable to search Reddit at the moment."
	NoWebResults     = "No web search results found for this query."
	WebNotConfigured = "Web search is not configured; no search provider API key is set."
)

// ExcerptLength bounds the post body carried into the evidence block.
const ExcerptLength = 300

var entryPattern = regexp.MustCompile(`(?m)^\d+\. `)

// ForumPosts renders ranked forum posts as numbered blocks with title,
// channel, score, author, a content excerpt, and the source URL.
func ForumPosts(posts []schema.ForumPost) string {
	if len(posts) == 0 {
		return NoForumResults
	}
	var b strings.Builder
	b.WriteString("Reddit Discussions and Reviews:\n\n")
	for i, p := range posts {
		fmt.Fprintf(&b, "%d. **%s** (r/%s)\n", i+1, p.Title, p.Channel)
		fmt.Fprintf(&b, "   Score: %d | Author: %s\n", p.Score, p.Author)
		fmt.Fprintf(&b, "   %s\n", Excerpt(p.Content, ExcerptLength))
		fmt.Fprintf(&b, "   URL: %s\n\n", p.URL)
	}
	return b.String()
}

// WebResults renders organic web results as numbered blocks with title,
// snippet, source label, and URL.
func WebResults(results []schema.WebResult) string {
	if len(results) == 0 {
		return NoWebResults
	}
	var b strings.Builder
	b.WriteString("Web Search Results:\n\n")
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "No title"
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = "No description available"
		}
		source := r.Source
		if source == "" {
			source = "Unknown"
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, title)
		fmt.Fprintf(&b, "   %s\n", snippet)
		fmt.Fprintf(&b, "   Source: %s\n", source)
		fmt.Fprintf(&b, "   URL: %s\n\n", r.URL)
	}
	return b.String()
}

// Excerpt trims s to at most limit bytes, appending an ellipsis when
// anything was cut.
func Excerpt(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// CountEntries re-parses a formatted block and reports how many numbered
// entries it contains. Formatting then re-parsing a non-empty result list
// recovers the count that was passed in.
func CountEntries(block string) int {
	return len(entryPattern.FindAllString(block, -1))
}
