// Package llm adapts the external summarization collaborator: it receives
// the user message plus the labeled evidence blocks and returns one
// natural-language answer. The core pipeline only depends on the Summarizer
// contract, so it can be tested without any model behind it.
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/forkcast/forkcast/internal/schema"
)

// ErrNotConfigured is returned when no model credential is available.
var ErrNotConfigured = errors.New("summarizer api key not configured")

// Summarizer turns a user message and its evidence into a final answer.
type Summarizer interface {
	Summarize(ctx context.Context, userMessage string, evidence schema.EvidenceBundle) (string, error)
}

// BuildPrompt assembles the model prompt: the raw user message followed by
// each present evidence block under its source label, so the model can
// attribute claims.
func BuildPrompt(userMessage string, evidence schema.EvidenceBundle) string {
	var b strings.Builder
	b.WriteString(userMessage)
	if evidence.HasForum() {
		b.WriteString("\n\nReddit Search Results:\n")
		b.WriteString(evidence.ForumText)
	}
	if evidence.HasWeb() {
		b.WriteString("\n\nWeb Search Results:\n")
		b.WriteString(evidence.WebText)
	}
	return b.String()
}
