// Package retriever implements the evidence channels: a discussion-forum
// channel set and a web-search provider. Each retriever turns one planned
// query into a formatted, provenance-tagged evidence block, degrading to a
// sentinel string instead of failing.
package retriever

import "context"

// Retriever is the unified contract across evidence channels.
type Retriever interface {
	Type() string
	Retrieve(ctx context.Context, query string) (string, error)
}
