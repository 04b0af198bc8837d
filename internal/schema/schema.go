// Package schema defines the shared data structures that flow through the
// retrieval pipeline: classified intents, per-channel query plans, raw hits
// from each evidence channel, and the final evidence bundle handed to the
// summarization collaborator.
package schema

import "time"

// IntentKind labels the classified purpose of a user query.
type IntentKind string

const (
	IntentRestaurantLookup   IntentKind = "restaurant_lookup"
	IntentCuisineSearch      IntentKind = "cuisine_search"
	IntentComparison         IntentKind = "comparison"
	IntentDishRecommendation IntentKind = "dish_recommendation"
	IntentGeneric            IntentKind = "generic"
)

// Intent is the classification outcome for one raw query. Entity fields are
// empty when nothing was extracted; they are never fabricated beyond the
// fixed vocabulary and the capitalization heuristic.
type Intent struct {
	Kind           IntentKind
	RestaurantName string
	Cuisine        string
	Location       string
	// ComparisonPair holds the first two capitalized-token runs found in a
	// comparison query. Both entries are set or the pair is unusable.
	ComparisonPair [2]string
}

// HasComparisonPair reports whether both sides of a comparison were extracted.
func (i Intent) HasComparisonPair() bool {
	return i.ComparisonPair[0] != "" && i.ComparisonPair[1] != ""
}

// ChannelPlan carries one derived query string per retrieval channel.
// Either field falls back to the raw query verbatim when no entity drove it.
type ChannelPlan struct {
	ForumQuery string
	WebQuery   string
}

// ForumPost is a single discussion-forum hit. Ephemeral: it lives only for
// the duration of one retrieval.
type ForumPost struct {
	Title     string
	Content   string
	Score     int // may be negative
	URL       string
	Channel   string
	Author    string
	CreatedAt time.Time
}

// DedupKey identifies a post for deduplication. Two posts with the same title
// by different authors are distinct; the same post surfacing under multiple
// query variants collapses to one entry.
func (p ForumPost) DedupKey() string {
	return p.Title + "\x00" + p.Author
}

// WebResult is a single organic hit from the web-search provider.
type WebResult struct {
	Title   string
	Snippet string
	URL     string
	Source  string
}

// EvidenceBundle is the per-turn pair of formatted evidence blocks. An empty
// field means the channel produced no usable evidence, not that it was
// skipped: both channels are always attempted.
type EvidenceBundle struct {
	ForumText string
	WebText   string
}

// HasForum reports whether the forum channel produced usable evidence.
func (b EvidenceBundle) HasForum() bool { return b.ForumText != "" }

// HasWeb reports whether the web channel produced usable evidence.
func (b EvidenceBundle) HasWeb() bool { return b.WebText != "" }

// ChatResponse is the outbound shape of one conversational turn.
type ChatResponse struct {
	Message string         `json:"message"`
	Sources SourcesPayload `json:"sources"`
}

// SourcesPayload mirrors EvidenceBundle on the wire, omitting absent channels.
type SourcesPayload struct {
	Reddit string `json:"reddit,omitempty"`
	Web    string `json:"web,omitempty"`
}
