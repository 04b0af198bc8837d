package retriever

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/forkcast/forkcast/internal/common/httpx"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/format"
)

type listingPost struct {
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Score      int     `json:"score"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
}

func writeListing(w http.ResponseWriter, posts []listingPost) {
	type child struct {
		Data listingPost `json:"data"`
	}
	var payload struct {
		Data struct {
			Children []child `json:"children"`
		} `json:"data"`
	}
	for _, p := range posts {
		payload.Data.Children = append(payload.Data.Children, child{Data: p})
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func newForum(t *testing.T, baseURL string, channels []string) *ForumRetriever {
	t.Helper()
	return NewForum(config.ForumConfig{
		BaseURL:  baseURL,
		Channels: channels,
		PageSize: 5,
	}, httpx.New(0, "test-agent"))
}

func TestForumRetrieveAggregatesAndRanks(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("restrict_sr") != "on" || q.Get("sort") != "relevance" || q.Get("t") != "year" || q.Get("limit") != "5" {
			t.Errorf("unexpected search params: %s", r.URL.RawQuery)
		}
		channel := strings.Split(strings.TrimPrefix(r.URL.Path, "/r/"), "/")[0]
		mu.Lock()
		hits[channel]++
		mu.Unlock()

		switch channel {
		case "food":
			writeListing(w, []listingPost{
				{Title: "Thai spots downtown", Selftext: "The best thai food downtown, worth lining up for.", Score: 80, Permalink: "/r/food/a", Subreddit: "food", Author: "noodlelover", CreatedUTC: 1700000000},
				{Title: "Downtown thai crawl", Selftext: "Every thai kitchen downtown ranked after a month of walking.", Score: 150, Permalink: "/r/food/b", Subreddit: "food", Author: "crawler", CreatedUTC: 1700000001},
				{Title: "Too brief", Selftext: "Short.", Score: 999, Permalink: "/r/food/c", Subreddit: "food", Author: "terse", CreatedUTC: 1700000002},
				{Title: "Best burgers", Selftext: "Burgers around midtown with no relation at all to the question.", Score: 500, Permalink: "/r/food/d", Subreddit: "food", Author: "patty", CreatedUTC: 1700000003},
			})
		case "restaurants":
			// Same (title, author) as the top food post: must collapse.
			writeListing(w, []listingPost{
				{Title: "Thai spots downtown", Selftext: "The best thai food downtown, worth lining up for.", Score: 80, Permalink: "/r/restaurants/a", Subreddit: "restaurants", Author: "noodlelover", CreatedUTC: 1700000000},
			})
		default:
			writeListing(w, nil)
		}
	}))
	defer srv.Close()

	r := newForum(t, srv.URL, []string{"food", "restaurants"})
	out, err := r.Retrieve(context.Background(), "thai food downtown")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}

	// Cuisine and location tokens yield three extra variants per channel.
	mu.Lock()
	for _, channel := range []string{"food", "restaurants"} {
		if hits[channel] != 4 {
			t.Errorf("channel %s got %d requests, want 4", channel, hits[channel])
		}
	}
	mu.Unlock()

	if got := format.CountEntries(out); got != 2 {
		t.Fatalf("entries = %d, want 2\n%s", got, out)
	}
	if !strings.Contains(out, "1. **Downtown thai crawl** (r/food)") {
		t.Errorf("highest-score post not ranked first:\n%s", out)
	}
	// Which channel's copy survives dedup depends on aggregation order, so
	// only the title and position are pinned here.
	if !strings.Contains(out, "2. **Thai spots downtown**") {
		t.Errorf("deduplicated post missing or out of order:\n%s", out)
	}
	if strings.Contains(out, "Best burgers") || strings.Contains(out, "Too brief") {
		t.Errorf("irrelevant or short post survived:\n%s", out)
	}
}

func TestForumRetrievePartialChannelFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/r/broken/") {
			http.Error(w, "upstream unavailable", http.StatusInternalServerError)
			return
		}
		writeListing(w, []listingPost{
			{Title: "Great dinner spots", Selftext: "These great dinner spots serve food worth the wait.", Score: 10, Permalink: "/r/food/a", Subreddit: "food", Author: "u", CreatedUTC: 1700000000},
		})
	}))
	defer srv.Close()

	r := newForum(t, srv.URL, []string{"food", "broken"})
	out, err := r.Retrieve(context.Background(), "great dinner spots")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if out == format.ForumUnavailable {
		t.Fatal("one failing channel degraded the whole retrieval")
	}
	if !strings.Contains(out, "Great dinner spots") {
		t.Errorf("surviving channel's post missing:\n%s", out)
	}
}

func TestForumRetrieveAllChannelsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	r := newForum(t, srv.URL, []string{"food", "nyc"})
	out, err := r.Retrieve(context.Background(), "anything at all")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if out != format.ForumUnavailable {
		t.Errorf("got %q, want unavailable sentinel", out)
	}
}

func TestForumRetrieveNoRelevantPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeListing(w, nil)
	}))
	defer srv.Close()

	r := newForum(t, srv.URL, []string{"food"})
	out, err := r.Retrieve(context.Background(), "something nobody discussed")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if out != format.NoForumResults {
		t.Errorf("got %q, want no-results sentinel", out)
	}
}

func TestForumRetrieveMalformedListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	r := newForum(t, srv.URL, []string{"food"})
	out, err := r.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if out != format.ForumUnavailable {
		t.Errorf("got %q, want unavailable sentinel", out)
	}
}

func TestQueryVariants(t *testing.T) {
	got := queryVariants("thai food downtown")
	want := []string{
		"thai food downtown",
		"thai restaurant downtown",
		"best thai downtown",
		"thai food downtown",
	}
	if len(got) != len(want) {
		t.Fatalf("variants = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := queryVariants("surprise me"); len(got) != 1 || got[0] != "surprise me" {
		t.Errorf("plain query variants = %v, want just the original", got)
	}

	// Multi-word neighborhoods never match a single token.
	if got := queryVariants("dinner in the west village"); len(got) != 1 {
		t.Errorf("multi-word location produced variants: %v", got)
	}
}
