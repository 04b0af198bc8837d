package retriever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forkcast/forkcast/internal/common/httpx"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/format"
)

func newWeb(t *testing.T, apiKey, endpoint string) *WebRetriever {
	t.Helper()
	return NewWeb(config.WebConfig{
		APIKey:      apiKey,
		Endpoint:    endpoint,
		ResultCount: 10,
	}, httpx.New(0, "test-agent"))
}

func TestWebRetrieveNotConfigured(t *testing.T) {
	r := newWeb(t, "", "https://unused.invalid")
	out, err := r.Retrieve(context.Background(), "best pizza")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if out != format.WebNotConfigured {
		t.Errorf("got %q, want not-configured sentinel", out)
	}
}

func TestWebRetrieveProviderResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("engine") != "google" || q.Get("gl") != "us" || q.Get("hl") != "en" {
			t.Errorf("unexpected provider params: %s", r.URL.RawQuery)
		}
		if q.Get("api_key") != "test-key" || q.Get("num") != "10" {
			t.Errorf("credential or count missing: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{
			"organic_results": [
				{"title": "Soothr review", "snippet": "A standout Thai spot.", "link": "https://example.com/soothr", "source": "Example Mag"},
				{"title": "Runner up", "snippet": "Also good.", "link": "https://example.com/other", "source": "Example Mag"}
			]
		}`))
	}))
	defer srv.Close()

	r := newWeb(t, "test-key", srv.URL)
	out, err := r.Retrieve(context.Background(), "Soothr restaurant reviews menu")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if got := format.CountEntries(out); got != 2 {
		t.Fatalf("entries = %d, want 2\n%s", got, out)
	}
	for _, want := range []string{
		"1. **Soothr review**",
		"A standout Thai spot.",
		"Source: Example Mag",
		"URL: https://example.com/soothr",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("block missing %q", want)
		}
	}
}

func TestWebRetrieveProviderErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r := newWeb(t, "test-key", srv.URL)
	out, err := r.Retrieve(context.Background(), "Soothr reviews")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if got := format.CountEntries(out); got != 1 {
		t.Fatalf("entries = %d, want the single fallback result\n%s", got, out)
	}
	for _, want := range []string{
		"Soothr reviews - Restaurant Information",
		"Source: Google Search",
		"https://www.google.com/search?q=Soothr+reviews",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fallback block missing %q", want)
		}
	}
}

func TestWebRetrieveEmptyOrganicResultsFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"organic_results": []}`))
	}))
	defer srv.Close()

	r := newWeb(t, "test-key", srv.URL)
	out, err := r.Retrieve(context.Background(), "empty query results")
	if err != nil {
		t.Fatalf("retrieve error: %v", err)
	}
	if !strings.Contains(out, "empty query results - Restaurant Information") {
		t.Errorf("fallback missing:\n%s", out)
	}
}
