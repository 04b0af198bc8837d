package retriever

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/forkcast/forkcast/internal/common/httpx"
	"github.com/forkcast/forkcast/internal/common/logger"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/format"
	"github.com/forkcast/forkcast/internal/metrics"
	"github.com/forkcast/forkcast/internal/schema"
)

// WebRetriever calls a single web-search provider. Without a credential it
// reports an explicit not-configured message; on provider error or an empty
// organic result set it degrades to one synthetic result pointing at a
// generic web search, so the summarizer always receives something.
type WebRetriever struct {
	APIKey      string
	Endpoint    string
	ResultCount int
	Client      *httpx.Client
}

// NewWeb builds a web retriever from configuration.
func NewWeb(cfg config.WebConfig, client *httpx.Client) *WebRetriever {
	return &WebRetriever{
		APIKey:      cfg.APIKey,
		Endpoint:    cfg.Endpoint,
		ResultCount: cfg.ResultCount,
		Client:      client,
	}
}

func (r *WebRetriever) Type() string { return "web" }

// Retrieve runs one provider search. The returned error is always nil;
// every failure mode degrades to a formatted block.
func (r *WebRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	if r.APIKey == "" {
		return format.WebNotConfigured, nil
	}
	start := time.Now()
	results, err := r.searchProvider(ctx, query)
	if err != nil {
		metrics.IncChannelFailure(r.Type())
		logger.Warnf("web: provider search failed, using fallback: %v", err)
	}
	if len(results) == 0 {
		results = fallbackResults(query)
	}
	metrics.ObserveRetriever(r.Type(), start, len(results))
	return format.WebResults(results), nil
}

func (r *WebRetriever) searchProvider(ctx context.Context, query string) ([]schema.WebResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", r.APIKey)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(r.ResultCount))
	params.Set("gl", "us")
	params.Set("hl", "en")

	body, err := r.Client.Get(ctx, r.Endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed provider payload")
	}
	organic := gjson.GetBytes(body, "organic_results")
	results := make([]schema.WebResult, 0, len(organic.Array()))
	organic.ForEach(func(_, item gjson.Result) bool {
		results = append(results, schema.WebResult{
			Title:   item.Get("title").String(),
			Snippet: item.Get("snippet").String(),
			URL:     item.Get("link").String(),
			Source:  item.Get("source").String(),
		})
		return true
	})
	return results, nil
}

// fallbackResults produces the degraded single result pointing at a generic
// web search for the query.
func fallbackResults(query string) []schema.WebResult {
	return []schema.WebResult{{
		Title:   query + " - Restaurant Information",
		Snippet: fmt.Sprintf("Find information about %s including reviews, menu, and location details.", query),
		URL:     "https://www.google.com/search?q=" + url.QueryEscape(query),
		Source:  "Google Search",
	}}
}
