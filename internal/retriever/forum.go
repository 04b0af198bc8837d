package retriever

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"

	"github.com/forkcast/forkcast/internal/common/httpx"
	"github.com/forkcast/forkcast/internal/common/logger"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/format"
	"github.com/forkcast/forkcast/internal/metrics"
	"github.com/forkcast/forkcast/internal/relevance"
	"github.com/forkcast/forkcast/internal/schema"
	"github.com/forkcast/forkcast/internal/vocab"
)

// ForumRetriever fans out to a set of discussion channels, issuing a few
// query variants per channel, then aggregates, deduplicates, filters, and
// ranks the posts into one evidence block. A failing channel degrades to an
// empty contribution and never aborts the others.
type ForumRetriever struct {
	BaseURL  string
	Channels []string
	PageSize int
	Client   *httpx.Client
}

// NewForum builds a forum retriever from configuration.
func NewForum(cfg config.ForumConfig, client *httpx.Client) *ForumRetriever {
	return &ForumRetriever{
		BaseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		Channels: cfg.Channels,
		PageSize: cfg.PageSize,
		Client:   client,
	}
}

func (r *ForumRetriever) Type() string { return "forum" }

type channelOutcome struct {
	channel string
	posts   []schema.ForumPost
	err     error
}

// Retrieve runs the full channel fan-out for one query. The returned error
// is always nil: every failure mode maps to a sentinel block so partial
// evidence is still usable downstream.
func (r *ForumRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	start := time.Now()
	variants := queryVariants(query)

	resCh := make(chan channelOutcome, len(r.Channels))
	var wg sync.WaitGroup
	for _, name := range r.Channels {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			posts, err := r.searchChannel(ctx, name, variants)
			resCh <- channelOutcome{channel: name, posts: posts, err: err}
		}(name)
	}
	wg.Wait()
	close(resCh)

	var all []schema.ForumPost
	var errs *multierror.Error
	failed := 0
	for out := range resCh {
		if out.err != nil {
			failed++
			metrics.IncChannelFailure(r.Type())
			errs = multierror.Append(errs, fmt.Errorf("r/%s: %w", out.channel, out.err))
			continue
		}
		all = append(all, out.posts...)
	}
	if failed > 0 {
		logger.Warnf("forum: %d/%d channels degraded: %v", failed, len(r.Channels), errs)
	}
	if failed == len(r.Channels) && failed > 0 {
		metrics.ObserveRetriever(r.Type(), start, 0)
		return format.ForumUnavailable, nil
	}

	posts := relevance.DropShort(all)
	posts = relevance.Dedupe(posts)
	posts = relevance.Filter(posts, query)
	posts = relevance.Rank(posts, relevance.DefaultTopN)

	metrics.ObserveRetriever(r.Type(), start, len(posts))
	if len(posts) == 0 {
		return format.NoForumResults, nil
	}
	return format.ForumPosts(posts), nil
}

// searchChannel issues every query variant against one channel. Variants
// run sequentially; the first failing request degrades the whole channel.
func (r *ForumRetriever) searchChannel(ctx context.Context, channel string, variants []string) ([]schema.ForumPost, error) {
	var posts []schema.ForumPost
	for _, variant := range variants {
		body, err := r.Client.Get(ctx, r.searchURL(channel, variant))
		if err != nil {
			return nil, err
		}
		page, err := parseListing(body, channel)
		if err != nil {
			return nil, err
		}
		posts = append(posts, page...)
	}
	return posts, nil
}

func (r *ForumRetriever) searchURL(channel, query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "on")
	params.Set("sort", "relevance")
	params.Set("t", "year")
	params.Set("limit", strconv.Itoa(r.PageSize))
	return fmt.Sprintf("%s/r/%s/search.json?%s", r.BaseURL, url.PathEscape(channel), params.Encode())
}

// parseListing maps one search listing payload to posts. A payload that is
// not valid JSON counts as a channel failure.
func parseListing(body []byte, channel string) ([]schema.ForumPost, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed search listing")
	}
	children := gjson.GetBytes(body, "data.children")
	posts := make([]schema.ForumPost, 0, len(children.Array()))
	children.ForEach(func(_, child gjson.Result) bool {
		d := child.Get("data")
		posts = append(posts, schema.ForumPost{
			Title:     d.Get("title").String(),
			Content:   d.Get("selftext").String(),
			Score:     int(d.Get("score").Int()),
			URL:       "https://reddit.com" + d.Get("permalink").String(),
			Channel:   d.Get("subreddit").String(),
			Author:    d.Get("author").String(),
			CreatedAt: time.Unix(int64(d.Get("created_utc").Float()), 0).UTC(),
		})
		return true
	})
	return posts, nil
}

// queryVariants synthesizes up to three alternate phrasings from any cuisine
// and location tokens found in the query, always keeping the original as the
// first variant. Detection is token-based, so multi-word neighborhoods do
// not produce variants.
func queryVariants(query string) []string {
	variants := []string{query}
	tokens := strings.Fields(strings.ToLower(query))
	cuisine := vocab.FirstToken(tokens, vocab.Cuisines)
	location := vocab.FirstToken(tokens, vocab.Locations)

	switch {
	case cuisine != "" && location != "":
		variants = append(variants,
			cuisine+" restaurant "+location,
			"best "+cuisine+" "+location,
			cuisine+" food "+location,
		)
	case cuisine != "":
		variants = append(variants, cuisine+" restaurant", "best "+cuisine)
	case location != "":
		variants = append(variants, "restaurant "+location, "food "+location)
	}
	return variants
}
