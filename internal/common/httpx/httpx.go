// Package httpx wraps the outbound HTTP client used by every retrieval
// channel. Each call carries a bounded timeout and a descriptive client
// identifier. There is deliberately no retry, backoff, or rate limiting:
// every upstream failure degrades to a smaller evidence set instead.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of an upstream response body is read. Search
// listings are small; anything larger is malformed or hostile.
const maxBodyBytes = 4 << 20

// Client is a thin outbound HTTP client with a fixed timeout and User-Agent.
type Client struct {
	hc        *http.Client
	userAgent string
}

// New builds a client with the given per-request timeout and User-Agent
// string sent on every request.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		DialContext:     (&net.Dialer{Timeout: timeout}).DialContext,
		MaxIdleConns:    100,
		IdleConnTimeout: 30 * time.Second,
	}
	return &Client{
		hc:        &http.Client{Timeout: timeout, Transport: transport},
		userAgent: userAgent,
	}
}

// Do performs the request, stamping the client identifier when the caller
// has not set one.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.hc.Do(req)
}

// Get fetches rawurl and returns the response body. Non-2xx statuses are
// reported as errors so callers can treat them as channel failures.
func (c *Client) Get(ctx context.Context, rawurl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected http status %d from %s", resp.StatusCode, req.URL.Host)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
