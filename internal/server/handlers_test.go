package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/schema"
)

type stubBot struct {
	lastMessage string
	resp        schema.ChatResponse
}

func (s *stubBot) Process(_ context.Context, message string) schema.ChatResponse {
	s.lastMessage = message
	return s.resp
}

func newTestServer(bot Chatbot) *Server {
	return New(bot, &config.ServerConfig{Host: "127.0.0.1", Port: 0})
}

func TestHandleChat(t *testing.T) {
	bot := &stubBot{resp: schema.ChatResponse{
		Message: "Try Soothr.",
		Sources: schema.SourcesPayload{Reddit: "forum block"},
	}}
	srv := newTestServer(bot)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"best thai food"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "best thai food", bot.lastMessage)

	var resp schema.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Try Soothr.", resp.Message)
	assert.Equal(t, "forum block", resp.Sources.Reddit)
	assert.Empty(t, resp.Sources.Web)
}

func TestHandleChatOmitsEmptySources(t *testing.T) {
	srv := newTestServer(&stubBot{resp: schema.ChatResponse{Message: "hi"}})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, `"reddit"`)
	assert.NotContains(t, body, `"web"`)
}

func TestHandleChatBadBody(t *testing.T) {
	srv := newTestServer(&stubBot{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
