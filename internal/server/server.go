// Package server provides the inbound HTTP boundary: one chat endpoint per
// user turn, plus health and metrics. It holds no routing logic beyond
// decoding the turn and encoding the response.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forkcast/forkcast/internal/common/logger"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/schema"
)

// Chatbot is the orchestrator contract the server depends on.
type Chatbot interface {
	Process(ctx context.Context, message string) schema.ChatResponse
}

// Server is the HTTP server for the chat API.
type Server struct {
	bot    Chatbot
	cfg    *config.ServerConfig
	server *http.Server
}

// New creates a server around the given chatbot.
func New(bot Chatbot, cfg *config.ServerConfig) *Server {
	return &Server{bot: bot, cfg: cfg}
}

// Router builds the chi router with the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/chat", s.handleChat)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	logger.Infof("listening on %s", addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
