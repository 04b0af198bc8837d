// Command forkcast runs the restaurant recommendation chat service: it
// classifies each inbound question, retrieves evidence from discussion
// forums and a web-search provider concurrently, and hands the ranked
// evidence to a language model for the final answer.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkcast/forkcast/internal/common/httpx"
	"github.com/forkcast/forkcast/internal/common/logger"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/llm"
	"github.com/forkcast/forkcast/internal/orchestrator"
	"github.com/forkcast/forkcast/internal/retriever"
	"github.com/forkcast/forkcast/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync()

	client := httpx.New(cfg.HTTP.Timeout(), cfg.Forum.UserAgent)
	forum := retriever.NewForum(cfg.Forum, client)
	web := retriever.NewWeb(cfg.Web, client)
	summarizer := llm.NewGemini(cfg.LLM, client)

	if cfg.Web.APIKey == "" {
		logger.Warnf("web search provider key not set; web channel will report not configured")
	}
	if cfg.LLM.APIKey == "" {
		logger.Warnf("summarizer key not set; chat turns will return the apology message")
	}

	orch := orchestrator.New(forum, web, summarizer)
	srv := server.New(orch, &cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
