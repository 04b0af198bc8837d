// Package config loads service configuration from an optional config.yaml,
// a .env file, and environment variables. Upstream credentials are plain
// configuration: a missing web-search key is a valid state the retriever
// reports explicitly, not an error at load time.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Forum   ForumConfig   `mapstructure:"forum"`
	Web     WebConfig     `mapstructure:"web"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// ServerConfig configures the inbound HTTP boundary.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// HTTPConfig bounds every outbound call. There is no retry or backoff
// setting on purpose; failures degrade instead of being retried.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the outbound per-request timeout.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ForumConfig configures the discussion-forum channel set.
type ForumConfig struct {
	BaseURL   string   `mapstructure:"base_url"`
	Channels  []string `mapstructure:"channels"`
	UserAgent string   `mapstructure:"user_agent"`
	PageSize  int      `mapstructure:"page_size"`
}

// WebConfig configures the web-search provider. An empty APIKey means the
// provider is not configured for this deployment.
type WebConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	ResultCount int    `mapstructure:"result_count"`
}

// LLMConfig configures the summarization collaborator.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Endpoint    string  `mapstructure:"endpoint"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive")
	}
	if cfg.Forum.BaseURL == "" {
		return fmt.Errorf("forum.base_url must be set")
	}
	if len(cfg.Forum.Channels) == 0 {
		return fmt.Errorf("forum.channels must list at least one channel")
	}
	if cfg.Forum.PageSize <= 0 {
		return fmt.Errorf("forum.page_size must be positive")
	}
	if cfg.Web.ResultCount <= 0 {
		return fmt.Errorf("web.result_count must be positive")
	}
	return nil
}
