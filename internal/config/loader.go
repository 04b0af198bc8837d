package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration in layers: defaults, optional config.yaml,
// .env file, then environment variables. Credentials keep their historical
// environment names (SERP_API_KEY, GOOGLE_GENERATIVE_AI_API_KEY).
func Load() (*Config, error) {
	// Best effort; a missing .env is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("web.api_key", "SERP_API_KEY")
	_ = v.BindEnv("llm.api_key", "GOOGLE_GENERATIVE_AI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("forum.base_url", "https://www.reddit.com")
	v.SetDefault("forum.channels", []string{"food", "restaurants", "nyc", "AskNYC"})
	v.SetDefault("forum.user_agent", "forkcast/1.0 (restaurant recommendation service)")
	v.SetDefault("forum.page_size", 5)
	v.SetDefault("web.endpoint", "https://serpapi.com/search")
	v.SetDefault("web.result_count", 10)
	v.SetDefault("llm.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.model", "gemini-1.5-flash")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2048)
}
