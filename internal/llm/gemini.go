package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/forkcast/forkcast/internal/common/httpx"
	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/schema"
)

const systemInstruction = "You are a helpful restaurant recommendation assistant. " +
	"You have access to Reddit reviews and web search results to provide accurate, " +
	"up-to-date restaurant recommendations. Always be helpful, accurate, and provide " +
	"actionable recommendations. When search results are included, synthesize them " +
	"into a comprehensive response and attribute claims to their source."

// GeminiProvider calls the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	Client      *httpx.Client
}

// NewGemini builds a provider from configuration.
func NewGemini(cfg config.LLMConfig, client *httpx.Client) *GeminiProvider {
	return &GeminiProvider{
		APIKey:      cfg.APIKey,
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Client:      client,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Summarize sends the assembled prompt to the model and returns its text.
func (g *GeminiProvider) Summarize(ctx context.Context, userMessage string, evidence schema.EvidenceBundle) (string, error) {
	if g.APIKey == "" {
		return "", ErrNotConfigured
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: BuildPrompt(userMessage, evidence)}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     g.Temperature,
			MaxOutputTokens: g.MaxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.Endpoint, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	text := gjson.GetBytes(respBody, "candidates.0.content.parts.0.text").String()
	if text == "" {
		return "", fmt.Errorf("model response contained no text")
	}
	return text, nil
}
