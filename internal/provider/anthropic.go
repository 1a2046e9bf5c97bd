package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	messagesPath          = "/v1/messages"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-3-sonnet-20240229"
	defaultMaxTokens      = 2000
)

// AnthropicAdapter calls the Anthropic Messages API. The API is used without
// incremental delivery, so streams are replayed through SimulateStream.
type AnthropicAdapter struct {
	creds  Credentials
	client *resty.Client
	delay  time.Duration
}

// NewAnthropicAdapter creates an adapter; delay is the pause between words
// of a simulated stream.
func NewAnthropicAdapter(creds Credentials, delay time.Duration) *AnthropicAdapter {
	client := resty.New()
	client.SetTimeout(2 * time.Minute)

	return &AnthropicAdapter{
		creds:  creds,
		client: client,
		delay:  delay,
	}
}

func (a *AnthropicAdapter) Configured() bool {
	return a.creds.Usable()
}

type messagesRequest struct {
	Model       string           `json:"model"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	TopP        *float64         `json:"top_p,omitempty"`
	Messages    []messageRequest `json:"messages"`
}

type messageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (a *AnthropicAdapter) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	creds := a.creds.Merge(cfg)
	if !creds.Usable() {
		return "", ErrUnavailable
	}

	req := messagesRequest{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		Messages:    []messageRequest{{Role: "user", Content: prompt}},
	}
	if req.Model == "" {
		req.Model = defaultAnthropicModel
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}

	var out messagesResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", creds.APIKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(req).
		SetResult(&out).
		Post(creds.BaseURL + messagesPath)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("anthropic: unexpected status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(out.Content) == 0 || out.Content[0].Type != "text" {
		return Placeholder, nil
	}
	return out.Content[0].Text, nil
}

func (a *AnthropicAdapter) GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, onChunk ChunkFunc) (string, error) {
	text, err := a.Generate(ctx, prompt, cfg)
	if err != nil {
		return "", err
	}
	return SimulateStream(ctx, text, a.delay, onChunk)
}
