// Package provider adapts chat-completion backends to a single
// Generate/GenerateStream contract so callers never branch on provider
// identity.
package provider

import (
	"context"
	"errors"
	"strings"
)

// Provider names a provider family.
type Provider string

const (
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
	DeepSeek  Provider = "deepseek"
	Custom    Provider = "custom"
)

// Known reports whether p is one of the built-in provider families.
func Known(p Provider) bool {
	switch p {
	case OpenAI, Anthropic, DeepSeek, Custom:
		return true
	}
	return false
}

// DefaultModel is the model used for p when neither the server settings nor
// the request name one for that family.
func DefaultModel(p Provider) string {
	switch p {
	case Anthropic:
		return defaultAnthropicModel
	case DeepSeek:
		return "deepseek-chat"
	case OpenAI, Custom:
		return "gpt-4"
	}
	return ""
}

// Placeholder is returned when a provider answers without any content.
const Placeholder = "无法生成响应"

// ErrUnavailable is returned when neither the process configuration nor the
// request supplies a usable credential for the requested provider.
var ErrUnavailable = errors.New("未配置可用的AI服务提供商")

// UpstreamError wraps a failed provider call. The message keeps the
// upstream text so callers can still match on status codes.
type UpstreamError struct {
	Provider Provider
	Err      error
}

func (e *UpstreamError) Error() string {
	return "AI服务暂时不可用: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// GenerationConfig is the per-request generation setting. It is built by
// the caller and passed through unchanged.
type GenerationConfig struct {
	Provider    Provider `json:"provider"`
	Model       string   `json:"model"`
	Temperature float64  `json:"temperature"`
	MaxTokens   int      `json:"maxTokens"`
	TopP        *float64 `json:"topP,omitempty"`
	APIKey      string   `json:"-"`
	BaseURL     string   `json:"baseURL,omitempty"`
}

// ChunkFunc receives one fragment of a streamed response. Returning an
// error stops the stream.
type ChunkFunc func(fragment string) error

// Adapter is implemented once per provider family.
type Adapter interface {
	// Generate sends prompt as the only user message and returns the first
	// completion's text.
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
	// GenerateStream behaves like Generate but calls onChunk for every
	// fragment in arrival order and returns the accumulated text.
	GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, onChunk ChunkFunc) (string, error)
}

// Credentials holds the process-wide fallback for one provider family.
type Credentials struct {
	APIKey  string
	BaseURL string
}

// Merge applies the request-level overrides from cfg.
func (c Credentials) Merge(cfg GenerationConfig) Credentials {
	if cfg.APIKey != "" {
		c.APIKey = cfg.APIKey
	}
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Usable reports whether a call can be attempted with these credentials.
func (c Credentials) Usable() bool {
	return c.APIKey != ""
}
