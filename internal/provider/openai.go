package provider

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// NewOpenAIAdapter serves the OpenAI-compatible family. The custom provider
// uses the same adapter with a caller-supplied base URL.
func NewOpenAIAdapter(name Provider, creds Credentials) *EinoAdapter {
	return NewEinoAdapter(name, creds, newOpenAIChatModel)
}

// NewDeepSeekAdapter serves DeepSeek through its dedicated client.
func NewDeepSeekAdapter(creds Credentials) *EinoAdapter {
	return NewEinoAdapter(DeepSeek, creds, newDeepSeekChatModel)
}

func newOpenAIChatModel(ctx context.Context, creds Credentials, cfg GenerationConfig) (model.BaseChatModel, error) {
	modelConfig := &openai.ChatModelConfig{
		APIKey:  creds.APIKey,
		BaseURL: creds.BaseURL,
		Model:   modelOrDefault(cfg),
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}
	return openai.NewChatModel(ctx, modelConfig)
}

func newDeepSeekChatModel(ctx context.Context, creds Credentials, cfg GenerationConfig) (model.BaseChatModel, error) {
	return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:    creds.APIKey,
		BaseURL:   creds.BaseURL,
		Model:     modelOrDefault(cfg),
		MaxTokens: cfg.MaxTokens,
	})
}

func modelOrDefault(cfg GenerationConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return DefaultModel(cfg.Provider)
}
