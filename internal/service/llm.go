package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"prompt-lab/internal/logger"
	"prompt-lab/internal/provider"
)

// ConfigOverride 请求中携带的生成参数, 缺省字段使用服务端默认值
type ConfigOverride struct {
	Provider    provider.Provider `json:"provider"`
	Model       string            `json:"model"`
	Temperature *float64          `json:"temperature" binding:"omitempty,min=0,max=2"`
	MaxTokens   *int              `json:"maxTokens" binding:"omitempty,gt=0"`
	TopP        *float64          `json:"topP" binding:"omitempty,min=0,max=1"`
	APIKey      string            `json:"apiKey"`
	BaseURL     string            `json:"baseURL"`
}

// Preset 场景固定的采样参数, 优先级介于默认值和请求之间
type Preset struct {
	Temperature *float64
	MaxTokens   *int
}

// Result 一次完整生成的结果
type Result struct {
	Text    string
	Config  provider.GenerationConfig
	Elapsed time.Duration
}

type LLMService struct {
	registry *provider.Registry
	settings *SettingsService
	log      *logger.Logger
	tracer   trace.Tracer
}

func NewLLMService(registry *provider.Registry, settings *SettingsService, log *logger.Logger) *LLMService {
	return &LLMService{
		registry: registry,
		settings: settings,
		log:      log.With("service", "LLMService"),
		tracer:   otel.Tracer("prompt-lab/service"),
	}
}

// Resolve 合并默认值, 场景参数和请求参数
func (s *LLMService) Resolve(override *ConfigOverride, preset Preset) (provider.GenerationConfig, error) {
	cfg, err := s.settings.Defaults()
	if err != nil {
		return provider.GenerationConfig{}, err
	}

	if preset.Temperature != nil {
		cfg.Temperature = *preset.Temperature
	}
	if preset.MaxTokens != nil {
		cfg.MaxTokens = *preset.MaxTokens
	}

	if override == nil {
		return cfg, nil
	}
	if override.Provider != "" {
		// 换了服务商, 默认的 base url 和模型不再适用
		if override.Provider != cfg.Provider {
			cfg.BaseURL = ""
			cfg.Model = provider.DefaultModel(override.Provider)
		}
		cfg.Provider = override.Provider
	}
	if override.Model != "" {
		cfg.Model = override.Model
	}
	if override.Temperature != nil {
		cfg.Temperature = *override.Temperature
	}
	if override.MaxTokens != nil {
		cfg.MaxTokens = *override.MaxTokens
	}
	if override.TopP != nil {
		cfg.TopP = override.TopP
	}
	if override.APIKey != "" {
		cfg.APIKey = override.APIKey
	}
	if override.BaseURL != "" {
		cfg.BaseURL = override.BaseURL
	}
	return cfg, nil
}

// Generate 调用LLM, 返回完整响应
func (s *LLMService) Generate(ctx context.Context, prompt string, cfg provider.GenerationConfig) (*Result, error) {
	ctx, span := s.startSpan(ctx, "llm.generate", cfg)
	defer span.End()

	start := time.Now()
	text, err := s.registry.Generate(ctx, prompt, cfg)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(span, cfg, elapsed, err)
		return nil, err
	}

	s.log.Info("API call completed", "provider", cfg.Provider, "model", cfg.Model, "elapsed_ms", elapsed.Milliseconds())
	return &Result{Text: text, Config: cfg, Elapsed: elapsed}, nil
}

// GenerateStream 流式调用, onChunk 按到达顺序收到每个片段
func (s *LLMService) GenerateStream(ctx context.Context, prompt string, cfg provider.GenerationConfig, onChunk provider.ChunkFunc) (*Result, error) {
	ctx, span := s.startSpan(ctx, "llm.generate_stream", cfg)
	defer span.End()

	start := time.Now()
	text, err := s.registry.GenerateStream(ctx, prompt, cfg, onChunk)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(span, cfg, elapsed, err)
		return nil, err
	}

	s.log.Info("Stream API call completed", "provider", cfg.Provider, "model", cfg.Model, "elapsed_ms", elapsed.Milliseconds())
	return &Result{Text: text, Config: cfg, Elapsed: elapsed}, nil
}

// TestConnection 使用请求提供的配置发送测试消息
func (s *LLMService) TestConnection(ctx context.Context, override *ConfigOverride, testPrompt string) (*Result, error) {
	cfg, err := s.Resolve(override, Preset{})
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, testPrompt, cfg)
}

// DescribeConnectionError 把连接测试失败转换为可读提示
func DescribeConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"):
		return "API Key 验证失败，请检查密钥是否正确"
	case strings.Contains(msg, "404"):
		return "API 端点不存在，请检查 Base URL 和模型名称"
	case strings.Contains(msg, "timeout") || errors.Is(err, context.DeadlineExceeded):
		return "连接超时，请检查网络或 API 服务状态"
	}
	return msg
}

func (s *LLMService) startSpan(ctx context.Context, name string, cfg provider.GenerationConfig) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("llm.provider", string(cfg.Provider)),
		attribute.String("llm.model", cfg.Model),
		attribute.Float64("llm.temperature", cfg.Temperature),
		attribute.Int("llm.max_tokens", cfg.MaxTokens),
	))
}

func (s *LLMService) fail(span trace.Span, cfg provider.GenerationConfig, elapsed time.Duration, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.log.Error("AI API调用失败", "provider", cfg.Provider, "model", cfg.Model, "elapsed_ms", elapsed.Milliseconds(), "error", err)
}
