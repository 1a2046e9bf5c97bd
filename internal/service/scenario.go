package service

import "context"

func ptr[T any](v T) *T { return &v }

// 各场景的采样参数, 结构化输出使用较低温度
var (
	metaPromptPreset = Preset{Temperature: ptr(0.3)}
	prdPreset        = Preset{Temperature: ptr(0.2), MaxTokens: ptr(4000)}
	codeReviewPreset = Preset{Temperature: ptr(0.3), MaxTokens: ptr(3000)}
	debugPreset      = Preset{Temperature: ptr(0.3)}
)

// GenerateMetaPrompt 生成元Prompt
func (s *LLMService) GenerateMetaPrompt(ctx context.Context, scenario, domain string, override *ConfigOverride) (*Result, error) {
	return s.run(ctx, MetaPrompt(scenario, domain), metaPromptPreset, override)
}

// GeneratePRD 生成PRD
func (s *LLMService) GeneratePRD(ctx context.Context, requirements, background string, override *ConfigOverride) (*Result, error) {
	return s.run(ctx, PRDPrompt(requirements, background), prdPreset, override)
}

// ReviewCode 代码审查
func (s *LLMService) ReviewCode(ctx context.Context, code, language string, override *ConfigOverride) (*Result, error) {
	return s.run(ctx, CodeReviewPrompt(code, language), codeReviewPreset, override)
}

// DebugError 调试助手
func (s *LLMService) DebugError(ctx context.Context, errMsg, code, background string, override *ConfigOverride) (*Result, error) {
	return s.run(ctx, DebugPrompt(errMsg, code, background), debugPreset, override)
}

func (s *LLMService) run(ctx context.Context, prompt string, preset Preset, override *ConfigOverride) (*Result, error) {
	cfg, err := s.Resolve(override, preset)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, prompt, cfg)
}
