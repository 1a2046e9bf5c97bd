package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-lab/internal/provider"
)

func TestResolve_Precedence(t *testing.T) {
	llm := newTestLLM(t, newTestDB(t), &stubAdapter{})

	cfg, err := llm.Resolve(nil, Preset{})
	require.NoError(t, err)
	assert.Equal(t, provider.OpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, 2000, cfg.MaxTokens)

	cfg, err = llm.Resolve(nil, prdPreset)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 4000, cfg.MaxTokens)

	temp := 1.5
	cfg, err = llm.Resolve(&ConfigOverride{
		Provider:    provider.DeepSeek,
		Model:       "deepseek-chat",
		Temperature: &temp,
		APIKey:      "sk-request",
		BaseURL:     "https://proxy.example.com/v1",
	}, prdPreset)
	require.NoError(t, err)
	assert.Equal(t, provider.DeepSeek, cfg.Provider)
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.InDelta(t, 1.5, cfg.Temperature, 1e-9)
	assert.Equal(t, 4000, cfg.MaxTokens)
	assert.Equal(t, "sk-request", cfg.APIKey)
	assert.Equal(t, "https://proxy.example.com/v1", cfg.BaseURL)
}

func TestResolve_ProviderChangeResetsModel(t *testing.T) {
	llm := newTestLLM(t, newTestDB(t), &stubAdapter{})

	cfg, err := llm.Resolve(&ConfigOverride{Provider: provider.Anthropic, APIKey: "k"}, Preset{})
	require.NoError(t, err)
	assert.Equal(t, "claude-3-sonnet-20240229", cfg.Model)
	assert.Empty(t, cfg.BaseURL)

	// 同一服务商保留服务端模型
	cfg, err = llm.Resolve(&ConfigOverride{Provider: provider.OpenAI}, Preset{})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", cfg.Model)
}

func TestGenerate_ReturnsTextAndConfig(t *testing.T) {
	stub := &stubAdapter{text: "Hello"}
	llm := newTestLLM(t, newTestDB(t), stub)

	cfg, err := llm.Resolve(nil, Preset{})
	require.NoError(t, err)

	res, err := llm.Generate(context.Background(), "Say hello", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Hello", res.Text)
	assert.Equal(t, cfg, res.Config)
	assert.Equal(t, []string{"Say hello"}, stub.prompts)
}

func TestGenerate_WrapsUpstreamError(t *testing.T) {
	stub := &stubAdapter{err: errors.New("status 401: invalid api key")}
	llm := newTestLLM(t, newTestDB(t), stub)

	cfg, err := llm.Resolve(nil, Preset{})
	require.NoError(t, err)

	_, err = llm.Generate(context.Background(), "hi", cfg)
	var upstream *provider.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, err.Error(), "401")
}

func TestGenerateStream_ForwardsChunks(t *testing.T) {
	stub := &stubAdapter{chunks: []string{"Hel", "lo"}}
	llm := newTestLLM(t, newTestDB(t), stub)

	cfg, err := llm.Resolve(nil, Preset{})
	require.NoError(t, err)

	var got []string
	res, err := llm.GenerateStream(context.Background(), "hi", cfg, func(fragment string) error {
		got = append(got, fragment)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, got)
	assert.Equal(t, "Hello", res.Text)
}

func TestScenarioPresets(t *testing.T) {
	stub := &stubAdapter{text: "ok"}
	llm := newTestLLM(t, newTestDB(t), stub)
	ctx := context.Background()

	_, err := llm.GenerateMetaPrompt(ctx, "代码审查", "金融", nil)
	require.NoError(t, err)
	_, err = llm.GeneratePRD(ctx, "在线协作文档", "", nil)
	require.NoError(t, err)
	_, err = llm.ReviewCode(ctx, "func f() {}", "go", nil)
	require.NoError(t, err)
	_, err = llm.DebugError(ctx, "nil pointer dereference", "", "", nil)
	require.NoError(t, err)

	require.Len(t, stub.configs, 4)
	assert.InDelta(t, 0.3, stub.configs[0].Temperature, 1e-9)
	assert.Equal(t, 2000, stub.configs[0].MaxTokens)
	assert.InDelta(t, 0.2, stub.configs[1].Temperature, 1e-9)
	assert.Equal(t, 4000, stub.configs[1].MaxTokens)
	assert.InDelta(t, 0.3, stub.configs[2].Temperature, 1e-9)
	assert.Equal(t, 3000, stub.configs[2].MaxTokens)
	assert.InDelta(t, 0.3, stub.configs[3].Temperature, 1e-9)

	assert.Contains(t, stub.prompts[0], `为"代码审查"场景在"金融"领域`)
	assert.Contains(t, stub.prompts[1], "暂无额外背景信息")
	assert.Contains(t, stub.prompts[2], "```go\nfunc f() {}\n```")
	assert.NotContains(t, stub.prompts[3], "**相关代码:**")
}

func TestDescribeConnectionError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("status 401: Unauthorized"), "API Key 验证失败，请检查密钥是否正确"},
		{errors.New("status 404: model not found"), "API 端点不存在，请检查 Base URL 和模型名称"},
		{errors.New("dial tcp: i/o timeout"), "连接超时，请检查网络或 API 服务状态"},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), "连接超时，请检查网络或 API 服务状态"},
		{errors.New("connection refused"), "connection refused"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DescribeConnectionError(tc.err))
	}
}
