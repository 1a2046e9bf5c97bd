package appstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-lab/internal/model"
	"prompt-lab/internal/provider"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, provider.DeepSeek, s.AIConfig.Provider)
	assert.Equal(t, "deepseek-chat", s.AIConfig.Model)
	assert.Equal(t, 2000, s.AIConfig.MaxTokens)
	assert.Equal(t, "https://api.deepseek.com/v1", s.AIConfig.BaseURL)
	assert.Equal(t, "zero-shot", s.ActiveTab)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
}

func TestWithAIConfig_MergesPartially(t *testing.T) {
	before := New()
	m := "gpt-4"
	p := provider.OpenAI

	after := before.WithAIConfig(AIConfigPatch{Provider: &p, Model: &m})

	assert.Equal(t, provider.OpenAI, after.AIConfig.Provider)
	assert.Equal(t, "gpt-4", after.AIConfig.Model)
	assert.InDelta(t, 0.7, after.AIConfig.Temperature, 1e-9)
	assert.Equal(t, provider.DeepSeek, before.AIConfig.Provider)
}

func TestAddSession_PrependsWithoutMutating(t *testing.T) {
	base := New().WithSessions([]model.PromptSession{{ID: "a"}})
	next := base.AddSession(model.PromptSession{ID: "b"})

	require.Len(t, next.Sessions, 2)
	assert.Equal(t, "b", next.Sessions[0].ID)
	assert.Equal(t, "a", next.Sessions[1].ID)
	require.Len(t, base.Sessions, 1)
	assert.Equal(t, "a", base.Sessions[0].ID)
}

func TestAddTemplate_Prepends(t *testing.T) {
	s := New().AddTemplate(model.PromptTemplate{ID: "1"}).AddTemplate(model.PromptTemplate{ID: "2"})
	require.Len(t, s.Templates, 2)
	assert.Equal(t, "2", s.Templates[0].ID)
}

func TestSimpleTransitions(t *testing.T) {
	session := &model.PromptSession{ID: "s"}
	s := New().WithLoading(true).WithActiveTab("few-shot").WithError("boom").WithCurrentSession(session)

	assert.True(t, s.Loading)
	assert.Equal(t, "few-shot", s.ActiveTab)
	assert.Equal(t, "boom", s.Error)
	assert.Same(t, session, s.CurrentSession)
	assert.Empty(t, s.WithError("").Error)
}

func TestAIConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai.json")

	missing, err := New().LoadAIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAIConfig(), missing.AIConfig)

	key := "sk-local"
	saved := New().WithAIConfig(AIConfigPatch{APIKey: &key})
	require.NoError(t, saved.SaveAIConfig(path))

	loaded, err := New().LoadAIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, saved.AIConfig, loaded.AIConfig)
}
