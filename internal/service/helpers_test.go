package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"prompt-lab/config"
	"prompt-lab/internal/database"
	"prompt-lab/internal/logger"
	"prompt-lab/internal/provider"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", ":", "_").Replace(t.Name())
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type stubAdapter struct {
	text   string
	chunks []string
	err    error

	calls   int
	prompts []string
	configs []provider.GenerationConfig
}

func (a *stubAdapter) Generate(_ context.Context, prompt string, cfg provider.GenerationConfig) (string, error) {
	a.calls++
	a.prompts = append(a.prompts, prompt)
	a.configs = append(a.configs, cfg)
	return a.text, a.err
}

func (a *stubAdapter) GenerateStream(_ context.Context, prompt string, cfg provider.GenerationConfig, onChunk provider.ChunkFunc) (string, error) {
	a.calls++
	a.prompts = append(a.prompts, prompt)
	a.configs = append(a.configs, cfg)

	var b strings.Builder
	for _, c := range a.chunks {
		if err := onChunk(c); err != nil {
			return b.String(), err
		}
		b.WriteString(c)
	}
	return b.String(), a.err
}

// newTestLLM 所有服务商都指向同一个 stub
func newTestLLM(t *testing.T, db *gorm.DB, stub *stubAdapter) *LLMService {
	t.Helper()

	registry := provider.NewRegistry()
	for _, p := range []provider.Provider{provider.OpenAI, provider.Anthropic, provider.DeepSeek, provider.Custom} {
		registry.Register(p, stub)
	}
	settings := NewSettingsService(db)
	require.NoError(t, settings.InitDefaults())
	return NewLLMService(registry, settings, logger.Nop())
}

func configWithDeepSeekKey() config.ProvidersConfig {
	cfg := config.Default().Providers
	cfg.DeepSeek.APIKey = "sk-deepseek"
	return cfg
}
