package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"prompt-lab/config"
	"prompt-lab/internal/database"
	"prompt-lab/internal/logger"
	"prompt-lab/internal/provider"
	"prompt-lab/internal/service"
)

type stubAdapter struct {
	text   string
	chunks []string
	err    error

	calls   int
	configs []provider.GenerationConfig
}

func (a *stubAdapter) Generate(_ context.Context, _ string, cfg provider.GenerationConfig) (string, error) {
	a.calls++
	a.configs = append(a.configs, cfg)
	return a.text, a.err
}

func (a *stubAdapter) GenerateStream(_ context.Context, _ string, cfg provider.GenerationConfig, onChunk provider.ChunkFunc) (string, error) {
	a.calls++
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

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	h      *Handler
}

// newTestEnv 所有服务商注册为 stub, 可用 adapters 覆盖个别服务商
func newTestEnv(t *testing.T, stub provider.Adapter, adapters map[provider.Provider]provider.Adapter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	require.NoError(t, service.NewSettingsService(db).InitDefaults())

	registry := provider.NewRegistry()
	for _, p := range []provider.Provider{provider.OpenAI, provider.Anthropic, provider.DeepSeek, provider.Custom} {
		registry.Register(p, stub)
	}
	for p, a := range adapters {
		registry.Register(p, a)
	}

	h := NewHandler(db, registry, logger.Nop())
	return &testEnv{router: NewRouter(h, logger.Nop(), "prompt-lab-test"), db: db, h: h}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
