package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-lab/internal/model"
	"prompt-lab/internal/service"
)

type fixedScheduler time.Time

func (s fixedScheduler) GetNextCleanupTime() time.Time { return time.Time(s) }

func TestHealth(t *testing.T) {
	env := newTestEnv(t, &stubAdapter{}, nil)

	rec := env.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t, &stubAdapter{}, nil)

	var archs []service.Architecture
	require.NoError(t, json.Unmarshal(decode(t, env.do(http.MethodGet, "/api/architectures", nil)).Data, &archs))
	assert.Len(t, archs, 4)

	var scenarios []service.Scenario
	require.NoError(t, json.Unmarshal(decode(t, env.do(http.MethodGet, "/api/scenarios", nil)).Data, &scenarios))
	assert.Len(t, scenarios, 4)

	var presets []service.ProviderPreset
	require.NoError(t, json.Unmarshal(decode(t, env.do(http.MethodGet, "/api/providers", nil)).Data, &presets))
	assert.Len(t, presets, 4)
}

func TestConfigEndpoints(t *testing.T) {
	env := newTestEnv(t, &stubAdapter{text: "ok"}, nil)

	rec := env.do(http.MethodPost, "/api/config", map[string]string{
		model.ConfigLLMProvider: "deepseek",
		model.ConfigLLMModel:    "deepseek-chat",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var values map[string]string
	require.NoError(t, json.Unmarshal(decode(t, env.do(http.MethodGet, "/api/config", nil)).Data, &values))
	assert.Equal(t, "deepseek", values[model.ConfigLLMProvider])
	assert.Equal(t, "0.7", values[model.ConfigLLMTemperature])

	rec = env.do(http.MethodPost, "/api/config", map[string]string{model.ConfigLLMTemperature: "9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t, &stubAdapter{text: "ok"}, nil)
	next := time.Date(2030, 1, 2, 3, 0, 0, 0, time.UTC)
	env.h.SetScheduler(fixedScheduler(next))

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/generate", map[string]string{"prompt": "hi"}).Code)

	var status service.SystemStatus
	require.NoError(t, json.Unmarshal(decode(t, env.do(http.MethodGet, "/api/status", nil)).Data, &status))
	assert.Equal(t, int64(1), status.TotalSessions)
	assert.True(t, next.Equal(status.NextCleanupTime))
}
