package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewAnthropicAdapter(Credentials{APIKey: "test-key", BaseURL: srv.URL}, 0)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func textReply(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	}
}

func TestAnthropicGenerate(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req["model"])
		assert.EqualValues(t, 1000, req["max_tokens"])
		assert.InDelta(t, 0.5, req["temperature"], 1e-9)

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 1)
		assert.Equal(t, map[string]any{"role": "user", "content": "hi"}, msgs[0])

		writeJSON(t, w, http.StatusOK, textReply("hello there"))
	})

	text, err := adapter.Generate(context.Background(), "hi", GenerationConfig{
		Provider:    Anthropic,
		Model:       "claude-test",
		Temperature: 0.5,
		MaxTokens:   1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestAnthropicGenerate_DefaultsModelAndTokens(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultAnthropicModel, req["model"])
		assert.EqualValues(t, defaultMaxTokens, req["max_tokens"])

		writeJSON(t, w, http.StatusOK, map[string]any{"content": []any{}})
	})

	text, err := adapter.Generate(context.Background(), "hi", GenerationConfig{Provider: Anthropic})
	require.NoError(t, err)
	assert.Equal(t, Placeholder, text)
}

func TestAnthropicGenerate_RequestKeyOverrides(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "request-key", r.Header.Get("x-api-key"))
		writeJSON(t, w, http.StatusOK, textReply("ok"))
	})

	_, err := adapter.Generate(context.Background(), "hi", GenerationConfig{Provider: Anthropic, APIKey: "request-key"})
	require.NoError(t, err)
}

func TestAnthropicGenerate_UpstreamStatusKeptInMessage(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"message": "invalid x-api-key"}})
	})

	_, err := adapter.Generate(context.Background(), "hi", GenerationConfig{Provider: Anthropic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestAnthropicGenerate_NoCredentials(t *testing.T) {
	adapter := NewAnthropicAdapter(Credentials{BaseURL: "http://127.0.0.1:1"}, 0)

	_, err := adapter.Generate(context.Background(), "hi", GenerationConfig{Provider: Anthropic})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, adapter.Configured())
}

func TestAnthropicGenerateStream_Simulated(t *testing.T) {
	adapter := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, textReply("one two three four"))
	})

	var chunks []string
	full, err := adapter.GenerateStream(context.Background(), "hi", GenerationConfig{Provider: Anthropic}, func(fragment string) error {
		chunks = append(chunks, fragment)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, chunks, 4)
	assert.Equal(t, "one two three four", full)
}
