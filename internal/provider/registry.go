package provider

import (
	"context"
	"errors"
	"sort"
	"time"

	"prompt-lab/config"
)

// Registry dispatches calls to the adapter registered for a provider.
type Registry struct {
	adapters map[Provider]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[Provider]Adapter)}
}

// NewRegistryFromConfig registers every built-in provider family with the
// process-wide credentials from cfg. Custom endpoints get no server
// credentials; the caller supplies its own key.
func NewRegistryFromConfig(cfg config.ProvidersConfig, simulatedDelay time.Duration) *Registry {
	openaiCreds := Credentials{APIKey: cfg.OpenAI.APIKey, BaseURL: cfg.OpenAI.BaseURL}

	r := NewRegistry()
	r.Register(OpenAI, NewOpenAIAdapter(OpenAI, openaiCreds))
	r.Register(Custom, NewOpenAIAdapter(Custom, Credentials{}))
	r.Register(DeepSeek, NewDeepSeekAdapter(Credentials{APIKey: cfg.DeepSeek.APIKey, BaseURL: cfg.DeepSeek.BaseURL}))
	r.Register(Anthropic, NewAnthropicAdapter(Credentials{APIKey: cfg.Anthropic.APIKey, BaseURL: cfg.Anthropic.BaseURL}, simulatedDelay))
	return r
}

func (r *Registry) Register(p Provider, a Adapter) {
	r.adapters[p] = a
}

// Adapter returns the adapter for p, or ErrUnavailable.
func (r *Registry) Adapter(p Provider) (Adapter, error) {
	a, ok := r.adapters[p]
	if !ok {
		return nil, ErrUnavailable
	}
	return a, nil
}

// Providers lists the registered provider names in sorted order.
func (r *Registry) Providers() []Provider {
	names := make([]Provider, 0, len(r.adapters))
	for p := range r.adapters {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Configured reports whether p has process-wide credentials. Adapters that
// cannot tell are treated as configured.
func (r *Registry) Configured(p Provider) bool {
	a, ok := r.adapters[p]
	if !ok {
		return false
	}
	if c, ok := a.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

func (r *Registry) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	a, err := r.Adapter(cfg.Provider)
	if err != nil {
		return "", err
	}
	text, err := a.Generate(ctx, prompt, cfg)
	return text, wrap(cfg.Provider, err)
}

func (r *Registry) GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, onChunk ChunkFunc) (string, error) {
	a, err := r.Adapter(cfg.Provider)
	if err != nil {
		return "", err
	}
	text, err := a.GenerateStream(ctx, prompt, cfg, onChunk)
	return text, wrap(cfg.Provider, err)
}

func wrap(p Provider, err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	return &UpstreamError{Provider: p, Err: err}
}
