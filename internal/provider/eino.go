package provider

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelFactory builds an eino chat model for one call.
type ChatModelFactory func(ctx context.Context, creds Credentials, cfg GenerationConfig) (model.BaseChatModel, error)

// EinoAdapter serves provider families reachable through an eino chat model.
// Both families behind it stream natively.
type EinoAdapter struct {
	name     Provider
	creds    Credentials
	newModel ChatModelFactory
}

// NewEinoAdapter creates an adapter that resolves credentials against creds
// and builds its chat model with newModel.
func NewEinoAdapter(name Provider, creds Credentials, newModel ChatModelFactory) *EinoAdapter {
	return &EinoAdapter{name: name, creds: creds, newModel: newModel}
}

// Configured reports whether process-wide credentials exist.
func (a *EinoAdapter) Configured() bool {
	return a.creds.Usable()
}

func (a *EinoAdapter) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	cm, err := a.chatModel(ctx, cfg)
	if err != nil {
		return "", err
	}

	msg, err := cm.Generate(ctx, userMessages(prompt), callOptions(cfg)...)
	if err != nil {
		return "", err
	}

	if msg == nil || msg.Content == "" {
		return Placeholder, nil
	}
	return msg.Content, nil
}

func (a *EinoAdapter) GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, onChunk ChunkFunc) (string, error) {
	cm, err := a.chatModel(ctx, cfg)
	if err != nil {
		return "", err
	}

	sr, err := cm.Stream(ctx, userMessages(prompt), callOptions(cfg)...)
	if err != nil {
		return "", err
	}
	defer sr.Close()

	var full strings.Builder
	for {
		frame, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return full.String(), err
		}

		if frame == nil || frame.Content == "" {
			continue
		}

		full.WriteString(frame.Content)
		if err := onChunk(frame.Content); err != nil {
			return full.String(), err
		}
	}

	return full.String(), nil
}

func (a *EinoAdapter) chatModel(ctx context.Context, cfg GenerationConfig) (model.BaseChatModel, error) {
	creds := a.creds.Merge(cfg)
	if !creds.Usable() {
		return nil, ErrUnavailable
	}
	return a.newModel(ctx, creds, cfg)
}

func userMessages(prompt string) []*schema.Message {
	return []*schema.Message{schema.UserMessage(prompt)}
}

func callOptions(cfg GenerationConfig) []model.Option {
	opts := []model.Option{
		model.WithTemperature(float32(cfg.Temperature)),
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.TopP != nil {
		opts = append(opts, model.WithTopP(float32(*cfg.TopP)))
	}
	return opts
}
