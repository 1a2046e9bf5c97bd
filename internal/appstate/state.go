// Package appstate holds client-side application state as an explicit
// value. Every transition returns a new State and leaves its receiver
// untouched.
package appstate

import (
	"encoding/json"
	"errors"
	"os"

	"prompt-lab/internal/model"
	"prompt-lab/internal/provider"
)

// AIConfig 客户端保存的生成配置, 会随请求发送
type AIConfig struct {
	Provider    provider.Provider `json:"provider"`
	Model       string            `json:"model"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"maxTokens"`
	TopP        *float64          `json:"topP,omitempty"`
	APIKey      string            `json:"apiKey,omitempty"`
	BaseURL     string            `json:"baseURL,omitempty"`
}

// AIConfigPatch 只覆盖非空字段
type AIConfigPatch struct {
	Provider    *provider.Provider `json:"provider,omitempty"`
	Model       *string            `json:"model,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	MaxTokens   *int               `json:"maxTokens,omitempty"`
	TopP        *float64           `json:"topP,omitempty"`
	APIKey      *string            `json:"apiKey,omitempty"`
	BaseURL     *string            `json:"baseURL,omitempty"`
}

type State struct {
	AIConfig       AIConfig
	CurrentSession *model.PromptSession
	Sessions       []model.PromptSession
	Templates      []model.PromptTemplate
	Loading        bool
	ActiveTab      string
	Error          string
}

func DefaultAIConfig() AIConfig {
	return AIConfig{
		Provider:    provider.DeepSeek,
		Model:       "deepseek-chat",
		Temperature: 0.7,
		MaxTokens:   2000,
		BaseURL:     "https://api.deepseek.com/v1",
	}
}

func New() State {
	return State{
		AIConfig:  DefaultAIConfig(),
		ActiveTab: string(model.TypeZeroShot),
	}
}

func (s State) WithAIConfig(p AIConfigPatch) State {
	c := s.AIConfig
	if p.Provider != nil {
		c.Provider = *p.Provider
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Temperature != nil {
		c.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		c.MaxTokens = *p.MaxTokens
	}
	if p.TopP != nil {
		v := *p.TopP
		c.TopP = &v
	}
	if p.APIKey != nil {
		c.APIKey = *p.APIKey
	}
	if p.BaseURL != nil {
		c.BaseURL = *p.BaseURL
	}
	s.AIConfig = c
	return s
}

func (s State) WithCurrentSession(session *model.PromptSession) State {
	s.CurrentSession = session
	return s
}

// AddSession 新会话排在最前
func (s State) AddSession(session model.PromptSession) State {
	s.Sessions = prepend(s.Sessions, session)
	return s
}

func (s State) WithSessions(sessions []model.PromptSession) State {
	s.Sessions = append([]model.PromptSession(nil), sessions...)
	return s
}

func (s State) WithTemplates(templates []model.PromptTemplate) State {
	s.Templates = append([]model.PromptTemplate(nil), templates...)
	return s
}

func (s State) AddTemplate(t model.PromptTemplate) State {
	s.Templates = prepend(s.Templates, t)
	return s
}

func (s State) WithLoading(loading bool) State {
	s.Loading = loading
	return s
}

func (s State) WithActiveTab(tab string) State {
	s.ActiveTab = tab
	return s
}

// WithError 空字符串清除错误
func (s State) WithError(msg string) State {
	s.Error = msg
	return s
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// LoadAIConfig 从文件读取补丁并应用, 文件不存在时保持原样
func (s State) LoadAIConfig(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	var patch AIConfigPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return s, err
	}
	return s.WithAIConfig(patch), nil
}

// SaveAIConfig 持久化当前配置, 包含 apiKey, 文件权限仅限本人
func (s State) SaveAIConfig(path string) error {
	data, err := json.MarshalIndent(s.AIConfig, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
