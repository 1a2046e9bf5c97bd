package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"prompt-lab/internal/model"
	"prompt-lab/internal/provider"
)

// ErrInvalidSetting 配置值不合法
var ErrInvalidSetting = errors.New("invalid setting")

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// InitDefaults 写入缺失的默认配置, 已有值不覆盖
func (s *SettingsService) InitDefaults() error {
	for key, value := range model.DefaultConfig {
		if err := s.db.Where("key = ?", key).FirstOrCreate(&model.Config{Key: key, Value: value}).Error; err != nil {
			return fmt.Errorf("init config %s: %w", key, err)
		}
	}
	return nil
}

// All 返回全部配置, 未写入的键使用默认值
func (s *SettingsService) All() (map[string]string, error) {
	var items []model.Config
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string, len(model.DefaultConfig))
	for key, value := range model.DefaultConfig {
		result[key] = value
	}
	for _, item := range items {
		result[item.Key] = item.Value
	}
	return result, nil
}

// Save 校验后保存, 任一值不合法则不写入
func (s *SettingsService) Save(input map[string]string) error {
	for key, value := range input {
		if err := validateSetting(key, value); err != nil {
			return err
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		values, err := s.withProviderReset(tx, input)
		if err != nil {
			return err
		}
		for key, value := range values {
			err := tx.Where("key = ?", key).
				Assign(map[string]interface{}{"value": strings.TrimSpace(value)}).
				FirstOrCreate(&model.Config{Key: key}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// withProviderReset 换服务商且未同时给出 base url 和模型时, 清空旧 base url,
// 模型改为该服务商的默认模型
func (s *SettingsService) withProviderReset(tx *gorm.DB, input map[string]string) (map[string]string, error) {
	next, ok := input[model.ConfigLLMProvider]
	if !ok {
		return input, nil
	}

	current := model.DefaultConfig[model.ConfigLLMProvider]
	var stored model.Config
	err := tx.Where("key = ?", model.ConfigLLMProvider).Limit(1).Find(&stored).Error
	if err != nil {
		return nil, err
	}
	if stored.Key != "" {
		current = stored.Value
	}

	next = strings.TrimSpace(next)
	if next == current {
		return input, nil
	}

	values := make(map[string]string, len(input)+2)
	for key, value := range input {
		values[key] = value
	}
	if _, ok := values[model.ConfigLLMBaseURL]; !ok {
		values[model.ConfigLLMBaseURL] = ""
	}
	if _, ok := values[model.ConfigLLMModel]; !ok {
		values[model.ConfigLLMModel] = provider.DefaultModel(provider.Provider(next))
	}
	return values, nil
}

// Defaults 服务端默认生成参数
func (s *SettingsService) Defaults() (provider.GenerationConfig, error) {
	values, err := s.All()
	if err != nil {
		return provider.GenerationConfig{}, err
	}

	cfg := provider.GenerationConfig{
		Provider: provider.Provider(values[model.ConfigLLMProvider]),
		Model:    values[model.ConfigLLMModel],
		BaseURL:  values[model.ConfigLLMBaseURL],
	}
	// 已在 Save 时校验, 解析失败只可能是手工改库, 回退默认值
	if cfg.Temperature, err = strconv.ParseFloat(values[model.ConfigLLMTemperature], 64); err != nil {
		cfg.Temperature, _ = strconv.ParseFloat(model.DefaultConfig[model.ConfigLLMTemperature], 64)
	}
	if cfg.MaxTokens, err = strconv.Atoi(values[model.ConfigLLMMaxTokens]); err != nil {
		cfg.MaxTokens, _ = strconv.Atoi(model.DefaultConfig[model.ConfigLLMMaxTokens])
	}
	return cfg, nil
}

func validateSetting(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case model.ConfigLLMProvider:
		if !provider.Known(provider.Provider(value)) {
			return fmt.Errorf("%w: unknown provider %q", ErrInvalidSetting, value)
		}
	case model.ConfigLLMModel:
		if value == "" {
			return fmt.Errorf("%w: model must not be empty", ErrInvalidSetting)
		}
	case model.ConfigLLMTemperature:
		t, err := strconv.ParseFloat(value, 64)
		if err != nil || t < 0 || t > 2 {
			return fmt.Errorf("%w: temperature must be between 0 and 2", ErrInvalidSetting)
		}
	case model.ConfigLLMMaxTokens:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: max tokens must be a positive integer", ErrInvalidSetting)
		}
	case model.ConfigLLMBaseURL:
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
	}
	return nil
}
