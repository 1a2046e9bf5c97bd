package model

import "time"

type Config struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"size:100;uniqueIndex;not null"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time
}

// 预定义配置键, 请求未携带 config 时使用的默认生成参数
const (
	ConfigLLMProvider    = "llm_provider"
	ConfigLLMModel       = "llm_model"
	ConfigLLMTemperature = "llm_temperature"
	ConfigLLMMaxTokens   = "llm_max_tokens"
	ConfigLLMBaseURL     = "llm_base_url"
)

// ConfigKeys 允许通过接口修改的配置键
var ConfigKeys = []string{
	ConfigLLMProvider,
	ConfigLLMModel,
	ConfigLLMTemperature,
	ConfigLLMMaxTokens,
	ConfigLLMBaseURL,
}

// DefaultConfig 首次启动写入的默认值
var DefaultConfig = map[string]string{
	ConfigLLMProvider:    "openai",
	ConfigLLMModel:       "gpt-4",
	ConfigLLMTemperature: "0.7",
	ConfigLLMMaxTokens:   "2000",
	ConfigLLMBaseURL:     "",
}
