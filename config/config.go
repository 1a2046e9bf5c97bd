package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Cron      CronConfig      `yaml:"cron"`
	Stream    StreamConfig    `yaml:"stream"`
	Providers ProvidersConfig `yaml:"providers"`
	Log       LogConfig       `yaml:"log"`
	Otel      OtelConfig      `yaml:"otel"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type CronConfig struct {
	CleanupInterval      string `yaml:"cleanup_interval"`       // 会话清理间隔
	SessionRetentionDays int    `yaml:"session_retention_days"` // 0 表示永久保留
}

type StreamConfig struct {
	// SimulatedDelay 不支持原生流式的服务商逐词输出的间隔
	SimulatedDelay time.Duration `yaml:"simulated_delay"`
}

// ProviderCredentials 进程级的服务商凭据, 请求中的 apiKey/baseURL 优先
type ProviderCredentials struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type ProvidersConfig struct {
	OpenAI    ProviderCredentials `yaml:"openai"`
	Anthropic ProviderCredentials `yaml:"anthropic"`
	DeepSeek  ProviderCredentials `yaml:"deepseek"`
}

type LogConfig struct {
	Mode string `yaml:"mode"` // development, production
}

type OtelConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Endpoint    string `yaml:"endpoint"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "data/prompt-lab.db",
		},
		Cron: CronConfig{
			CleanupInterval:      "0 3 * * *", // 每天凌晨3点
			SessionRetentionDays: 30,
		},
		Stream: StreamConfig{
			SimulatedDelay: 50 * time.Millisecond,
		},
		Providers: ProvidersConfig{
			OpenAI:    ProviderCredentials{BaseURL: "https://api.openai.com/v1"},
			Anthropic: ProviderCredentials{BaseURL: "https://api.anthropic.com"},
			DeepSeek:  ProviderCredentials{BaseURL: "https://api.deepseek.com/v1"},
		},
		Log: LogConfig{
			Mode: "development",
		},
		Otel: OtelConfig{
			ServiceName: "prompt-lab",
		},
	}
}

// Load 加载配置文件, 文件不存在时使用默认配置
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// .env 不存在时忽略
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.loadFromEnv()

	return cfg, nil
}

// 环境变量覆盖配置
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.Server.Mode = mode
	}

	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.Database.Path = dbPath
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
	}

	if val := os.Getenv("SESSION_RETENTION_DAYS"); val != "" {
		if days, err := strconv.Atoi(val); err == nil {
			c.Cron.SessionRetentionDays = days
		}
	}
	if val := os.Getenv("STREAM_SIMULATED_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Stream.SimulatedDelay = d
		}
	}

	overrideCredentials(&c.Providers.OpenAI, "OPENAI_API_KEY", "OPENAI_BASE_URL")
	overrideCredentials(&c.Providers.Anthropic, "ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL")
	overrideCredentials(&c.Providers.DeepSeek, "DEEPSEEK_API_KEY", "DEEPSEEK_BASE_URL")

	if mode := os.Getenv("LOG_MODE"); mode != "" {
		c.Log.Mode = mode
	}
	if val := os.Getenv("OTEL_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Otel.Enabled = enabled
		}
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		c.Otel.Endpoint = endpoint
	}
}

func overrideCredentials(creds *ProviderCredentials, keyEnv, urlEnv string) {
	if val := os.Getenv(keyEnv); val != "" {
		creds.APIKey = val
	}
	if val := os.Getenv(urlEnv); val != "" {
		creds.BaseURL = val
	}
}

// GetServerAddress 获取服务器监听地址
func (c *Config) GetServerAddress() string {
	// 如果端口是纯数字,加上冒号前缀
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}
