// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/leadscore/internal/cost"
)

// Config holds the full application configuration.
type Config struct {
	Gemini    ProviderConfig `yaml:"gemini" mapstructure:"gemini"`
	OpenAI    ProviderConfig `yaml:"openai" mapstructure:"openai"`
	Anthropic ProviderConfig `yaml:"anthropic" mapstructure:"anthropic"`
	AI        AIConfig       `yaml:"ai" mapstructure:"ai"`
	Pricing   cost.Rates     `yaml:"pricing" mapstructure:"pricing"`
	Store     StoreConfig    `yaml:"store" mapstructure:"store"`
	Server    ServerConfig   `yaml:"server" mapstructure:"server"`
	Log       LogConfig      `yaml:"log" mapstructure:"log"`
}

// ProviderConfig holds one AI provider's credentials and quota.
type ProviderConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
	// RateCeiling is the max calls admitted per trailing minute.
	RateCeiling int `yaml:"rate_ceiling" mapstructure:"rate_ceiling"`
}

// AIConfig configures classification behavior across providers.
type AIConfig struct {
	TimeoutSecs     int  `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	FallbackEnabled bool `yaml:"fallback_enabled" mapstructure:"fallback_enabled"`
	ChunkSize       int  `yaml:"chunk_size" mapstructure:"chunk_size"`
}

// Timeout returns the per-provider request timeout.
func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// RateCeilings returns the per-provider rate limiter ceilings, omitting
// providers with no configured ceiling.
func (c *Config) RateCeilings() map[string]int {
	ceilings := make(map[string]int)
	for name, pc := range map[string]ProviderConfig{
		"gemini":    c.Gemini,
		"openai":    c.OpenAI,
		"anthropic": c.Anthropic,
	} {
		if pc.RateCeiling > 0 {
			ceilings[name] = pc.RateCeiling
		}
	}
	return ceilings
}

// Load reads configuration from config.yaml and the environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Gemini leads the fallback order because its free tier is
	// the cheapest option; ceilings stay under published quotas.
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.rate_ceiling", 10)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.rate_ceiling", 100)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.rate_ceiling", 50)
	v.SetDefault("ai.timeout_secs", 15)
	v.SetDefault("ai.fallback_enabled", true)
	v.SetDefault("ai.chunk_size", 10)
	v.SetDefault("store.dsn", "leadscore.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if len(cfg.Pricing) == 0 {
		cfg.Pricing = cost.DefaultRates()
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
