package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 10, cfg.Gemini.RateCeiling)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 100, cfg.OpenAI.RateCeiling)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout())
	assert.True(t, cfg.AI.FallbackEnabled)
	assert.Equal(t, 10, cfg.AI.ChunkSize)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)

	// Pricing falls back to the default rate table.
	require.Contains(t, cfg.Pricing, "openai")
	assert.InDelta(t, 0.15, cfg.Pricing["openai"]["gpt-4o-mini"].Input, 1e-9)
}

func TestConfig_RateCeilings(t *testing.T) {
	cfg := &Config{
		Gemini: ProviderConfig{RateCeiling: 10},
		OpenAI: ProviderConfig{RateCeiling: 100},
		// Anthropic left unconfigured.
	}

	ceilings := cfg.RateCeilings()
	assert.Equal(t, map[string]int{"gemini": 10, "openai": 100}, ceilings)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
