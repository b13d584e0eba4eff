package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LICENSE_KEYS", "")
	t.Setenv("STRICT_OUTPUT_VALIDATION", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.LicenseKeys)
	assert.False(t, cfg.StrictOutput)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LICENSE_KEYS", "A,B")
	t.Setenv("STRICT_OUTPUT_VALIDATION", "true")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "A,B", cfg.LicenseKeys)
	assert.True(t, cfg.StrictOutput)
}
