package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "LLM_BASE_URL",
		"LLM_TIMEOUT_SECONDS", "LLM_MAX_RETRIES", "LLM_INITIAL_BACKOFF_MS",
		"UPLOAD_MAX_BYTES", "PORT", "LOG_LEVEL", "LOG_FORMAT",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultNeedsOnlyAKey(t *testing.T) {
	cfg := Default()

	err := cfg.Validate()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Key)
	assert.Equal(t, "missing required configuration: OPENAI_API_KEY", err.Error())

	cfg.LLM.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvProviderNativeKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-native")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "sk-native", cfg.LLM.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvGenericKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-native")
	t.Setenv("LLM_API_KEY", "sk-generic")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "sk-generic", cfg.LLM.APIKey)
}

func TestApplyEnvSwitchesProviderDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Claude")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, ProviderClaude, cfg.LLM.Provider)
	assert.Equal(t, DefaultClaudeModel, cfg.LLM.Model)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "ANTHROPIC_API_KEY", cfgErr.Key)
}

func TestOllamaNeedsNoKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "ollama")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, DefaultOllamaBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, DefaultOllamaModel, cfg.LLM.Model)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvRejectsBadInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TIMEOUT_SECONDS", "soon")

	err := Default().ApplyEnv()

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "LLM_TIMEOUT_SECONDS", cfgErr.Key)
}

func TestValidateReportsInvalidValues(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "k"
	cfg.LLM.Provider = "watson"

	var cfgErr *ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "LLM_PROVIDER", cfgErr.Key)
	assert.Contains(t, cfgErr.Error(), "watson")

	cfg = Default()
	cfg.LLM.APIKey = "k"
	cfg.Prompts.Plan = ""
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "prompts.plan", cfgErr.Key)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[llm]
provider = "gemini"
model = "gemini-2.5-pro"
timeout_seconds = 15

[prompts]
legend = "tags please"
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 15, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, "tags please", cfg.Prompts.Legend)
	assert.Equal(t, DefaultPlanPrompt, cfg.Prompts.Plan)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
