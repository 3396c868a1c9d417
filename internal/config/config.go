package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Prompts struct {
	Legend string `toml:"legend" validate:"required"`
	Plan   string `toml:"plan" validate:"required"`
}

type LLMConfig struct {
	Provider         string `toml:"provider" validate:"oneof=openai claude gemini ollama" env:"LLM_PROVIDER"`
	Model            string `toml:"model" validate:"required" env:"LLM_MODEL"`
	APIKey           string `toml:"api_key" validate:"required_unless=Provider ollama" env:"LLM_API_KEY"`
	BaseURL          string `toml:"base_url" env:"LLM_BASE_URL"`
	TimeoutSeconds   int    `toml:"timeout_seconds" validate:"gt=0" env:"LLM_TIMEOUT_SECONDS"`
	MaxRetries       int    `toml:"max_retries" validate:"gte=0" env:"LLM_MAX_RETRIES"`
	InitialBackoffMS int    `toml:"initial_backoff_ms" validate:"gt=0" env:"LLM_INITIAL_BACKOFF_MS"`
}

type ServerConfig struct {
	Port string `toml:"port" validate:"required" env:"PORT"`
}

type UploadConfig struct {
	MaxBytes int64 `toml:"max_bytes" validate:"gt=0" env:"UPLOAD_MAX_BYTES"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error" env:"LOG_LEVEL"`
	Format string `toml:"format" validate:"oneof=json console" env:"LOG_FORMAT"`
}

type Config struct {
	LLM     LLMConfig    `toml:"llm"`
	Prompts Prompts      `toml:"prompts"`
	Server  ServerConfig `toml:"server"`
	Upload  UploadConfig `toml:"upload"`
	Log     LogConfig    `toml:"log"`
}

// Load reads a TOML file on top of Default. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides configuration from the process environment. The
// provider-native key variable (OPENAI_API_KEY etc.) is used when
// LLM_API_KEY is not set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)

	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if name := ProviderKeyEnv(c.LLM.Provider); name != "" {
		if v := os.Getenv(name); v != "" {
			c.LLM.APIKey = v
		}
	}
	for name, dst := range map[string]*int{
		"LLM_TIMEOUT_SECONDS":    &c.LLM.TimeoutSeconds,
		"LLM_MAX_RETRIES":        &c.LLM.MaxRetries,
		"LLM_INITIAL_BACKOFF_MS": &c.LLM.InitialBackoffMS,
	} {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return &ConfigurationError{Key: name, Reason: fmt.Sprintf("%q is not an integer", v)}
			}
			*dst = n
		}
	}
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &ConfigurationError{Key: "UPLOAD_MAX_BYTES", Reason: fmt.Sprintf("%q is not an integer", v)}
		}
		c.Upload.MaxBytes = n
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}

	// Fill in a provider-appropriate model when the default provider was swapped
	// out from under the default model.
	if c.LLM.Model == DefaultOpenAIModel && c.LLM.Provider != ProviderOpenAI {
		c.LLM.Model = DefaultModel(c.LLM.Provider)
	}
	if c.LLM.Provider == ProviderOllama && c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultOllamaBaseURL
	}
	return nil
}

// ProviderKeyEnv names the provider's conventional API key variable.
func ProviderKeyEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
