package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/config"
)

// NewClient builds the provider client named in cfg and wraps it with retry
// and timeout handling. The credential comes only from cfg.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (VisionClient, error) {
	provider := strings.ToLower(cfg.Provider)

	var c VisionClient
	switch provider {
	case config.ProviderOpenAI:
		c = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case config.ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c = g

	case config.ProviderClaude:
		c = NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case config.ProviderOllama:
		// Ollama speaks the OpenAI-compatible API under /v1.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultOllamaBaseURL
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		// Ollama ignores the key but the client requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}

		oc := NewOpenAIClient(apiKey, cfg.Model, baseURL)
		oc.name = config.ProviderOllama
		c = oc

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}

	return NewRetryingClient(
		c,
		cfg.MaxRetries,
		time.Duration(cfg.InitialBackoffMS)*time.Millisecond,
		time.Duration(cfg.TimeoutSeconds)*time.Second,
		logger,
	), nil
}
