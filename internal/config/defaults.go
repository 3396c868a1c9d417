package config

const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

const (
	DefaultOpenAIModel   = "gpt-5.1"
	DefaultClaudeModel   = "claude-sonnet-4-5"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultOllamaModel   = "llama3.2-vision"
	DefaultOllamaBaseURL = "http://localhost:11434"
)

const DefaultLegendPrompt = `Extract ALL TAG values that appear in this legend table.
A TAG is typically something like F-01, F-02, F-03, X1, X2, D-01, D-02, F-08A, F-08B, etc.

Return ONLY a JSON list of unique tags.
Example:
["F-01", "F-02", "F-03", "X1", "X2", "F-08A"]

No descriptions.
No symbols.
No extra text.`

const DefaultPlanPrompt = `Extract ALL textual elements from this architectural plan image.
Return ONLY a JSON list of text tokens found.
Preserve duplicates: every occurrence in the drawing is a separate entry.

Example:
["F-01", "F-02", "F-01", "X1", "X2", "F-08A", "F-08B"]

No extra text.`

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderClaude:
		return DefaultClaudeModel
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOllama:
		return DefaultOllamaModel
	default:
		return DefaultOpenAIModel
	}
}

func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:         ProviderOpenAI,
			Model:            DefaultOpenAIModel,
			TimeoutSeconds:   60,
			MaxRetries:       2,
			InitialBackoffMS: 500,
		},
		Prompts: Prompts{
			Legend: DefaultLegendPrompt,
			Plan:   DefaultPlanPrompt,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Upload: UploadConfig{
			MaxBytes: 20 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
