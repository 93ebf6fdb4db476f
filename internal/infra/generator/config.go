package generator

import (
	"fmt"
	"time"

	"blogforge/pkg/config"
)

// Provider identifiers accepted by GENERATOR_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Settings holds generator configuration read from the environment.
type Settings struct {
	Provider  string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// SettingsFromEnv reads generator settings from environment variables.
// GENERATOR_PROVIDER selects the vendor (openai or claude); the model
// default depends on the chosen provider.
func SettingsFromEnv() Settings {
	provider := config.GetEnvString("GENERATOR_PROVIDER", ProviderOpenAI)

	defaultModel := "gpt-4o-mini"
	if provider == ProviderClaude {
		defaultModel = "claude-sonnet-4-20250514"
	}

	return Settings{
		Provider:  provider,
		Model:     config.GetEnvString("GENERATOR_MODEL", defaultModel),
		MaxTokens: config.GetEnvInt("GENERATOR_MAX_TOKENS", 1500),
		Timeout:   config.GetEnvDuration("GENERATOR_TIMEOUT", 120*time.Second),
	}
}

// New builds the Generator selected by the settings. It returns an error for
// an unknown provider so misconfiguration fails at startup rather than on the
// first request.
func New(settings Settings, apiKey string) (Generator, error) {
	switch settings.Provider {
	case ProviderOpenAI:
		return NewOpenAIGenerator(apiKey, settings), nil
	case ProviderClaude:
		return NewClaudeGenerator(apiKey, settings), nil
	default:
		return nil, fmt.Errorf("unknown generator provider: %q", settings.Provider)
	}
}
