package provider

import (
	"context"
	"fmt"

	"nexus/model"
)

// NewProvider creates a provider based on configuration.
//
// Supported provider types:
//   - ProviderTypeGemini: Gemini API (default)
//   - ProviderTypeOpenAI: OpenAI API
//   - ProviderTypeOpenRouter: OpenRouter (OpenAI-compatible)
//   - ProviderTypeAnthropic: Anthropic API
//   - ProviderTypeOllama: Local Ollama server
//
// Returns an error if the type is unknown or the provider-specific constructor
// fails (ErrMissingAPIKey for hosted backends without a key).
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeGemini, "":
		return NewGeminiProvider(context.Background(), cfg.APIKey, cfg.Model)
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case ProviderTypeOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a factory ProviderType.
//
// Mappings:
//   - "" / "gemini" / "google" → ProviderTypeGemini
//   - "ollama" → ProviderTypeOllama
//   - "openrouter" → ProviderTypeOpenRouter
//   - "openai" → ProviderTypeOpenAI
//   - "anthropic" / "claude" → ProviderTypeAnthropic
//
// For unknown IDs, returns the ID cast as ProviderType (factory will error).
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "", "gemini", "google":
		return ProviderTypeGemini
	case "ollama":
		return ProviderTypeOllama
	case "openrouter":
		return ProviderTypeOpenRouter
	case "openai":
		return ProviderTypeOpenAI
	case "anthropic", "claude":
		return ProviderTypeAnthropic
	default:
		return ProviderType(id)
	}
}
