// Package provider adapts conversational AI backends to the model.Provider
// contract The Oracle's session manager drives.
//
// Every backend exposes the same shape: NewChat opens an external session
// fixed to one directive and temperature, and Chat.Send submits a user turn
// and returns the full reply. Gemini is the default backend; OpenAI,
// OpenRouter, Anthropic and Ollama are interchangeable alternatives.
//
// # Sessions
//
// None of the supported APIs keeps server-side conversation state that we
// rely on, so each Chat carries its own turn history (see history.go). A
// failed send leaves the history exactly as it was, which keeps a retry on
// the same handle clean.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:   provider.ProviderTypeGemini,
//	    APIKey: key,
//	})
//	if err != nil {
//	    // handle error
//	}
//	chat, err := p.NewChat(ctx, model.ChatConfig{SystemInstruction: directive, Temperature: 0.7})
//	reply, err := chat.Send(ctx, "I need more customers")
package provider

import "errors"

// Note: The Provider and Chat interfaces are defined in the model package
// (model/provider.go) to avoid import cycles. This package implements them.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeGemini     ProviderType = "gemini"
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// ErrMissingAPIKey is returned by constructors of hosted backends when no
// credential was supplied.
var ErrMissingAPIKey = errors.New("API key is required")

// ErrEmptyReply is returned when a backend answers without any text.
var ErrEmptyReply = errors.New("provider returned an empty reply")

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // Unused for Ollama
}
