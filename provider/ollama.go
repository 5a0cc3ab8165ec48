package provider

import (
	"context"
	"fmt"
	"strings"

	"nexus/model"
	"nexus/ollama"
)

// OllamaProvider wraps ollama.Client to implement model.Provider against a
// local Ollama server. No credential is needed.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL. Empty means "http://localhost:11434".
//   - model: The model name. Empty means "llama3.1:latest".
//
// Returns an error if the baseURL is invalid.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// NewChat implements model.Provider.
func (p *OllamaProvider) NewChat(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
	return &ollamaChat{client: p.client, h: newHistory(cfg)}, nil
}

func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// Ping checks the server is reachable (5s timeout).
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

type ollamaChat struct {
	client *ollama.Client
	h      *history
}

func (c *ollamaChat) Send(ctx context.Context, text string) (string, error) {
	turns := c.h.begin(text)

	var reply strings.Builder
	err := c.client.Chat(ctx, ConvertToOllamaMessages(c.h.system, turns), c.h.temperature, func(chunk string) error {
		reply.WriteString(chunk)
		return nil
	})
	if err != nil {
		return c.h.finish("", fmt.Errorf("Ollama chat: %w", err))
	}

	return c.h.finish(reply.String(), nil)
}
