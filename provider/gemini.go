package provider

import (
	"context"
	"fmt"

	"nexus/model"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider talks to the Gemini API through google.golang.org/genai.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider. The API key is required; an
// empty model selects DefaultGeminiModel.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// NewChat implements model.Provider.
func (p *GeminiProvider) NewChat(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
	temp := float32(cfg.Temperature)
	genCfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if cfg.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}

	return &geminiChat{
		client: p.client,
		model:  p.model,
		config: genCfg,
		h:      newHistory(cfg),
	}, nil
}

func (p *GeminiProvider) GetModel() string {
	return p.model
}

// Ping issues a one-token generation since the API has no health endpoint.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromText("ping", genai.RoleUser)},
		&genai.GenerateContentConfig{MaxOutputTokens: 1},
	)
	if err != nil {
		return fmt.Errorf("Gemini ping failed: %w", err)
	}
	return nil
}

type geminiChat struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
	h      *history
}

func (c *geminiChat) Send(ctx context.Context, text string) (string, error) {
	turns := c.h.begin(text)

	res, err := c.client.Models.GenerateContent(ctx, c.model, ConvertToGeminiContents(turns), c.config)
	if err != nil {
		return c.h.finish("", fmt.Errorf("Gemini generate content: %w", err))
	}

	return c.h.finish(res.Text(), nil)
}
