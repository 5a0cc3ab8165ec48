package provider

import (
	"context"
	"fmt"
	"strings"

	"nexus/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenRouterModel   = "meta-llama/llama-3.2-90b-instruct"
	defaultOpenAIBaseURL     = "https://api.openai.com/v1"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenAIProvider implements model.Provider with the official OpenAI SDK.
// OpenRouter is served by the same type pointed at its base URL.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
	label   string
}

// NewOpenAIProvider creates an OpenAI provider.
//
// Parameters:
//   - baseURL: API base URL (default: "https://api.openai.com/v1")
//   - apiKey: API key (required)
//   - model: Initial model (default: "gpt-4o-mini")
func NewOpenAIProvider(baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return newOpenAICompatible("OpenAI", baseURL, apiKey, model)
}

// NewOpenRouterProvider creates an OpenAI-compatible provider for OpenRouter.
func NewOpenRouterProvider(baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if model == "" {
		model = DefaultOpenRouterModel
	}
	return newOpenAICompatible("OpenRouter", baseURL, apiKey, model)
}

func newOpenAICompatible(label, baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", label, ErrMissingAPIKey)
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:  client,
		model:   model,
		baseURL: baseURL,
		label:   label,
	}, nil
}

// NewChat implements model.Provider.
func (p *OpenAIProvider) NewChat(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
	return &openAIChat{p: p, model: p.model, h: newHistory(cfg)}, nil
}

func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// Ping implements model.Provider by listing models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", p.label, err)
	}
	return nil
}

type openAIChat struct {
	p     *OpenAIProvider
	model string
	h     *history
}

// Send streams the completion and returns the accumulated text.
func (c *openAIChat) Send(ctx context.Context, text string) (string, error) {
	turns := c.h.begin(text)

	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(c.h.system, turns),
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(c.h.temperature),
	}

	stream := c.p.client.Chat.Completions.NewStreaming(ctx, params)
	var reply strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 {
			reply.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	if err := stream.Err(); err != nil {
		return c.h.finish("", fmt.Errorf("%s streaming error: %w", c.p.label, err))
	}

	return c.h.finish(reply.String(), nil)
}
