package provider

import (
	"context"
	"fmt"
	"strings"

	"nexus/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicMaxTokens is required by the Messages API. Oracle replies are short.
const anthropicMaxTokens = 1024

// AnthropicProvider implements model.Provider with the official Anthropic SDK.
type AnthropicProvider struct {
	client  *anthropic.Client
	model   anthropic.Model
	baseURL string
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Initial model to use (default: "claude-sonnet-4-5-20250929")
func NewAnthropicProvider(baseURL, apiKey, model string) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic: %w", ErrMissingAPIKey)
	}

	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if model != "" {
		anthropicModel = anthropic.Model(model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:  &client,
		model:   anthropicModel,
		baseURL: baseURL,
	}, nil
}

// NewChat implements model.Provider.
func (p *AnthropicProvider) NewChat(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
	return &anthropicChat{client: p.client, model: p.model, h: newHistory(cfg)}, nil
}

func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// Ping implements model.Provider with a minimal request, since Anthropic has
// no health endpoint.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}

type anthropicChat struct {
	client *anthropic.Client
	model  anthropic.Model
	h      *history
}

func (c *anthropicChat) Send(ctx context.Context, text string) (string, error) {
	turns := c.h.begin(text)

	params := anthropic.MessageNewParams{
		Model:       c.model,
		Messages:    ConvertToAnthropicMessages(turns),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(c.h.temperature),
	}
	if system := anthropicSystem(c.h.system); len(system) > 0 {
		params.System = system
	}

	stream := c.client.Messages.NewStreaming(ctx, params)
	msg := anthropic.Message{}

	for stream.Next() {
		if err := msg.Accumulate(stream.Current()); err != nil {
			return c.h.finish("", fmt.Errorf("error accumulating message: %w", err))
		}
	}

	if err := stream.Err(); err != nil {
		return c.h.finish("", fmt.Errorf("Anthropic streaming error: %w", err))
	}

	return c.h.finish(anthropicText(msg), nil)
}

// anthropicText joins the text blocks of an accumulated message.
func anthropicText(msg anthropic.Message) string {
	var reply strings.Builder
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(b.Text)
		}
	}
	return reply.String()
}
