package provider

import (
	"nexus/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ConvertToOllamaMessages prepends the directive as a system message and maps
// the turns onto Ollama's message type.
//
// Timestamps are dropped; Ollama has no field for them.
func ConvertToOllamaMessages(system string, turns []model.Message) []api.Message {
	result := make([]api.Message, 0, len(turns)+1)
	if system != "" {
		result = append(result, api.Message{Role: model.RoleSystem, Content: system})
	}
	for _, msg := range turns {
		result = append(result, api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return result
}

// ConvertToOpenAIMessages builds the chat completion message list. OpenRouter
// shares this conversion since it speaks the same API.
func ConvertToOpenAIMessages(system string, turns []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	if system != "" {
		result = append(result, openai.SystemMessage(system))
	}
	for _, msg := range turns {
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		case model.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// ConvertToAnthropicMessages maps turns onto Anthropic messages. The directive
// travels separately in the System parameter, see anthropicSystem.
func ConvertToAnthropicMessages(turns []model.Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(turns))
	for _, msg := range turns {
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return result
}

func anthropicSystem(system string) []anthropic.TextBlockParam {
	if system == "" {
		return nil
	}
	return []anthropic.TextBlockParam{{Text: system}}
}

// ConvertToGeminiContents maps turns onto genai contents. Gemini calls the
// assistant side "model".
func ConvertToGeminiContents(turns []model.Message) []*genai.Content {
	result := make([]*genai.Content, 0, len(turns))
	for _, msg := range turns {
		role := genai.Role(genai.RoleUser)
		if msg.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		result = append(result, genai.NewContentFromText(msg.Content, role))
	}
	return result
}
