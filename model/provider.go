package model

import (
	"context"
	"strings"

	"nexus/agent"
	"nexus/config"
)

// Provider abstracts conversational AI backends (Gemini, OpenAI, Anthropic,
// Ollama) using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations can import model, and the oracle
// session manager can depend on Provider without importing the provider package.
type Provider interface {
	// NewChat opens a fresh conversation steered by the directive in cfg.
	NewChat(ctx context.Context, cfg ChatConfig) (Chat, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// ChatConfig is fixed for the lifetime of a chat. Changing either field
// means opening a new chat.
type ChatConfig struct {
	SystemInstruction string
	Temperature       float64
}

// Chat is one ongoing external conversation (the session handle).
type Chat interface {
	// Send submits a user message and returns the full reply text.
	Send(ctx context.Context, text string) (string, error)
}

// SessionManager is the part of the oracle session manager the app model
// drives. It is satisfied by *oracle.Manager.
type SessionManager interface {
	SendMessage(ctx context.Context, text string, agents []agent.Agent, cfg config.OracleConfig) string
	Reconfigure(ctx context.Context, agents []agent.Agent, cfg config.OracleConfig) error
}

// Transcript renders the conversation as plain text for the clipboard.
func Transcript(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Pending || m.Role == RoleSystem {
			continue
		}
		label := "You"
		if m.Role == RoleAssistant {
			label = "The Oracle"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
