// Package testutil provides a scriptable model.Provider for tests.
package testutil

import (
	"context"
	"errors"
	"sync"

	"nexus/model"
)

// ErrMockFailure is the default error returned by scripted failures.
var ErrMockFailure = errors.New("mock provider failure")

// MockProvider implements model.Provider. Each NewChat returns a MockChat
// that records what it was configured with and what it was sent.
type MockProvider struct {
	// NewChatFunc overrides chat creation. Nil uses the default MockChat.
	NewChatFunc func(ctx context.Context, cfg model.ChatConfig) (model.Chat, error)
	// SendFunc is installed on every default MockChat.
	SendFunc func(ctx context.Context, cfg model.ChatConfig, text string) (string, error)
	PingFunc func(ctx context.Context) error

	mu           sync.Mutex
	chats        []*MockChat
	configs      []model.ChatConfig
	currentModel string
}

// NewMockProvider creates a mock provider whose chats echo a fixed reply.
func NewMockProvider(modelName string) *MockProvider {
	return &MockProvider{currentModel: modelName}
}

func (m *MockProvider) NewChat(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
	m.mu.Lock()
	m.configs = append(m.configs, cfg)
	m.mu.Unlock()

	if m.NewChatFunc != nil {
		return m.NewChatFunc(ctx, cfg)
	}

	chat := &MockChat{Config: cfg, SendFunc: m.SendFunc}
	m.mu.Lock()
	m.chats = append(m.chats, chat)
	m.mu.Unlock()
	return chat, nil
}

// NewChatCalls returns how many chats were requested, including failed ones.
func (m *MockProvider) NewChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.configs)
}

// Configs returns every ChatConfig passed to NewChat, in order.
func (m *MockProvider) Configs() []model.ChatConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ChatConfig, len(m.configs))
	copy(out, m.configs)
	return out
}

// Chats returns the default chats created so far.
func (m *MockProvider) Chats() []*MockChat {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockChat, len(m.chats))
	copy(out, m.chats)
	return out
}

// LastChat returns the most recent default chat, or nil.
func (m *MockProvider) LastChat() *MockChat {
	chats := m.Chats()
	if len(chats) == 0 {
		return nil
	}
	return chats[len(chats)-1]
}

func (m *MockProvider) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentModel
}

func (m *MockProvider) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// MockChat implements model.Chat.
type MockChat struct {
	Config   model.ChatConfig
	SendFunc func(ctx context.Context, cfg model.ChatConfig, text string) (string, error)

	mu   sync.Mutex
	sent []string
}

// DefaultReply is what a MockChat without SendFunc answers.
const DefaultReply = "Mock response"

func (c *MockChat) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	c.sent = append(c.sent, text)
	c.mu.Unlock()

	if c.SendFunc != nil {
		return c.SendFunc(ctx, c.Config, text)
	}
	return DefaultReply, nil
}

// Sent returns every message submitted to this chat.
func (c *MockChat) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

// FailingChat is a chat whose every send fails with Err.
type FailingChat struct {
	Err error
}

func (c FailingChat) Send(ctx context.Context, text string) (string, error) {
	if c.Err == nil {
		return "", ErrMockFailure
	}
	return "", c.Err
}
