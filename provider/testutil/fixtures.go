package testutil

import (
	"context"
	"sync"
	"time"

	"nexus/agent"
	"nexus/model"
)

// TestTurns returns a short committed conversation.
func TestTurns() []model.Message {
	return []model.Message{
		{Role: model.RoleUser, Content: "I need more customers", Timestamp: time.Now()},
		{Role: model.RoleAssistant, Content: "Who is your audience?", Timestamp: time.Now()},
		{Role: model.RoleUser, Content: "Indie SaaS founders", Timestamp: time.Now()},
	}
}

// SmallRoster returns three agents with distinct names.
func SmallRoster() []agent.Agent {
	return []agent.Agent{
		{ID: "alpha", Name: "Alpha", Role: "Strategic Leadership", Description: "High-level business strategy."},
		{ID: "beta", Name: "Beta", Role: "Technical Architect", Description: "Code structure and tech stack."},
		{ID: "gamma", Name: "Gamma", Role: "Content Engine", Description: "Blog strategy."},
	}
}

// FailN returns a send function that fails the first n calls across every
// chat it is installed on, then replies with reply.
func FailN(n int, reply string) func(ctx context.Context, cfg model.ChatConfig, text string) (string, error) {
	var mu sync.Mutex
	calls := 0
	return func(ctx context.Context, cfg model.ChatConfig, text string) (string, error) {
		mu.Lock()
		calls++
		fail := calls <= n
		mu.Unlock()
		if fail {
			return "", ErrMockFailure
		}
		return reply, nil
	}
}
