// Package oracle owns The Oracle's single external conversation.
//
// The Manager builds a directive from the live roster and tuning, opens a
// chat on the configured provider, and sends user messages through it. It
// rebuilds the chat whenever the roster or tuning changes and recovers from
// a failed send by rebuilding once. Callers always get reply text back: when
// recovery fails too they get FallbackReply.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"nexus/agent"
	"nexus/config"
	"nexus/model"
)

// FallbackReply is shown instead of an error when a send cannot be recovered.
const FallbackReply = "The signal to the Nexus is weak right now. Please check your connection or API Key."

// Greeting opens every conversation. It is local and never sent to a provider.
const Greeting = "Welcome to the Nexus. I am The Oracle. I'm here to build your customized execution stack. Tell me, what is the single most important outcome you need to achieve right now?"

// maxSendAttempts bounds SendMessage: the first attempt plus one recovery.
const maxSendAttempts = 2

// ErrNoProvider means no backend could be initialized, typically for lack of
// an API key. Sessions never start and every send falls back.
var ErrNoProvider = errors.New("no conversational provider configured")

// Manager is the only owner of the current session handle.
//
// The mutex guards the handle fields and is never held across a provider
// call, so a reconfiguration never waits on an in-flight send. The send keeps
// using the handle it already has; its reply is still delivered.
type Manager struct {
	provider model.Provider
	log      *zap.Logger

	mu          sync.Mutex
	chat        model.Chat
	fingerprint string
	directive   string
	sessions    int
	started     uint64 // last start generation handed out
	stored      uint64 // generation of the handle in chat
}

type Option func(*Manager)

// WithLogger sets the logger. The default is config.Log.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates a manager for p. A nil p is allowed and models a
// provider that failed to initialize.
func NewManager(p model.Provider, opts ...Option) *Manager {
	m := &Manager{
		provider: p,
		log:      config.Log,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.log = m.log.Named("oracle")
	return m
}

// fingerprint identifies everything a chat is fixed to at creation.
func fingerprint(directive string, temperature float64) string {
	return strconv.FormatFloat(temperature, 'g', -1, 64) + "\x00" + directive
}

// StartSession opens a new chat for agents and cfg and makes it current,
// abandoning any previous handle. If two starts overlap, the one that began
// last stays current regardless of which finishes first.
func (m *Manager) StartSession(ctx context.Context, agents []agent.Agent, cfg config.OracleConfig) (model.Chat, error) {
	if m.provider == nil {
		return nil, ErrNoProvider
	}

	directive := BuildDirective(agents, cfg)

	m.mu.Lock()
	m.started++
	gen := m.started
	m.mu.Unlock()

	chat, err := m.provider.NewChat(ctx, model.ChatConfig{
		SystemInstruction: directive,
		Temperature:       cfg.Temperature,
	})
	if err != nil {
		m.log.Warn("session start failed", zap.Uint64("generation", gen), zap.Error(err))
		return nil, fmt.Errorf("start session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions++
	if gen < m.stored {
		m.log.Debug("superseded session discarded", zap.Uint64("generation", gen), zap.Uint64("current", m.stored))
		return chat, nil
	}
	m.chat = chat
	m.stored = gen
	m.fingerprint = fingerprint(directive, cfg.Temperature)
	m.directive = directive

	m.log.Info("session started",
		zap.Uint64("generation", gen),
		zap.Int("agents", len(agents)),
		zap.Float64("temperature", cfg.Temperature),
		zap.Int("max_questions", cfg.MaxQuestions),
	)
	return chat, nil
}

// current returns the stored handle if it was built for fp.
func (m *Manager) current(fp string) model.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chat == nil || m.fingerprint != fp {
		return nil
	}
	return m.chat
}

// SendMessage delivers text to The Oracle and returns the reply.
//
// The first attempt uses the current handle, starting one if there is none
// or if agents or cfg differ from what it was built with. A failed attempt
// is followed by exactly one recovery: a fresh session and a resend. If that
// fails too, FallbackReply is returned. SendMessage never returns an error.
func (m *Manager) SendMessage(ctx context.Context, text string, agents []agent.Agent, cfg config.OracleConfig) string {
	fp := fingerprint(BuildDirective(agents, cfg), cfg.Temperature)

	for attempt := 0; attempt < maxSendAttempts; attempt++ {
		var chat model.Chat
		if attempt == 0 {
			chat = m.current(fp)
		}
		if chat == nil {
			c, err := m.StartSession(ctx, agents, cfg)
			if err != nil {
				m.log.Warn("send attempt could not start a session", zap.Int("attempt", attempt+1), zap.Error(err))
				continue
			}
			chat = c
		}

		reply, err := chat.Send(ctx, text)
		if err == nil {
			return reply
		}
		m.log.Warn("send attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	m.log.Error("oracle unreachable, returning fallback reply", zap.Int("attempts", maxSendAttempts))
	return FallbackReply
}

// Reconfigure eagerly rebuilds the session after a roster or tuning edit so
// the next send does not pay for it. Sends still in flight keep their old
// handle. A failure is only logged; SendMessage will try again.
func (m *Manager) Reconfigure(ctx context.Context, agents []agent.Agent, cfg config.OracleConfig) error {
	if _, err := m.StartSession(ctx, agents, cfg); err != nil {
		m.log.Warn("reconfigure failed", zap.Error(err))
		return err
	}
	return nil
}

// Invalidate drops the current handle; the next send starts a new session.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chat = nil
	m.fingerprint = ""
	m.directive = ""
}

// Sessions returns how many sessions have been started successfully.
func (m *Manager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions
}

// Directive returns the directive of the current session, or "" if none.
func (m *Manager) Directive() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.directive
}

// HasSession reports whether a handle is held.
func (m *Manager) HasSession() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chat != nil
}

// Available reports whether a provider is configured at all.
func (m *Manager) Available() bool {
	return m.provider != nil
}
