package model

import (
	"nexus/agent"
	"nexus/config"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config   *config.Config
	Registry *agent.Registry
	Manager  SessionManager

	// Application data
	Conversation *Conversation

	// Runtime state (not UI)
	Focused  string // ID of the persona the user teleported to
	Unlocked bool   // architect console reachable
	Quitting bool

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration. The roster is
// seeded from cfg.Agents and the conversation opens with greeting.
func NewModel(cfg *config.Config, manager SessionManager, greeting, version string) *Model {
	conv := NewConversation()
	if greeting != "" {
		conv.AddAssistant(greeting)
	}

	return &Model{
		Config:       cfg,
		Registry:     agent.NewRegistry(cfg.Agents),
		Manager:      manager,
		Conversation: conv,
		Focused:      agent.OracleID,
		Version:      version,
	}
}

// Oracle returns the tuning the session manager should use right now.
func (m *Model) Oracle() config.OracleConfig {
	return m.Config.Oracle
}

// FocusedAgent returns the persona the UI is showing. It falls back to the
// first roster entry when the focused one was deleted.
func (m *Model) FocusedAgent() (agent.Agent, bool) {
	if a, ok := m.Registry.Get(m.Focused); ok {
		return a, true
	}
	list := m.Registry.List()
	if len(list) == 0 {
		return agent.Agent{}, false
	}
	return list[0], true
}

// Teleport focuses the agent with the given ID. It only changes the UI
// persona; the Oracle session is untouched.
func (m *Model) Teleport(id string) bool {
	a, ok := m.Registry.Get(id)
	if !ok {
		return false
	}
	if m.Focused != id {
		if id == agent.OracleID {
			m.Conversation.AddSystem("Returned to The Oracle")
		} else {
			m.Conversation.AddSystem("Entered " + a.Name + "'s Domain")
		}
	}
	m.Focused = id
	return true
}

// Unlock compares code with the configured access code. It is a plain
// comparison gating a UI panel, not an authentication mechanism.
func (m *Model) Unlock(code string) bool {
	if code != "" && code == m.Config.AccessCode {
		m.Unlocked = true
	}
	return m.Unlocked
}

// Busy reports whether an Oracle reply is in flight.
func (m *Model) Busy() bool {
	return m.Conversation.HasPending()
}

// syncConfig copies the live roster into the config so that it is what gets
// saved and what the next send snapshots.
func (m *Model) syncConfig() {
	m.Config.Agents = m.Registry.List()
}
