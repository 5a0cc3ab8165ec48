// Package agent holds the roster of personas The Oracle can route a user to.
//
// An Agent is a plain record: the display name doubles as the match token the
// mention parser looks for in Oracle replies, so names must be non-empty and
// unique when compared case-insensitively.
package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("agent name cannot be empty")
	ErrDuplicateName = errors.New("agent name already in use")
	ErrEmptyID       = errors.New("agent id cannot be empty")
	ErrDuplicateID   = errors.New("agent id already in use")
)

// Agent is a single persona in the roster.
// Color and Icon form the visual tag used by the UI.
type Agent struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Role        string `toml:"role"`
	Description string `toml:"description"`
	Color       string `toml:"color"`
	Icon        string `toml:"icon"`
}

// Placeholder values for freshly added agents. The caller fills in details after.
const (
	PlaceholderName        = "New Agent"
	PlaceholderRole        = "Unassigned Role"
	PlaceholderDescription = "Expert in..."
	PlaceholderColor       = "8"
	PlaceholderIcon        = "👤"
)

// OracleID is the identifier of the front desk persona in the default roster.
const OracleID = "oracle"

// DefaultRoster returns the stock roster of the Nexus.
func DefaultRoster() []Agent {
	return []Agent{
		{ID: OracleID, Name: "The Oracle", Role: "System Orchestrator", Description: "The Front Desk. Diagnoses needs and builds workflows.", Color: "14", Icon: "🔮"},
		{ID: "alpha", Name: "Alpha", Role: "Strategic Leadership", Description: "High-level business strategy and visionary planning.", Color: "214", Icon: "👑"},
		{ID: "beta", Name: "Beta", Role: "Technical Architect", Description: "Code structure, tech stack decisions, and implementation.", Color: "35", Icon: "⚡"},
		{ID: "gamma", Name: "Gamma", Role: "Content Engine", Description: "High-volume content generation and blog strategy.", Color: "205", Icon: "📚"},
		{ID: "delta", Name: "Delta", Role: "Copywriting Specialist", Description: "Direct response copy, email sequences, and sales pages.", Color: "69", Icon: "✍️"},
		{ID: "epsilon", Name: "Epsilon", Role: "Market Analyst", Description: "Audience research, pain point identification, and competitor audits.", Color: "135", Icon: "📊"},
		{ID: "zeta", Name: "Zeta", Role: "Social Media Manager", Description: "Viral hooks, thread composition, and engagement strategy.", Color: "45", Icon: "🐦"},
		{ID: "eta", Name: "Eta", Role: "Visual Designer", Description: "UI/UX principles, aesthetics, and branding direction.", Color: "171", Icon: "🎨"},
		{ID: "theta", Name: "Theta", Role: "Operations & Logic", Description: "Workflow automation, SOPs, and system efficiency.", Color: "245", Icon: "⚙️"},
		{ID: "anakritis", Name: "Anakritis", Role: "The Critic", Description: "Unbiased feedback, stress-testing, and optimization auditing.", Color: "160", Icon: "⚖️"},
	}
}

// SameName reports whether two agent names match case-insensitively.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NewID returns a fresh identifier for an added agent.
func NewID() string {
	return "agent-" + uuid.New().String()
}

// AssignMissingIDs gives every agent with a blank ID a fresh one and reports
// how many it filled in.
func AssignMissingIDs(agents []Agent) int {
	n := 0
	for i := range agents {
		if strings.TrimSpace(agents[i].ID) == "" {
			agents[i].ID = NewID()
			n++
		}
	}
	return n
}

// Validate checks a whole roster: every ID and name non-empty and unique.
func Validate(agents []Agent) error {
	ids := make(map[string]bool, len(agents))
	for i, a := range agents {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("agent %d (%q): %w", i+1, a.Name, ErrEmptyID)
		}
		if ids[a.ID] {
			return fmt.Errorf("agent %q: %w", a.ID, ErrDuplicateID)
		}
		ids[a.ID] = true
	}

	seen := make(map[string]string, len(agents))
	for _, a := range agents {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("agent %q: %w", a.ID, ErrEmptyName)
		}
		key := strings.ToLower(name)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("agents %q and %q share name %q: %w", other, a.ID, name, ErrDuplicateName)
		}
		seen[key] = a.ID
	}
	return nil
}
