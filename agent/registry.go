package agent

import (
	"fmt"
	"strings"
)

// Registry is the mutable roster. It has a single writer (the UI loop) and
// hands out copies, so callers never alias its backing slice.
type Registry struct {
	agents   []Agent
	revision uint64
}

// NewRegistry creates a registry seeded with the given agents.
// A nil or empty slice yields an empty roster.
func NewRegistry(agents []Agent) *Registry {
	r := &Registry{}
	r.agents = append(r.agents, agents...)
	return r
}

// List returns a copy of the roster in insertion order.
func (r *Registry) List() []Agent {
	out := make([]Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

// Len returns the number of agents.
func (r *Registry) Len() int {
	return len(r.agents)
}

// Revision increases on every successful mutation.
func (r *Registry) Revision() uint64 {
	return r.revision
}

// Add appends a new agent with a generated identifier and placeholder fields.
func (r *Registry) Add() Agent {
	a := Agent{
		ID:          NewID(),
		Name:        r.uniquePlaceholderName(),
		Role:        PlaceholderRole,
		Description: PlaceholderDescription,
		Color:       PlaceholderColor,
		Icon:        PlaceholderIcon,
	}
	r.agents = append(r.agents, a)
	r.revision++
	return a
}

// uniquePlaceholderName keeps the roster valid when several agents are added
// before any of them is renamed.
func (r *Registry) uniquePlaceholderName() string {
	name := PlaceholderName
	for n := 2; r.nameTaken(name, ""); n++ {
		name = fmt.Sprintf("%s %d", PlaceholderName, n)
	}
	return name
}

// Update replaces the record whose ID matches a.ID.
// It returns false without touching the roster if no such agent exists.
func (r *Registry) Update(a Agent) (bool, error) {
	idx := r.indexOf(a.ID)
	if idx < 0 {
		return false, nil
	}

	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return false, ErrEmptyName
	}
	if r.nameTaken(a.Name, a.ID) {
		return false, fmt.Errorf("%q: %w", a.Name, ErrDuplicateName)
	}

	r.agents[idx] = a
	r.revision++
	return true, nil
}

// Delete removes the agent with the given ID. Confirmation is the caller's job.
func (r *Registry) Delete(id string) bool {
	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}
	r.agents = append(r.agents[:idx], r.agents[idx+1:]...)
	r.revision++
	return true
}

// Get looks an agent up by ID.
func (r *Registry) Get(id string) (Agent, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return Agent{}, false
	}
	return r.agents[idx], true
}

// FindByName resolves a display name case-insensitively.
func (r *Registry) FindByName(name string) (Agent, bool) {
	return FindByName(r.agents, name)
}

// FindByName resolves a display name against any roster slice.
func FindByName(agents []Agent, name string) (Agent, bool) {
	for _, a := range agents {
		if a.Name != "" && SameName(a.Name, name) {
			return a, true
		}
	}
	return Agent{}, false
}

func (r *Registry) indexOf(id string) int {
	for i := range r.agents {
		if r.agents[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) nameTaken(name, exceptID string) bool {
	for _, a := range r.agents {
		if a.ID != exceptID && SameName(a.Name, name) {
			return true
		}
	}
	return false
}
