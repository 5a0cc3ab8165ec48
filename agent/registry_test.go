package agent

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRosterIsValid(t *testing.T) {
	roster := DefaultRoster()
	if err := Validate(roster); err != nil {
		t.Fatalf("default roster invalid: %v", err)
	}
	if roster[0].ID != OracleID {
		t.Errorf("first agent = %q, want %q", roster[0].ID, OracleID)
	}
}

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name    string
		agents  []Agent
		wantErr error
	}{
		{"ok", []Agent{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, nil},
		{"blank id", []Agent{{ID: "a", Name: "A"}, {ID: " ", Name: "B"}}, ErrEmptyID},
		{"duplicate id", []Agent{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}}, ErrDuplicateID},
		{"blank name", []Agent{{ID: "a", Name: ""}}, ErrEmptyName},
		{"duplicate name", []Agent{{ID: "a", Name: "Beta"}, {ID: "b", Name: "beta"}}, ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.agents)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil) != (err == nil) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssignMissingIDs(t *testing.T) {
	agents := []Agent{{ID: "keep", Name: "A"}, {Name: "B"}, {ID: "  ", Name: "C"}}
	if n := AssignMissingIDs(agents); n != 2 {
		t.Fatalf("assigned %d, want 2", n)
	}
	if agents[0].ID != "keep" {
		t.Errorf("existing id replaced: %q", agents[0].ID)
	}
	if !strings.HasPrefix(agents[1].ID, "agent-") || agents[1].ID == agents[2].ID {
		t.Errorf("generated ids %q, %q", agents[1].ID, agents[2].ID)
	}
	if err := Validate(agents); err != nil {
		t.Errorf("roster invalid after assignment: %v", err)
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry(nil)

	first := r.Add()
	second := r.Add()

	if !strings.HasPrefix(first.ID, "agent-") {
		t.Errorf("ID %q missing agent- prefix", first.ID)
	}
	if first.ID == second.ID {
		t.Error("Add() generated duplicate IDs")
	}
	if first.Name != PlaceholderName {
		t.Errorf("first name = %q, want %q", first.Name, PlaceholderName)
	}
	if second.Name != PlaceholderName+" 2" {
		t.Errorf("second name = %q, want %q", second.Name, PlaceholderName+" 2")
	}
	if first.Role != PlaceholderRole || first.Description != PlaceholderDescription {
		t.Errorf("placeholder fields not set: %+v", first)
	}
	if r.Revision() != 2 {
		t.Errorf("Revision() = %d, want 2", r.Revision())
	}
	if err := Validate(r.List()); err != nil {
		t.Errorf("roster invalid after adds: %v", err)
	}
}

func TestRegistryUpdate(t *testing.T) {
	tests := []struct {
		name      string
		update    Agent
		wantOK    bool
		wantErr   error
		wantNames []string
	}{
		{
			name:      "replaces matching record",
			update:    Agent{ID: "alpha", Name: "Alpha Prime", Role: "Lead"},
			wantOK:    true,
			wantNames: []string{"The Oracle", "Alpha Prime", "Beta"},
		},
		{
			name:      "absent id is a no-op",
			update:    Agent{ID: "missing", Name: "Ghost"},
			wantOK:    false,
			wantNames: []string{"The Oracle", "Alpha", "Beta"},
		},
		{
			name:      "empty name rejected",
			update:    Agent{ID: "alpha", Name: "   "},
			wantErr:   ErrEmptyName,
			wantNames: []string{"The Oracle", "Alpha", "Beta"},
		},
		{
			name:      "duplicate name rejected case-insensitively",
			update:    Agent{ID: "alpha", Name: "beta"},
			wantErr:   ErrDuplicateName,
			wantNames: []string{"The Oracle", "Alpha", "Beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(DefaultRoster()[:3])
			before := r.Revision()

			ok, err := r.Update(tt.update)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Update() error = %v, want %v", err, tt.wantErr)
			}
			if ok != tt.wantOK {
				t.Errorf("Update() ok = %v, want %v", ok, tt.wantOK)
			}
			if got := names(r.List()); !cmp.Equal(got, tt.wantNames) {
				t.Errorf("names mismatch (-want +got):\n%s", cmp.Diff(tt.wantNames, got))
			}
			if !ok && r.Revision() != before {
				t.Error("revision changed on a failed update")
			}
		})
	}
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry(DefaultRoster())
	n := r.Len()

	if !r.Delete("gamma") {
		t.Fatal("Delete(gamma) = false")
	}
	if r.Delete("gamma") {
		t.Error("second Delete(gamma) = true")
	}
	if r.Len() != n-1 {
		t.Errorf("Len() = %d, want %d", r.Len(), n-1)
	}
	if _, ok := r.FindByName("Gamma"); ok {
		t.Error("deleted agent still resolvable by name")
	}
}

func TestListReturnsCopy(t *testing.T) {
	r := NewRegistry(DefaultRoster())
	list := r.List()
	list[0].Name = "Mutated"

	a, _ := r.Get(OracleID)
	if a.Name != "The Oracle" {
		t.Errorf("registry aliased by List(): name = %q", a.Name)
	}
}

func TestFindByName(t *testing.T) {
	r := NewRegistry(DefaultRoster())

	for _, q := range []string{"the oracle", "THE ORACLE", "  Alpha "} {
		if _, ok := r.FindByName(q); !ok {
			t.Errorf("FindByName(%q) not found", q)
		}
	}
	if _, ok := r.FindByName("Oracle"); ok {
		t.Error("FindByName(Oracle) should not match The Oracle")
	}
}

func names(agents []Agent) []string {
	out := make([]string, len(agents))
	for i, a := range agents {
		out[i] = a.Name
	}
	return out
}
