package config

import "testing"

func TestGetActionKey(t *testing.T) {
	tests := []struct {
		name    string
		kb      *KeyBindingsConfig
		action  string
		want    string
		display string
	}{
		{"primary default", DefaultKeybindings(), "teleport", "alt+t", "Alt+T"},
		{"secondary letter uses uppercase", DefaultKeybindings(), "architect", "alt+A", "Alt+Shift+A"},
		{"no modifier", DefaultKeybindings(), "picker_down", "j", "J"},
		{"unknown action", DefaultKeybindings(), "nope", "", ""},
		{
			"ctrl modifiers",
			&KeyBindingsConfig{Modifiers: ModifierConfig{Primary: "ctrl", Secondary: "ctrl+shift"}},
			"roster", "ctrl+r", "Ctrl+R",
		},
		{
			"per-action override",
			&KeyBindingsConfig{Modifiers: ModifierConfig{Primary: "alt"}, Actions: map[string]string{"quit": "ctrl+shift+q"}},
			"quit", "ctrl+shift+q", "Ctrl+Shift+Q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kb.GetActionKey(tt.action); got != tt.want {
				t.Errorf("GetActionKey(%q) = %q, want %q", tt.action, got, tt.want)
			}
			if got := tt.kb.DisplayActionKey(tt.action); got != tt.display {
				t.Errorf("DisplayActionKey(%q) = %q, want %q", tt.action, got, tt.display)
			}
		})
	}
}

func TestIs(t *testing.T) {
	kb := DefaultKeybindings()
	if !kb.Is("quit", "alt+q") {
		t.Error("alt+q should quit")
	}
	if kb.Is("quit", "q") {
		t.Error("bare q should not quit")
	}
}

func TestHelpEntriesAreRegistered(t *testing.T) {
	kb := DefaultKeybindings()
	for _, e := range HelpEntries {
		if kb.GetActionKey(e.Action) == "" {
			t.Errorf("help entry %q has no keybinding", e.Action)
		}
	}
}

func TestLoadKeybindingsCreatesTemplate(t *testing.T) {
	dir := t.TempDir()
	kb, err := LoadKeybindings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if kb.Primary() != "alt" {
		t.Errorf("Primary() = %q", kb.Primary())
	}

	// The template must parse.
	kb, err = LoadKeybindings(dir)
	if err != nil {
		t.Fatalf("reloading template: %v", err)
	}
	if kb.Secondary() != "alt+shift" {
		t.Errorf("Secondary() = %q", kb.Secondary())
	}
}
