package main

import (
	"bytes"
	"strings"
	"testing"

	"nexus/agent"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("NEXUS_DATA_DIR", t.TempDir())
	t.Setenv("NEXUS_DEBUG", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("nexus %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestAgentsListsDefaultRoster(t *testing.T) {
	out := execute(t, "agents")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	roster := agent.DefaultRoster()
	if len(lines) != len(roster)+1 {
		t.Fatalf("got %d lines, want header plus %d agents:\n%s", len(lines), len(roster), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	for i, a := range roster {
		if !strings.Contains(lines[i+1], a.Name) || !strings.Contains(lines[i+1], a.Description) {
			t.Errorf("line %d = %q, want %s", i+1, lines[i+1], a.Name)
		}
	}
}

func TestDirectiveNamesEveryAgent(t *testing.T) {
	out := execute(t, "directive")
	for _, a := range agent.DefaultRoster() {
		if a.ID == agent.OracleID {
			continue
		}
		if !strings.Contains(out, a.Name) {
			t.Errorf("directive does not mention %s", a.Name)
		}
	}
}
