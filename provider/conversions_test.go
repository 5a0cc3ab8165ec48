package provider

import (
	"testing"

	"github.com/ollama/ollama/api"

	"nexus/model"
	"nexus/provider/testutil"
)

func TestConvertToOllamaMessages(t *testing.T) {
	tests := []struct {
		name     string
		system   string
		input    []model.Message
		expected []api.Message
	}{
		{
			name:     "empty",
			expected: []api.Message{},
		},
		{
			name:     "directive only",
			system:   "be brief",
			expected: []api.Message{{Role: "system", Content: "be brief"}},
		},
		{
			name:   "directive then turns",
			system: "route users",
			input:  testutil.TestTurns(),
			expected: []api.Message{
				{Role: "system", Content: "route users"},
				{Role: "user", Content: "I need more customers"},
				{Role: "assistant", Content: "Who is your audience?"},
				{Role: "user", Content: "Indie SaaS founders"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertToOllamaMessages(tt.system, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(got), len(tt.expected))
			}
			for i, msg := range got {
				if msg.Role != tt.expected[i].Role {
					t.Errorf("message %d role: got %q, want %q", i, msg.Role, tt.expected[i].Role)
				}
				if msg.Content != tt.expected[i].Content {
					t.Errorf("message %d content: got %q, want %q", i, msg.Content, tt.expected[i].Content)
				}
			}
		})
	}
}

func TestConvertToOpenAIMessagesLength(t *testing.T) {
	turns := testutil.TestTurns()

	if got := len(ConvertToOpenAIMessages("directive", turns)); got != len(turns)+1 {
		t.Errorf("with directive: %d messages, want %d", got, len(turns)+1)
	}
	if got := len(ConvertToOpenAIMessages("", turns)); got != len(turns) {
		t.Errorf("without directive: %d messages, want %d", got, len(turns))
	}
}

func TestConvertToAnthropicMessagesRoles(t *testing.T) {
	msgs := ConvertToAnthropicMessages(testutil.TestTurns())
	want := []string{"user", "assistant", "user"}
	if len(msgs) != len(want) {
		t.Fatalf("got %d messages", len(msgs))
	}
	for i, m := range msgs {
		if string(m.Role) != want[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, want[i])
		}
	}
	if anthropicSystem("") != nil {
		t.Error("empty directive should produce no system blocks")
	}
}

func TestConvertToGeminiContentsRoles(t *testing.T) {
	contents := ConvertToGeminiContents(testutil.TestTurns())
	want := []string{"user", "model", "user"}
	for i, c := range contents {
		if c.Role != want[i] {
			t.Errorf("content %d role = %q, want %q", i, c.Role, want[i])
		}
		if len(c.Parts) != 1 || c.Parts[0].Text == "" {
			t.Errorf("content %d parts = %+v", i, c.Parts)
		}
	}
}
