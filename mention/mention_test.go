package mention

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nexus/agent"
)

func testRoster() []agent.Agent {
	return []agent.Agent{
		{ID: "oracle-short", Name: "Oracle"},
		{ID: "the-oracle", Name: "The Oracle"},
		{ID: "alpha", Name: "Alpha"},
		{ID: "beta", Name: "Beta"},
		{ID: "gamma", Name: "Gamma"},
	}
}

// flat is a comparable view of a segment.
type flat struct {
	Text     string
	AgentID  string
	Explicit bool
}

func flatten(segs []Segment) []flat {
	out := make([]flat, len(segs))
	for i, s := range segs {
		f := flat{Text: s.Text, Explicit: s.Explicit}
		if s.IsMention() {
			f.AgentID = s.Agent.ID
		}
		out[i] = f
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []flat
	}{
		{
			name: "longer name wins over contained shorter name",
			text: "Ask The Oracle",
			want: []flat{{Text: "Ask "}, {Text: "The Oracle", AgentID: "the-oracle"}},
		},
		{
			name: "longer name matches case-insensitively",
			text: "the Oracle knows",
			want: []flat{{Text: "the Oracle", AgentID: "the-oracle"}, {Text: " knows"}},
		},
		{
			name: "bare names are case-insensitive",
			text: "start with ALPHA, then beta.",
			want: []flat{
				{Text: "start with "},
				{Text: "ALPHA", AgentID: "alpha"},
				{Text: ", then "},
				{Text: "beta", AgentID: "beta"},
				{Text: "."},
			},
		},
		{
			name: "explicit directive",
			text: "Go now: [TELEPORT -> Alpha]",
			want: []flat{{Text: "Go now: "}, {Text: "[TELEPORT -> Alpha]", AgentID: "alpha", Explicit: true}},
		},
		{
			name: "directive without whitespace",
			text: "[TELEPORT->Alpha]",
			want: []flat{{Text: "[TELEPORT->Alpha]", AgentID: "alpha", Explicit: true}},
		},
		{
			name: "directive with extra whitespace and lowercase keyword",
			text: "[teleport   ->\t alpha  ]",
			want: []flat{{Text: "[teleport   ->\t alpha  ]", AgentID: "alpha", Explicit: true}},
		},
		{
			name: "unresolvable directive stays literal",
			text: "Try [TELEPORT -> Nobody] first",
			want: []flat{{Text: "Try [TELEPORT -> Nobody] first"}},
		},
		{
			name: "no word boundary inside larger word",
			text: "AlphaBeta is not a name",
			want: []flat{{Text: "AlphaBeta is not a name"}},
		},
		{
			name: "possessive still matches",
			text: "Gamma's got your back",
			want: []flat{{Text: "Gamma", AgentID: "gamma"}, {Text: "'s got your back"}},
		},
		{
			name: "no mentions",
			text: "Tell me more about your goal.",
			want: []flat{{Text: "Tell me more about your goal."}},
		},
		{
			name: "empty text",
			text: "",
			want: []flat{},
		},
	}

	m := NewMatcher(testRoster())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flatten(m.Parse(tt.text))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestParseIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"Ask The Oracle about Alpha and [TELEPORT -> Beta].",
		"[TELEPORT -> Missing] then [TELEPORT->gamma]\nand oracle, ORACLE, Oracle!",
		"ünïcödé Alpha → Beta ✨ [TELEPORT ->",
		"]]]][[[TELEPORT -> ] Alpha",
		"AlphaAlpha Alpha_Beta Alpha-Beta",
	}
	rosters := map[string][]agent.Agent{
		"full":  testRoster(),
		"empty": nil,
		"regex": {{ID: "weird", Name: "C++ (beta)"}, {ID: "dot", Name: "a.b"}},
	}

	for rname, roster := range rosters {
		m := NewMatcher(roster)
		for _, in := range inputs {
			if got := Join(m.Parse(in)); got != in {
				t.Errorf("[%s] Join(Parse(%q)) = %q", rname, in, got)
			}
		}
	}
}

func TestDeletedAgentStopsResolving(t *testing.T) {
	reg := agent.NewRegistry(testRoster())
	text := "Visit Gamma next"

	before := Parse(text, reg.List())
	if len(Mentions(before)) != 1 {
		t.Fatalf("expected Gamma to resolve before deletion, got %+v", before)
	}

	reg.Delete("gamma")
	after := Parse(text, reg.List())
	for _, s := range after {
		if s.IsMention() {
			t.Errorf("deleted agent produced a mention: %+v", s)
		}
	}
	if Join(after) != text {
		t.Errorf("Join = %q, want %q", Join(after), text)
	}
}

func TestDirectiveForDeletedAgentIsLiteral(t *testing.T) {
	roster := []agent.Agent{{ID: "alpha", Name: "Alpha"}}
	segs := Parse("[TELEPORT -> Beta]", roster)
	if len(segs) != 1 || segs[0].IsMention() {
		t.Errorf("expected one literal segment, got %+v", segs)
	}
}

func TestMentionsDedupesInOrder(t *testing.T) {
	segs := Parse("Beta, then Alpha, then beta again, [TELEPORT -> Alpha]", testRoster())

	var ids []string
	for _, a := range Mentions(segs) {
		ids = append(ids, a.ID)
	}
	if diff := cmp.Diff([]string{"beta", "alpha"}, ids); diff != "" {
		t.Errorf("Mentions mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherSkipsEmptyNames(t *testing.T) {
	m := NewMatcher([]agent.Agent{{ID: "blank", Name: "  "}, {ID: "alpha", Name: "Alpha"}})
	segs := m.Parse("Alpha")
	if len(segs) != 1 || !segs[0].IsMention() || segs[0].Agent.ID != "alpha" {
		t.Errorf("unexpected segments %+v", segs)
	}
}

func TestSpecialCharactersInNamesAreEscaped(t *testing.T) {
	roster := []agent.Agent{{ID: "dot", Name: "a.b"}}
	segs := Parse("axb and a.b", roster)
	want := []flat{{Text: "axb and "}, {Text: "a.b", AgentID: "dot"}}
	if diff := cmp.Diff(want, flatten(segs)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundariesOutsideASCII(t *testing.T) {
	roster := []agent.Agent{
		{ID: "zoe", Name: "Zoë"},
		{ID: "cpp", Name: "C++"},
		{ID: "al", Name: "Al"},
		{ID: "alpha-team", Name: "Al Pha"},
	}

	tests := []struct {
		name string
		text string
		want []flat
	}{
		{
			name: "non-ASCII final letter",
			text: "hi Zoë there",
			want: []flat{{Text: "hi "}, {Text: "Zoë", AgentID: "zoe"}, {Text: " there"}},
		},
		{
			name: "symbol final character",
			text: "use C++ now",
			want: []flat{{Text: "use "}, {Text: "C++", AgentID: "cpp"}, {Text: " now"}},
		},
		{
			name: "glued to a non-ASCII letter",
			text: "Zoëy and éAl",
			want: []flat{{Text: "Zoëy and éAl"}},
		},
		{
			name: "shorter name when the longer one is glued",
			text: "ask Al Phax",
			want: []flat{{Text: "ask "}, {Text: "Al", AgentID: "al"}, {Text: " Phax"}},
		},
		{
			name: "longer name when bounded",
			text: "ask Al Pha.",
			want: []flat{{Text: "ask "}, {Text: "Al Pha", AgentID: "alpha-team"}, {Text: "."}},
		},
	}

	m := NewMatcher(roster)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := m.Parse(tt.text)
			if diff := cmp.Diff(tt.want, flatten(segs)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
			if Join(segs) != tt.text {
				t.Errorf("Join = %q", Join(segs))
			}
		})
	}
}
