// Package mention finds agent references inside Oracle replies.
//
// Two lexical forms are recognised: the explicit directive
// "[TELEPORT -> Name]" and a bare occurrence of any roster name that is not
// glued to a neighbouring letter, digit or underscore in any script.
// Parsing splits a reply into literal and mention segments whose concatenation
// is always the original text.
package mention

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"nexus/agent"
)

// Kind distinguishes literal text from a resolved agent reference.
type Kind int

const (
	KindText Kind = iota
	KindMention
)

// Segment is one piece of a parsed reply. Text is always the verbatim source
// span, so joining segments reproduces the input.
type Segment struct {
	Kind     Kind
	Text     string
	Agent    *agent.Agent // set only for KindMention
	Explicit bool         // true when written as [TELEPORT -> Name]
}

// IsMention reports whether the segment resolved to an agent.
func (s Segment) IsMention() bool {
	return s.Kind == KindMention && s.Agent != nil
}

const directivePattern = `\[TELEPORT\s*->\s*[^\]]+\]`

var directiveName = regexp.MustCompile(`(?i)^\[TELEPORT\s*->\s*([^\]]+)\]$`)

// Matcher is the compiled vocabulary for one roster snapshot.
// Build a new one whenever the roster changes.
type Matcher struct {
	roster  []agent.Agent
	pattern *regexp.Regexp

	// prefixes holds one anchored pattern per name, longest first, used when
	// the pattern's pick at a position is not bounded.
	prefixes []*regexp.Regexp
}

// NewMatcher builds a matcher from the roster. Names are sorted longest-first
// so that a name wins over any shorter name it contains.
func NewMatcher(roster []agent.Agent) *Matcher {
	agents := make([]agent.Agent, 0, len(roster))
	var names []string
	for _, a := range roster {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		agents = append(agents, a)
		names = append(names, name)
	}

	sort.SliceStable(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	// Boundaries are checked in Parse: RE2's \b only knows ASCII.
	expr := `(?i)(` + directivePattern + `)`
	prefixes := make([]*regexp.Regexp, len(names))
	if len(names) > 0 {
		escaped := make([]string, len(names))
		for i, n := range names {
			escaped[i] = regexp.QuoteMeta(n)
			prefixes[i] = regexp.MustCompile(`(?i)^(?:` + escaped[i] + `)`)
		}
		expr += `|(` + strings.Join(escaped, "|") + `)`
	}

	return &Matcher{
		roster:   agents,
		pattern:  regexp.MustCompile(expr),
		prefixes: prefixes,
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// bounded reports whether text[start:end] is not glued to a word rune on
// either side.
func bounded(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// bareAt returns the end of the longest bounded name starting at start.
func (m *Matcher) bareAt(text string, start, end int) (int, bool) {
	if bounded(text, start, end) {
		return end, true
	}
	for _, p := range m.prefixes {
		loc := p.FindStringIndex(text[start:])
		if loc != nil && bounded(text, start, start+loc[1]) {
			return start + loc[1], true
		}
	}
	return 0, false
}

// Parse splits text into ordered segments.
func (m *Matcher) Parse(text string) []Segment {
	var segments []Segment
	appendText := func(s string) {
		if s == "" {
			return
		}
		if n := len(segments); n > 0 && segments[n-1].Kind == KindText {
			segments[n-1].Text += s
			return
		}
		segments = append(segments, Segment{Kind: KindText, Text: s})
	}

	last, pos := 0, 0
	for pos < len(text) {
		loc := m.pattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		explicit := loc[2] >= 0

		if !explicit {
			e, ok := m.bareAt(text, start, end)
			if !ok {
				_, size := utf8.DecodeRuneInString(text[start:])
				pos = start + size
				continue
			}
			end = e
		}

		appendText(text[last:start])
		last, pos = end, end

		raw := text[start:end]

		name := raw
		if explicit {
			sub := directiveName.FindStringSubmatch(raw)
			if sub == nil {
				appendText(raw)
				continue
			}
			name = strings.TrimSpace(sub[1])
		}

		a, ok := agent.FindByName(m.roster, name)
		if !ok {
			appendText(raw)
			continue
		}
		segments = append(segments, Segment{
			Kind:     KindMention,
			Text:     raw,
			Agent:    &a,
			Explicit: explicit,
		})
	}
	appendText(text[last:])

	return segments
}

// Parse is a convenience for a one-off parse against a roster snapshot.
func Parse(text string, roster []agent.Agent) []Segment {
	return NewMatcher(roster).Parse(text)
}

// Join concatenates segment texts back into the source string.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Mentions returns the distinct agents referenced in segments, in document order.
func Mentions(segments []Segment) []agent.Agent {
	seen := make(map[string]bool)
	var out []agent.Agent
	for _, s := range segments {
		if !s.IsMention() || seen[s.Agent.ID] {
			continue
		}
		seen[s.Agent.ID] = true
		out = append(out, *s.Agent)
	}
	return out
}
