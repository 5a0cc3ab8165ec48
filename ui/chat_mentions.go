package ui

import (
	"strings"

	"nexus/agent"
	"nexus/mention"
)

// mentionCache rebuilds the matcher only when the roster revision moves.
type mentionCache struct {
	revision uint64
	matcher  *mention.Matcher
}

func (c *mentionCache) get(reg *agent.Registry) *mention.Matcher {
	if c.matcher == nil || c.revision != reg.Revision() {
		c.matcher = mention.NewMatcher(reg.List())
		c.revision = reg.Revision()
	}
	return c.matcher
}

// inlineLabel is the affordance drawn for a bare name.
func inlineLabel(a agent.Agent) string {
	if a.Icon == "" {
		return "‹" + a.Name + "›"
	}
	return "‹" + a.Icon + " " + a.Name + "›"
}

// pillLabel is the affordance drawn for an explicit directive.
func pillLabel(a agent.Agent) string {
	return "[➔ Teleport to " + a.Name + "]"
}

// renderSegments styles mention segments as teleport affordances and leaves
// literal text untouched.
func renderSegments(segments []mention.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		switch {
		case s.IsMention() && s.Explicit:
			b.WriteString(PillStyle(*s.Agent).Render(pillLabel(*s.Agent)))
		case s.IsMention():
			b.WriteString(AgentStyle(*s.Agent).Render(inlineLabel(*s.Agent)))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// plainSegments is renderSegments without colour, used by the CLI when
// stdout is not a terminal and by tests.
func plainSegments(segments []mention.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		switch {
		case s.IsMention() && s.Explicit:
			b.WriteString(pillLabel(*s.Agent))
		case s.IsMention():
			b.WriteString(inlineLabel(*s.Agent))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// RenderReply renders an Oracle reply with its mentions highlighted.
func RenderReply(text string, roster []agent.Agent, color bool) string {
	segs := mention.Parse(text, roster)
	if color {
		return renderSegments(segs)
	}
	return plainSegments(segs)
}
