package ui

import (
	"fmt"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"go.uber.org/zap"

	"nexus/agent"
	"nexus/config"
)

// revealPresses is how many times the reveal key must be hit before the
// access code input appears.
const revealPresses = 10

// AgentCard shows one agent and lets the user enter its domain.
type AgentCard struct {
	Active bool
	Agent  agent.Agent

	presses   int
	codeInput textinput.Model
	denied    bool
	rendered  string
}

func newAgentCard() AgentCard {
	input := textinput.New()
	input.Placeholder = "Enter Access Code"
	input.CharLimit = 32
	input.Width = 20
	input.EchoMode = textinput.EchoPassword
	return AgentCard{codeInput: input}
}

// Revealed reports whether the access code input is showing.
func (c AgentCard) Revealed() bool {
	return c.presses >= revealPresses
}

func (c *AgentCard) reset() {
	c.presses = 0
	c.denied = false
	c.codeInput.SetValue("")
	c.codeInput.Blur()
}

func (c *AgentCard) Close() {
	c.Active = false
	c.reset()
}

// openCard shows a for the given agent and starts rendering its description.
func (a *AppView) openCard(ag agent.Agent) tea.Cmd {
	a.card.Active = true
	a.card.Agent = ag
	a.card.reset()

	key := markdownKey(ag, a.cardWidth())
	if rendered, ok := a.markdownCache[key]; ok {
		a.card.rendered = rendered
		return nil
	}
	a.card.rendered = ag.Description
	return renderMarkdownAsync(ag, a.cardWidth())
}

func (a AppView) cardWidth() int {
	return clampModalWidth(60, a.width)
}

func (a AppView) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	key := msg.String()

	if a.card.Revealed() {
		switch key {
		case "esc":
			a.card.Close()
			return a, nil
		case "enter":
			code := a.card.codeInput.Value()
			if a.dataModel.Unlock(code) {
				config.Log.Info("architect console unlocked")
				a.card.Close()
				a.architect.Open()
				return a, nil
			}
			// A wrong code hides the input again.
			a.card.reset()
			a.card.denied = true
			return a, nil
		}

		var cmd tea.Cmd
		a.card.codeInput, cmd = a.card.codeInput.Update(msg)
		return a, cmd
	}

	switch {
	case key == "esc":
		a.card.Close()
	case key == "enter":
		ag := a.card.Agent
		a.card.Close()
		var cmd tea.Cmd
		if a.dataModel.Teleport(ag.ID) {
			config.Log.Debug("teleported", zap.String("agent", ag.ID))
			a.updateViewportContent(true)
			cmd = a.setNotice(fmt.Sprintf("Entered %s's Domain", ag.Name), false)
		} else {
			cmd = a.setNotice(fmt.Sprintf("%s is no longer in the roster", ag.Name), true)
		}
		return a, cmd
	case kb.Is("reveal_access", key):
		a.card.presses++
		a.card.denied = false
		if a.card.Revealed() {
			a.card.codeInput.Focus()
			return a, textinput.Blink
		}
	}
	return a, nil
}

func (a AppView) renderCard() string {
	ag := a.card.Agent
	width := a.cardWidth()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	icon := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(agentColor(ag)).
		Padding(0, 2).
		Render(ag.Icon)

	lines := []string{
		center.Render(icon),
		"",
		center.Render(TitleStyle.Render(ag.Name)),
		center.Render(AgentStyle(ag).Render(strings.ToUpper(ag.Role))),
		"",
	}
	for _, line := range strings.Split(strings.TrimRight(a.card.rendered, "\n"), "\n") {
		lines = append(lines, line)
	}
	lines = append(lines, "", center.Render(PillStyle(ag).Render(fmt.Sprintf("Enter %s's Domain", ag.Name))))

	if a.card.Revealed() {
		lines = append(lines, "", center.Render(a.card.codeInput.View()))
	}
	if a.card.denied {
		lines = append(lines, "", center.Render(ErrorStyle.Render("Access denied")))
	}

	footer := FormatFooter("Enter", "Enter domain", "Esc", "Close")
	if a.card.Revealed() {
		footer = FormatFooter("Enter", "Submit code", "Esc", "Close")
	}

	return RenderThreeSectionModal(ag.Icon+" "+ag.Name, lines, footer, ModalTypeInfo, width, a.width, a.height)
}

func markdownKey(ag agent.Agent, width int) string {
	return fmt.Sprintf("%s/%d/%s", ag.ID, width, ag.Description)
}

// renderMarkdownAsync renders an agent description off the UI loop.
func renderMarkdownAsync(ag agent.Agent, width int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		rendered := renderMarkdown(ag.Description, width)
		config.Log.Debug("description rendered",
			zap.String("agent", ag.ID),
			zap.Duration("elapsed", time.Since(start)),
		)
		return markdownRenderedMsg{
			Key:      markdownKey(ag, width),
			AgentID:  ag.ID,
			Rendered: rendered,
		}
	}
}

// renderMarkdown renders md for a terminal of the given width. Autolinks are
// left to the terminal emulator.
func renderMarkdown(md string, width int) string {
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width-4, 2)
	doc := p.Parse([]byte(md))
	return string(gomarkdown.Render(doc, r))
}
