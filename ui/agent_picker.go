package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"nexus/agent"
	"nexus/mention"
)

type pickerMode int

const (
	pickerTeleport pickerMode = iota // agents mentioned in the last reply
	pickerRoster                     // the whole roster
)

// AgentPicker lists agents to open a card for.
type AgentPicker struct {
	Active bool
	Mode   pickerMode

	items       []agent.Agent
	filtered    []agent.Agent
	selected    int
	filterMode  bool
	filterInput textinput.Model
}

func newAgentPicker() AgentPicker {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.CharLimit = 64
	return AgentPicker{filterInput: input}
}

func (p *AgentPicker) Open(mode pickerMode, items []agent.Agent) {
	p.Active = true
	p.Mode = mode
	p.items = items
	p.filtered = items
	p.selected = 0
	p.filterMode = false
	p.filterInput.SetValue("")
	p.filterInput.Blur()
}

func (p *AgentPicker) Close() {
	p.Active = false
	p.filterMode = false
	p.filterInput.Blur()
}

func (p AgentPicker) list() []agent.Agent {
	if p.filterMode {
		return p.filtered
	}
	return p.items
}

// Selected returns the highlighted agent.
func (p AgentPicker) Selected() (agent.Agent, bool) {
	list := p.list()
	if p.selected < 0 || p.selected >= len(list) {
		return agent.Agent{}, false
	}
	return list[p.selected], true
}

func (p *AgentPicker) move(delta int) {
	n := len(p.list())
	if n == 0 {
		p.selected = 0
		return
	}
	p.selected = (p.selected + delta + n) % n
}

// applyFilter matches the filter against name and role.
func (p *AgentPicker) applyFilter() {
	value := p.filterInput.Value()
	if value == "" {
		p.filtered = p.items
	} else {
		targets := make([]string, len(p.items))
		for i, a := range p.items {
			targets[i] = a.Name + " " + a.Role
		}

		matches := fuzzy.Find(value, targets)
		p.filtered = make([]agent.Agent, len(matches))
		for i, match := range matches {
			p.filtered[i] = p.items[match.Index]
		}
	}

	if p.selected >= len(p.filtered) {
		p.selected = max(len(p.filtered)-1, 0)
	}
}

func (a AppView) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	key := msg.String()

	if a.picker.filterMode {
		switch {
		case key == "esc":
			a.picker.filterMode = false
			a.picker.filterInput.Blur()
			a.picker.selected = 0
			return a, nil
		case key == "enter":
			return a.openSelectedCard()
		case kb.Is("picker_down_filtered", key) || kb.Is("picker_down_arrow", key):
			a.picker.move(1)
			return a, nil
		case kb.Is("picker_up_filtered", key) || kb.Is("picker_up_arrow", key):
			a.picker.move(-1)
			return a, nil
		}

		var cmd tea.Cmd
		a.picker.filterInput, cmd = a.picker.filterInput.Update(msg)
		a.picker.applyFilter()
		return a, cmd
	}

	switch {
	case key == "esc":
		a.picker.Close()
	case key == "enter":
		return a.openSelectedCard()
	case key == "/":
		a.picker.filterMode = true
		a.picker.filtered = a.picker.items
		a.picker.filterInput.SetValue("")
		a.picker.filterInput.Focus()
		return a, textinput.Blink
	case kb.Is("picker_down", key) || kb.Is("picker_down_arrow", key):
		a.picker.move(1)
	case kb.Is("picker_up", key) || kb.Is("picker_up_arrow", key):
		a.picker.move(-1)
	}
	return a, nil
}

func (a AppView) openSelectedCard() (tea.Model, tea.Cmd) {
	selected, ok := a.picker.Selected()
	if !ok {
		return a, nil
	}
	a.picker.Close()
	cmd := a.openCard(selected)
	return a, cmd
}

func (a AppView) renderPicker() string {
	title := "Teleport"
	if a.picker.Mode == pickerRoster {
		title = "Agent Roster"
	}

	modalWidth := clampModalWidth(70, a.width)
	nameWidth := 18
	roleWidth := modalWidth - nameWidth - 8

	var lines []string
	if a.picker.filterMode {
		lines = append(lines, a.picker.filterInput.View(), "")
	}

	list := a.picker.list()
	if len(list) == 0 {
		lines = append(lines, DimStyle.Render("No agents match."))
	}
	focused, _ := a.dataModel.FocusedAgent()
	for i, ag := range list {
		cursor := "  "
		if i == a.picker.selected {
			cursor = "▸ "
		}
		marker := " "
		if ag.ID == focused.ID {
			marker = "•"
		}
		name := AgentStyle(ag).Render(padRight(ag.Icon+" "+ag.Name, nameWidth))
		role := DimStyle.Render(truncate(ag.Role, roleWidth))
		line := fmt.Sprintf("%s%s %s %s", cursor, marker, name, role)
		if i == a.picker.selected {
			line = SelectedStyle.Render(cursor) + strings.TrimPrefix(line, cursor)
		}
		lines = append(lines, line)
	}

	var footer string
	if a.picker.filterMode {
		kb := a.dataModel.Config.Keybindings
		footer = FormatFooter(
			kb.DisplayActionKey("picker_down_filtered")+"/"+kb.DisplayActionKey("picker_up_filtered"), "Navigate",
			"Enter", "Open",
			"Esc", "Clear filter",
		)
	} else {
		footer = FormatFooter("j/k", "Navigate", "/", "Filter", "Enter", "Open", "Esc", "Close")
	}

	return RenderThreeSectionModal(title, lines, footer, ModalTypeInfo, modalWidth, a.width, a.height)
}

// mentionedAgents returns the agents referenced by the most recent reply.
func (a AppView) mentionedAgents() []agent.Agent {
	last, ok := a.dataModel.Conversation.LastAssistant()
	if !ok {
		return nil
	}
	return mention.Mentions(a.mentions.get(a.dataModel.Registry).Parse(last.Content))
}
