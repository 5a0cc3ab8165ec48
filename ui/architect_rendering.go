package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nexus/config"
)

func (a AppView) renderArchitect() string {
	s := a.architect
	if s.confirm.Active {
		return RenderConfirmationModal(s.confirm, a.width, a.height)
	}

	width := clampModalWidth(80, a.width)

	active := lipgloss.NewStyle().Foreground(oracleColor).Bold(true).Underline(true)
	inactive := DimStyle
	oracleTab, agentsTab := inactive.Render("Oracle Config"), inactive.Render("Agents")
	if s.tab == tabOracle {
		oracleTab = active.Render("Oracle Config")
	} else {
		agentsTab = active.Render("Agents")
	}

	lines := []string{
		DimStyle.Render("SYSTEM_OVERRIDE_ACTIVE"),
		"",
		oracleTab + "    " + agentsTab,
		"",
	}

	var footer string
	kb := a.dataModel.Config.Keybindings
	switch {
	case s.form != nil:
		lines = append(lines, a.renderAgentForm(width)...)
		footer = FormatFooter("Tab", "Next field", "Enter", "Done", "Esc", "Cancel")
	case s.tab == tabOracle:
		lines = append(lines, a.renderOracleTab(width)...)
		if s.editing {
			footer = FormatFooter("Enter", "Apply", "Esc", "Cancel")
		} else {
			footer = FormatFooter(
				"j/k", "Select",
				kb.DisplayActionKey("architect_decrease")+"/"+kb.DisplayActionKey("architect_increase"), "Adjust",
				kb.DisplayActionKey("architect_tone"), "Next tone",
				"Enter", "Edit",
				kb.DisplayActionKey("architect_next_tab"), "Agents",
				"Esc", "Close",
			)
		}
	default:
		lines = append(lines, a.renderAgentsTab(width)...)
		footer = FormatFooter(
			"j/k", "Select",
			kb.DisplayActionKey("architect_add"), "Add",
			kb.DisplayActionKey("architect_edit"), "Edit",
			kb.DisplayActionKey("architect_delete"), "Delete",
			kb.DisplayActionKey("architect_next_tab"), "Oracle",
			"Esc", "Close",
		)
	}

	if s.err != "" {
		lines = append(lines, "", ErrorStyle.Render(wordWrap(s.err, width)))
	}

	return RenderThreeSectionModal("⚡ Architect's Console", lines, footer, ModalTypeWarning, width, a.width, a.height)
}

func (a AppView) renderOracleTab(width int) []string {
	s := a.architect
	cfg := a.dataModel.Config.Oracle

	row := func(f oracleField, label, value, hint string) []string {
		cursor := "  "
		labelStyle := TitleStyle
		if f == s.field {
			cursor = SelectedStyle.Render("▸ ")
			labelStyle = SelectedStyle
		}
		out := []string{cursor + labelStyle.Render(label)}
		if s.editing && f == s.field {
			out = append(out, "    "+s.input.View())
		} else {
			out = append(out, "    "+value)
		}
		if hint != "" {
			out = append(out, "    "+DimStyle.Render(hint))
		}
		return append(out, "")
	}

	var lines []string
	lines = append(lines, row(fieldTemperature, "System Temperature (Creativity)",
		temperatureBar(cfg.Temperature, min(30, width-20)),
		"Precise (0.0) … Creative (1.0)")...)
	lines = append(lines, row(fieldTone, "Tone of Voice",
		AssistantStyle.Render(config.ToneLabel(cfg.Tone)),
		truncate(cfg.Tone, width-6))...)
	lines = append(lines, row(fieldMaxQuestions, "Max Diagnostic Questions",
		fmt.Sprintf("%d", cfg.MaxQuestions),
		"Approximate number of questions before generating a plan.")...)
	return lines
}

// temperatureBar draws a slider for a value in [0,1].
func temperatureBar(t float64, width int) string {
	if width < 5 {
		width = 5
	}
	filled := int(t*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	bar := AssistantStyle.Render(strings.Repeat("━", filled)) + DimStyle.Render(strings.Repeat("─", width-filled))
	return fmt.Sprintf("%s %s", bar, AssistantStyle.Render(fmt.Sprintf("%.1f", t)))
}

func (a AppView) renderAgentsTab(width int) []string {
	agents := a.dataModel.Registry.List()
	lines := []string{DimStyle.Render(fmt.Sprintf("ACTIVE AGENTS (%d)", len(agents))), ""}
	if len(agents) == 0 {
		return append(lines, DimStyle.Render("The roster is empty. Add an agent to get started."))
	}

	nameWidth := 22
	roleWidth := width - nameWidth - 6
	for i, ag := range agents {
		cursor := "  "
		if i == a.architect.agentIdx {
			cursor = SelectedStyle.Render("▸ ")
		}
		name := AgentStyle(ag).Render(padRight(ag.Icon+" "+ag.Name, nameWidth))
		lines = append(lines, cursor+name+" "+DimStyle.Render(truncate(ag.Role, roleWidth)))
	}
	return lines
}

func (a AppView) renderAgentForm(width int) []string {
	f := a.architect.form
	lines := []string{DimStyle.Render("EDIT AGENT"), ""}
	labelWidth := 13
	for i, in := range f.inputs {
		label := padRight(formLabels[i], labelWidth)
		if i == f.focus {
			label = SelectedStyle.Render(label)
		} else {
			label = DimStyle.Render(label)
		}
		in.Width = width - labelWidth - 4
		lines = append(lines, label+in.View())
	}
	return lines
}
