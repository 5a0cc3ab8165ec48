package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"nexus/config"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Config.Keybindings

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("Nexus - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	actions := []string{blue.Render("## Chat"), "• Enter         Send message"}
	for _, e := range config.HelpEntries {
		actions = append(actions, fmt.Sprintf("• %-13s %s", kb.DisplayActionKey(e.Action), e.Description))
	}

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tips"),
		"• Agent names in replies are teleport links",
		"• Open a card to enter an agent's domain",
		"• / filters the roster and teleport lists",
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, actions...),
		"",
		tips,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
