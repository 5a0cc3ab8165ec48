package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	appmodel "nexus/model"
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.dataModel.Conversation.Messages()
	if len(messages) == 0 {
		a.viewport.SetContent(DimStyle.Render("Tell The Oracle what you need to achieve."))
		return
	}

	matcher := a.mentions.get(a.dataModel.Registry)
	body := lipgloss.NewStyle().Width(max(a.width-4, 10)).PaddingLeft(2)

	var content strings.Builder
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}

		switch msg.Role {
		case appmodel.RoleUser:
			content.WriteString(UserStyle.Render("You") + " " + DimStyle.Render(msg.Timestamp.Format("15:04")))
			content.WriteString("\n")
			content.WriteString(body.Render(msg.Content))

		case appmodel.RoleAssistant:
			content.WriteString(AssistantStyle.Bold(true).Render("🔮 The Oracle") + " " + DimStyle.Render(msg.Timestamp.Format("15:04")))
			content.WriteString("\n")
			if msg.Pending {
				content.WriteString(body.Render(a.loadingSpinner.View() + DimStyle.Render(" consulting the Nexus"+appmodel.PendingText)))
			} else {
				content.WriteString(body.Render(renderSegments(matcher.Parse(msg.Content))))
			}

		default:
			content.WriteString(DimStyle.Italic(true).Render("• " + msg.Content))
		}
		content.WriteString("\n")
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}
