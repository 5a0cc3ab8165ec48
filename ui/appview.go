package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nexus/agent"
	appmodel "nexus/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// Landing screen, shown until the user starts the diagnosis
	welcome WelcomeModel

	// UI Components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp bool

	// Acknowledge modal shown once the chat opens
	warningTitle string
	warningMsg   string

	picker    AgentPicker
	card      AgentCard
	architect ArchitectState

	mentions      *mentionCache
	markdownCache map[string]string

	// Transient status line
	notice        string
	noticeIsError bool
	noticeSeq     int

	// Provider reachability, nil until the startup ping answers
	startup tea.Cmd
	link    *providerStatusMsg
}

// NewAppView wires the UI to the data model. skipWelcome starts directly in
// the chat.
func NewAppView(dataModel *appmodel.Model, skipWelcome bool) AppView {
	ta := textarea.New()
	ta.Placeholder = "Describe your goal..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(oracleColor)

	welcome := NewWelcomeModel()
	welcome.complete = skipWelcome

	return AppView{
		dataModel:      dataModel,
		welcome:        welcome,
		textarea:       ta,
		viewport:       viewport.New(0, 0),
		loadingSpinner: sp,
		picker:         newAgentPicker(),
		card:           newAgentCard(),
		architect:      newArchitectState(),
		mentions:       &mentionCache{},
		markdownCache:  make(map[string]string),
	}
}

// WithWarning queues a modal the user must acknowledge before chatting.
func (a AppView) WithWarning(title, message string) AppView {
	a.warningTitle = title
	a.warningMsg = message
	return a
}

// WithStartup runs cmd alongside Init, typically a provider ping.
func (a AppView) WithStartup(cmd tea.Cmd) AppView {
	a.startup = cmd
	return a
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.startup)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading Nexus..."
	}

	if !a.welcome.IsComplete() {
		return a.welcome.View()
	}

	// Modal rendering order (top to bottom layers):
	// help, warning, architect console, agent card, picker
	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}
	if a.warningMsg != "" {
		return RenderAcknowledgeModal(a.warningTitle, a.warningMsg, ModalTypeWarning, a.width, a.height)
	}
	if a.architect.Active {
		return a.renderArchitect()
	}
	if a.card.Active {
		return a.renderCard()
	}
	if a.picker.Active {
		return a.renderPicker()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderHeader(),
		"",
		a.viewport.View(),
		a.textarea.View(),
		a.renderStatusBar(),
	)
}

// renderHeader shows the focused persona and a strip of roster icons.
func (a AppView) renderHeader() string {
	focused, ok := a.dataModel.FocusedAgent()

	title := AssistantStyle.Render("THE ORACLE") + DimStyle.Render(" // ") + TitleStyle.Render("System Orchestrator")
	if ok && focused.ID != agent.OracleID {
		title = AgentStyle(focused).Render(focused.Icon+" "+focused.Name) +
			DimStyle.Render(" // ") + TitleStyle.Render(focused.Role)
	}

	var strip string
	if a.link != nil {
		if a.link.Valid {
			strip = UserStyle.Render("● "+a.link.ProviderID) + " "
		} else {
			strip = ErrorStyle.Render("○ offline") + " "
		}
	}
	roster := a.dataModel.Registry.List()
	for i, ag := range roster {
		if i == 0 {
			continue
		}
		if i > 5 {
			strip += DimStyle.Render(fmt.Sprintf(" +%d", len(roster)-6))
			break
		}
		strip += " " + ag.Icon
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(strip)
	if gap < 1 {
		return title
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + strip
}

func (a AppView) renderStatusBar() string {
	if a.notice != "" {
		if a.noticeIsError {
			return ErrorStyle.Render(a.notice)
		}
		return UserStyle.Render(a.notice)
	}

	kb := a.dataModel.Config.Keybindings
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	status := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s  Enter %s",
		kb.DisplayActionKey("quit"), descStyle.Render("Quit"),
		kb.DisplayActionKey("teleport"), descStyle.Render("Teleport"),
		kb.DisplayActionKey("roster"), descStyle.Render("Roster"),
		kb.DisplayActionKey("yank_last_response"), descStyle.Render("Copy"),
		kb.DisplayActionKey("help"), descStyle.Render("Help"),
		descStyle.Render("Send"),
	)
	return StatusStyle.Render(status)
}
