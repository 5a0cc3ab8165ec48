package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ASCIIArt is the banner shown on the welcome screen.
const ASCIIArt = `████████╗██╗  ██╗███████╗     ██████╗ ██████╗  █████╗  ██████╗██╗     ███████╗
╚══██╔══╝██║  ██║██╔════╝    ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██║     ██╔════╝
   ██║   ███████║█████╗      ██║   ██║██████╔╝███████║██║     ██║     █████╗
   ██║   ██╔══██║██╔══╝      ██║   ██║██╔══██╗██╔══██║██║     ██║     ██╔══╝
   ██║   ██║  ██║███████╗    ╚██████╔╝██║  ██║██║  ██║╚██████╗███████╗███████╗
   ╚═╝   ╚═╝  ╚═╝╚══════╝     ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚══════╝╚══════╝`

// Tagline sits under the banner.
var Tagline = []string{
	"The Front Desk of Intelligent System Orchestration.",
	"Tell me your goal. I will assemble your team.",
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(oracleColor).
			Bold(true)

	featureStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	selectedButtonStyle = lipgloss.NewStyle().
				Width(26).
				Align(lipgloss.Center).
				Padding(0, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(successColor).
				Foreground(successColor).
				Bold(true)
)

// WelcomeModel is the landing screen. Enter starts the diagnosis.
type WelcomeModel struct {
	width    int
	height   int
	complete bool
}

func NewWelcomeModel() WelcomeModel {
	return WelcomeModel{}
}

func (m WelcomeModel) Init() tea.Cmd {
	return nil
}

func (m WelcomeModel) Update(msg tea.Msg) (WelcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			m.complete = true
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m WelcomeModel) View() string {
	var sb strings.Builder

	banner := ASCIIArt
	if m.width > 0 && m.width < lipgloss.Width(ASCIIArt)+4 {
		banner = "THE ORACLE"
	}
	sb.WriteString("🔮\n\n")
	for _, line := range strings.Split(banner, "\n") {
		sb.WriteString(titleStyle.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, line := range Tagline {
		sb.WriteString(featureStyle.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n\n")

	sb.WriteString(selectedButtonStyle.Render("Initiate Diagnosis"))
	sb.WriteString("\n\n")
	sb.WriteString(featureStyle.Render("Enter to begin • q to exit"))

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m WelcomeModel) IsComplete() bool {
	return m.complete
}
