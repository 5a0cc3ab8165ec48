package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"nexus/agent"
	"nexus/config"
	appmodel "nexus/model"
)

// noticeTTL is how long a status line notice stays up.
const noticeTTL = 4 * time.Second

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.welcome, _ = a.welcome.Update(msg)

		// Reserve space for header (1 line), spacer (1 line), textarea (3 lines), and status bar (1 line)
		a.viewport.Width = a.width
		a.viewport.Height = max(a.height-6, 1)
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		if !a.dataModel.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(true)
		return a, cmd

	case oracleReplyMsg:
		a.dataModel.HandleReply(msg)
		a.updateViewportContent(true)
		cmd := a.textarea.Focus()
		return a, cmd

	case settingsSavedMsg:
		if msg.Err != nil {
			config.Log.Error("failed to save settings", zap.Error(msg.Err))
			cmd := a.setNotice("Could not save settings: "+msg.Err.Error(), true)
			return a, cmd
		}
		return a, nil

	case providerStatusMsg:
		if msg.Err != nil {
			config.Log.Warn("provider unreachable", zap.String("provider", msg.ProviderID), zap.Error(msg.Err))
		}
		a.link = &msg
		return a, nil

	case sessionRestartedMsg:
		// Rebuild failures are retried on the next send; nothing to show.
		return a, nil

	case clipboardMsg:
		var cmd tea.Cmd
		switch {
		case errors.Is(msg.Err, appmodel.ErrNothingToCopy):
			cmd = a.setNotice("Nothing to copy yet", true)
		case msg.Err != nil:
			cmd = a.setNotice("Clipboard unavailable: "+msg.Err.Error(), true)
		default:
			cmd = a.setNotice("Copied "+msg.What+" to clipboard", false)
		}
		return a, cmd

	case markdownRenderedMsg:
		a.markdownCache[msg.Key] = msg.Rendered
		if a.card.Active && markdownKey(a.card.Agent, a.cardWidth()) == msg.Key {
			a.card.rendered = msg.Rendered
		}
		return a, nil

	case noticeExpiredMsg:
		if msg.Seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	key := msg.String()

	// Always-global shortcuts
	if key == "ctrl+c" || kb.Is("quit", key) {
		a.dataModel.Quitting = true
		return a, tea.Quit
	}

	if !a.welcome.IsComplete() {
		var cmd tea.Cmd
		a.welcome, cmd = a.welcome.Update(msg)
		if a.welcome.IsComplete() {
			config.Log.Debug("diagnosis started")
			focus := a.textarea.Focus()
			return a, tea.Batch(focus, textarea.Blink)
		}
		return a, cmd
	}

	if a.showHelp {
		if key == "esc" || kb.Is("help", key) {
			a.showHelp = false
		}
		return a, nil
	}
	if kb.Is("help", key) {
		a.showHelp = true
		return a, nil
	}
	if a.warningMsg != "" {
		if key == "enter" || key == "esc" {
			a.warningMsg = ""
		}
		return a, nil
	}

	switch {
	case a.architect.Active:
		return a.handleArchitectKey(msg)
	case a.card.Active:
		return a.handleCardKey(msg)
	case a.picker.Active:
		return a.handlePickerKey(msg)
	}
	return a.handleChatKey(msg)
}

func (a AppView) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	key := msg.String()

	switch {
	case key == "enter":
		cmd := a.dataModel.SendToOracle(a.textarea.Value())
		if cmd == nil {
			return a, nil
		}
		a.textarea.Reset()
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)

	case kb.Is("teleport", key):
		mentioned := a.mentionedAgents()
		if len(mentioned) == 0 {
			cmd := a.setNotice("No agents mentioned in the last reply", true)
			return a, cmd
		}
		if len(mentioned) == 1 {
			cmd := a.openCard(mentioned[0])
			return a, cmd
		}
		a.picker.Open(pickerTeleport, mentioned)
		return a, nil

	case kb.Is("roster", key):
		a.picker.Open(pickerRoster, a.dataModel.Registry.List())
		return a, nil

	case kb.Is("architect", key):
		if !a.dataModel.Unlocked {
			cmd := a.setNotice("The architect console is locked", true)
			return a, cmd
		}
		a.architect.Open()
		return a, nil

	case kb.Is("leave_domain", key):
		a.dataModel.Teleport(agent.OracleID)
		a.updateViewportContent(true)
		return a, nil

	case kb.Is("yank_last_response", key):
		return a, a.dataModel.CopyLastReply()

	case kb.Is("yank_conversation", key):
		return a, a.dataModel.CopyConversation()

	case kb.Is("clear_input", key):
		a.textarea.Reset()
		return a, nil

	case kb.Is("scroll_down", key):
		a.viewport.SetYOffset(a.viewport.YOffset + 1)
		return a, nil
	case kb.Is("scroll_up", key):
		a.viewport.SetYOffset(a.viewport.YOffset - 1)
		return a, nil
	case kb.Is("half_page_down", key):
		a.viewport.HalfPageDown()
		return a, nil
	case kb.Is("half_page_up", key):
		a.viewport.HalfPageUp()
		return a, nil
	case kb.Is("page_down", key):
		a.viewport.PageDown()
		return a, nil
	case kb.Is("page_up", key):
		a.viewport.PageUp()
		return a, nil
	case kb.Is("scroll_to_top", key):
		a.viewport.GotoTop()
		return a, nil
	case kb.Is("scroll_to_bottom", key):
		a.viewport.GotoBottom()
		return a, nil
	}

	if a.dataModel.Busy() {
		// Input stays disabled until the reply lands.
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// setNotice shows a transient status line message.
func (a *AppView) setNotice(text string, isError bool) tea.Cmd {
	a.noticeSeq++
	a.notice = text
	a.noticeIsError = isError
	seq := a.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{Seq: seq}
	})
}
