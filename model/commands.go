package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"nexus/config"
)

// ErrNothingToCopy is returned when the clipboard target is empty.
var ErrNothingToCopy = errors.New("nothing to copy")

var (
	clipboardWriteDefault = clipboard.WriteAll
	clipboardWrite        = clipboardWriteDefault
)

// SendToOracle records the user turn and a pending placeholder, then sends
// text with a snapshot of the roster and tuning taken now. Later edits do not
// affect this send.
func (m *Model) SendToOracle(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.Busy() || m.Manager == nil {
		return nil
	}

	m.Conversation.AddUser(text)
	pendingID := m.Conversation.AddPending()

	manager := m.Manager
	agents := m.Registry.List()
	cfg := m.Oracle()

	return func() tea.Msg {
		reply := manager.SendMessage(context.Background(), text, agents, cfg)
		return OracleReplyMsg{PendingID: pendingID, Reply: reply}
	}
}

// HandleReply swaps the placeholder for the delivered reply.
func (m *Model) HandleReply(msg OracleReplyMsg) Message {
	return m.Conversation.ResolvePending(msg.PendingID, msg.Reply)
}

// ReconfigureSession eagerly rebuilds the Oracle session against the current
// roster and tuning. It does not wait for any in-flight send.
func (m *Model) ReconfigureSession() tea.Cmd {
	manager := m.Manager
	if manager == nil {
		return nil
	}
	agents := m.Registry.List()
	cfg := m.Oracle()

	return func() tea.Msg {
		err := manager.Reconfigure(context.Background(), agents, cfg)
		if err != nil {
			config.Log.Debug("session rebuild failed", zap.Error(err))
		}
		return SessionRestartedMsg{Err: err}
	}
}

// SaveSettings persists the oracle tuning and the roster to config.toml. The
// snapshot is taken now, on the caller's goroutine.
func (m *Model) SaveSettings() tea.Cmd {
	m.syncConfig()
	snapshot := m.Config.UserConfig()
	dataDir := m.Config.DataDir()
	return func() tea.Msg {
		return SettingsSavedMsg{Err: config.SaveUserConfig(snapshot, dataDir)}
	}
}

// ApplyChanges is the architect's commit step: persist and rebuild.
func (m *Model) ApplyChanges() tea.Cmd {
	return tea.Batch(m.SaveSettings(), m.ReconfigureSession())
}

// CopyLastReply puts the most recent Oracle reply on the clipboard.
func (m *Model) CopyLastReply() tea.Cmd {
	last, ok := m.Conversation.LastAssistant()
	return func() tea.Msg {
		if !ok {
			return ClipboardMsg{What: "reply", Err: ErrNothingToCopy}
		}
		if err := clipboardWrite(last.Content); err != nil {
			return ClipboardMsg{What: "reply", Err: fmt.Errorf("copy reply: %w", err)}
		}
		return ClipboardMsg{What: "reply"}
	}
}

// CopyConversation puts the whole transcript on the clipboard.
func (m *Model) CopyConversation() tea.Cmd {
	text := Transcript(m.Conversation.Messages())
	return func() tea.Msg {
		if text == "" {
			return ClipboardMsg{What: "conversation", Err: ErrNothingToCopy}
		}
		if err := clipboardWrite(text); err != nil {
			return ClipboardMsg{What: "conversation", Err: fmt.Errorf("copy conversation: %w", err)}
		}
		return ClipboardMsg{What: "conversation"}
	}
}
