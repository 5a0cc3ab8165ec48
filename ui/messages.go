package ui

import (
	"nexus/model"
)

// Message type aliases - these are defined in the model package
type Message = model.Message

type oracleReplyMsg = model.OracleReplyMsg
type sessionRestartedMsg = model.SessionRestartedMsg
type settingsSavedMsg = model.SettingsSavedMsg
type clipboardMsg = model.ClipboardMsg
type providerStatusMsg = model.ProviderStatusMsg

// markdownRenderedMsg carries an agent description rendered off the UI loop.
type markdownRenderedMsg struct {
	Key      string
	AgentID  string
	Rendered string
}

// noticeExpiredMsg clears the status line notice with the given sequence.
type noticeExpiredMsg struct {
	Seq int
}
