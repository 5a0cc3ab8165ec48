package model

// OracleReplyMsg delivers the reply for the placeholder with PendingID.
type OracleReplyMsg struct {
	PendingID string
	Reply     string
}

// SessionRestartedMsg reports the outcome of an eager rebuild after a
// roster or tuning change.
type SessionRestartedMsg struct {
	Err error
}

// ProviderStatusMsg reports whether the configured backend answered a ping.
type ProviderStatusMsg struct {
	ProviderID string
	Valid      bool
	Err        error
}

type SettingsSavedMsg struct {
	Err error
}

type ClipboardMsg struct {
	What string
	Err  error
}
