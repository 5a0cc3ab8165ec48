package model

import "time"

// Message roles. RoleAssistant is The Oracle; RoleSystem carries local status
// notices that are never sent to a provider.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a single turn in the conversation
type Message struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
	Pending   bool // placeholder shown while a reply is in flight
}
