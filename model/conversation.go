package model

import (
	"time"

	"github.com/google/uuid"
)

// PendingText is the placeholder content shown while The Oracle is thinking.
const PendingText = "..."

// Conversation is the ordered, append-only transcript. The only removal it
// allows is swapping a pending placeholder for the reply it stood in for.
type Conversation struct {
	messages []Message
	now      func() time.Time
}

// NewConversation creates an empty transcript.
func NewConversation() *Conversation {
	return &Conversation{now: time.Now}
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.messages)
}

func (c *Conversation) add(role, content string, pending bool) Message {
	msg := Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
		Pending:   pending,
	}
	c.messages = append(c.messages, msg)
	return msg
}

// AddUser appends a user turn.
func (c *Conversation) AddUser(text string) Message {
	return c.add(RoleUser, text, false)
}

// AddAssistant appends an Oracle turn.
func (c *Conversation) AddAssistant(text string) Message {
	return c.add(RoleAssistant, text, false)
}

// AddSystem appends a local status notice.
func (c *Conversation) AddSystem(text string) Message {
	return c.add(RoleSystem, text, false)
}

// AddPending appends a thinking placeholder and returns its ID.
func (c *Conversation) AddPending() string {
	return c.add(RoleAssistant, PendingText, true).ID
}

// ResolvePending removes the placeholder with the given ID and appends the
// real reply. If the placeholder is already gone the reply is still appended.
func (c *Conversation) ResolvePending(id, reply string) Message {
	for i := range c.messages {
		if c.messages[i].ID == id && c.messages[i].Pending {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			break
		}
	}
	return c.AddAssistant(reply)
}

// HasPending reports whether a reply is still in flight.
func (c *Conversation) HasPending() bool {
	for _, m := range c.messages {
		if m.Pending {
			return true
		}
	}
	return false
}

// LastAssistant returns the most recent non-pending Oracle turn.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if m := c.messages[i]; m.Role == RoleAssistant && !m.Pending {
			return m, true
		}
	}
	return Message{}, false
}
