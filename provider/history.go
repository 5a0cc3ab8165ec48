package provider

import (
	"sync"
	"time"

	"nexus/model"
)

// history is the client-side record of one chat's turns. The directive is
// held apart from the turns because every backend takes it separately.
//
// Send paths call begin, then commit on success or rollback on failure, so a
// failed exchange never leaves a dangling user turn behind.
type history struct {
	mu          sync.Mutex
	system      string
	temperature float64
	turns       []model.Message
}

func newHistory(cfg model.ChatConfig) *history {
	return &history{
		system:      cfg.SystemInstruction,
		temperature: cfg.Temperature,
	}
}

// begin appends the user turn and returns a snapshot to send. The lock is
// held until commit or rollback so concurrent sends on one chat serialize.
func (h *history) begin(text string) []model.Message {
	h.mu.Lock()
	h.turns = append(h.turns, model.Message{
		Role:      model.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	out := make([]model.Message, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *history) commit(reply string) {
	h.turns = append(h.turns, model.Message{
		Role:      model.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	})
	h.mu.Unlock()
}

func (h *history) rollback() {
	h.turns = h.turns[:len(h.turns)-1]
	h.mu.Unlock()
}

// finish commits reply or rolls back on err, returning the pair unchanged.
func (h *history) finish(reply string, err error) (string, error) {
	if err == nil && reply == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		h.rollback()
		return "", err
	}
	h.commit(reply)
	return reply, nil
}

// Len returns the number of committed turns.
func (h *history) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}
