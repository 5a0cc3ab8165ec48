package provider

import (
	"errors"
	"fmt"
	"testing"

	"nexus/model"
)

func TestHistoryCommit(t *testing.T) {
	h := newHistory(model.ChatConfig{SystemInstruction: "directive", Temperature: 0.4})

	turns := h.begin("hello")
	if len(turns) != 1 || turns[0].Role != model.RoleUser || turns[0].Content != "hello" {
		t.Fatalf("begin snapshot = %+v", turns)
	}
	if reply, err := h.finish("hi there", nil); err != nil || reply != "hi there" {
		t.Fatalf("finish = %q, %v", reply, err)
	}

	turns = h.begin("next")
	if len(turns) != 3 {
		t.Fatalf("second snapshot has %d turns, want 3", len(turns))
	}
	if turns[1].Role != model.RoleAssistant || turns[1].Content != "hi there" {
		t.Errorf("assistant turn = %+v", turns[1])
	}
	h.finish("ok", nil)

	if h.Len() != 4 {
		t.Errorf("Len() = %d, want 4", h.Len())
	}
}

func TestHistoryRollbackOnFailure(t *testing.T) {
	h := newHistory(model.ChatConfig{})
	h.begin("first")
	h.finish("reply", nil)

	h.begin("doomed")
	boom := errors.New("boom")
	reply, err := h.finish("", fmt.Errorf("send: %w", boom))
	if !errors.Is(err, boom) || reply != "" {
		t.Fatalf("finish = %q, %v", reply, err)
	}
	if h.Len() != 2 {
		t.Fatalf("Len() after rollback = %d, want 2", h.Len())
	}

	// The retry sees the same history the failed attempt did.
	turns := h.begin("doomed")
	if len(turns) != 3 || turns[2].Content != "doomed" {
		t.Errorf("retry snapshot = %+v", turns)
	}
	h.finish("recovered", nil)
}

func TestHistoryEmptyReplyIsAnError(t *testing.T) {
	h := newHistory(model.ChatConfig{})
	h.begin("hello")
	if _, err := h.finish("", nil); !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("finish(\"\") error = %v, want ErrEmptyReply", err)
	}
	if h.Len() != 0 {
		t.Errorf("empty reply should roll back, Len() = %d", h.Len())
	}
}
