package provider

import (
	"context"
	"errors"
	"testing"

	"nexus/model"
	"nexus/provider/testutil"
)

func TestPingProvider(t *testing.T) {
	down := testutil.NewMockProvider("m")
	down.PingFunc = func(context.Context) error { return errors.New("refused") }

	tests := []struct {
		name      string
		provider  model.Provider
		wantValid bool
	}{
		{"reachable", testutil.NewMockProvider("m"), true},
		{"unreachable", down, false},
		{"not initialized", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := PingProvider("gemini", tt.provider)().(model.ProviderStatusMsg)
			if !ok {
				t.Fatal("unexpected message type")
			}
			if msg.ProviderID != "gemini" {
				t.Errorf("ProviderID = %q", msg.ProviderID)
			}
			if msg.Valid != tt.wantValid || (msg.Err == nil) != tt.wantValid {
				t.Errorf("Valid = %v, Err = %v", msg.Valid, msg.Err)
			}
		})
	}
}
