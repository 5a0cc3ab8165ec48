package oracle

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"nexus/agent"
	"nexus/config"
	"nexus/model"
	"nexus/provider/testutil"
)

func newTestManager(t *testing.T, p model.Provider) *Manager {
	t.Helper()
	return NewManager(p, WithLogger(zaptest.NewLogger(t)))
}

func TestFreshSendStartsExactlyOneSession(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	m := newTestManager(t, mock)
	roster := testutil.SmallRoster()
	cfg := config.DefaultOracleConfig()

	reply := m.SendMessage(context.Background(), "I need customers", roster, cfg)

	if reply != testutil.DefaultReply {
		t.Errorf("reply = %q", reply)
	}
	if got := mock.NewChatCalls(); got != 1 {
		t.Errorf("NewChat calls = %d, want 1", got)
	}
	if m.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", m.Sessions())
	}

	configs := mock.Configs()
	if configs[0].Temperature != cfg.Temperature {
		t.Errorf("temperature = %v, want %v", configs[0].Temperature, cfg.Temperature)
	}
	if configs[0].SystemInstruction != BuildDirective(roster, cfg) {
		t.Error("chat not opened with the built directive")
	}
}

func TestUnchangedConfigReusesSession(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	m := newTestManager(t, mock)
	roster := testutil.SmallRoster()
	cfg := config.DefaultOracleConfig()

	m.SendMessage(context.Background(), "one", roster, cfg)
	m.SendMessage(context.Background(), "two", roster, cfg)

	if got := mock.NewChatCalls(); got != 1 {
		t.Errorf("NewChat calls = %d, want 1", got)
	}
	if sent := mock.LastChat().Sent(); len(sent) != 2 {
		t.Errorf("chat received %v, want both messages", sent)
	}
}

func TestConfigChangeRebuildsSession(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(roster []agent.Agent, cfg config.OracleConfig) ([]agent.Agent, config.OracleConfig)
		want   func(t *testing.T, next model.ChatConfig)
	}{
		{
			name: "agent description edited",
			mutate: func(r []agent.Agent, c config.OracleConfig) ([]agent.Agent, config.OracleConfig) {
				r[1].Description = "Kubernetes whisperer and database surgeon."
				return r, c
			},
			want: func(t *testing.T, next model.ChatConfig) {
				if !strings.Contains(next.SystemInstruction, "- Beta (Technical Architect): Kubernetes whisperer and database surgeon.") {
					t.Errorf("rebuilt directive lacks the new description:\n%s", next.SystemInstruction)
				}
			},
		},
		{
			name: "agent added",
			mutate: func(r []agent.Agent, c config.OracleConfig) ([]agent.Agent, config.OracleConfig) {
				return append(r, agent.Agent{ID: "omega", Name: "Omega", Role: "Closer", Description: "Seals deals."}), c
			},
			want: func(t *testing.T, next model.ChatConfig) {
				if !strings.Contains(next.SystemInstruction, "- Omega (Closer): Seals deals.") {
					t.Error("rebuilt directive lacks the new agent")
				}
			},
		},
		{
			name: "agent deleted",
			mutate: func(r []agent.Agent, c config.OracleConfig) ([]agent.Agent, config.OracleConfig) {
				return r[:2], c
			},
			want: func(t *testing.T, next model.ChatConfig) {
				if strings.Contains(next.SystemInstruction, "- Gamma (") {
					t.Error("rebuilt directive still lists the deleted agent")
				}
			},
		},
		{
			name: "temperature changed",
			mutate: func(r []agent.Agent, c config.OracleConfig) ([]agent.Agent, config.OracleConfig) {
				c.Temperature = 0.1
				return r, c
			},
			want: func(t *testing.T, next model.ChatConfig) {
				if next.Temperature != 0.1 {
					t.Errorf("temperature = %v, want 0.1", next.Temperature)
				}
			},
		},
		{
			name: "tone changed",
			mutate: func(r []agent.Agent, c config.OracleConfig) ([]agent.Agent, config.OracleConfig) {
				c.Tone = config.TonePresets[3].Tone
				return r, c
			},
			want: func(t *testing.T, next model.ChatConfig) {
				if !strings.Contains(next.SystemInstruction, "Mystical, enigmatic") {
					t.Error("rebuilt directive lacks the new tone")
				}
			},
		},
		{
			name: "max questions changed",
			mutate: func(r []agent.Agent, c config.OracleConfig) ([]agent.Agent, config.OracleConfig) {
				c.MaxQuestions = 7
				return r, c
			},
			want: func(t *testing.T, next model.ChatConfig) {
				if !strings.Contains(next.SystemInstruction, "approx 7 questions") {
					t.Error("rebuilt directive lacks the new question count")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider("test-model")
			m := newTestManager(t, mock)
			roster := testutil.SmallRoster()
			cfg := config.DefaultOracleConfig()

			m.SendMessage(context.Background(), "first", roster, cfg)
			first := mock.LastChat()

			roster, cfg = tt.mutate(roster, cfg)
			m.SendMessage(context.Background(), "second", roster, cfg)

			if got := mock.NewChatCalls(); got != 2 {
				t.Fatalf("NewChat calls = %d, want 2", got)
			}
			second := mock.LastChat()
			if first == second {
				t.Fatal("second send reused the old chat")
			}
			if sent := second.Sent(); len(sent) != 1 || sent[0] != "second" {
				t.Errorf("new chat received %v", sent)
			}
			if sent := first.Sent(); len(sent) != 1 {
				t.Errorf("old chat received %v after rebuild", sent)
			}
			tt.want(t, mock.Configs()[1])
		})
	}
}

func TestSendFailureRecoversOnce(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	mock.SendFunc = testutil.FailN(1, "recovered")
	m := newTestManager(t, mock)

	reply := m.SendMessage(context.Background(), "hello", testutil.SmallRoster(), config.DefaultOracleConfig())

	if reply != "recovered" {
		t.Errorf("reply = %q, want recovered", reply)
	}
	if got := mock.NewChatCalls(); got != 2 {
		t.Errorf("NewChat calls = %d, want 2 (initial + rebuild)", got)
	}
	chats := mock.Chats()
	if sent := chats[1].Sent(); len(sent) != 1 || sent[0] != "hello" {
		t.Errorf("rebuilt chat received %v, want the same message once", sent)
	}
}

func TestDoubleFailureReturnsFallback(t *testing.T) {
	t.Run("session create fails then resend fails", func(t *testing.T) {
		mock := testutil.NewMockProvider("test-model")
		calls := 0
		mock.NewChatFunc = func(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("quota exceeded")
			}
			return testutil.FailingChat{}, nil
		}
		m := newTestManager(t, mock)

		reply := m.SendMessage(context.Background(), "hello", testutil.SmallRoster(), config.DefaultOracleConfig())
		if reply != FallbackReply {
			t.Errorf("reply = %q, want fallback", reply)
		}
		if calls != 2 {
			t.Errorf("NewChat calls = %d, want 2", calls)
		}
	})

	t.Run("send fails then resend fails", func(t *testing.T) {
		mock := testutil.NewMockProvider("test-model")
		mock.SendFunc = testutil.FailN(10, "never")
		m := newTestManager(t, mock)

		reply := m.SendMessage(context.Background(), "hello", testutil.SmallRoster(), config.DefaultOracleConfig())
		if reply != FallbackReply {
			t.Errorf("reply = %q, want fallback", reply)
		}

		total := 0
		for _, c := range mock.Chats() {
			total += len(c.Sent())
		}
		if total != maxSendAttempts {
			t.Errorf("message sent %d times, want %d", total, maxSendAttempts)
		}
	})
}

func TestNilProviderFallsBack(t *testing.T) {
	m := newTestManager(t, nil)

	if _, err := m.StartSession(context.Background(), nil, config.DefaultOracleConfig()); !errors.Is(err, ErrNoProvider) {
		t.Errorf("StartSession error = %v, want ErrNoProvider", err)
	}
	if reply := m.SendMessage(context.Background(), "hi", nil, config.DefaultOracleConfig()); reply != FallbackReply {
		t.Errorf("reply = %q, want fallback", reply)
	}
	if m.Available() || m.HasSession() {
		t.Error("nil provider reported as available")
	}
}

func TestReconfigurePrebuildsSession(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	m := newTestManager(t, mock)
	roster := testutil.SmallRoster()
	cfg := config.DefaultOracleConfig()
	cfg.Temperature = 0.3

	if err := m.Reconfigure(context.Background(), roster, cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.Directive(), "Blog strategy.") {
		t.Error("Directive() does not reflect the roster")
	}

	m.SendMessage(context.Background(), "hello", roster, cfg)
	if got := mock.NewChatCalls(); got != 1 {
		t.Errorf("send after reconfigure started another session (%d calls)", got)
	}
}

func TestInvalidateForcesNewSession(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	m := newTestManager(t, mock)
	roster := testutil.SmallRoster()
	cfg := config.DefaultOracleConfig()

	m.SendMessage(context.Background(), "one", roster, cfg)
	m.Invalidate()
	if m.HasSession() || m.Directive() != "" {
		t.Error("Invalidate left a handle behind")
	}
	m.SendMessage(context.Background(), "two", roster, cfg)

	if got := mock.NewChatCalls(); got != 2 {
		t.Errorf("NewChat calls = %d, want 2", got)
	}
}

func TestLastStartedSessionWins(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	mock.NewChatFunc = func(ctx context.Context, cfg model.ChatConfig) (model.Chat, error) {
		if cfg.Temperature == 0.1 {
			once.Do(func() { close(entered) })
			<-release
		}
		return &testutil.MockChat{Config: cfg}, nil
	}
	m := newTestManager(t, mock)
	roster := testutil.SmallRoster()

	slow := config.DefaultOracleConfig()
	slow.Temperature = 0.1
	fast := config.DefaultOracleConfig()
	fast.Temperature = 0.9

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.StartSession(context.Background(), roster, slow)
	}()
	<-entered

	if _, err := m.StartSession(context.Background(), roster, fast); err != nil {
		t.Fatal(err)
	}
	close(release)
	<-done

	fp := fingerprint(BuildDirective(roster, fast), fast.Temperature)
	if m.current(fp) == nil {
		t.Error("older, slower start replaced the newer session")
	}
	if m.Sessions() != 2 {
		t.Errorf("Sessions() = %d, want 2", m.Sessions())
	}
}

func TestReconfigureDoesNotWaitForInFlightSend(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	release := make(chan struct{})
	inFlight := make(chan struct{})
	var once sync.Once
	mock.SendFunc = func(ctx context.Context, cfg model.ChatConfig, text string) (string, error) {
		once.Do(func() { close(inFlight) })
		<-release
		return "late reply", nil
	}
	m := newTestManager(t, mock)
	roster := testutil.SmallRoster()
	cfg := config.DefaultOracleConfig()

	replies := make(chan string, 1)
	go func() {
		replies <- m.SendMessage(context.Background(), "slow", roster, cfg)
	}()
	<-inFlight

	next := cfg
	next.Tone = config.TonePresets[4].Tone
	reconfigured := make(chan error, 1)
	go func() { reconfigured <- m.Reconfigure(context.Background(), roster, next) }()

	select {
	case err := <-reconfigured:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Reconfigure blocked behind an in-flight send")
	}

	close(release)
	if reply := <-replies; reply != "late reply" {
		t.Errorf("in-flight send reply = %q", reply)
	}
	if !strings.Contains(m.Directive(), "Sarcastic") {
		t.Error("reconfigured session is not current")
	}
}
