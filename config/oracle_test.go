package config

import (
	"errors"
	"testing"
)

func TestOracleConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OracleConfig
		wantErr bool
	}{
		{"defaults", DefaultOracleConfig(), false},
		{"zero temperature", OracleConfig{Temperature: 0, MaxQuestions: 1, Tone: "x"}, false},
		{"max temperature", OracleConfig{Temperature: 1, MaxQuestions: 1, Tone: "x"}, false},
		{"temperature too high", OracleConfig{Temperature: 1.2, MaxQuestions: 3, Tone: "x"}, true},
		{"negative temperature", OracleConfig{Temperature: -0.1, MaxQuestions: 3, Tone: "x"}, true},
		{"no questions", OracleConfig{Temperature: 0.5, MaxQuestions: 0, Tone: "x"}, true},
		{"blank tone", OracleConfig{Temperature: 0.5, MaxQuestions: 3, Tone: "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNextTonePresetCycles(t *testing.T) {
	tone := DefaultTone
	for i := 0; i < len(TonePresets); i++ {
		tone = NextTonePreset(tone).Tone
	}
	if tone != DefaultTone {
		t.Errorf("cycling all presets ended on %q, want default tone", tone)
	}

	if got := NextTonePreset("something bespoke"); got.Tone != DefaultTone {
		t.Errorf("custom tone should restart at the default preset, got %q", got.Label)
	}
}

func TestToneLabel(t *testing.T) {
	if got := ToneLabel(DefaultTone); got != "Default (Professional)" {
		t.Errorf("ToneLabel(default) = %q", got)
	}
	if got := ToneLabel("whatever"); got != "Custom" {
		t.Errorf("ToneLabel(custom) = %q", got)
	}
}

func TestWithDefaults(t *testing.T) {
	if got := (OracleConfig{}).withDefaults(); got != DefaultOracleConfig() {
		t.Errorf("empty table = %+v, want defaults", got)
	}

	partial := OracleConfig{Temperature: 0, MaxQuestions: 5}.withDefaults()
	if partial.Temperature != 0 || partial.MaxQuestions != 5 || partial.Tone != DefaultTone {
		t.Errorf("partial table = %+v", partial)
	}
}
