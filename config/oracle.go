package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid oracle configuration")

const (
	DefaultTemperature  = 0.7
	DefaultMaxQuestions = 3
	DefaultTone         = "Professional, Diagnostic, Highly Knowledgeable, and Relationship-Focused"
	DefaultAccessCode   = "trad34"
	DefaultProviderID   = "gemini"
)

// OracleConfig tunes the front desk persona. MaxQuestions is only a hint
// inside the directive; nothing enforces it.
type OracleConfig struct {
	Temperature  float64 `toml:"temperature"`
	MaxQuestions int     `toml:"max_questions"`
	Tone         string  `toml:"tone"`
}

func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		Temperature:  DefaultTemperature,
		MaxQuestions: DefaultMaxQuestions,
		Tone:         DefaultTone,
	}
}

// TonePreset is a named tone the architect console can cycle through.
type TonePreset struct {
	Label string
	Tone  string
}

var TonePresets = []TonePreset{
	{Label: "Default (Professional)", Tone: DefaultTone},
	{Label: "Casual / Startup Bro", Tone: "Casual, friendly, bro-talk, like a close startup founder friend"},
	{Label: "Military / Tactical", Tone: "Direct, military-style brevity, no fluff, purely tactical"},
	{Label: "Mystical Oracle", Tone: "Mystical, enigmatic, slightly cryptic but wise"},
	{Label: "Sarcastic", Tone: "Sarcastic, witty, slightly dry humor"},
}

// ToneLabel returns the preset label for tone, or "Custom".
func ToneLabel(tone string) string {
	for _, p := range TonePresets {
		if p.Tone == tone {
			return p.Label
		}
	}
	return "Custom"
}

// NextTonePreset returns the preset after tone. A custom tone restarts the cycle.
func NextTonePreset(tone string) TonePreset {
	for i, p := range TonePresets {
		if p.Tone == tone {
			return TonePresets[(i+1)%len(TonePresets)]
		}
	}
	return TonePresets[0]
}

// Validate checks ranges: temperature in [0,1], at least one question, a tone.
func (o OracleConfig) Validate() error {
	if o.Temperature < 0 || o.Temperature > 1 {
		return fmt.Errorf("%w: temperature %.2f outside [0, 1]", ErrInvalidConfig, o.Temperature)
	}
	if o.MaxQuestions < 1 {
		return fmt.Errorf("%w: max_questions must be at least 1, got %d", ErrInvalidConfig, o.MaxQuestions)
	}
	if strings.TrimSpace(o.Tone) == "" {
		return fmt.Errorf("%w: tone cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// withDefaults fills fields a partial [oracle] table left at zero.
// A literal temperature of 0 is kept when the rest of the table is present.
func (o OracleConfig) withDefaults() OracleConfig {
	if o == (OracleConfig{}) {
		return DefaultOracleConfig()
	}
	if o.MaxQuestions == 0 {
		o.MaxQuestions = DefaultMaxQuestions
	}
	if strings.TrimSpace(o.Tone) == "" {
		o.Tone = DefaultTone
	}
	return o
}
