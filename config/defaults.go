package config

import (
	"nexus/agent"
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/nexus",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Provider:   ProviderConfig{ID: DefaultProviderID},
		Oracle:     DefaultOracleConfig(),
		AccessCode: DefaultAccessCode,
		Agents:     agent.DefaultRoster(),
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Nexus System Configuration
# Location: ~/.config/nexus/settings.toml
# This file uses TOML format: https://toml.io

# Directory where config.toml, credentials and logs are stored
data_directory = "~/.local/share/nexus"
`
}

// GenerateUserConfigTemplate is written on first run. The roster is left out
// so the built-in agents apply until the architect console saves a roster.
func GenerateUserConfigTemplate() string {
	return `# Nexus User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Code that unlocks the architect console from an agent card.
# This is a convenience gate, not a security boundary.
access_code = "trad34"

[provider]
# Backend for The Oracle: gemini, openai, openrouter, anthropic, ollama
id = "gemini"

# Model name (empty = provider default, e.g. gemini-2.5-flash)
model = ""

# Optional endpoint override (Ollama host, OpenAI-compatible gateway)
# base_url = "http://localhost:11434"

[oracle]
# Sampling temperature, 0.0 - 1.0
temperature = 0.7

# Approximate number of diagnostic questions before routing
max_questions = 3

# Voice of The Oracle
tone = "Professional, Diagnostic, Highly Knowledgeable, and Relationship-Focused"

# Agents are saved here by the architect console, e.g.
# [[agents]]
# id = "alpha"
# name = "Alpha"
# role = "Strategic Leadership"
# description = "High-level business strategy and visionary planning."
# color = "214"
# icon = "👑"
`
}
