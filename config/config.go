package config

import (
	"fmt"
	"os"

	"nexus/agent"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

// ProviderConfig selects the conversational backend behind The Oracle.
type ProviderConfig struct {
	ID      string `toml:"id"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url,omitempty"`
}

// UserConfig is the on-disk shape of <data_directory>/config.toml.
type UserConfig struct {
	Provider   ProviderConfig `toml:"provider"`
	Oracle     OracleConfig   `toml:"oracle"`
	AccessCode string         `toml:"access_code"`
	Agents     []agent.Agent  `toml:"agents"`
}

type Config struct {
	DataDirectory string
	Provider      ProviderConfig
	Oracle        OracleConfig
	AccessCode    string
	Agents        []agent.Agent

	Keybindings *KeyBindingsConfig
	Credentials *CredentialStore
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// ProviderID returns the configured backend, defaulting to Gemini.
func (c *Config) ProviderID() string {
	if c.Provider.ID == "" {
		return DefaultProviderID
	}
	return c.Provider.ID
}

// APIKey looks up the credential for the active provider.
func (c *Config) APIKey() string {
	if c.Credentials == nil {
		return ""
	}
	return c.Credentials.Get(c.ProviderID())
}

// UserConfig converts the runtime view back into its persisted form.
func (c *Config) UserConfig() *UserConfig {
	agents := make([]agent.Agent, len(c.Agents))
	copy(agents, c.Agents)
	return &UserConfig{
		Provider:   c.Provider,
		Oracle:     c.Oracle,
		AccessCode: c.AccessCode,
		Agents:     agents,
	}
}

// Save persists the oracle tuning and roster to config.toml.
func (c *Config) Save() error {
	return SaveUserConfig(c.UserConfig(), c.DataDir())
}

func (c *Config) applyEnvOverrides() {
	if id := os.Getenv("NEXUS_PROVIDER"); id != "" {
		c.Provider.ID = id
	}
	if model := os.Getenv("NEXUS_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if dataDir := os.Getenv("NEXUS_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func (c *Config) applyUserConfig(u *UserConfig) {
	c.Provider = u.Provider
	c.Oracle = u.Oracle.withDefaults()
	c.AccessCode = u.AccessCode
	if c.AccessCode == "" {
		c.AccessCode = DefaultAccessCode
	}
	if len(u.Agents) > 0 {
		c.Agents = u.Agents
	}
}

func CheckDebug() bool {
	debug := os.Getenv("NEXUS_DEBUG")
	return debug == "true" || debug == "1"
}

// Load reads settings.toml, then config.toml from the data directory, then
// applies environment overrides and loads credentials and keybindings.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: GetDefaultDataDir(),
		Oracle:        DefaultOracleConfig(),
		AccessCode:    DefaultAccessCode,
		Agents:        agent.DefaultRoster(),
	}

	if dataDir := os.Getenv("NEXUS_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	} else {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		cfg.DataDirectory = systemCfg.DataDirectory
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	// Hand-edited rosters may omit ids; fill them so edits target one agent.
	assigned := agent.AssignMissingIDs(userCfg.Agents)
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	if err := cfg.Oracle.Validate(); err != nil {
		return nil, err
	}
	if err := agent.Validate(cfg.Agents); err != nil {
		return nil, fmt.Errorf("invalid roster in config.toml: %w", err)
	}
	if assigned > 0 {
		if err := SaveUserConfig(userCfg, dataDir); err != nil {
			return nil, fmt.Errorf("failed to store generated agent ids: %w", err)
		}
	}

	cfg.Credentials = NewCredentialStore()
	if err := cfg.Credentials.Load(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	kb, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.Keybindings = kb

	return cfg, nil
}
