package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// credentialEnv lists the environment variables consulted per provider, in
// order. They take precedence over credentials.toml.
var credentialEnv = map[string][]string{
	"gemini":     {"GEMINI_API_KEY", "API_KEY"},
	"openai":     {"OPENAI_API_KEY"},
	"openrouter": {"OPENROUTER_API_KEY"},
	"anthropic":  {"ANTHROPIC_API_KEY"},
}

// CredentialStore holds API keys keyed by provider ID.
// Keys are kept in plain text with 0600 permissions.
type CredentialStore struct {
	credentials map[string]string
	lookupEnv   func(string) string
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		credentials: make(map[string]string),
		lookupEnv:   os.Getenv,
	}
}

// Load reads credentials.toml. A missing file is not an error.
func (c *CredentialStore) Load(dataDir string) error {
	creds, err := loadPlainText(dataDir)
	if err != nil {
		return err
	}
	c.credentials = creds
	return nil
}

func (c *CredentialStore) Save(dataDir string) error {
	return savePlainText(dataDir, c.credentials)
}

// Get returns the key for a provider, preferring the environment.
func (c *CredentialStore) Get(providerID string) string {
	if c.lookupEnv != nil {
		for _, name := range credentialEnv[providerID] {
			if v := c.lookupEnv(name); v != "" {
				return v
			}
		}
	}
	return c.credentials[providerID]
}

func (c *CredentialStore) Set(providerID, apiKey string) {
	c.credentials[providerID] = apiKey
}

func (c *CredentialStore) Delete(providerID string) {
	delete(c.credentials, providerID)
}

// Providers lists provider IDs with a stored key, sorted.
func (c *CredentialStore) Providers() []string {
	ids := make([]string, 0, len(c.credentials))
	for id := range c.credentials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnvNames returns the environment variables checked for a provider.
func EnvNames(providerID string) []string {
	return credentialEnv[providerID]
}

func credentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.toml")
}

type credentialsFile struct {
	Credentials map[string]string `toml:"credentials"`
}

func loadPlainText(dataDir string) (map[string]string, error) {
	path := credentialsPath(dataDir)

	if !FileExists(path) {
		return make(map[string]string), nil
	}

	var cf credentialsFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if cf.Credentials == nil {
		cf.Credentials = make(map[string]string)
	}

	return cf.Credentials, nil
}

// savePlainText saves credentials to plain text TOML file with 0600 permissions
func savePlainText(dataDir string, creds map[string]string) error {
	if err := EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(credentialsPath(dataDir), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create credentials file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(credentialsFile{Credentials: creds}); err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	return nil
}
