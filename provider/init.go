package provider

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"nexus/config"
	"nexus/model"
)

// InitializeProvider creates the backend selected in cfg.
//
// A construction failure (most often a missing API key) is logged and nil is
// returned, so the app still starts and every Oracle send degrades to the
// fallback reply instead of crashing.
func InitializeProvider(cfg *config.Config) model.Provider {
	id := cfg.ProviderID()
	providerType := MapProviderIDToType(id)

	p, err := NewProvider(Config{
		Type:    providerType,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
		APIKey:  cfg.APIKey(),
	})
	if err != nil {
		config.Log.Warn("provider unavailable, replies will fall back",
			zap.String("provider", id),
			zap.Error(err),
		)
		return nil
	}

	config.Log.Info("provider initialized",
		zap.String("provider", id),
		zap.String("type", string(providerType)),
		zap.String("model", p.GetModel()),
	)
	return p
}

// PingProvider checks the backend is reachable. Used by the header status.
func PingProvider(providerID string, p model.Provider) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return model.ProviderStatusMsg{
				ProviderID: providerID,
				Err:        fmt.Errorf("provider %s not initialized", providerID),
			}
		}

		if err := p.Ping(context.Background()); err != nil {
			config.Log.Debug("provider ping failed", zap.String("provider", providerID), zap.Error(err))
			return model.ProviderStatusMsg{
				ProviderID: providerID,
				Err:        fmt.Errorf("connection failed: %w", err),
			}
		}

		return model.ProviderStatusMsg{ProviderID: providerID, Valid: true}
	}
}
