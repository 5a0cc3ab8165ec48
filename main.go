package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nexus/config"
	"nexus/model"
	"nexus/oracle"
	"nexus/provider"
	"nexus/ui"
)

const Version = "v0.1.0"

var (
	// Global flags
	verbose     bool
	skipWelcome bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "The Oracle: diagnose a goal and meet the agents built for it",
	Long: `Nexus is a terminal front desk. The Oracle asks a few diagnostic
questions about your goal and routes you to the agents best suited to it.
Agent names in its replies become teleport links.

Run without arguments to start the interactive interface.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr (CLI commands only)")
	rootCmd.Flags().BoolVar(&skipWelcome, "skip-welcome", false, "Start directly in the chat")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(directiveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads config and starts logging. The TUI never logs to the
// terminal; only NEXUS_DEBUG's file log applies there.
func setup(allowVerbose bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = config.InitLogger(cfg.DataDir(), verbose && allowVerbose)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newManager builds the session manager for the configured provider. A
// missing provider is not fatal: sends fall back to the fixed reply.
func newManager(cfg *config.Config) (*oracle.Manager, model.Provider) {
	p := provider.InitializeProvider(cfg)
	if p == nil {
		return oracle.NewManager(nil, oracle.WithLogger(logger)), nil
	}
	return oracle.NewManager(p, oracle.WithLogger(logger)), p
}

func runInteractive() error {
	cfg, err := setup(false)
	if err != nil {
		return err
	}

	manager, p := newManager(cfg)
	dataModel := model.NewModel(cfg, manager, oracle.Greeting, Version)
	app := ui.NewAppView(dataModel, skipWelcome)

	if !manager.Available() {
		names := config.EnvNames(cfg.ProviderID())
		hint := "Set an API key for the configured provider."
		if len(names) > 0 {
			hint = fmt.Sprintf("Set %s or add it to credentials.toml.", names[0])
		}
		app = app.WithWarning("⚠  No Connection to the Nexus",
			fmt.Sprintf("Provider %q could not be initialized.\n%s\n\nThe Oracle will answer with a fallback message until then.", cfg.ProviderID(), hint))
	}

	app = app.WithStartup(provider.PingProvider(cfg.ProviderID(), p))

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	logger.Info("session ended", zap.Int("oracle_sessions", manager.Sessions()))
	return nil
}
