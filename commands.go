package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nexus/mention"
	"nexus/oracle"
	"nexus/ui"
)

var (
	askTimeout time.Duration
	askPlain   bool
)

// askCmd sends one message through the session manager
var askCmd = &cobra.Command{
	Use:   "ask [goal]",
	Short: "Send one message to The Oracle and print the reply",
	Long: `Sends a single message through the same session manager the interface
uses and prints the reply with agent mentions highlighted.

Example:
  nexus ask "I need to launch a newsletter for my SaaS"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the agent roster",
	Args:  cobra.NoArgs,
	RunE:  runAgents,
}

var directiveCmd = &cobra.Command{
	Use:   "directive",
	Short: "Print the directive The Oracle is started with",
	Args:  cobra.NoArgs,
	RunE:  runDirective,
}

func init() {
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "Give up waiting for a reply after this long")
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "Print mentions without colour")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := setup(true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	text := strings.Join(args, " ")
	logger.Debug("asking the oracle", zap.Int("chars", len(text)))

	manager, _ := newManager(cfg)
	reply := manager.SendMessage(ctx, text, cfg.Agents, cfg.Oracle)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.RenderReply(reply, cfg.Agents, !askPlain))

	mentioned := mention.Mentions(mention.Parse(reply, cfg.Agents))
	if len(mentioned) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Teleport targets:")
		for _, a := range mentioned {
			fmt.Fprintf(out, "  %s %s (%s)\n", a.Icon, a.Name, a.Role)
		}
	}

	if reply == oracle.FallbackReply {
		logger.Warn("oracle unreachable, printed fallback reply", zap.String("provider", cfg.ProviderID()))
	}
	return nil
}

func runAgents(cmd *cobra.Command, args []string) error {
	cfg, err := setup(true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	const nameWidth, roleWidth = 20, 26
	fmt.Fprintf(out, "%s  %s  %s\n",
		runewidth.FillRight("NAME", nameWidth),
		runewidth.FillRight("ROLE", roleWidth),
		"DESCRIPTION")
	for _, a := range cfg.Agents {
		name := runewidth.Truncate(a.Icon+" "+a.Name, nameWidth, "…")
		role := runewidth.Truncate(a.Role, roleWidth, "…")
		fmt.Fprintf(out, "%s  %s  %s\n",
			runewidth.FillRight(name, nameWidth),
			runewidth.FillRight(role, roleWidth),
			a.Description)
	}
	return nil
}

func runDirective(cmd *cobra.Command, args []string) error {
	cfg, err := setup(true)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), oracle.BuildDirective(cfg.Agents, cfg.Oracle))
	return nil
}
