package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partselect/partchat/internal/browser"
	"github.com/partselect/partchat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the PartSelect parts assistant.

Links to parts, installation guides and the FAQ open inside the chat; other
links open in your browser. Use --page to start on a product or guide page,
which is sent along with every message as context.

Type /help for commands, or press Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, page)
		},
	}

	cmd.Flags().StringVar(&page, "page", "", "Initial page, e.g. /products/PS11752778")
	return cmd
}

func runChat(cmd *cobra.Command, deps *Dependencies, page string) error {
	cfg, err := effectiveConfig(cmd, deps)
	if err != nil {
		return err
	}

	route, err := parsePage(cfg, page)
	if err != nil {
		return err
	}

	// Logs go to the log file once the TUI owns the terminal
	client, err := deps.client(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return deps.tui().RunChat(tui.Options{
		Client:       client,
		Config:       cfg,
		InitialRoute: route,
		Open:         browser.Open,
	})
}
