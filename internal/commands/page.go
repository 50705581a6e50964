package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partselect/partchat/internal/links"
	"github.com/partselect/partchat/internal/pages"
	"github.com/partselect/partchat/internal/render"
)

// NewProductCmd creates the product page command
func NewProductCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "product <part-number>",
		Short:   "Show a part's details",
		Example: "  partchat product PS11752778",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, deps, links.ProductRoute(args[0]))
		},
	}
}

// NewGuideCmd creates the installation guide command
func NewGuideCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "guide <part-number>",
		Aliases: []string{"install"},
		Short:   "Show a part's installation guide",
		Example: "  partchat guide PS11752778",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, deps, links.GuideRoute(args[0]))
		},
	}
}

// NewFAQCmd creates the FAQ command
func NewFAQCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "faq",
		Short: "Show frequently asked questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, deps, links.FAQ)
		},
	}
}

// runPage loads route and prints it. Raw markdown is printed when stdout is
// not a terminal.
func runPage(cmd *cobra.Command, deps *Dependencies, route links.Route) error {
	cfg, err := effectiveConfig(cmd, deps)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	client, err := deps.client(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	loader := pages.Loader{Catalog: client, Logger: logger}
	page := loader.Load(context.Background(), route)

	out := cmd.OutOrStdout()
	if deps.isTTY() {
		opts := render.OptionsFromConfig(cfg).WithWidth(getTerminalWidth())
		fmt.Fprintln(out, pages.Render(page, opts))
	} else {
		fmt.Fprintln(out, page.Markdown)
	}

	if page.State == pages.StateFailed {
		return fmt.Errorf("%s: %w", route.Title(), page.Err)
	}
	return nil
}
