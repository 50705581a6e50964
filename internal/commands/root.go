// Package commands provides CLI commands for partchat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/partselect/partchat/internal/config"
	"github.com/partselect/partchat/internal/links"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// queryOptions holds the flags of a one-shot query
type queryOptions struct {
	output string
	file   string
	page   string
	copy   bool
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "partchat [message]",
		Short: "Terminal client for the PartSelect parts assistant",
		Long: `partchat talks to the PartSelect parts assistant, which answers questions
about refrigerator and dishwasher parts: compatibility, installation and
troubleshooting.

Examples:
  partchat chat                                  Start interactive chat
  partchat chat --page /products/PS11752778      Start chat on a product page
  partchat "Is PS11752778 in stock?"             Send a single message
  partchat -f question.md                        Read the message from a file
  cat question.md | partchat                     Read the message from stdin
  partchat "How do I install it?" -o reply.md    Save the reply to a file
  partchat product PS11752778                    Show a product
  partchat guide PS11752778                      Show an installation guide`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for version flag
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "partchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			// Check for file input
			if opts.file != "" {
				data, err := os.ReadFile(opts.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd, deps, opts, string(data))
			}

			// Positional argument wins over stdin
			if len(args) > 0 {
				return runQuery(cmd, deps, opts, args[0])
			}

			if hasStdin(cmd.InOrStdin()) {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return runQuery(cmd, deps, opts, string(data))
			}

			// No input - show help
			return cmd.Help()
		},
	}

	// Global flags
	cmd.PersistentFlags().String("api-url", "", "Assistant service base URL (overrides config and "+config.EnvAPIURL+")")
	cmd.PersistentFlags().Int("timeout", 0, "Request timeout in seconds")
	cmd.PersistentFlags().Bool("verbose", false, "Log diagnostics to stderr")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save reply to file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read message from file")
	cmd.Flags().StringVar(&opts.page, "page", "", "Product or installation guide page the question is about")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewProductCmd(deps))
	cmd.AddCommand(NewGuideCmd(deps))
	cmd.AddCommand(NewFAQCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// hasStdin reports whether r is piped or redirected input
func hasStdin(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// effectiveConfig loads the config file and applies the global flags on top
func effectiveConfig(cmd *cobra.Command, deps *Dependencies) (config.Config, error) {
	cfg, err := deps.loadConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds, _ = flags.GetInt("timeout")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// parsePage turns a --page value into a route. Both site paths and absolute
// storefront URLs are accepted.
func parsePage(cfg config.Config, value string) (links.Route, error) {
	if value == "" {
		return links.Home, nil
	}
	policy := links.Policy{SiteHost: cfg.SiteHost}
	route, ok := policy.Route(value)
	if !ok {
		return links.Route{}, fmt.Errorf("unknown page %q: expected /, /faq, /products/{part} or /products/{part}/installation-guide", value)
	}
	return route, nil
}
