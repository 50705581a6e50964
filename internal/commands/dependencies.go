package commands

import (
	"log/slog"
	"os"

	"github.com/partselect/partchat/internal/api"
	"github.com/partselect/partchat/internal/config"
	"github.com/partselect/partchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the assistant API client. When nil a client is built from
	// the effective configuration.
	Client api.ClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// LoadConfig reads the config file. Defaults to config.LoadConfig.
	LoadConfig func() (config.Config, error)

	// IsTTY reports whether stdout is a terminal. Defaults to isStdoutTTY.
	IsTTY func() bool

	// Clipboard writes text to the system clipboard.
	Clipboard func(text string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(opts tui.Options) error {
	return tui.RunChat(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI: &DefaultTUI{},
	}
}

// client returns the injected client or builds one from cfg
func (d *Dependencies) client(cfg config.Config, logger *slog.Logger) (api.ClientInterface, error) {
	if d != nil && d.Client != nil {
		return d.Client, nil
	}
	return api.NewClient(
		api.WithBaseURL(cfg.APIURL),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
}

func (d *Dependencies) tui() TUIInterface {
	if d != nil && d.TUI != nil {
		return d.TUI
	}
	return &DefaultTUI{}
}

func (d *Dependencies) loadConfig() (config.Config, error) {
	if d != nil && d.LoadConfig != nil {
		return d.LoadConfig()
	}
	return config.LoadConfig()
}

func (d *Dependencies) isTTY() bool {
	if d != nil && d.IsTTY != nil {
		return d.IsTTY()
	}
	return isStdoutTTY()
}

func (d *Dependencies) writeClipboard(text string) error {
	if d != nil && d.Clipboard != nil {
		return d.Clipboard(text)
	}
	return clipboardWriteAll(text)
}

// newLogger returns a stderr text logger when verbose, otherwise a discarding one
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
