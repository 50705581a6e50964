package commands

import (
	"errors"
	"testing"

	"github.com/partselect/partchat/internal/links"
	"github.com/partselect/partchat/internal/tui"
)

// mockTUI records the options the chat command starts the TUI with
type mockTUI struct {
	calls int
	opts  tui.Options
	err   error
}

func (m *mockTUI) RunChat(opts tui.Options) error {
	m.calls++
	m.opts = opts
	return m.err
}

func TestNewChatCmd(t *testing.T) {
	cmd := NewChatCmd(NewDependencies())

	if cmd.Use != "chat" {
		t.Errorf("expected Use 'chat', got '%s'", cmd.Use)
	}
	if cmd.RunE == nil {
		t.Error("RunE should not be nil")
	}
	if cmd.Flags().Lookup("page") == nil {
		t.Error("missing --page flag")
	}
}

func TestChatCmd_StartsTUI(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat", "--page", "/products/PS11752778/installation-guide", "--api-url", "http://chat.internal:9000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.tui.calls != 1 {
		t.Fatalf("expected one TUI run, got %d", env.tui.calls)
	}
	opts := env.tui.opts
	if opts.InitialRoute != links.GuideRoute("PS11752778") {
		t.Errorf("InitialRoute = %+v", opts.InitialRoute)
	}
	if opts.Config.APIURL != "http://chat.internal:9000" {
		t.Errorf("Config.APIURL = %q", opts.Config.APIURL)
	}
	if opts.Client != env.client {
		t.Error("expected injected client")
	}
	if opts.Open == nil {
		t.Error("expected a default link opener")
	}
}

func TestChatCmd_DefaultsToHome(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.tui.opts.InitialRoute != links.Home {
		t.Errorf("InitialRoute = %+v, want home", env.tui.opts.InitialRoute)
	}
}

func TestChatCmd_InvalidPage(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat", "--page", "https://example.com/"); err == nil {
		t.Fatal("expected error for foreign page")
	}
	if env.tui.calls != 0 {
		t.Error("TUI should not start with an invalid page")
	}
}

func TestChatCmd_TUIError(t *testing.T) {
	env := newTestEnv(t)
	env.tui.err = errors.New("no tty")

	if err := env.run("chat"); err == nil || err.Error() != "no tty" {
		t.Fatalf("expected TUI error, got %v", err)
	}
}
