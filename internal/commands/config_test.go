package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd(NewDependencies())

	if cmd.Use != "config" {
		t.Errorf("expected Use 'config', got '%s'", cmd.Use)
	}
	if cmd.RunE == nil {
		t.Error("RunE should not be nil")
	}

	for _, name := range []string{"path", "init", "themes"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestConfigCmd_PrintsJSON(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("config"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := env.out.String()
	for _, key := range []string{`"api_url"`, `"timeout_seconds"`, `"site_host": "www.partselect.com"`} {
		if !strings.Contains(out, key) {
			t.Errorf("config output missing %s:\n%s", key, out)
		}
	}
}

func TestConfigCmd_PathAndInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".partchat", "config.json")

	env := newTestEnv(t)
	if err := env.run("config", "path"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(env.out.String()); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}

	env = newTestEnv(t)
	if err := env.run("config", "init", "--timeout", "15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), `"timeout_seconds": 15`) {
		t.Errorf("unexpected config file:\n%s", data)
	}
}

func TestConfigCmd_Themes(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("config", "themes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := env.out.String()
	if !strings.Contains(out, "partselect") || !strings.Contains(out, "TUI themes:") {
		t.Errorf("unexpected themes output:\n%s", out)
	}
}
