package render

import (
	"path/filepath"
	"testing"

	"github.com/partselect/partchat/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = ThemeDracula
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg)
	if opts.Style != ThemeDracula {
		t.Errorf("expected style %s, got %s", ThemeDracula, opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected emoji disabled from config")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_EmptyStyleKeepsDefault(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = ""

	if got := OptionsFromConfig(cfg).Style; got != ThemePartSelect {
		t.Errorf("expected %s, got %s", ThemePartSelect, got)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvStyle, ThemeLight)

	if got := OptionsFromConfig(config.DefaultConfig()).Style; got != ThemeLight {
		t.Errorf("expected Style=%s from env, got %s", ThemeLight, got)
	}
}

func TestOptionsFromConfig_MissingStyleFile(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = filepath.Join(t.TempDir(), "missing.json")

	if got := OptionsFromConfig(cfg).Style; got != ThemePartSelect {
		t.Errorf("expected fallback to %s, got %s", ThemePartSelect, got)
	}
}
