// Package browser hands URLs to the system's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// commandFor is swapped in tests
var commandFor = systemCommand

// Open launches the default browser for rawURL. Only http, https, and mailto
// URLs are accepted.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	cmd, err := commandFor(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	// Don't leave a zombie behind
	go func() { _ = cmd.Wait() }()
	return nil
}

// Validate checks that rawURL is safe to pass to the system opener
func Validate(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("invalid url %q: missing host", rawURL)
		}
	case "mailto":
	default:
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	return nil
}

func systemCommand(goos, rawURL string) (*exec.Cmd, error) {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
