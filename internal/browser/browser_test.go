package browser

import (
	"os/exec"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://www.partselect.com/Dishwasher-Parts.htm", false},
		{"http", "http://example.com", false},
		{"mailto", "mailto:support@example.com", false},
		{"file scheme", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"relative", "/products/PS123", true},
		{"missing host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSystemCommand(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{"linux", "xdg-open", false},
		{"darwin", "open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := systemCommand(tt.goos, "https://example.com")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported platform")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasSuffix(cmd.Path, tt.want) && cmd.Args[0] != tt.want {
				t.Errorf("command = %v, want %s", cmd.Args, tt.want)
			}
			if cmd.Args[len(cmd.Args)-1] != "https://example.com" {
				t.Errorf("url should be the last argument, got %v", cmd.Args)
			}
		})
	}
}

func TestOpen_RejectsUnsafeURL(t *testing.T) {
	called := false
	orig := commandFor
	commandFor = func(goos, rawURL string) (*exec.Cmd, error) {
		called = true
		return exec.Command("true"), nil
	}
	defer func() { commandFor = orig }()

	if err := Open("file:///etc/passwd"); err == nil {
		t.Error("expected error for file url")
	}
	if called {
		t.Error("system opener should not run for rejected urls")
	}
}

func TestOpen_StartsCommand(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true binary not available")
	}

	var gotURL string
	orig := commandFor
	commandFor = func(goos, rawURL string) (*exec.Cmd, error) {
		gotURL = rawURL
		return exec.Command("true"), nil
	}
	defer func() { commandFor = orig }()

	if err := Open("https://www.partselect.com/"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if gotURL != "https://www.partselect.com/" {
		t.Errorf("url = %q", gotURL)
	}
}
