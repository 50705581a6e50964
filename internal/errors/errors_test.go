package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("http://localhost:8000/api/chat/", cause)

	if err == nil {
		t.Fatal("Expected non-nil error")
	}

	expected := "could not reach the assistant service"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	// The user-facing text must not leak the cause
	if strings.Contains(err.Error(), "refused") {
		t.Error("Error() leaked the underlying cause")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the wrapped cause")
	}
	if !errors.Is(err, ErrTransport) {
		t.Error("Expected error to match ErrTransport")
	}
	if errors.Is(err, ErrInvalidResponse) {
		t.Error("Network error should not match ErrInvalidResponse")
	}
}

func TestTransportErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     *TransportError
		kind    string
		status  int
		invalid bool
	}{
		{"network", NewNetworkError("e", errors.New("x")), "network", 0, false},
		{"status", NewStatusError(500, "e", "boom"), "status", 500, false},
		{"parse", NewParseError("e", "missing response"), "parse", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind.String() != tt.kind {
				t.Errorf("Kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if got := GetHTTPStatus(tt.err); got != tt.status {
				t.Errorf("GetHTTPStatus = %d, want %d", got, tt.status)
			}
			if got := errors.Is(tt.err, ErrInvalidResponse); got != tt.invalid {
				t.Errorf("Is(ErrInvalidResponse) = %v, want %v", got, tt.invalid)
			}
		})
	}
}

func TestTransportErrorDetail(t *testing.T) {
	err := NewStatusError(502, "http://x/api/chat/", "bad gateway")
	detail := err.Detail()

	for _, want := range []string{"status", "http://x/api/chat/", "502", "bad gateway"} {
		if !strings.Contains(detail, want) {
			t.Errorf("Detail() = %q, missing %q", detail, want)
		}
	}

	wrapped := fmt.Errorf("send: %w", err)
	if Describe(wrapped) != detail {
		t.Errorf("Describe() = %q, want %q", Describe(wrapped), detail)
	}
	if Describe(nil) != "" {
		t.Error("Describe(nil) should be empty")
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(404, "test-endpoint", "product not found")

	expected := "API error [404] at test-endpoint: product not found"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !IsNotFound(err) {
		t.Error("404 APIError should match ErrNotFound")
	}
	if IsNotFound(NewAPIError(500, "e", "x")) {
		t.Error("500 APIError should not match ErrNotFound")
	}

	noStatus := NewAPIError(0, "e", "x")
	if noStatus.Error() != "API error at e: x" {
		t.Errorf("Error() = %s", noStatus.Error())
	}
}

func TestIsNetworkError(t *testing.T) {
	if !IsNetworkError(fmt.Errorf("wrap: %w", NewNetworkError("e", errors.New("x")))) {
		t.Error("Expected wrapped network error to be detected")
	}
	if IsNetworkError(NewStatusError(500, "e", "")) {
		t.Error("Status error is not a network error")
	}
	if IsNetworkError(errors.New("plain")) {
		t.Error("Plain error is not a network error")
	}
}
