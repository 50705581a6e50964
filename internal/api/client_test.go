package api

import (
	"testing"
	"time"
)

// TestNewClient tests the NewClient function
func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		opts        []ClientOption
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{
			name:        "defaults",
			wantBaseURL: "http://localhost:8000",
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "custom base url trims slash",
			opts:        []ClientOption{WithBaseURL("https://chat.example.com/")},
			wantBaseURL: "https://chat.example.com",
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "custom timeout",
			opts:        []ClientOption{WithTimeout(5 * time.Second)},
			wantBaseURL: "http://localhost:8000",
			wantTimeout: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]ClientOption{WithHTTPClient(&MockHttpClient{})}, tt.opts...)
			client, err := NewClient(opts...)
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			if client.BaseURL() != tt.wantBaseURL {
				t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), tt.wantBaseURL)
			}
			if client.Timeout() != tt.wantTimeout {
				t.Errorf("Timeout() = %v, want %v", client.Timeout(), tt.wantTimeout)
			}
		})
	}
}

func TestNewClient_BuildsTLSClient(t *testing.T) {
	client, err := NewClient(WithTimeout(10 * time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.httpClient == nil {
		t.Error("expected a default HTTP client")
	}
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	client, err := NewClient(WithHTTPClient(&MockHttpClient{}), WithLogger(nil))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.logger == nil {
		t.Error("nil logger option should keep the default logger")
	}
}
