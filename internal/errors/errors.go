// Package errors provides custom error types for the PartSelect chat client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrTransport       = errors.New("transport failure")
)

// TransportKind classifies a transport failure
type TransportKind int

const (
	KindNetwork TransportKind = iota
	KindStatus
	KindParse
)

// String returns the kind name
func (k TransportKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// TransportError is returned by the chat transport for every failure mode.
// Error() is safe to show to a user; the wrapped cause carries the detail.
type TransportError struct {
	Kind       TransportKind
	StatusCode int
	Endpoint   string
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return "could not reach the assistant service"
	case KindStatus:
		return "the assistant service returned an error"
	case KindParse:
		return "the assistant service sent an unreadable reply"
	default:
		return "request failed"
	}
}

// Detail returns a diagnostic description including the cause
func (e *TransportError) Detail() string {
	msg := fmt.Sprintf("%s error at %s", e.Kind, e.Endpoint)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" [%d]", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *TransportError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	if target == ErrInvalidResponse {
		return e.Kind == KindParse
	}
	_, ok := target.(*TransportError)
	return ok
}

// NewNetworkError creates a TransportError for a failed round trip
func NewNetworkError(endpoint string, err error) *TransportError {
	return &TransportError{Kind: KindNetwork, Endpoint: endpoint, Err: err}
}

// NewStatusError creates a TransportError for a non-success status
func NewStatusError(statusCode int, endpoint, body string) *TransportError {
	var cause error
	if body != "" {
		cause = fmt.Errorf("response body: %s", body)
	}
	return &TransportError{Kind: KindStatus, StatusCode: statusCode, Endpoint: endpoint, Err: cause}
}

// NewParseError creates a TransportError for a body that does not match the schema
func NewParseError(endpoint, message string) *TransportError {
	return &TransportError{Kind: KindParse, Endpoint: endpoint, Err: errors.New(message)}
}

// APIError represents a failed read request against the catalog endpoints
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is matches ErrNotFound for 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// IsNetworkError reports whether err is a transport network failure
func IsNetworkError(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == KindNetwork
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetHTTPStatus extracts the HTTP status code from err, or 0
func GetHTTPStatus(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// Describe returns the most detailed description available for logs
func Describe(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Detail()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
