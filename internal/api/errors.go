package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/benedictjohannes/mpd-config-switcher/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (unreachable host, reset connection, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening on the backend address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-2xx response from the backend
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed JSON response
	ErrTypeParse
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is the single failure type returned by the transport.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Backend-reported error text, or a description of the failure
	StatusCode int       // HTTP status code (ErrTypeHTTP only)
	Path       string    // API route that failed, relative to the base
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Type == ErrTypeHTTP {
		if e.Message != "" {
			return fmt.Sprintf("%s %d on %s: %s", e.Type, e.StatusCode, e.Path, e.Message)
		}
		return fmt.Sprintf("%s %d on %s", e.Type, e.StatusCode, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport failure and returns a more specific error
func ClassifyNetworkError(err error, path string) *Error {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &Error{Type: ErrTypeTimeout, Message: "request timed out", Path: path, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Path:    path,
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &Error{Type: ErrTypeConnectionRefused, Message: "backend refused connection", Path: path, Err: err}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &Error{Type: ErrTypeNetwork, Message: "host unreachable", Path: path, Err: err}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &Error{Type: ErrTypeNetwork, Message: "network unreachable", Path: path, Err: err}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err, path)
	}

	return &Error{Type: ErrTypeNetwork, Message: "request failed", Path: path, Err: err}
}

// NewHTTPError creates an error for a non-2xx response. message is the
// backend's "error" field and may be empty.
func NewHTTPError(path string, statusCode int, message string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Path:       path,
	}
}

// NewParseError creates a parsing error
func NewParseError(path string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Message: "malformed JSON response",
		Path:    path,
		Err:     err,
	}
}

func asError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused and DNS)
func IsNetworkError(err error) bool {
	if apiErr, ok := asError(err); ok {
		switch apiErr.Type {
		case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
			return true
		}
	}
	return false
}

// IsHTTPError checks if an error is a backend-reported HTTP error
func IsHTTPError(err error) bool {
	apiErr, ok := asError(err)
	return ok && apiErr.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	apiErr, ok := asError(err)
	return ok && apiErr.Type == ErrTypeParse
}

// ShortMessage returns the one-line text shown in the status panel.
// Backend error text is embedded verbatim when present, otherwise the
// status code stands in for it.
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	apiErr, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeHTTP:
		if apiErr.Message != "" {
			return fmt.Sprintf("%s (HTTP %d)", apiErr.Message, apiErr.StatusCode)
		}
		return fmt.Sprintf("HTTP error %d", apiErr.StatusCode)
	case ErrTypeTimeout:
		return "backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "backend refused connection - is the switcher running?"
	case ErrTypeDNS:
		return "cannot resolve backend hostname"
	case ErrTypeParse:
		return "malformed response from backend"
	default:
		return "network error - check connection"
	}
}

// TroubleshootingHint returns multi-line advice for an error, used by the
// one-shot commands.
func TroubleshootingHint(err error) string {
	apiErr, ok := asError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The switcher backend refused the connection.",
			"Troubleshooting:",
			"  • Check that the switcher service is running",
			"  • Verify the port (default is 6279)",
			"  • Use 'mpdswitch scan' to look for backends on the network",
		}, "\n")

	case ErrTypeTimeout:
		return strings.Join([]string{
			"The backend did not respond in time.",
			"Troubleshooting:",
			"  • A mode switch restarts MPD and can take a few seconds",
			"  • Try increasing --timeout",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the backend hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return strings.Join([]string{
				fmt.Sprintf("The backend returned an error (HTTP %d).", apiErr.StatusCode),
				"Troubleshooting:",
				"  • Check the switcher logs and 'systemctl --user status mpd'",
				"  • Verify the config parts directory is readable",
			}, "\n")
		}
		return fmt.Sprintf("The backend rejected the request (HTTP %d). Check the mode key with 'mpdswitch list'.", apiErr.StatusCode)

	case ErrTypeParse:
		return strings.Join([]string{
			"Failed to parse the backend's response.",
			"Troubleshooting:",
			"  • Check --api-base matches the backend route prefix (default /api)",
			"  • A reverse proxy may be answering with an HTML page",
			"  • Report incompatible backends at " + urls.Issues,
		}, "\n")

	default:
		return strings.Join([]string{
			"Network communication failed.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Verify the --server address",
		}, "\n")
	}
}
