package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("unauthorized: invalid TMDB API key")
	// ErrNoConnection indicates the request could not reach TMDB
	ErrNoConnection = errors.New("failed to connect to TMDB")
	// ErrInvalidPage indicates a non-positive page number
	ErrInvalidPage = errors.New("page must be a positive integer")
	// ErrInvalidResponse indicates a 2xx response that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from TMDB")
)

// APIError represents a non-2xx TMDB response other than 401
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the error indicates the request was throttled
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if TMDB failed on its side
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// AuthenticationError is returned when TMDB answers 401
type AuthenticationError struct {
	Endpoint string
	Message  string
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb authentication failed for %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("tmdb authentication failed for %s", e.Endpoint)
}

// Unwrap allows errors.Is(err, ErrUnauthorized)
func (e *AuthenticationError) Unwrap() error {
	return ErrUnauthorized
}

// TransportError is returned when a request did not complete, so no status
// code is available. Context cancellation and deadline expiry end up here.
type TransportError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("tmdb request to %s failed: %v", e.Endpoint, e.Err)
}

// Unwrap exposes both ErrNoConnection and the underlying cause
func (e *TransportError) Unwrap() []error {
	return []error{ErrNoConnection, e.Err}
}

// IsAuthentication reports whether err is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsTransport reports whether err is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// StatusCode returns the HTTP status carried by err, if any
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	if IsAuthentication(err) {
		return http.StatusUnauthorized, true
	}
	return 0, false
}

// UserMessage maps err to guidance suitable for display
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	switch {
	case IsAuthentication(err):
		return "Invalid TMDB API key. Please check the key in your configuration."
	case IsTransport(err):
		return "Network error. Please check your internet connection."
	case errors.As(err, &apiErr):
		if apiErr.IsNotFound() {
			return "The requested movie could not be found."
		}
		return fmt.Sprintf("TMDB API error: %d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
	case errors.Is(err, ErrInvalidPage):
		return "Page numbers start at 1."
	default:
		return "An unexpected error occurred while fetching movies."
	}
}
