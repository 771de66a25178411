package tmdb

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL        string
	imageBaseURL   string
	placeholderURL string
	timeout        time.Duration
	httpClient     *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:        DefaultBaseURL,
		imageBaseURL:   DefaultImageBaseURL,
		placeholderURL: PlaceholderImageURL,
		timeout:        30 * time.Second,
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithImageBaseURL overrides the image host used by ImageURL.
func WithImageBaseURL(imageBaseURL string) Option {
	return func(o *clientOptions) {
		if imageBaseURL != "" {
			o.imageBaseURL = imageBaseURL
		}
	}
}

// WithPlaceholderURL sets the image returned for movies without artwork.
func WithPlaceholderURL(placeholderURL string) Option {
	return func(o *clientOptions) {
		if placeholderURL != "" {
			o.placeholderURL = placeholderURL
		}
	}
}

// WithTimeout sets the HTTP client timeout.
// Ignored when WithHTTPClient is also used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient uses a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}
