package insight

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	model           string
	temperature     float32
	timeout         time.Duration
	baseURL         string
	httpClient      *http.Client
	fallbackInsight string
	fallbackMoods   []string
}

func defaultOptions() clientOptions {
	return clientOptions{
		model:           DefaultModel,
		temperature:     0.7,
		timeout:         20 * time.Second,
		fallbackInsight: FallbackInsight,
		fallbackMoods:   DefaultMoods(),
	}
}

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(o *clientOptions) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTemperature sets the sampling temperature of the insight prompt.
func WithTemperature(temperature float32) Option {
	return func(o *clientOptions) {
		if temperature >= 0 {
			o.temperature = temperature
		}
	}
}

// WithTimeout bounds each generation call. Zero disables the deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// WithBaseURL points the Gemini client at another endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient uses a custom HTTP client for the Gemini API.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithFallbackInsight replaces FallbackInsight.
func WithFallbackInsight(text string) Option {
	return func(o *clientOptions) {
		if text != "" {
			o.fallbackInsight = text
		}
	}
}

// WithFallbackMoods replaces DefaultMoods.
func WithFallbackMoods(moods []string) Option {
	return func(o *clientOptions) {
		if len(moods) > 0 {
			o.fallbackMoods = append([]string(nil), moods...)
		}
	}
}
