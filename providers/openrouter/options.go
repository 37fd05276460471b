package openrouter

import (
	"net/http"

	"github.com/petal-labs/pigment/core"
)

// DefaultBaseURL is the default OpenRouter API base URL.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is the image-capable model routed unless overridden.
const DefaultModel = "google/gemini-2.5-flash-image"

// Config holds configuration for the OpenRouter adapter.
type Config struct {
	// APIKey is the OpenRouter API key (required for availability).
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// Model is the routed model name.
	Model string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Referer and Title populate OpenRouter's attribution headers.
	Referer string
	Title   string

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Telemetry receives request lifecycle events. Optional.
	Telemetry core.TelemetryHook
}

// Option configures the OpenRouter adapter.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithModel sets the routed model name.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithAttribution sets the HTTP-Referer and X-Title attribution headers.
func WithAttribution(referer, title string) Option {
	return func(c *Config) {
		c.Referer = referer
		c.Title = title
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(c *Config) {
		c.Telemetry = hook
	}
}
