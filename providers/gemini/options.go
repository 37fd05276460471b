package gemini

import (
	"net/http"

	"github.com/petal-labs/pigment/core"
)

// DefaultBaseURL is the default Gemini API base URL.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is the image-capable model used unless overridden.
const DefaultModel = "gemini-2.5-flash-image"

// Config holds configuration for the Gemini adapter.
type Config struct {
	// APIKey is the Gemini API key (required for availability).
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// Model is the model name interpolated into the request path.
	Model string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Telemetry receives request lifecycle events. Optional.
	Telemetry core.TelemetryHook
}

// Option configures the Gemini adapter.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithModel sets the model name.
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
