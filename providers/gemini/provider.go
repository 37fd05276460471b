package gemini

import (
	"fmt"
	"net/http"

	"github.com/petal-labs/pigment/core"
)

// Gemini is the direct-backend adapter for the Google Gemini generateContent
// API. Gemini is safe for concurrent use.
type Gemini struct {
	config Config
}

// New creates a new Gemini adapter with the given API key and options.
func New(apiKey string, opts ...Option) *Gemini {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		Model:      DefaultModel,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Gemini{config: cfg}
}

// ID returns the backend identifier.
func (p *Gemini) ID() string {
	return "gemini"
}

// Available reports whether the backend credential is configured.
func (p *Gemini) Available() bool {
	return !p.config.APIKey.IsEmpty()
}

// ModelInfo returns a human-readable description of the backing model.
func (p *Gemini) ModelInfo() string {
	return fmt.Sprintf("Google Gemini image generation (model %s, generateContent API)", p.config.Model)
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *Gemini) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("x-goog-api-key", p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Compile-time check that Gemini implements ImageProvider.
var _ core.ImageProvider = (*Gemini)(nil)
