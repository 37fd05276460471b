package openrouter

import (
	"fmt"
	"net/http"

	"github.com/petal-labs/pigment/core"
)

// OpenRouter is the aggregator-backend adapter for the OpenRouter
// chat-completions API. OpenRouter is safe for concurrent use.
type OpenRouter struct {
	config Config
}

// New creates a new OpenRouter adapter with the given API key and options.
func New(apiKey string, opts ...Option) *OpenRouter {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		Model:      DefaultModel,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenRouter{config: cfg}
}

// ID returns the backend identifier.
func (p *OpenRouter) ID() string {
	return "openrouter"
}

// Available reports whether the backend credential is configured.
func (p *OpenRouter) Available() bool {
	return !p.config.APIKey.IsEmpty()
}

// ModelInfo returns a human-readable description of the backing model.
func (p *OpenRouter) ModelInfo() string {
	return fmt.Sprintf("OpenRouter image generation (model %s, chat completions API)", p.config.Model)
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *OpenRouter) buildHeaders() http.Header {
	headers := make(http.Header)

	headers.Set("Authorization", "Bearer "+p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	// OpenRouter attribution headers, optional but recommended.
	if p.config.Referer != "" {
		headers.Set("HTTP-Referer", p.config.Referer)
	}
	if p.config.Title != "" {
		headers.Set("X-Title", p.config.Title)
	}

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Compile-time check that OpenRouter implements ImageProvider.
var _ core.ImageProvider = (*OpenRouter)(nil)
