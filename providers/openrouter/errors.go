package openrouter

import (
	"github.com/petal-labs/pigment/providers/internal/normalize"
)

// normalizeError converts an HTTP error response to a ProviderError with the
// appropriate sentinel. OpenRouter uses the OpenAI-style error envelope.
func normalizeError(status int, body []byte, requestID string) error {
	return normalize.ChatStyleProviderError("openrouter", status, body, requestID)
}

// newNetworkError creates a ProviderError for network-related failures.
func newNetworkError(err error) error {
	return normalize.NetworkError("openrouter", err)
}

// newDecodeError creates a ProviderError for JSON decode failures.
func newDecodeError(err error) error {
	return normalize.DecodeError("openrouter", err)
}

// newInputError creates a ProviderError for request-construction failures.
func newInputError(err error) error {
	return normalize.InputError("openrouter", err)
}
