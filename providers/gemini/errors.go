package gemini

import (
	"encoding/json"
	"net/http"

	"github.com/petal-labs/pigment/core"
	"github.com/petal-labs/pigment/providers/internal/normalize"
)

// normalizeError converts an HTTP error response to a ProviderError with the
// appropriate sentinel.
func normalizeError(status int, body []byte) error {
	var errResp geminiErrorResponse
	_ = json.Unmarshal(body, &errResp)

	message := errResp.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}

	code := errResp.Error.Status
	if code == "" {
		code = "unknown_error"
	}

	sentinel := normalize.SentinelForStatusWithOverrides(status, map[int]error{
		http.StatusNotFound: core.ErrBadRequest,
	})

	return normalize.ProviderError("gemini", status, "", code, message, sentinel)
}

// newNetworkError creates a ProviderError for network-related failures.
func newNetworkError(err error) error {
	return normalize.NetworkError("gemini", err)
}

// newDecodeError creates a ProviderError for JSON decode failures.
func newDecodeError(err error) error {
	return normalize.DecodeError("gemini", err)
}

// newInputError creates a ProviderError for request-construction failures.
func newInputError(err error) error {
	return normalize.InputError("gemini", err)
}
