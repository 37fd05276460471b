// Package providers contains the backend adapter registry and selector.
//
// Each backend is implemented in its own subpackage (providers/gemini,
// providers/openrouter) and registers a factory from its init() function.
// Adapters implement core.ImageProvider.
//
// # Adapter contract
//
// All adapters must implement core.ImageProvider:
//
//	type ImageProvider interface {
//	    ID() string
//	    Available() bool
//	    ModelInfo() string
//	    Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error)
//	}
//
// # Concurrency
//
// Adapters MUST be safe for concurrent calls. Adapters impose no retry
// policy, backoff, or concurrency limit of their own; a request runs to
// completion or failure once issued, subject only to context cancellation of
// the underlying HTTP call.
//
// # Failure handling
//
// Transport failures, non-2xx statuses, and decode failures are returned as
// *core.ProviderError from Generate. Callers convert them into failure-shaped
// results via core.FailureResult; nothing below the selector propagates past
// its own interface.
package providers

import "github.com/petal-labs/pigment/core"

// Re-export core types for convenience. Adapter implementations and callers
// can import just the providers package.
type (
	// Provider is the interface that backend adapters must implement.
	Provider = core.ImageProvider

	// GenerationRequest is the normalized request shape.
	GenerationRequest = core.GenerationRequest

	// GenerationResult is the normalized result shape.
	GenerationResult = core.GenerationResult

	// ProviderError represents an error returned by a backend.
	ProviderError = core.ProviderError
)

// Re-export preference constants.
const (
	PreferGemini     = core.PreferGemini
	PreferOpenRouter = core.PreferOpenRouter
	PreferAuto       = core.PreferAuto
)

// Re-export sentinel errors.
var (
	ErrUnauthorized = core.ErrUnauthorized
	ErrRateLimited  = core.ErrRateLimited
	ErrBadRequest   = core.ErrBadRequest
	ErrServer       = core.ErrServer
	ErrNetwork      = core.ErrNetwork
	ErrDecode       = core.ErrDecode
	ErrNoProvider   = core.ErrNoProvider
)
