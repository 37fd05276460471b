package core

import "context"

// ImageProvider is the interface implemented by backend adapters.
//
// Implementations MUST be safe for concurrent calls, MUST honor context
// cancellation on the HTTP call, and MUST return request/transport/decode
// failures as errors (typically *ProviderError) rather than panicking. The
// caller converts an adapter error into a failure-shaped GenerationResult via
// FailureResult; nothing below the adapter selector propagates past its own
// interface.
type ImageProvider interface {
	// ID returns the stable backend identifier ("gemini", "openrouter").
	ID() string

	// Available reports whether the backend's credential is configured.
	Available() bool

	// ModelInfo returns a human-readable description of the backing model.
	ModelInfo() string

	// Generate issues a single generation request and returns the normalized
	// result. A 2xx response with no images is a success with an empty image
	// list, not an error.
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error)
}
