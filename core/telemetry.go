package core

import "time"

// TelemetryHook receives notifications about request lifecycle events from
// backend adapters. Implementations can bridge these to logging or metrics.
//
// Event types are designed to never include sensitive data: no API keys, no
// prompt content, no response content. Only operational metadata is exposed
// (provider, model, timing, counts), so telemetry can be logged or shipped to
// monitoring systems without credential or privacy review. Keep it that way
// when extending.
type TelemetryHook interface {
	// OnRequestStart is called when a request to a backend begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when a request to a backend completes.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting backend request.
type RequestStartEvent struct {
	Provider        string    // backend identifier
	Model           string    // model being called
	Start           time.Time // when the request started
	ReferenceImages int       // resolved reference images attached
	Canvas          bool      // whether a dimension-hint canvas is attached
	CanvasFallback  bool      // whether the canvas came from the canned set
}

// RequestEndEvent contains metadata about a completed backend request.
// Err carries the adapter error on failure, nil on success.
type RequestEndEvent struct {
	Provider string
	Model    string
	Start    time.Time
	End      time.Time
	Images   int // generated images in the response
	Usage    *ImageUsage
	Err      error
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
