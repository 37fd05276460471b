package providers

import (
	"fmt"

	"github.com/petal-labs/pigment/core"
)

// Selector picks the adapter that handles a request, based on an explicit
// preference or on availability. Selection is the last point at which a
// request can be rejected for configuration reasons; past here, every failure
// is normalized into a result object.
type Selector struct {
	// adapters in fixed priority order: gemini before openrouter.
	adapters []core.ImageProvider
}

// NewSelector creates a selector over the given adapters. The argument order
// is the "auto" priority order.
func NewSelector(adapters ...core.ImageProvider) *Selector {
	return &Selector{adapters: adapters}
}

// All returns the adapters in priority order, available or not.
func (s *Selector) All() []core.ImageProvider {
	out := make([]core.ImageProvider, len(s.adapters))
	copy(out, s.adapters)
	return out
}

// Select returns the adapter for the given preference.
//
// An explicit preference returns that backend iff its credential is
// configured, regardless of the other backend's availability. "auto" (or
// empty) returns the first available backend in priority order. When nothing
// matches, the returned error wraps core.ErrNoProvider and the caller must
// surface it as a configuration error.
func (s *Selector) Select(pref core.ProviderPreference) (core.ImageProvider, error) {
	if pref != "" && pref != core.PreferAuto {
		for _, p := range s.adapters {
			if p.ID() != string(pref) {
				continue
			}
			if !p.Available() {
				return nil, fmt.Errorf("backend %s is not configured: %w", pref, core.ErrNoProvider)
			}
			return p, nil
		}
		return nil, fmt.Errorf("unknown backend %q: %w", pref, core.ErrNoProvider)
	}

	for _, p := range s.adapters {
		if p.Available() {
			return p, nil
		}
	}
	return nil, core.ErrNoProvider
}
