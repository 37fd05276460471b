package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petal-labs/pigment/core"
)

// Config carries the settings a factory needs to construct an adapter. An
// empty APIKey yields an adapter whose Available() reports false; zero-value
// BaseURL, Model and Telemetry leave the adapter defaults in place.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Telemetry core.TelemetryHook
}

// Factory creates an adapter instance from a Config.
type Factory func(cfg Config) core.ImageProvider

// registry holds registered adapter factories.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds an adapter factory to the registry. It is typically called
// from an adapter's init() function. Re-registering a name overwrites the
// previous factory.
//
// Example usage in an adapter package:
//
//	func init() {
//	    providers.Register("gemini", func(cfg providers.Config) core.ImageProvider {
//	        return New(cfg.APIKey)
//	    })
//	}
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves an adapter factory by name. Returns nil if not registered.
func Get(name string) Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// Create creates a new adapter instance by name with the given config.
// Returns an error if the adapter is not registered.
func Create(name string, cfg Config) (core.ImageProvider, error) {
	factory := Get(name)
	if factory == nil {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, List())
	}
	return factory(cfg), nil
}

// List returns the names of all registered adapters in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered returns true if an adapter with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
