package commands

import (
	"os"

	"go.uber.org/zap"

	"github.com/petal-labs/pigment/cli/keystore"
	"github.com/petal-labs/pigment/core"
	"github.com/petal-labs/pigment/providers"

	_ "github.com/petal-labs/pigment/providers/gemini"
	_ "github.com/petal-labs/pigment/providers/openrouter"
)

// defaultKeyEnv maps backend IDs to their conventional environment variables.
var defaultKeyEnv = map[string]string{
	"gemini":     "GEMINI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// resolveAPIKey finds the API key for a backend: the environment variable
// named in the config (or the conventional one), then the encrypted keystore.
// Returns empty when nothing is configured; the adapter reports unavailable.
func resolveAPIKey(id string) string {
	envName := defaultKeyEnv[id]
	if pc := cfg.GetProvider(id); pc != nil && pc.APIKeyEnv != "" {
		envName = pc.APIKeyEnv
	}
	if envName != "" {
		if key := os.Getenv(envName); key != "" {
			return key
		}
	}

	ks, err := keystore.NewKeystore()
	if err != nil {
		return ""
	}
	key, err := ks.Get(id)
	if err != nil {
		return ""
	}
	return key
}

// buildSelector constructs the backend adapters through the registry from
// config and keys, in auto priority order.
func buildSelector(telemetry core.TelemetryHook) *providers.Selector {
	adapters := make([]core.ImageProvider, 0, 2)
	for _, name := range []string{"gemini", "openrouter"} {
		if !providers.IsRegistered(name) {
			continue
		}

		pcfg := providers.Config{
			APIKey:    resolveAPIKey(name),
			Telemetry: telemetry,
		}
		if pc := cfg.GetProvider(name); pc != nil {
			pcfg.BaseURL = pc.BaseURL
			pcfg.Model = pc.Model
		}

		adapter, err := providers.Create(name, pcfg)
		if err != nil {
			continue
		}
		adapters = append(adapters, adapter)
	}
	return providers.NewSelector(adapters...)
}

// zapTelemetry bridges adapter lifecycle events to structured logs.
type zapTelemetry struct {
	logger *zap.Logger
}

func (t *zapTelemetry) OnRequestStart(e core.RequestStartEvent) {
	fields := []zap.Field{
		zap.String("backend", e.Provider),
		zap.String("model", e.Model),
		zap.Int("reference_images", e.ReferenceImages),
		zap.Bool("canvas", e.Canvas),
	}
	if e.CanvasFallback {
		fields = append(fields, zap.Bool("canvas_fallback", true))
	}
	t.logger.Info("backend request start", fields...)
}

func (t *zapTelemetry) OnRequestEnd(e core.RequestEndEvent) {
	fields := []zap.Field{
		zap.String("backend", e.Provider),
		zap.String("model", e.Model),
		zap.Duration("duration", e.Duration()),
		zap.Int("images", e.Images),
	}
	if e.Usage != nil {
		fields = append(fields, zap.Int("total_tokens", e.Usage.TotalTokens))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
		t.logger.Warn("backend request failed", fields...)
		return
	}
	t.logger.Info("backend request done", fields...)
}
