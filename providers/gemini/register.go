package gemini

import (
	"github.com/petal-labs/pigment/core"
	"github.com/petal-labs/pigment/providers"
)

func init() {
	providers.Register("gemini", func(cfg providers.Config) core.ImageProvider {
		var opts []Option
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, WithModel(cfg.Model))
		}
		if cfg.Telemetry != nil {
			opts = append(opts, WithTelemetry(cfg.Telemetry))
		}
		return New(cfg.APIKey, opts...)
	})
}
