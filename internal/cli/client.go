package cli

import (
	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/config"
	"github.com/HamzaOussama/plantX/internal/logger"
)

// newClient builds the device API client from cfg.
func newClient(cfg *config.Config, log logger.Logger) *api.Client {
	opts := api.Options{
		TelemetryURL: cfg.API.TelemetryURL,
		CommandURL:   cfg.API.CommandURL,
		DeviceID:     cfg.DeviceID,
		Timeout:      cfg.API.Timeout,
		Logger:       log,
	}
	if cfg.Poll.Breaker.Enabled {
		opts.Breaker = &api.BreakerSettings{
			Failures: cfg.Poll.Breaker.Failures,
			OpenFor:  cfg.Poll.Breaker.OpenFor,
		}
	}
	return api.New(opts)
}
