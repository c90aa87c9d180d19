package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/HamzaOussama/plantX/internal/errors"
)

// MinPollInterval keeps the loop from hammering the API.
const MinPollInterval = 500 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but plantx only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade plantx or lower the version field.")
	}

	if err := validateURL("api.telemetry_url", cfg.API.TelemetryURL); err != nil {
		return err
	}
	if err := validateURL("api.command_url", cfg.API.CommandURL); err != nil {
		return err
	}
	if cfg.API.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			"api.timeout can't be negative",
			"Use 0 to disable the timeout, or a duration like 10s.")
	}

	if cfg.DeviceID == "" {
		return errors.New(errors.ErrConfig,
			"device_id is empty",
			fmt.Sprintf("Set device_id in %s (the default is %q).", ConfigFileName, DefaultDeviceID))
	}

	if err := validatePoll(cfg.Poll); err != nil {
		return errors.New(errors.ErrConfig, err.Error(),
			fmt.Sprintf("Check the 'poll' section in your %s.", ConfigFileName))
	}

	if cfg.History.Size < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history.size must be at least 1 (got %d)", cfg.History.Size),
			"The default keeps the 10 most recent distinct readings.")
	}

	return nil
}

func validateURL(key, raw string) error {
	if raw == "" {
		return errors.New(errors.ErrConfig,
			key+" is empty",
			"Run 'plantx init' or set it in "+ConfigFileName)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s isn't a valid URL", key),
			"Use a full URL like https://example.com/dev/")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must use http or https (got %q)", key, u.Scheme),
			"Use a full URL like https://example.com/dev/")
	}
	if u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s has no host", key),
			"Use a full URL like https://example.com/dev/")
	}
	return nil
}

func validatePoll(p PollConfig) error {
	if p.Interval < MinPollInterval {
		return fmt.Errorf("poll.interval %s is below the %s minimum", p.Interval, MinPollInterval)
	}
	if p.RefreshDelay < 0 {
		return fmt.Errorf("poll.refresh_delay can't be negative")
	}
	if p.Backoff.Enabled && p.Backoff.MaxInterval < p.Interval {
		return fmt.Errorf("poll.backoff.max_interval %s is shorter than poll.interval %s", p.Backoff.MaxInterval, p.Interval)
	}
	if p.Breaker.Enabled {
		if p.Breaker.Failures < 1 {
			return fmt.Errorf("poll.breaker.failures must be at least 1")
		}
		if p.Breaker.OpenFor <= 0 {
			return fmt.Errorf("poll.breaker.open_for must be positive")
		}
	}
	return nil
}
