package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations as strings so the written YAML
// stays human-editable ("3s" rather than nanoseconds).
type fileConfig struct {
	Version  int    `yaml:"version"`
	DeviceID string `yaml:"device_id"`
	API      struct {
		TelemetryURL string `yaml:"telemetry_url"`
		CommandURL   string `yaml:"command_url"`
		Timeout      string `yaml:"timeout"`
	} `yaml:"api"`
	Poll struct {
		Interval     string `yaml:"interval"`
		RefreshDelay string `yaml:"refresh_delay"`
		Backoff      struct {
			Enabled     bool   `yaml:"enabled"`
			MaxInterval string `yaml:"max_interval"`
		} `yaml:"backoff"`
		Breaker struct {
			Enabled  bool   `yaml:"enabled"`
			Failures int    `yaml:"failures"`
			OpenFor  string `yaml:"open_for"`
		} `yaml:"breaker"`
	} `yaml:"poll"`
	History struct {
		Size int `yaml:"size"`
	} `yaml:"history"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var fc fileConfig
	fc.Version = cfg.Version
	fc.DeviceID = cfg.DeviceID
	fc.API.TelemetryURL = cfg.API.TelemetryURL
	fc.API.CommandURL = cfg.API.CommandURL
	fc.API.Timeout = cfg.API.Timeout.String()
	fc.Poll.Interval = cfg.Poll.Interval.String()
	fc.Poll.RefreshDelay = cfg.Poll.RefreshDelay.String()
	fc.Poll.Backoff.Enabled = cfg.Poll.Backoff.Enabled
	fc.Poll.Backoff.MaxInterval = cfg.Poll.Backoff.MaxInterval.String()
	fc.Poll.Breaker.Enabled = cfg.Poll.Breaker.Enabled
	fc.Poll.Breaker.Failures = cfg.Poll.Breaker.Failures
	fc.Poll.Breaker.OpenFor = cfg.Poll.Breaker.OpenFor.String()
	fc.History.Size = cfg.History.Size

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Write saves cfg to path, replacing any existing file.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	header := []byte("# plantx configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
