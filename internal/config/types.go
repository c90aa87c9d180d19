package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Default endpoint values, matching the deployed API Gateway stage.
const (
	DefaultTelemetryURL = "https://0j4pn0nhra.execute-api.us-east-1.amazonaws.com/dev/"
	DefaultCommandURL   = "https://0j4pn0nhra.execute-api.us-east-1.amazonaws.com/dev/commands"
	DefaultDeviceID     = "sensor1"
)

// Config represents the complete .plantx.yaml configuration file.
type Config struct {
	Version  int           `yaml:"version" mapstructure:"version"`
	API      APIConfig     `yaml:"api" mapstructure:"api"`
	DeviceID string        `yaml:"device_id" mapstructure:"device_id"`
	Poll     PollConfig    `yaml:"poll" mapstructure:"poll"`
	History  HistoryConfig `yaml:"history" mapstructure:"history"`
}

// APIConfig locates the device's cloud endpoints.
type APIConfig struct {
	// TelemetryURL answers GET with the latest sensor JSON object.
	TelemetryURL string `yaml:"telemetry_url" mapstructure:"telemetry_url"`

	// CommandURL accepts POSTed control commands.
	CommandURL string `yaml:"command_url" mapstructure:"command_url"`

	// Timeout bounds each HTTP request. Zero disables the timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// PollConfig controls the refresh loop.
type PollConfig struct {
	// Interval between telemetry fetches.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// RefreshDelay is the wait between a successful command and the
	// follow-up fetch that also clears the command status.
	RefreshDelay time.Duration `yaml:"refresh_delay" mapstructure:"refresh_delay"`

	Backoff BackoffConfig `yaml:"backoff" mapstructure:"backoff"`
	Breaker BreakerConfig `yaml:"breaker" mapstructure:"breaker"`
}

// BackoffConfig stretches the poll interval after consecutive fetch failures.
// Disabled by default: the loop retries at the fixed interval.
type BackoffConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxInterval time.Duration `yaml:"max_interval" mapstructure:"max_interval"`
}

// BreakerConfig wraps telemetry fetches in a circuit breaker.
type BreakerConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Failures int           `yaml:"failures" mapstructure:"failures"`
	OpenFor  time.Duration `yaml:"open_for" mapstructure:"open_for"`
}

// HistoryConfig controls the recent-readings log.
type HistoryConfig struct {
	Size int `yaml:"size" mapstructure:"size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		API: APIConfig{
			TelemetryURL: DefaultTelemetryURL,
			CommandURL:   DefaultCommandURL,
			Timeout:      10 * time.Second,
		},
		DeviceID: DefaultDeviceID,
		Poll: PollConfig{
			Interval:     3 * time.Second,
			RefreshDelay: time.Second,
			Backoff: BackoffConfig{
				Enabled:     false,
				MaxInterval: 30 * time.Second,
			},
			Breaker: BreakerConfig{
				Enabled:  false,
				Failures: 5,
				OpenFor:  30 * time.Second,
			},
		},
		History: HistoryConfig{
			Size: 10,
		},
	}
}
