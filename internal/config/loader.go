package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/HamzaOussama/plantX/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".plantx.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/plantx"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. PLANTX_API_TELEMETRY_URL.
	EnvPrefix = "PLANTX"
)

// Load reads config from the specified path. Environment overrides apply.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'plantx init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .plantx.yaml in current directory
// 3. .plantx.yaml in parent directories (stops at git root or home)
// 4. ~/.config/plantx/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	if path := findUpward(cwd, home); path != "" {
		return path, nil
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpward looks for ConfigFileName in dir and its parents, stopping at a
// git root, the home directory, or the filesystem root.
func findUpward(dir, home string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if isGitRoot(dir) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads the config found via Find(explicit), or returns
// defaults with environment overrides applied when no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// newViper returns a viper instance with defaults and PLANTX_* env overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so env overrides are honored on Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("api.telemetry_url", d.API.TelemetryURL)
	v.SetDefault("api.command_url", d.API.CommandURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("device_id", d.DeviceID)
	v.SetDefault("poll.interval", d.Poll.Interval)
	v.SetDefault("poll.refresh_delay", d.Poll.RefreshDelay)
	v.SetDefault("poll.backoff.enabled", d.Poll.Backoff.Enabled)
	v.SetDefault("poll.backoff.max_interval", d.Poll.Backoff.MaxInterval)
	v.SetDefault("poll.breaker.enabled", d.Poll.Breaker.Enabled)
	v.SetDefault("poll.breaker.failures", d.Poll.Breaker.Failures)
	v.SetDefault("poll.breaker.open_for", d.Poll.Breaker.OpenFor)
	v.SetDefault("history.size", d.History.Size)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.API.TelemetryURL = strings.TrimSpace(cfg.API.TelemetryURL)
	cfg.API.CommandURL = strings.TrimSpace(cfg.API.CommandURL)
	cfg.DeviceID = strings.TrimSpace(cfg.DeviceID)

	return cfg, nil
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
