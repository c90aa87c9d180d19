package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/HamzaOussama/plantX/internal/config"
	"github.com/HamzaOussama/plantX/internal/errors"
)

// ConfigFileCheck reports which config file is in use. Running without one is
// allowed, so a missing file only warns.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return fail(c.Name(), errors.Short(err), "Check the --config path")
	}
	if path == "" {
		return warn(c.Name(), "No config file found, using defaults",
			"Run 'plantx init' to create a "+config.ConfigFileName)
	}
	return pass(c.Name(), fmt.Sprintf("Config file: %s", filepath.Base(path)))
}

// ConfigSchemaCheck loads and validates the effective config.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return fail(c.Name(), errors.Short(err), "Check the YAML syntax in your config file")
	}
	if err := config.Validate(cfg); err != nil {
		return fail(c.Name(), fmt.Sprintf("Schema error: %s", errors.Short(err)),
			"Fix the configuration errors in your "+config.ConfigFileName)
	}
	return pass(c.Name(), "Schema valid")
}

// NewConfigChecks returns the CONFIG category checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
