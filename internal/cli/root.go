package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HamzaOussama/plantX/internal/config"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// Global flags
var cfgFile string

// rootCmd is the base command when plantx is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "plantx",
	Short: "Monitor and control a PlantX sensor",
	Long: `plantx watches a single PlantX soil sensor through its cloud API.

It polls the latest readings, flags low moisture, heat and low battery,
keeps a short history of distinct readings, and sends water, grow-light
and reset commands to the device.

Run 'plantx init' to create a .plantx.yaml, then 'plantx monitor'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search for "+config.ConfigFileName+")")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders err for the terminal. Structured errors already carry
// their own layout; cobra usage errors get a pointer to --help.
func formatError(err error) string {
	if plantErr, ok := err.(*errors.Error); ok {
		return plantErr.Error()
	}
	if isUnknownCommandError(err) {
		msg := ui.SymbolFail + " " + err.Error() + "\n"
		if name := extractUnknownCommand(err); name != "" {
			msg += fmt.Sprintf("\n  '%s' isn't a plantx command.\n", name)
		}
		return msg + "\n  Run 'plantx --help' to see what's available.\n"
	}
	return ui.SymbolFail + " " + err.Error() + "\n"
}

// isUnknownCommandError checks if err is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// extractUnknownCommand pulls the command name out of cobra's error text.
func extractUnknownCommand(err error) string {
	m := unknownCommandPattern.FindStringSubmatch(err.Error())
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// loadConfig resolves, loads, and validates the config. A missing file is
// not an error: defaults plus PLANTX_* overrides are used instead.
func loadConfig(log logger.Logger) (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}
	if path == "" {
		log.Debug("no config file found, using defaults")
	} else {
		log.Debug("loaded config from %s", path)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
