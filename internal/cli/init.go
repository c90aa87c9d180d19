package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/HamzaOussama/plantX/internal/config"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write the config into
	DeviceID       string
	TelemetryURL   string
	CommandURL     string
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use flags and defaults
	Out            io.Writer
}

// initDefaults fills unset options from PLANTX_* env vars and the built-in
// defaults, and switches to non-interactive mode under CI or without a TTY.
func initDefaults(opts InitOptions) InitOptions {
	defaults := config.DefaultConfig()

	if opts.DeviceID == "" {
		opts.DeviceID = firstNonEmpty(os.Getenv("PLANTX_DEVICE_ID"), defaults.DeviceID)
	}
	if opts.TelemetryURL == "" {
		opts.TelemetryURL = firstNonEmpty(os.Getenv("PLANTX_API_TELEMETRY_URL"), defaults.API.TelemetryURL)
	}
	if opts.CommandURL == "" {
		opts.CommandURL = firstNonEmpty(os.Getenv("PLANTX_API_COMMAND_URL"), defaults.API.CommandURL)
	}
	if os.Getenv("PLANTX_NON_INTERACTIVE") != "" || os.Getenv("CI") != "" {
		opts.NonInteractive = true
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Init creates a new .plantx.yaml configuration file.
func Init(opts InitOptions) error {
	opts = initDefaults(opts)
	if !opts.NonInteractive && !term.IsTerminal(int(os.Stdin.Fd())) {
		opts.NonInteractive = true
	}

	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	if !opts.NonInteractive {
		if err := promptInit(&opts); err != nil {
			return err
		}
	}

	cfg := config.DefaultConfig()
	cfg.DeviceID = strings.TrimSpace(opts.DeviceID)
	cfg.API.TelemetryURL = strings.TrimSpace(opts.TelemetryURL)
	cfg.API.CommandURL = strings.TrimSpace(opts.CommandURL)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.Write(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(opts.Out, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(opts.Out, "Next steps:")
	fmt.Fprintln(opts.Out, "  plantx status    - Fetch the current reading")
	fmt.Fprintln(opts.Out, "  plantx monitor   - Open the live dashboard")
	return nil
}

// promptInit asks for the device id and endpoints, pre-filled with opts.
func promptInit(opts *InitOptions) error {
	required := func(name string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", name)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Device ID").
				Description("Sent with every command").
				Value(&opts.DeviceID).
				Validate(required("device id")),
			huh.NewInput().
				Title("Telemetry URL").
				Description("GET returns the latest reading as JSON").
				Value(&opts.TelemetryURL).
				Validate(required("telemetry URL")),
			huh.NewInput().
				Title("Command URL").
				Description("POST accepts water, light_on and reset").
				Value(&opts.CommandURL).
				Validate(required("command URL")),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}
