package cli

import (
	"github.com/spf13/cobra"

	"github.com/HamzaOussama/plantX/internal/logger"
)

// Command-specific flags
var (
	monitorIntervalFlag    string
	monitorMetricsAddrFlag string
	monitorLogFileFlag     string
	statusJSON             bool
	sendYes                bool
	sendJSON               bool
	initForce              bool
	initNonInteractive     bool
	initDeviceFlag         string
	initTelemetryFlag      string
	initCommandFlag        string
)

// monitorCmd starts the live dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard for the sensor",
	Long: `Start an interactive dashboard that polls the sensor and shows its
readings, alerts, health, and recent history.

Keyboard shortcuts:
  w           Water plant
  l           Grow light on
  x           Reset sensor
  a           Toggle auto watering (local only)
  r           Force refresh
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  plantx monitor
  plantx monitor --interval 5s
  plantx monitor --metrics-addr :9101 --log-file plantx.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(MonitorOptions{
			Interval:    monitorIntervalFlag,
			MetricsAddr: monitorMetricsAddrFlag,
			LogFile:     monitorLogFileFlag,
		})
	},
}

// statusCmd prints a one-shot reading
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch and print the current reading",
	Long: `Fetch the sensor's latest reading once and print it with any active
alerts and the overall health.

Exits non-zero when the telemetry endpoint can't be reached.

Examples:
  plantx status
  plantx status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd.Context(), cmd.OutOrStdout(), statusJSON)
	},
}

// sendCmd dispatches one command to the device
var sendCmd = &cobra.Command{
	Use:   "send <water|light_on|reset>",
	Short: "Send a command to the device",
	Long: `Send a single control command to the device and print its reply.

'reset' asks for confirmation on a terminal unless --yes is given.

Examples:
  plantx send water
  plantx send light_on
  plantx send reset --yes`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"water", "light_on", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand(cmd.Context(), cmd.OutOrStdout(), SendOptions{
			Command: args[0],
			Yes:     sendYes,
			JSON:    sendJSON,
		})
	},
}

// initCmd creates a new .plantx.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .plantx.yaml configuration",
	Long: `Create a .plantx.yaml file in the current directory.

Prompts for the device id and API endpoints, pre-filled with the defaults.
With --non-interactive (or when CI is set) the flags and defaults are used
as-is.

Examples:
  plantx init
  plantx init --device greenhouse-2
  plantx init --non-interactive --telemetry-url https://example.com/dev/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Dir:            ".",
			DeviceID:       initDeviceFlag,
			TelemetryURL:   initTelemetryFlag,
			CommandURL:     initCommandFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Out:            cmd.OutOrStdout(),
		})
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monitorIntervalFlag, "interval", "", "poll interval (e.g. 3s, overrides poll.interval)")
	monitorCmd.Flags().StringVar(&monitorMetricsAddrFlag, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9101)")
	monitorCmd.Flags().StringVar(&monitorLogFileFlag, "log-file", "", "write logs to this file while the dashboard runs")

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")

	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "don't ask for confirmation")
	sendCmd.Flags().BoolVar(&sendJSON, "json", false, "output in JSON format")

	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "don't prompt, use flags and defaults")
	initCmd.Flags().StringVar(&initDeviceFlag, "device", "", "device id")
	initCmd.Flags().StringVar(&initTelemetryFlag, "telemetry-url", "", "telemetry endpoint URL")
	initCmd.Flags().StringVar(&initCommandFlag, "command-url", "", "command endpoint URL")

	rootCmd.AddCommand(monitorCmd, statusCmd, sendCmd, initCmd)
}

// cliLogger returns the logger for one-shot commands.
func cliLogger() logger.Logger {
	return logger.NewEnvLogger("[plantx]")
}
