package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/metrics"
	"github.com/HamzaOussama/plantX/internal/monitor"
)

// MonitorOptions holds the raw monitor flags.
type MonitorOptions struct {
	Interval    string
	MetricsAddr string
	LogFile     string
}

// monitorCommand starts the TUI dashboard.
func monitorCommand(opts MonitorOptions) error {
	interval, err := ParseInterval(opts.Interval)
	if err != nil {
		return err
	}

	// stdout belongs to the dashboard; logs only go somewhere when asked.
	log := logger.Noop()
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "plantx")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't open log file: "+opts.LogFile,
				"Check the directory exists and is writable")
		}
		defer f.Close()
		log = logger.NewEnvLogger("")
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Poll.Interval = interval
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'plantx status' (or 'plantx status --json') for one-shot output.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.Noop()
	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder = metrics.NewPrometheus(reg)
		go func() {
			if err := metrics.Serve(ctx, opts.MetricsAddr, reg, log); err != nil {
				log.Error("metrics server stopped: %v", err)
			}
		}()
	}

	modelOpts := monitor.Options{
		Interval:     cfg.Poll.Interval,
		RefreshDelay: cfg.Poll.RefreshDelay,
		HistorySize:  cfg.History.Size,
		Metrics:      recorder,
		Logger:       log,
	}
	if cfg.Poll.Backoff.Enabled {
		modelOpts.Backoff = &monitor.BackoffSettings{MaxInterval: cfg.Poll.Backoff.MaxInterval}
	}

	model := monitor.NewModel(ctx, newClient(cfg, log), modelOpts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
