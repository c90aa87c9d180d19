package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/sensor"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// StatusOutput represents the JSON output for the status command.
type StatusOutput struct {
	DeviceID string          `json:"device_id"`
	Reading  sensor.Snapshot `json:"reading"`
	Alerts   []alert.Alert   `json:"alerts"`
	Health   alert.Health    `json:"health"`
}

// statusCommand fetches one reading and prints it with its alerts and health.
func statusCommand(ctx context.Context, w io.Writer, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := cliLogger()

	done := startActivity("Fetching reading", jsonOut)
	out, err := fetchStatus(ctx, log)
	done(err)
	if err != nil {
		if jsonOut {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	if jsonOut {
		return WriteJSONSuccess(w, out)
	}
	_, err = io.WriteString(w, renderStatus(out))
	return err
}

func fetchStatus(ctx context.Context, log logger.Logger) (StatusOutput, error) {
	cfg, err := loadConfig(log)
	if err != nil {
		return StatusOutput{}, err
	}

	snap, err := newClient(cfg, log).Fetch(ctx)
	if err != nil {
		return StatusOutput{}, err
	}

	alerts, health := alert.Evaluate(snap)
	return StatusOutput{
		DeviceID: cfg.DeviceID,
		Reading:  snap,
		Alerts:   alerts,
		Health:   health,
	}, nil
}

// healthColor maps a tier to the CLI palette.
func healthColor(h alert.Health) lipgloss.Color {
	switch h {
	case alert.Critical:
		return ui.ColorError
	case alert.Warning:
		return ui.ColorWarning
	default:
		return ui.ColorSuccess
	}
}

// renderStatus formats a status for humans.
func renderStatus(out StatusOutput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n",
		lipgloss.NewStyle().Bold(true).Render(out.DeviceID),
		ui.Styled(healthColor(out.Health), out.Health.String()))
	fmt.Fprintf(&b, "%s\n\n", ui.Styled(ui.ColorMuted, "Reading at "+out.Reading.Timestamp))

	rows := make([][]string, 0, len(sensor.Fields))
	for _, f := range sensor.Fields {
		rows = append(rows, []string{f.Label(), fmt.Sprintf("%.1f%s", f.Value(out.Reading), f.Unit())})
	}
	b.WriteString(ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Reading", Width: 15},
		{Title: "Value", Width: 10},
	}, rows))
	b.WriteString("\n")

	if len(out.Alerts) == 0 {
		fmt.Fprintf(&b, "\n%s No alerts\n", ui.Styled(ui.ColorSuccess, ui.SymbolSuccess))
		return b.String()
	}

	b.WriteString("\n")
	for _, a := range out.Alerts {
		color := ui.ColorWarning
		if a.Kind == alert.KindCritical {
			color = ui.ColorError
		}
		fmt.Fprintf(&b, "%s %s\n", ui.Styled(color, ui.SymbolWarning), a.Message)
	}
	return b.String()
}
