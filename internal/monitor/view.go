package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/sensor"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// LastSuccessLayout formats the last successful fetch in the system panel.
const LastSuccessLayout = "2006-01-02 15:04:05"

// panelWidth is the inner width of the controls and system panels.
const panelWidth = 38

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	sections := []string{m.renderHeader()}

	if alerts := m.renderAlerts(); alerts != "" {
		sections = append(sections, alerts)
	}

	sections = append(sections,
		m.renderCards(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderControls(), m.renderSystemInfo()),
		m.renderHistory(),
		m.renderFooter(),
	)

	return strings.Join(sections, "\n\n")
}

// renderHeader renders the title, the last update age, and the health badge.
func (m Model) renderHeader() string {
	var updateText string
	switch {
	case m.state.LastSuccess.IsZero():
		updateText = "waiting for data"
	case m.SecondsSinceUpdate() == 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", m.SecondsSinceUpdate())
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("plantx monitor")

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %s | %s ", m.device.DeviceID(), updateText))

	return HeaderStyle.Render(title+stats) + " " + HealthBadge(m.state.Health)
}

// renderAlerts renders one line per active alert, or nothing.
func (m Model) renderAlerts() string {
	if len(m.state.Alerts) == 0 {
		return ""
	}

	lines := make([]string, len(m.state.Alerts))
	for i, a := range m.state.Alerts {
		style := AlertWarningStyle
		if a.Kind == alert.KindCritical {
			style = AlertCriticalStyle
		}
		lines[i] = style.Render(ui.SymbolWarning + " " + a.Message)
	}
	return strings.Join(lines, "\n")
}

// renderControls renders the command keys, the dispatch status, and the
// auto-watering preference.
func (m Model) renderControls() string {
	lines := []string{PanelTitleStyle.Render("Device Control"), ""}

	for _, b := range []struct {
		key string
		cmd api.Command
	}{
		{"w", api.CommandWater},
		{"l", api.CommandLightOn},
		{"x", api.CommandReset},
	} {
		line := fmt.Sprintf("[%s] %s", b.key, b.cmd.Label())
		if m.state.Busy {
			line = MutedStyle.Render(line)
		} else {
			line = ValueStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", m.renderAutoWater())

	if status := m.renderCommandStatus(); status != "" {
		lines = append(lines, "", status)
	}

	return CardStyle.Width(panelWidth + 2).Render(strings.Join(lines, "\n"))
}

// AutoWaterText returns the preference line for the controls panel.
func AutoWaterText(on bool) string {
	if on {
		return ui.SymbolSuccess + " Auto watering active"
	}
	return ui.SymbolPending + " Auto watering inactive"
}

func (m Model) renderAutoWater() string {
	text := AutoWaterText(m.state.AutoWater)
	if m.state.AutoWater {
		return lipgloss.NewStyle().Foreground(ColorHealthy).Bold(true).Render(text)
	}
	return LabelStyle.Render(text)
}

func (m Model) renderCommandStatus() string {
	status := m.state.Command
	switch status.Phase {
	case CommandSending:
		return m.spinner.View() + " " + status.Text()
	case CommandSucceeded:
		return lipgloss.NewStyle().Foreground(ColorHealthy).Render(status.Text())
	case CommandFailed:
		return lipgloss.NewStyle().Foreground(ColorCritical).Render(status.Text())
	default:
		return ""
	}
}

// renderSystemInfo renders the snapshot time, device, last successful fetch,
// and connection state.
func (m Model) renderSystemInfo() string {
	lastSuccess := "Loading..."
	if !m.state.LastSuccess.IsZero() {
		lastSuccess = m.state.LastSuccess.Format(LastSuccessLayout)
	}

	connection := lipgloss.NewStyle().
		Foreground(ConnectionColor(m.state.Connection)).
		Render(m.state.Connection.String())

	lines := []string{
		PanelTitleStyle.Render("System Info"),
		"",
		LabelStyle.Render("Last Update"),
		ValueStyle.Render(m.state.Snapshot.Timestamp),
		LabelStyle.Render("Device ID"),
		ValueStyle.Render(m.device.DeviceID()),
		LabelStyle.Render("Last Successful Fetch"),
		ValueStyle.Render(lastSuccess),
		LabelStyle.Render("Connection"),
		connection,
	}

	if m.state.LastError != "" && m.state.Connection == Disconnected {
		lines = append(lines, MutedStyle.Width(panelWidth).Render(m.state.LastError))
	}

	return CardStyle.Width(panelWidth + 2).Render(strings.Join(lines, "\n"))
}

// historyColumns are the columns of the recent readings table.
var historyColumns = []ui.TableColumn{
	{Title: "Time", Width: 10},
	{Title: "Moisture", Width: 10},
	{Title: "Temp", Width: 9},
	{Title: "Humidity", Width: 10},
	{Title: "Light", Width: 9},
	{Title: "Battery", Width: 9},
}

// HistoryRows converts the history log, newest first, into table rows.
func HistoryRows(s *State) []table.Row {
	entries := s.History.Entries()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			e.Timestamp,
			FormatReading(sensor.FieldSoilMoisture, e.SoilMoisture),
			FormatReading(sensor.FieldTemperature, e.Temperature),
			FormatReading(sensor.FieldHumidity, e.Humidity),
			FormatReading(sensor.FieldLightIntensity, e.LightIntensity),
			FormatReading(sensor.FieldBatteryLevel, e.BatteryLevel),
		}
	}
	return rows
}

// renderHistory renders the recent readings table.
func (m Model) renderHistory() string {
	title := PanelTitleStyle.Render(fmt.Sprintf("Recent Readings (%d/%d)", m.state.History.Len(), m.state.History.Size()))

	rows := HistoryRows(m.state)
	if len(rows) == 0 {
		return title + "\n" + MutedStyle.Render("No readings yet")
	}
	return title + "\n" + ui.NewTable(historyColumns, rows).View()
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
