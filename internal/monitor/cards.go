package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/sensor"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// Card layout constants
const (
	cardWidth      = 24 // inner width, excluding border and padding
	cardMinBar     = 8
	cardFrameWidth = 5 // border (2) + padding (2) + margin (1)
)

// TemperatureHint is shown under the temperature reading.
var TemperatureHint = fmt.Sprintf("Optimal: %.0f-%.0f°C", alert.OptimalTempMin, alert.OptimalTempMax)

// FormatReading renders a value with one decimal and the field's unit.
func FormatReading(f sensor.Field, v float64) string {
	return fmt.Sprintf("%.1f%s", v, f.Unit())
}

// renderCards renders one card per reading, wrapped to the terminal width.
func (m Model) renderCards() string {
	width := m.cardInnerWidth()

	cards := make([]string, 0, len(sensor.Fields))
	for _, f := range sensor.Fields {
		cards = append(cards, m.renderCard(f, width))
	}
	return m.layoutCards(cards, width)
}

// renderCard renders a single reading: label, value, gauge (or the optimal
// band for temperature), and a sparkline of the recorded history.
func (m Model) renderCard(f sensor.Field, width int) string {
	value := f.Value(m.state.Snapshot)

	var lines []string
	lines = append(lines, LabelStyle.Render(f.Label()))
	lines = append(lines, ValueStyle.Render(FormatReading(f, value)))

	if f == sensor.FieldTemperature {
		lines = append(lines, MutedStyle.Render(TemperatureHint))
	} else {
		lines = append(lines, ProgressBar(width, value, GaugeColor(f, value)))
	}

	spark := ui.RenderSparkline(m.state.History.Series(f), width, GaugeColor(f, value))
	if spark == "" {
		spark = MutedStyle.Render(strings.Repeat("·", width))
	}
	lines = append(lines, spark)

	return CardStyle.Width(width + 2).Render(strings.Join(lines, "\n"))
}

// cardInnerWidth picks the card content width. Narrow terminals get one
// full-width column.
func (m Model) cardInnerWidth() int {
	if m.width == 0 || m.width >= cardWidth+cardFrameWidth {
		return cardWidth
	}
	w := m.width - cardFrameWidth
	if w < cardMinBar {
		w = cardMinBar
	}
	return w
}

// layoutCards arranges cards in rows based on terminal width.
func (m Model) layoutCards(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}

	perRow := len(cards)
	if m.width > 0 {
		perRow = m.width / (width + cardFrameWidth)
		if perRow < 1 {
			perRow = 1
		}
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
