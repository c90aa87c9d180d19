package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/sensor"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0B1410")
	ColorSurfaceBg = lipgloss.Color("#13221B")
	ColorBorder    = lipgloss.Color("#2C4A3B")

	ColorHealthy  = lipgloss.Color("#22C55E")
	ColorWarning  = lipgloss.Color("#EAB308")
	ColorCritical = lipgloss.Color("#EF4444")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#9CA3AF")
	ColorTextMuted     = lipgloss.Color("#6B7280")

	ColorAccent = lipgloss.Color("#4ADE80")

	// Per-reading gauge colors
	ColorMoisture = lipgloss.Color("#3B82F6")
	ColorHumidity = lipgloss.Color("#06B6D4")
	ColorLight    = lipgloss.Color("#FACC15")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	AlertWarningStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	AlertCriticalStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true)
)

// HealthColor returns the badge color for a health tier.
func HealthColor(h alert.Health) lipgloss.Color {
	switch h {
	case alert.Critical:
		return ColorCritical
	case alert.Warning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// HealthBadge renders the health tier as a solid badge.
func HealthBadge(h alert.Health) string {
	return lipgloss.NewStyle().
		Foreground(ColorDarkBg).
		Background(HealthColor(h)).
		Bold(true).
		Padding(0, 1).
		Render(h.String())
}

// ConnectionColor returns the text color for a connection status.
func ConnectionColor(c ConnectionStatus) lipgloss.Color {
	switch c {
	case Connected:
		return ColorHealthy
	case Disconnected:
		return ColorCritical
	default:
		return ColorWarning
	}
}

// GaugeColor returns the bar color for a reading. Battery is healthy above
// the half-charge mark and a warning otherwise; the rest use a fixed hue.
func GaugeColor(f sensor.Field, value float64) lipgloss.Color {
	switch f {
	case sensor.FieldSoilMoisture:
		return ColorMoisture
	case sensor.FieldHumidity:
		return ColorHumidity
	case sensor.FieldLightIntensity:
		return ColorLight
	case sensor.FieldBatteryLevel:
		if value > alert.BatteryHealthyMin {
			return ColorHealthy
		}
		return ColorWarning
	default:
		return ColorAccent
	}
}

// ProgressBar renders a gauge of the given width. The percentage is clamped
// to 0-100.
func ProgressBar(width int, percent float64, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	filledPart := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▰", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("▱", width-filled))
	return filledPart + emptyPart
}
