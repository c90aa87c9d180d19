package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication. ANSI codes so output degrades
// cleanly on 16-color terminals.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Styled renders s in the given foreground color.
func Styled(color lipgloss.Color, s string) string {
	return lipgloss.NewStyle().Foreground(color).Render(s)
}
