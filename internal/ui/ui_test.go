package ui

import (
	"os"
	"regexp"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestStyled(t *testing.T) {
	assert.Equal(t, "ok", stripANSI(Styled(ColorSuccess, "ok")))
}

func TestNewSpinner(t *testing.T) {
	sp := NewSpinner(ColorInfo)
	assert.Equal(t, SpinnerFrames.Frames, sp.Spinner.Frames)
	assert.Contains(t, SpinnerFrames.Frames, stripANSI(sp.View()))
}
