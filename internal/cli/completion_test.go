package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionBashGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))

	out := buf.String()
	assert.Contains(t, out, "# bash completion for plantx")
	assert.Contains(t, out, "__start_plantx")
}

func TestCompletionZshGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenZshCompletion(&buf))

	out := buf.String()
	assert.Contains(t, out, "#compdef plantx")
	assert.Contains(t, out, "_plantx()")
}

func TestSendCompletesCommandNames(t *testing.T) {
	assert.ElementsMatch(t, []string{"water", "light_on", "reset"}, sendCmd.ValidArgs)
}
