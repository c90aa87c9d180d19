package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.in))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("0.3.0", "abc123", "2026-05-02")
	assert.Equal(t, "0.3.0", GetVersion())

	t.Run("full", func(t *testing.T) {
		var buf bytes.Buffer
		versionCmd.SetOut(&buf)
		versionShort = false
		versionCmd.Run(versionCmd, nil)

		out := buf.String()
		assert.Contains(t, out, "plantx v0.3.0")
		assert.Contains(t, out, "commit: abc123")
		assert.Contains(t, out, "built: 2026-05-02")
		assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
	})

	t.Run("short", func(t *testing.T) {
		var buf bytes.Buffer
		versionCmd.SetOut(&buf)
		require.NoError(t, versionCmd.Flags().Set("short", "true"))
		defer func() { versionShort = false }()
		versionCmd.Run(versionCmd, nil)
		assert.Equal(t, "0.3.0\n", buf.String())
	})
}
