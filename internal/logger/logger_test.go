package logger

import (
	"bytes"
	"log"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{name: "logs when PLANTX_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs when PLANTX_DEBUG is any value", envValue: "true", expectLog: true},
		{name: "silent when PLANTX_DEBUG is empty", envValue: "", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.envValue)

			NewEnvLogger("[poll]").Debug("tick %d", 7)

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[poll] tick 7")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureLog(t)
	l := NewEnvLogger("[api]")

	l.Info("fetched %s", "ok")
	l.Warn("slow")
	l.Error("failed: %v", "timeout")

	out := buf.String()
	assert.Contains(t, out, "[api] fetched ok")
	assert.Contains(t, out, "[api] WARN: slow")
	assert.Contains(t, out, "[api] ERROR: failed: timeout")
}

func TestNoop(t *testing.T) {
	buf := captureLog(t)
	l := Noop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Info("hello %s", "world")
	l.Warn("careful")

	msgs := l.Snapshot()
	require.Len(t, msgs, 2)
	assert.Equal(t, LogMessage{Level: "info", Message: "hello world"}, msgs[0])
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))

	l.Clear()
	assert.Empty(t, l.Snapshot())
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Debug("msg %d", i)
		}(i)
	}
	wg.Wait()
	assert.Len(t, l.Snapshot(), 20)
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("via default")

	require.Len(t, buf.Snapshot(), 1)
	assert.True(t, strings.Contains(buf.Snapshot()[0].Message, "via default"))
}
