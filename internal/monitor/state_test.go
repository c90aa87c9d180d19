package monitor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/errors"
)

func TestNewState(t *testing.T) {
	s := NewState(10, testNow)

	assert.Equal(t, Connecting, s.Connection)
	assert.Equal(t, 100.0, s.Snapshot.BatteryLevel)
	assert.Zero(t, s.Snapshot.SoilMoisture)
	assert.Equal(t, 0, s.History.Len())
	// Placeholder moisture of 0 is critical, and the alert says why
	assert.Equal(t, []string{alert.MsgLowMoisture}, alert.Messages(s.Alerts))
	assert.Equal(t, alert.Critical, s.Health)
	assert.True(t, s.LastSuccess.IsZero())
}

func TestConnectionStatus_String(t *testing.T) {
	tests := []struct {
		status ConnectionStatus
		expect string
	}{
		{Connecting, "Connecting..."},
		{Connected, "Connected ✓"},
		{Disconnected, "Disconnected - Check API"},
		{ConnectionStatus(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.status.String())
		})
	}
}

func TestCommandStatus_Text(t *testing.T) {
	assert.Equal(t, "", CommandStatus{}.Text())
	assert.Equal(t, "Sending...", CommandStatus{Phase: CommandSending}.Text())
	assert.Equal(t, "✅ Watering started", CommandStatus{Phase: CommandSucceeded, Message: "Watering started"}.Text())
	assert.Equal(t, "❌ Command failed", CommandStatus{Phase: CommandFailed}.Text())
}

func TestApplyFetch_Success(t *testing.T) {
	s := NewState(10, testNow)
	reading := snap(25, 20, 60, 70, 50)

	outcome := s.ApplyFetch(1, reading, nil, testNow)

	assert.Equal(t, FetchApplied, outcome)
	assert.Equal(t, reading, s.Snapshot)
	assert.Equal(t, Connected, s.Connection)
	assert.Equal(t, testNow, s.LastSuccess)
	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, []string{alert.MsgLowMoisture}, alert.Messages(s.Alerts))
	assert.Equal(t, alert.Critical, s.Health)
}

func TestApplyFetch_FailureKeepsSnapshot(t *testing.T) {
	s := NewState(10, testNow)
	good := snap(60, 22, 70, 40, 80)
	require.Equal(t, FetchApplied, s.ApplyFetch(1, good, nil, testNow))

	fetchErr := errors.New(errors.ErrFetch, "Telemetry request failed", "")
	outcome := s.ApplyFetch(2, snap(1, 1, 1, 1, 1), fetchErr, testNow.Add(3))

	assert.Equal(t, FetchFailed, outcome)
	assert.Equal(t, good, s.Snapshot, "last good snapshot stays on screen")
	assert.Equal(t, Disconnected, s.Connection)
	assert.Equal(t, testNow, s.LastSuccess)
	assert.Equal(t, "Telemetry request failed", s.LastError)
	assert.Equal(t, 1, s.Failures)
	assert.Equal(t, alert.Healthy, s.Health)

	s.ApplyFetch(3, snap(0, 0, 0, 0, 0), fetchErr, testNow)
	assert.Equal(t, 2, s.Failures)

	require.Equal(t, FetchApplied, s.ApplyFetch(4, good, nil, testNow))
	assert.Equal(t, 0, s.Failures)
	assert.Empty(t, s.LastError)
	assert.Equal(t, Connected, s.Connection)
}

func TestApplyFetch_DiscardsStaleResults(t *testing.T) {
	s := NewState(10, testNow)
	newer := snap(60, 22, 70, 40, 80)
	older := snap(10, 35, 20, 5, 10)

	require.Equal(t, FetchApplied, s.ApplyFetch(2, newer, nil, testNow))
	assert.Equal(t, FetchDiscarded, s.ApplyFetch(1, older, nil, testNow))
	assert.Equal(t, FetchDiscarded, s.ApplyFetch(2, older, nil, testNow))

	assert.Equal(t, newer, s.Snapshot)
	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, uint64(2), s.LastSeq())

	// A stale failure must not flip the connection either
	assert.Equal(t, FetchDiscarded, s.ApplyFetch(1, older, fmt.Errorf("late"), testNow))
	assert.Equal(t, Connected, s.Connection)
}

func TestApplyFetch_HistorySkipsIdenticalReadings(t *testing.T) {
	s := NewState(10, testNow)
	reading := snap(45, 22, 60, 70, 90)

	s.ApplyFetch(1, reading, nil, testNow)
	reading.Timestamp = "09:30:03"
	s.ApplyFetch(2, reading, nil, testNow)

	assert.Equal(t, 1, s.History.Len())
}

func TestDispatchLifecycle(t *testing.T) {
	s := NewState(10, testNow)

	id, ok := s.BeginDispatch(api.CommandWater)
	require.True(t, ok)
	assert.True(t, s.Busy)
	assert.Equal(t, CommandSending, s.Command.Phase)

	_, ok = s.BeginDispatch(api.CommandReset)
	assert.False(t, ok, "second dispatch is rejected while busy")
	assert.Equal(t, api.CommandWater, s.Command.Command)

	s.FinishDispatch(id, "Watering started", nil)
	assert.False(t, s.Busy)
	assert.Equal(t, "✅ Watering started", s.Command.Text())

	s.ClearCommand(id)
	assert.Equal(t, CommandIdle, s.Command.Phase)
}

func TestDispatchFailureIsSticky(t *testing.T) {
	s := NewState(10, testNow)

	id, ok := s.BeginDispatch(api.CommandLightOn)
	require.True(t, ok)
	s.FinishDispatch(id, "", fmt.Errorf("boom"))

	assert.False(t, s.Busy)
	assert.Equal(t, CommandFailed, s.Command.Phase)

	s.ClearCommand(id)
	assert.Equal(t, "❌ Command failed", s.Command.Text(), "failures are not auto-cleared")

	next, ok := s.BeginDispatch(api.CommandWater)
	require.True(t, ok)
	assert.Greater(t, next, id)
	assert.Equal(t, "Sending...", s.Command.Text())
}

func TestClearCommand_IgnoresOlderDispatch(t *testing.T) {
	s := NewState(10, testNow)

	first, _ := s.BeginDispatch(api.CommandWater)
	s.FinishDispatch(first, "ok", nil)
	second, _ := s.BeginDispatch(api.CommandWater)

	s.ClearCommand(first)
	assert.Equal(t, second, s.Command.ID)
	assert.Equal(t, CommandSending, s.Command.Phase)
}

func TestToggleAutoWater(t *testing.T) {
	s := NewState(10, testNow)
	assert.True(t, s.ToggleAutoWater())
	assert.False(t, s.ToggleAutoWater())
}
