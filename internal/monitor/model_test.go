package monitor

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/logger"
)

func TestNewModel_Defaults(t *testing.T) {
	m := newTestModel(t, &fakeDevice{}, Options{})

	assert.Equal(t, DefaultInterval, m.interval)
	assert.Equal(t, DefaultRefreshDelay, m.refreshDelay)
	assert.Equal(t, Connecting, m.State().Connection)
	assert.Equal(t, 10, m.State().History.Size())
	assert.NotNil(t, m.metrics)
	assert.NotNil(t, m.log)
}

func TestInit_FetchesImmediately(t *testing.T) {
	device := &fakeDevice{snapshot: snap(60, 22, 70, 40, 80)}
	m := newTestModel(t, device, Options{Interval: time.Hour})

	msg := firstOfBatch(t, m.Init())

	result, ok := msg.(fetchResultMsg)
	require.True(t, ok, "first command of Init is the fetch, got %T", msg)
	assert.Equal(t, uint64(1), result.seq)
	assert.Equal(t, 1, device.fetches)

	m, _ = update(t, m, result)
	assert.Equal(t, Connected, m.State().Connection)
	assert.Equal(t, 80.0, m.State().Snapshot.BatteryLevel)
}

func TestTick_StartsFetchWithNextSequence(t *testing.T) {
	device := &fakeDevice{snapshot: snap(60, 22, 70, 40, 80)}
	m := newTestModel(t, device, Options{Interval: time.Hour})

	_ = firstOfBatch(t, m.Init())
	m, cmd := update(t, m, tickMsg(testNow))

	result, ok := firstOfBatch(t, cmd).(fetchResultMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(2), result.seq)
}

func TestFetchResults_OutOfOrder(t *testing.T) {
	rec := &recordingMetrics{}
	m := newTestModel(t, &fakeDevice{}, Options{Metrics: rec})

	newer := snap(60, 22, 70, 40, 80)
	older := snap(10, 40, 20, 5, 10)

	m, _ = update(t, m, fetchResultMsg{seq: 2, snapshot: newer, at: testNow})
	m, _ = update(t, m, fetchResultMsg{seq: 1, snapshot: older, at: testNow})

	assert.Equal(t, newer, m.State().Snapshot)
	assert.Equal(t, 1, rec.fetchOK)
	assert.Equal(t, 1, rec.discarded)
	assert.Equal(t, 1, rec.snapshots)
	assert.Equal(t, alert.Healthy, rec.lastHealth)
}

func TestFetchFailure_LogsAndKeepsPolling(t *testing.T) {
	log := logger.NewBufferLogger()
	rec := &recordingMetrics{}
	m := newTestModel(t, &fakeDevice{}, Options{Logger: log, Metrics: rec, Interval: time.Hour})

	good := snap(60, 22, 70, 40, 80)
	m, _ = update(t, m, fetchResultMsg{seq: 1, snapshot: good, at: testNow})

	fetchErr := errors.New(errors.ErrFetch, "Telemetry request failed", "")
	m, cmd := update(t, m, fetchResultMsg{seq: 2, err: fetchErr, at: testNow})
	assert.Nil(t, cmd)

	assert.Equal(t, Disconnected, m.State().Connection)
	assert.Equal(t, good, m.State().Snapshot)
	assert.True(t, log.HasLevel("warn"))
	assert.Equal(t, 1, rec.fetchErr)

	// The next tick still schedules a fetch
	_, cmd = update(t, m, tickMsg(testNow))
	assert.NotNil(t, cmd)
}

func TestDispatch_SuccessRefreshesAndClears(t *testing.T) {
	device := &fakeDevice{
		snapshot: snap(70, 22, 70, 40, 80),
		message:  "Watering started",
	}
	rec := &recordingMetrics{}
	m := newTestModel(t, device, Options{Metrics: rec})

	m, cmd := update(t, m, keyMsg("w"))
	require.NotNil(t, cmd)
	assert.True(t, m.State().Busy)
	assert.Equal(t, "Sending...", m.State().Command.Text())
	assert.False(t, m.keys.Water.Enabled(), "command keys are disabled while busy")

	result, ok := firstOfBatch(t, cmd).(dispatchResultMsg)
	require.True(t, ok)
	assert.Equal(t, []api.Command{api.CommandWater}, device.sent)

	m, cmd = update(t, m, result)
	assert.NotNil(t, cmd, "success schedules the delayed refresh")
	assert.False(t, m.State().Busy)
	assert.True(t, m.keys.Water.Enabled())
	assert.Equal(t, "✅ Watering started", m.State().Command.Text())
	assert.Equal(t, 1, rec.dispatches["water/ok"])

	m, cmd = update(t, m, refreshMsg{id: result.id})
	assert.Equal(t, CommandIdle, m.State().Command.Phase)

	fetched, ok := firstOfBatch(t, cmd).(fetchResultMsg)
	require.True(t, ok, "refresh triggers one fetch")
	m, _ = update(t, m, fetched)
	assert.Equal(t, 70.0, m.State().Snapshot.SoilMoisture)
}

func TestDispatch_RejectedWhileBusy(t *testing.T) {
	device := &fakeDevice{message: "ok"}
	m := newTestModel(t, device, Options{})

	m, first := update(t, m, keyMsg("w"))
	require.NotNil(t, first)

	m, cmd := update(t, m, keyMsg("l"))
	assert.Nil(t, cmd)
	assert.Equal(t, api.CommandWater, m.State().Command.Command)

	// Even if the binding were bypassed, the state refuses a second dispatch
	assert.Nil(t, m.dispatch(api.CommandReset))

	_ = firstOfBatch(t, first)
	assert.Equal(t, []api.Command{api.CommandWater}, device.sent)
}

func TestDispatch_FailureIsSticky(t *testing.T) {
	log := logger.NewBufferLogger()
	device := &fakeDevice{sendErr: fmt.Errorf("connection refused")}
	m := newTestModel(t, device, Options{Logger: log})

	m, cmd := update(t, m, keyMsg("x"))
	result := firstOfBatch(t, cmd)

	m, cmd = update(t, m, result)
	assert.Nil(t, cmd, "no refresh is scheduled after a failure")
	assert.False(t, m.State().Busy)
	assert.Equal(t, "❌ Command failed", m.State().Command.Text())
	assert.True(t, log.HasLevel("error"))

	// Operator may retry right away
	m, cmd = update(t, m, keyMsg("x"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Sending...", m.State().Command.Text())
}

func TestSpinnerTick_IgnoredWhenIdle(t *testing.T) {
	m := newTestModel(t, &fakeDevice{}, Options{})
	_, cmd := update(t, m, m.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestQuit_CancelsRequests(t *testing.T) {
	m := newTestModel(t, &fakeDevice{}, Options{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err())
	assert.Empty(t, m.View())
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t, &fakeDevice{}, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
}

func TestSecondsSinceUpdate(t *testing.T) {
	now := testNow
	m := newTestModel(t, &fakeDevice{}, Options{Now: func() time.Time { return now }})
	assert.Equal(t, 0, m.SecondsSinceUpdate())

	m, _ = update(t, m, fetchResultMsg{seq: 1, snapshot: snap(50, 20, 60, 50, 90), at: testNow})
	now = testNow.Add(7 * time.Second)
	assert.Equal(t, 7, m.SecondsSinceUpdate())
}
