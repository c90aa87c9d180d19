package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/errors"
)

// dispatch starts cmd unless another command is in flight. The command keys
// are disabled while busy, so a rejected call only happens when a key
// message was already queued.
func (m *Model) dispatch(cmd api.Command) tea.Cmd {
	id, ok := m.state.BeginDispatch(cmd)
	if !ok {
		m.log.Debug("ignoring %s, a command is in flight", cmd)
		return nil
	}
	m.keys.setCommandsEnabled(false)
	m.log.Debug("dispatching %s (#%d)", cmd, id)

	device, ctx := m.device, m.ctx
	send := func() tea.Msg {
		message, err := device.SendCommand(ctx, cmd)
		return dispatchResultMsg{id: id, command: cmd, message: message, err: err}
	}
	return tea.Batch(send, m.spinner.Tick)
}

// finishDispatch records the outcome. Success schedules the follow-up
// refresh; failure stays on screen until the next dispatch.
func (m *Model) finishDispatch(msg dispatchResultMsg) tea.Cmd {
	m.state.FinishDispatch(msg.id, msg.message, msg.err)
	m.keys.setCommandsEnabled(true)
	m.metrics.ObserveDispatch(string(msg.command), msg.err)

	if msg.err != nil {
		m.log.Error("command %s failed: %s", msg.command, errors.Short(msg.err))
		return nil
	}

	m.log.Info("command %s: %s", msg.command, msg.message)
	id := msg.id
	return tea.Tick(m.refreshDelay, func(time.Time) tea.Msg {
		return refreshMsg{id: id}
	})
}
