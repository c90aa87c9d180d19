package monitor

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HamzaOussama/plantX/internal/errors"
)

// BackoffSettings caps the poll interval growth after consecutive failures.
type BackoffSettings struct {
	MaxInterval time.Duration
}

// poller decides the delay before the next tick. Without backoff it always
// returns the base interval.
type poller struct {
	interval time.Duration
	backoff  *backoff.ExponentialBackOff
	seq      uint64
}

func newPoller(interval time.Duration, settings *BackoffSettings) *poller {
	p := &poller{interval: interval}
	if settings == nil {
		return p
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = interval
	bo.MaxInterval = settings.MaxInterval
	if bo.MaxInterval < interval {
		bo.MaxInterval = interval
	}
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0 // never give up
	bo.Reset()
	p.backoff = bo
	return p
}

// next returns the delay before the next tick given the current run of
// consecutive failures.
func (p *poller) next(failures int) time.Duration {
	if p.backoff == nil {
		return p.interval
	}
	if failures == 0 {
		p.backoff.Reset()
		return p.interval
	}
	return p.backoff.NextBackOff()
}

// nextSeq hands out fetch sequence numbers, starting at 1.
func (p *poller) nextSeq() uint64 {
	p.seq++
	return p.seq
}

// tickCmd schedules the next poll.
func (m Model) tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd starts one fetch. The sequence number is taken now, not when the
// response arrives, so a slow response cannot overwrite a newer one.
func (m *Model) fetchCmd() tea.Cmd {
	seq := m.poller.nextSeq()
	device, ctx, now := m.device, m.ctx, m.now
	return func() tea.Msg {
		snap, err := device.Fetch(ctx)
		return fetchResultMsg{seq: seq, snapshot: snap, err: err, at: now()}
	}
}

// applyFetch hands a result to the state writer and reports the outcome.
func (m *Model) applyFetch(msg fetchResultMsg) {
	prev := m.state.Connection

	switch m.state.ApplyFetch(msg.seq, msg.snapshot, msg.err, msg.at) {
	case FetchDiscarded:
		m.log.Debug("discarding fetch #%d, #%d already applied", msg.seq, m.state.LastSeq())
		m.metrics.ObserveDiscarded()
		return
	case FetchFailed:
		m.log.Warn("fetch #%d failed (%d in a row): %s", msg.seq, m.state.Failures, errors.Short(msg.err))
	case FetchApplied:
		m.metrics.ObserveSnapshot(m.state.Snapshot, m.state.Health, len(m.state.Alerts))
	}
	m.metrics.ObserveFetch(msg.err)

	if prev != m.state.Connection {
		m.log.Debug("connection %s -> %s", prev, m.state.Connection)
	}
}
