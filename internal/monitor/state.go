package monitor

import (
	"time"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/history"
	"github.com/HamzaOussama/plantX/internal/sensor"
)

// ConnectionStatus tracks reachability of the telemetry endpoint.
type ConnectionStatus int

const (
	Connecting ConnectionStatus = iota
	Connected
	Disconnected
)

// String returns the status text shown in the system panel.
func (c ConnectionStatus) String() string {
	switch c {
	case Connecting:
		return "Connecting..."
	case Connected:
		return "Connected ✓"
	case Disconnected:
		return "Disconnected - Check API"
	default:
		return "Unknown"
	}
}

// CommandPhase is the lifecycle position of the most recent dispatch.
type CommandPhase int

const (
	CommandIdle CommandPhase = iota
	CommandSending
	CommandSucceeded
	CommandFailed
)

// CommandStatus describes the most recent dispatch.
type CommandStatus struct {
	ID      uint64 // dispatch ordinal
	Phase   CommandPhase
	Command api.Command
	Message string
	Err     error
}

// Text returns the status line for the controls panel. Idle is empty.
func (c CommandStatus) Text() string {
	switch c.Phase {
	case CommandSending:
		return "Sending..."
	case CommandSucceeded:
		return "✅ " + c.Message
	case CommandFailed:
		return "❌ Command failed"
	default:
		return ""
	}
}

// FetchOutcome reports what ApplyFetch did with a result.
type FetchOutcome int

const (
	FetchApplied FetchOutcome = iota
	FetchFailed
	FetchDiscarded
)

// State is everything the dashboard knows. Each concern has exactly one
// writer method; nothing else mutates the fields.
type State struct {
	Snapshot    sensor.Snapshot
	Connection  ConnectionStatus
	LastSuccess time.Time
	LastError   string
	Failures    int // consecutive failed fetches

	History *history.Log
	Alerts  []alert.Alert
	Health  alert.Health

	Command   CommandStatus
	Busy      bool
	AutoWater bool

	lastSeq     uint64
	dispatchSeq uint64
}

// NewState returns the pre-fetch state: placeholder readings, Connecting,
// and an empty history. Alerts and health are evaluated from the
// placeholder together, so a Critical badge always has its alert.
func NewState(historySize int, now time.Time) *State {
	snap := sensor.Initial(now)
	alerts, health := alert.Evaluate(snap)
	return &State{
		Snapshot:   snap,
		Connection: Connecting,
		History:    history.NewLog(historySize),
		Alerts:     alerts,
		Health:     health,
	}
}

// LastSeq returns the sequence number of the newest applied fetch.
func (s *State) LastSeq() uint64 {
	return s.lastSeq
}

// ApplyFetch is the fetch-result writer. Results older than one already
// applied are discarded. A failure keeps the last snapshot and marks the
// connection Disconnected. A success replaces the snapshot, records it in
// the history, and re-evaluates alerts from scratch.
func (s *State) ApplyFetch(seq uint64, snap sensor.Snapshot, err error, at time.Time) FetchOutcome {
	if seq <= s.lastSeq {
		return FetchDiscarded
	}
	s.lastSeq = seq

	if err != nil {
		s.Connection = Disconnected
		s.LastError = errors.Short(err)
		s.Failures++
		return FetchFailed
	}

	s.Snapshot = snap
	s.Connection = Connected
	s.LastSuccess = at
	s.LastError = ""
	s.Failures = 0
	s.History.Record(snap)
	s.Alerts, s.Health = alert.Evaluate(snap)
	return FetchApplied
}

// BeginDispatch is the dispatch-start writer. It returns the dispatch id,
// or false without changing anything when a command is already in flight.
func (s *State) BeginDispatch(cmd api.Command) (uint64, bool) {
	if s.Busy {
		return 0, false
	}
	s.dispatchSeq++
	s.Busy = true
	s.Command = CommandStatus{ID: s.dispatchSeq, Phase: CommandSending, Command: cmd}
	return s.dispatchSeq, true
}

// FinishDispatch is the dispatch-result writer. Busy is cleared whatever
// the outcome.
func (s *State) FinishDispatch(id uint64, message string, err error) {
	s.Busy = false
	if id != s.Command.ID {
		return
	}
	if err != nil {
		s.Command.Phase = CommandFailed
		s.Command.Err = err
		return
	}
	s.Command.Phase = CommandSucceeded
	s.Command.Message = message
}

// ClearCommand resets the status of dispatch id to idle if it succeeded and
// nothing newer has been dispatched since.
func (s *State) ClearCommand(id uint64) {
	if s.Command.ID == id && s.Command.Phase == CommandSucceeded {
		s.Command = CommandStatus{}
	}
}

// ToggleAutoWater flips the local auto-watering preference. No request is
// sent to the device.
func (s *State) ToggleAutoWater() bool {
	s.AutoWater = !s.AutoWater
	return s.AutoWater
}
