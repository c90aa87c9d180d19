package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HamzaOussama/plantX/internal/api"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/metrics"
	"github.com/HamzaOussama/plantX/internal/sensor"
	"github.com/HamzaOussama/plantX/internal/ui"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultInterval     = 3 * time.Second
	DefaultRefreshDelay = time.Second
)

// Device is the remote sensor the dashboard talks to. *api.Client satisfies it.
type Device interface {
	Fetch(ctx context.Context) (sensor.Snapshot, error)
	SendCommand(ctx context.Context, cmd api.Command) (string, error)
	DeviceID() string
}

// Options configures a dashboard Model.
type Options struct {
	Interval     time.Duration // zero uses DefaultInterval
	RefreshDelay time.Duration // zero uses DefaultRefreshDelay
	HistorySize  int

	// Backoff stretches the poll interval while fetches keep failing.
	// Nil keeps the fixed interval.
	Backoff *BackoffSettings

	Metrics metrics.Recorder
	Logger  logger.Logger
	Now     func() time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	device Device
	state  *State

	interval     time.Duration
	refreshDelay time.Duration
	poller       *poller

	ctx    context.Context
	cancel context.CancelFunc

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	metrics metrics.Recorder
	log     logger.Logger
	now     func() time.Time

	width    int
	height   int
	showHelp bool
	quitting bool
}

// tickMsg signals the poll interval elapsed.
type tickMsg time.Time

// fetchResultMsg carries the outcome of one fetch, tagged with the sequence
// number assigned when it started.
type fetchResultMsg struct {
	seq      uint64
	snapshot sensor.Snapshot
	err      error
	at       time.Time
}

// dispatchResultMsg carries the outcome of one command.
type dispatchResultMsg struct {
	id      uint64
	command api.Command
	message string
	err     error
}

// refreshMsg fires RefreshDelay after a successful command.
type refreshMsg struct {
	id uint64
}

// NewModel creates a dashboard for device. The context bounds every request
// the dashboard makes; it is cancelled when the user quits.
func NewModel(ctx context.Context, device Device, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = DefaultRefreshDelay
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Noop()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	return Model{
		device:       device,
		state:        NewState(opts.HistorySize, opts.Now()),
		interval:     opts.Interval,
		refreshDelay: opts.RefreshDelay,
		poller:       newPoller(opts.Interval, opts.Backoff),
		ctx:          ctx,
		cancel:       cancel,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      ui.NewSpinner(ColorAccent),
		metrics:      opts.Metrics,
		log:          opts.Logger,
		now:          opts.Now,
	}
}

// State exposes the dashboard state for inspection.
func (m Model) State() *State {
	return m.state
}

// Init fetches immediately and starts the poll timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(),
		m.tickCmd(m.interval),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.fetchCmd(), m.tickCmd(m.poller.next(m.state.Failures)))

	case fetchResultMsg:
		m.applyFetch(msg)

	case dispatchResultMsg:
		return m, m.finishDispatch(msg)

	case refreshMsg:
		m.state.ClearCommand(msg.id)
		return m, m.fetchCmd()

	case spinner.TickMsg:
		if !m.state.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// quit cancels outstanding requests and stops the program. Results still in
// flight are dropped by Bubble Tea once the program exits.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}

// SecondsSinceUpdate returns how many seconds have passed since the last
// successful fetch.
func (m Model) SecondsSinceUpdate() int {
	if m.state.LastSuccess.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.state.LastSuccess).Seconds())
}
