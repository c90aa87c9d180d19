package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ActivityState is the lifecycle of an Activity line.
type ActivityState int

const (
	ActivityPending ActivityState = iota
	ActivityRunning
	ActivitySucceeded
	ActivityFailed
)

// Activity animates a single "label..." line while a one-shot request is in
// flight, then replaces it with a final ✓ or ✗ line.
type Activity struct {
	mu        sync.Mutex
	label     string
	state     ActivityState
	frame     int
	startTime time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
	out       io.Writer
	last      string
}

// NewActivity creates an activity that draws to out.
func NewActivity(out io.Writer, label string) *Activity {
	return &Activity{out: out, label: label}
}

// Start begins animating. Calling it twice is a no-op.
func (a *Activity) Start() {
	a.mu.Lock()
	if a.state == ActivityRunning {
		a.mu.Unlock()
		return
	}
	a.state = ActivityRunning
	a.startTime = time.Now()
	a.stopChan = make(chan struct{})
	a.doneChan = make(chan struct{})
	a.mu.Unlock()

	a.render()
	go a.animate()
}

// Success stops the animation and prints a ✓ line.
func (a *Activity) Success() {
	a.finish(ActivitySucceeded)
}

// Fail stops the animation and prints a ✗ line.
func (a *Activity) Fail() {
	a.finish(ActivityFailed)
}

// State returns the current state.
func (a *Activity) State() ActivityState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Activity) finish(state ActivityState) {
	a.mu.Lock()
	running := a.state == ActivityRunning
	a.state = state
	a.mu.Unlock()

	if running {
		close(a.stopChan)
		<-a.doneChan
	}
	a.renderFinal()
}

func (a *Activity) animate() {
	ticker := time.NewTicker(SpinnerFrames.FPS)
	defer ticker.Stop()
	defer close(a.doneChan)

	for {
		select {
		case <-a.stopChan:
			return
		case <-ticker.C:
			a.mu.Lock()
			a.frame = (a.frame + 1) % len(SpinnerFrames.Frames)
			a.mu.Unlock()
			a.render()
		}
	}
}

func (a *Activity) render() {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbol := lipgloss.NewStyle().Foreground(ColorInfo).Render(SpinnerFrames.Frames[a.frame])
	a.write(fmt.Sprintf("%s %s...", symbol, a.label))
}

func (a *Activity) renderFinal() {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbol := Styled(ColorSuccess, SymbolSuccess)
	if a.state == ActivityFailed {
		symbol = Styled(ColorError, SymbolFail)
	}
	var elapsed time.Duration
	if !a.startTime.IsZero() {
		elapsed = time.Since(a.startTime)
	}
	a.write(fmt.Sprintf("%s %s %s", symbol, a.label, Styled(ColorMuted, fmt.Sprintf("(%.1fs)", elapsed.Seconds()))))
	fmt.Fprint(a.out, "\n")
	a.last = ""
}

// write redraws the current line. Callers hold a.mu.
func (a *Activity) write(line string) {
	if a.last != "" {
		fmt.Fprint(a.out, "\r"+strings.Repeat(" ", lipgloss.Width(a.last))+"\r")
	}
	fmt.Fprint(a.out, line)
	a.last = line
}
