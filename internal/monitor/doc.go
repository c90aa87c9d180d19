// Package monitor implements the live PlantX dashboard as a Bubble Tea program.
//
// # Architecture
//
// The dashboard follows The Elm Architecture. All state lives in a single
// State value owned by the Model; it is only written from Update, so no locks
// are needed even though fetches and commands complete asynchronously.
//
//   - Poll loop: a tea.Tick fires every interval and starts a fetch. Init
//     fetches immediately rather than waiting for the first tick.
//   - Fetch results: each fetch is tagged with a sequence number when it
//     starts. A result is applied only if its number is higher than every
//     result applied before it; late completions are discarded.
//   - Dispatch: one command may be in flight. While busy the command keys
//     are ignored. A success shows the device's message, then after the
//     refresh delay triggers one fetch and clears the message. A failure
//     stays on screen until the next dispatch.
//
// # Degraded operation
//
// A failed fetch marks the connection Disconnected and keeps the last good
// snapshot on screen. By default the loop keeps polling at the fixed
// interval. With backoff enabled the interval grows exponentially while
// failures continue and resets on the next success.
//
// # Keyboard Shortcuts
//
//	w           - Water plant
//	l           - Grow light on
//	x           - Reset sensor
//	a           - Toggle auto watering (local preference)
//	r           - Force refresh
//	?           - Toggle help overlay
//	q, Ctrl+C   - Quit
package monitor
