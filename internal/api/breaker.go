package api

import (
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings configures the optional circuit breaker around telemetry fetches.
type BreakerSettings struct {
	// Failures is the number of consecutive failures that opens the breaker.
	Failures int
	// OpenFor is how long the breaker stays open before a half-open probe.
	OpenFor time.Duration
}

func newBreaker(s BreakerSettings, onChange func(from, to gobreaker.State)) *gobreaker.CircuitBreaker {
	fails := s.Failures
	if fails < 1 {
		fails = 1
	}
	openFor := s.OpenFor
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "telemetry",
		Timeout: openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(fails)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			if onChange != nil {
				onChange(from, to)
			}
		},
	})
}
