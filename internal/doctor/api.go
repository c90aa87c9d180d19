package doctor

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/sensor"
)

// DefaultDialTimeout bounds the command endpoint reachability probe.
const DefaultDialTimeout = 5 * time.Second

// Fetcher reads one snapshot from the device.
type Fetcher interface {
	Fetch(ctx context.Context) (sensor.Snapshot, error)
}

// telemetryProbe shares one fetch between the API and DEVICE checks.
type telemetryProbe struct {
	fetcher Fetcher
	done    bool
	snap    sensor.Snapshot
	took    time.Duration
	err     error
}

func (p *telemetryProbe) run(ctx context.Context) (sensor.Snapshot, time.Duration, error) {
	if !p.done {
		start := time.Now()
		p.snap, p.err = p.fetcher.Fetch(ctx)
		p.took = time.Since(start)
		p.done = true
	}
	return p.snap, p.took, p.err
}

// TelemetryCheck fetches a reading from the telemetry endpoint.
type TelemetryCheck struct {
	URL   string
	probe *telemetryProbe
}

func (c *TelemetryCheck) Name() string     { return "telemetry" }
func (c *TelemetryCheck) Category() string { return CategoryAPI }

func (c *TelemetryCheck) Run(ctx context.Context) CheckResult {
	_, took, err := c.probe.run(ctx)
	if err != nil {
		return fail(c.Name(), errors.Short(err),
			fmt.Sprintf("Check that %s is reachable and returns a JSON object", c.URL))
	}
	return pass(c.Name(), fmt.Sprintf("Telemetry endpoint responded in %s", took.Round(time.Millisecond)))
}

// CommandEndpointCheck opens a TCP connection to the command endpoint's host.
// It never POSTs, so no command reaches the device.
type CommandEndpointCheck struct {
	URL     string
	Timeout time.Duration
	Dial    func(ctx context.Context, network, addr string) (net.Conn, error)
}

func (c *CommandEndpointCheck) Name() string     { return "command_endpoint" }
func (c *CommandEndpointCheck) Category() string { return CategoryAPI }

func (c *CommandEndpointCheck) Run(ctx context.Context) CheckResult {
	addr, err := hostPort(c.URL)
	if err != nil {
		return fail(c.Name(), fmt.Sprintf("Command URL is invalid: %v", err), "Check api.command_url")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	dial := c.Dial
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := dial(ctx, "tcp", addr)
	if err != nil {
		return fail(c.Name(), fmt.Sprintf("Can't reach %s: %v", addr, err),
			"Check api.command_url and your network connection")
	}
	_ = conn.Close()
	return pass(c.Name(), fmt.Sprintf("Command endpoint reachable at %s", addr))
}

// hostPort returns host:port for an http(s) URL, filling in the scheme's port.
func hostPort(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "http":
			port = "80"
		case "https":
			port = "443"
		default:
			return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// ReadingCheck reports the health tier of the fetched reading.
type ReadingCheck struct {
	probe *telemetryProbe
}

func (c *ReadingCheck) Name() string     { return "reading" }
func (c *ReadingCheck) Category() string { return CategoryDevice }

func (c *ReadingCheck) Run(ctx context.Context) CheckResult {
	snap, _, err := c.probe.run(ctx)
	if err != nil {
		return fail(c.Name(), "No reading available", "Fix the telemetry check first")
	}

	alerts, health := alert.Evaluate(snap)
	msg := fmt.Sprintf("Plant is %s (moisture %.1f%%, battery %.1f%%)",
		strings.ToLower(health.String()), snap.SoilMoisture, snap.BatteryLevel)
	switch health {
	case alert.Healthy:
		return pass(c.Name(), msg)
	case alert.Warning:
		return warn(c.Name(), msg, "Soil is drying out or the air is dry")
	default:
		return fail(c.Name(), msg, strings.Join(alert.Messages(alerts), "\n"))
	}
}

// NewAPIChecks returns the API and DEVICE checks. Both categories share a
// single telemetry request.
func NewAPIChecks(fetcher Fetcher, telemetryURL, commandURL string) []Check {
	probe := &telemetryProbe{fetcher: fetcher}
	return []Check{
		&TelemetryCheck{URL: telemetryURL, probe: probe},
		&CommandEndpointCheck{URL: commandURL},
		&ReadingCheck{probe: probe},
	}
}
