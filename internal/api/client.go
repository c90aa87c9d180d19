package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/HamzaOussama/plantX/internal/errors"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/sensor"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Options configures a Client.
type Options struct {
	TelemetryURL string
	CommandURL   string
	DeviceID     string

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration

	// Breaker enables a circuit breaker around Fetch when non-nil.
	Breaker *BreakerSettings

	HTTPClient *http.Client
	Logger     logger.Logger
	Now        func() time.Time
}

// Client performs telemetry fetches and command submissions.
// It is safe for concurrent use.
type Client struct {
	telemetryURL string
	commandURL   string
	deviceID     string
	http         *http.Client
	breaker      *gobreaker.CircuitBreaker
	log          logger.Logger
	now          func() time.Time
}

// New creates a client from opts.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Client{
		telemetryURL: strings.TrimSpace(opts.TelemetryURL),
		commandURL:   strings.TrimSpace(opts.CommandURL),
		deviceID:     opts.DeviceID,
		http:         httpClient,
		log:          log,
		now:          now,
	}
	if opts.Breaker != nil {
		c.breaker = newBreaker(*opts.Breaker, func(from, to gobreaker.State) {
			log.Warn("telemetry breaker %s -> %s", from, to)
		})
	}
	return c
}

// DeviceID returns the identifier sent with every command.
func (c *Client) DeviceID() string {
	return c.deviceID
}

// Fetch performs one GET against the telemetry endpoint and normalizes the
// payload. Transport failures, non-2xx statuses, and bodies that are not a
// JSON object are returned as ErrFetch errors. Defective fields inside a valid
// object are defaulted, not rejected.
func (c *Client) Fetch(ctx context.Context) (sensor.Snapshot, error) {
	if c.breaker == nil {
		return c.fetch(ctx)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return sensor.Snapshot{}, errors.WrapWithCode(err, errors.ErrFetch,
				"Telemetry breaker open",
				"Requests are paused after repeated failures")
		}
		return sensor.Snapshot{}, err
	}
	return res.(sensor.Snapshot), nil
}

func (c *Client) fetch(ctx context.Context) (sensor.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.telemetryURL, nil)
	if err != nil {
		return sensor.Snapshot{}, errors.WrapWithCode(err, errors.ErrFetch,
			"Invalid telemetry URL",
			"Check api.telemetry_url in .plantx.yaml")
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return sensor.Snapshot{}, errors.WrapWithCode(err, errors.ErrFetch,
			"Telemetry request failed",
			"Check api.telemetry_url and your network connection")
	}

	raw, err := decodeObject(body)
	if err != nil {
		return sensor.Snapshot{}, errors.WrapWithCode(err, errors.ErrFetch,
			"Telemetry response is malformed",
			"The endpoint must return a JSON object")
	}

	snap := sensor.Normalize(raw, c.now())
	c.log.Debug("fetched %+v", snap)
	return snap, nil
}

// SendCommand posts cmd for the configured device and returns the
// human-readable message from the double-encoded response.
func (c *Client) SendCommand(ctx context.Context, cmd Command) (string, error) {
	payload, err := json.Marshal(NewCommandRequest(cmd, c.deviceID, c.now()))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDispatch, "Cannot encode command", "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.commandURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDispatch,
			"Invalid command URL",
			"Check api.command_url in .plantx.yaml")
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.log.Debug("sending %s (request %s)", cmd, requestID)
	body, err := c.do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDispatch,
			fmt.Sprintf("Command '%s' failed", cmd),
			"Check api.command_url and your network connection")
	}

	msg, err := DecodeCommandResponse(body)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDispatch,
			fmt.Sprintf("Command '%s' returned an unreadable response", cmd),
			"")
	}
	return msg, nil
}

// do executes req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), 120)}
	}
	return body, nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// decodeObject decodes body as one JSON object. Numbers stay json.Number so
// an out-of-range field is defaulted by sensor.Normalize instead of failing
// the whole payload.
func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object, got %s", truncate(string(body), 64))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return raw, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
