package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/sensor"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func valueWithLabels(f *dto.MetricFamily, labels map[string]string) (float64, bool) {
	for _, m := range f.GetMetric() {
		match := true
		for _, lp := range m.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				match = false
			}
		}
		if !match {
			continue
		}
		if m.GetCounter() != nil {
			return m.GetCounter().GetValue(), true
		}
		return m.GetGauge().GetValue(), true
	}
	return 0, false
}

func TestPrometheus_Fetches(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.ObserveFetch(nil)
	p.ObserveFetch(nil)
	p.ObserveFetch(errors.New("timeout"))
	p.ObserveDiscarded()

	fams := gather(t, reg)
	ok, found := valueWithLabels(fams["plantx_fetches_total"], map[string]string{"result": "ok"})
	require.True(t, found)
	assert.Equal(t, 2.0, ok)

	failed, _ := valueWithLabels(fams["plantx_fetches_total"], map[string]string{"result": "error"})
	assert.Equal(t, 1.0, failed)

	discarded, _ := valueWithLabels(fams["plantx_fetches_discarded_total"], nil)
	assert.Equal(t, 1.0, discarded)

	last, _ := valueWithLabels(fams["plantx_last_successful_fetch_timestamp_seconds"], nil)
	assert.Greater(t, last, 0.0)
}

func TestPrometheus_Snapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	s := sensor.Snapshot{SoilMoisture: 25, Temperature: 20, Humidity: 60, LightIntensity: 10, BatteryLevel: 50}
	p.ObserveSnapshot(s, alert.Critical, 1)

	fams := gather(t, reg)
	moisture, found := valueWithLabels(fams["plantx_reading"], map[string]string{"field": "soil_moisture"})
	require.True(t, found)
	assert.Equal(t, 25.0, moisture)

	battery, _ := valueWithLabels(fams["plantx_reading"], map[string]string{"field": "battery_level"})
	assert.Equal(t, 50.0, battery)

	health, _ := valueWithLabels(fams["plantx_health_tier"], nil)
	assert.Equal(t, 2.0, health)

	alerts, _ := valueWithLabels(fams["plantx_active_alerts"], nil)
	assert.Equal(t, 1.0, alerts)
}

func TestPrometheus_Dispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.ObserveDispatch("water", nil)
	p.ObserveDispatch("water", errors.New("503"))
	p.ObserveDispatch("reset", nil)

	fams := gather(t, reg)
	waterOK, _ := valueWithLabels(fams["plantx_commands_total"], map[string]string{"command": "water", "result": "ok"})
	assert.Equal(t, 1.0, waterOK)
	waterErr, _ := valueWithLabels(fams["plantx_commands_total"], map[string]string{"command": "water", "result": "error"})
	assert.Equal(t, 1.0, waterErr)
}

func TestNoop(t *testing.T) {
	r := Noop()
	r.ObserveFetch(nil)
	r.ObserveSnapshot(sensor.Snapshot{}, alert.Healthy, 0)
	r.ObserveDiscarded()
	r.ObserveDispatch("water", nil)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg).ObserveFetch(nil)

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, reg, logger.Noop()) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, body, `plantx_fetches_total{result="ok"} 1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
