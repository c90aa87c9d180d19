// Package metrics exports poll and dispatch outcomes as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HamzaOussama/plantX/internal/alert"
	"github.com/HamzaOussama/plantX/internal/logger"
	"github.com/HamzaOussama/plantX/internal/sensor"
)

const namespace = "plantx"

// Recorder receives dashboard events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveFetch(err error)
	ObserveSnapshot(s sensor.Snapshot, health alert.Health, alerts int)
	ObserveDiscarded()
	ObserveDispatch(command string, err error)
}

type noop struct{}

// Noop returns a Recorder that drops everything.
func Noop() Recorder { return noop{} }

func (noop) ObserveFetch(error)                                 {}
func (noop) ObserveSnapshot(sensor.Snapshot, alert.Health, int) {}
func (noop) ObserveDiscarded()                                  {}
func (noop) ObserveDispatch(string, error)                      {}

// Prometheus is a Recorder backed by Prometheus collectors.
type Prometheus struct {
	fetches    *prometheus.CounterVec
	discarded  prometheus.Counter
	dispatches *prometheus.CounterVec
	readings   *prometheus.GaugeVec
	health     prometheus.Gauge
	alerts     prometheus.Gauge
	lastFetch  prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Telemetry fetches by result.",
		}, []string{"result"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_discarded_total",
			Help:      "Fetch results dropped because a newer fetch was already applied.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands dispatched by command and result.",
		}, []string{"command", "result"}),
		readings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reading",
			Help:      "Latest sensor reading by field.",
		}, []string{"field"}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "health_tier",
			Help:      "Health tier of the latest snapshot (0 healthy, 1 warning, 2 critical).",
		}),
		alerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_alerts",
			Help:      "Number of alerts fired by the latest snapshot.",
		}),
		lastFetch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_fetch_timestamp_seconds",
			Help:      "Unix time of the last successful telemetry fetch.",
		}),
	}
	reg.MustRegister(p.fetches, p.discarded, p.dispatches, p.readings, p.health, p.alerts, p.lastFetch)
	return p
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) ObserveFetch(err error) {
	p.fetches.WithLabelValues(result(err)).Inc()
	if err == nil {
		p.lastFetch.SetToCurrentTime()
	}
}

func (p *Prometheus) ObserveSnapshot(s sensor.Snapshot, health alert.Health, alerts int) {
	for _, f := range sensor.Fields {
		p.readings.WithLabelValues(f.Key()).Set(f.Value(s))
	}
	p.health.Set(float64(health))
	p.alerts.Set(float64(alerts))
}

func (p *Prometheus) ObserveDiscarded() {
	p.discarded.Inc()
}

func (p *Prometheus) ObserveDispatch(command string, err error) {
	p.dispatches.WithLabelValues(command, result(err)).Inc()
}

// Serve exposes reg on addr at /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, reg prometheus.Gatherer, log logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving metrics on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
