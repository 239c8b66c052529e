// Package metrics exposes crawl events as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

const namespace = "linkcheck"

// Metrics implements domain.Recorder on a registry private to one crawl.
type Metrics struct {
	registry *prometheus.Registry
	checks   *prometheus.CounterVec
	skips    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	waves    prometheus.Counter
	waveSize prometheus.Histogram
	frontier prometheus.Gauge
}

// New creates the collectors for the crawl identified by runID.
func New(runID string) *Metrics {
	labels := prometheus.Labels{"run_id": runID}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "checks_total",
			Help:        "Dispatched URLs by kind and result.",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "skipped_total",
			Help:        "Discovered URLs dropped before dispatch, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "check_duration_seconds",
			Help:        "Wall time of each fetch or check.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"kind"}),
		waves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "waves_total",
			Help:        "Dispatch waves started.",
			ConstLabels: labels,
		}),
		waveSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "wave_size",
			Help:        "Entries drained per wave.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(1, 5, 10),
		}),
		frontier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "frontier_pending",
			Help:        "Entries waiting in the frontier after the last wave.",
			ConstLabels: labels,
		}),
	}

	m.registry.MustRegister(m.checks, m.skips, m.latency, m.waves, m.waveSize, m.frontier)
	return m
}

// CheckDone implements domain.Recorder.
func (m *Metrics) CheckDone(kind domain.LinkKind, ok bool, d time.Duration) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.checks.WithLabelValues(kind.String(), result).Inc()
	m.latency.WithLabelValues(kind.String()).Observe(d.Seconds())
}

// Skipped implements domain.Recorder.
func (m *Metrics) Skipped(reason domain.SkipReason) {
	m.skips.WithLabelValues(string(reason)).Inc()
}

// WaveDone implements domain.Recorder.
func (m *Metrics) WaveDone(size int) {
	m.waves.Inc()
	m.waveSize.Observe(float64(size))
}

// FrontierSize implements domain.Recorder.
func (m *Metrics) FrontierSize(n int) {
	m.frontier.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
