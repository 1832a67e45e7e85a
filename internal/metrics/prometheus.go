package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PromRecorder exports generation metrics through a private Prometheus
// registry. A private registry keeps repeated construction (tests, multiple
// engines in one process) from tripping duplicate-registration panics.
type PromRecorder struct {
	registry  *prometheus.Registry
	generated *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	active    prometheus.Gauge
}

// NewPromRecorder builds a recorder with the quotesynth metric family:
// quotes_generated_total{operation,status}, generation_duration_seconds
// {operation} and runs_active.
func NewPromRecorder() *PromRecorder {
	r := &PromRecorder{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotesynth",
			Name:      "quotes_generated_total",
			Help:      "Operations finished, by operation and success/error status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quotesynth",
			Name:      "generation_duration_seconds",
			Help:      "Wall time per operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quotesynth",
			Name:      "runs_active",
			Help:      "Batch runs currently executing.",
		}),
	}
	r.registry.MustRegister(r.generated, r.duration, r.active)
	return r
}

// Observe implements Recorder.
func (r *PromRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.generated.WithLabelValues(operation, status).Inc()
	r.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RunStarted marks one run in flight.
func (r *PromRecorder) RunStarted() { r.active.Inc() }

// RunFinished marks one run complete.
func (r *PromRecorder) RunFinished() { r.active.Dec() }

// Handler serves the registry in Prometheus exposition format.
func (r *PromRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
