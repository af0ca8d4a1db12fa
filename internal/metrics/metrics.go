// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package metrics holds the Prometheus collectors for documentation runs.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Generation results.
const (
	ResultOK          = "ok"
	ResultDiagnostics = "diagnostics"
	ResultFailed      = "failed"
)

// Registry owns a private Prometheus registry and the collectors registered on it.
type Registry struct {
	reg *prometheus.Registry

	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	Endpoints          prometheus.Gauge
	Diagnostics        prometheus.Gauge
	Requests           *prometheus.CounterVec
}

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uridoc_generations_total",
				Help: "Total number of documentation runs by result",
			},
			[]string{"result"},
		),
		GenerationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "uridoc_generation_duration_seconds",
				Help:    "Time spent scanning and interpreting sources",
				Buckets: prometheus.DefBuckets,
			},
		),
		Endpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "uridoc_endpoints",
			Help: "Endpoints documented by the last run",
		}),
		Diagnostics: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "uridoc_diagnostics",
			Help: "Diagnostics reported by the last run",
		}),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uridoc_http_requests_total",
				Help: "HTTP requests served by route and status code",
			},
			[]string{"route", "code"},
		),
	}
	r.reg.MustRegister(r.Generations, r.GenerationDuration, r.Endpoints, r.Diagnostics, r.Requests)
	return r
}

// Gatherer exposes the registry for promhttp.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveGeneration records one run. A non-nil err counts as failed and leaves the
// gauges at their previous values.
func (r *Registry) ObserveGeneration(elapsed time.Duration, endpoints, diagnostics int, err error) {
	r.GenerationDuration.Observe(elapsed.Seconds())
	switch {
	case err != nil:
		r.Generations.WithLabelValues(ResultFailed).Inc()
		return
	case diagnostics > 0:
		r.Generations.WithLabelValues(ResultDiagnostics).Inc()
	default:
		r.Generations.WithLabelValues(ResultOK).Inc()
	}
	r.Endpoints.Set(float64(endpoints))
	r.Diagnostics.Set(float64(diagnostics))
}

// ObserveRequest counts one HTTP response.
func (r *Registry) ObserveRequest(route string, code int) {
	r.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
