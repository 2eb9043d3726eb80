// Package metrics provides Prometheus collectors for the categorization API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "civiceye"

// Metrics groups the service collectors. Each instance owns its registry so
// tests can build isolated copies.
type Metrics struct {
	Registry *prometheus.Registry

	// PredictionsTotal counts classifier results.
	// Labels: category, priority
	PredictionsTotal *prometheus.CounterVec

	// ImagesTotal counts attachment outcomes.
	// Labels: result (processed, rejected)
	ImagesTotal *prometheus.CounterVec

	// PredictionDuration tracks end-to-end categorization latency.
	PredictionDuration prometheus.Histogram

	// RequestsTotal counts HTTP requests.
	// Labels: method, route, status
	RequestsTotal *prometheus.CounterVec

	// RequestDuration tracks HTTP handler latency.
	// Labels: method, route
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "classifier",
				Name:      "predictions_total",
				Help:      "Total number of predictions by category and priority",
			},
			[]string{"category", "priority"},
		),
		ImagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "images",
				Name:      "total",
				Help:      "Total number of submitted images by processing result",
			},
			[]string{"result"},
		),
		PredictionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "classifier",
				Name:      "categorize_duration_seconds",
				Help:      "Duration of report categorization in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.Registry.MustRegister(
		m.PredictionsTotal,
		m.ImagesTotal,
		m.PredictionDuration,
		m.RequestsTotal,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObservePrediction records one classifier result.
func (m *Metrics) ObservePrediction(category, priority string, d time.Duration) {
	if m == nil {
		return
	}
	m.PredictionsTotal.WithLabelValues(category, priority).Inc()
	m.PredictionDuration.Observe(d.Seconds())
}

// ObserveImages records processed and rejected attachment counts.
func (m *Metrics) ObserveImages(processed, rejected int) {
	if m == nil {
		return
	}
	m.ImagesTotal.WithLabelValues("processed").Add(float64(processed))
	m.ImagesTotal.WithLabelValues("rejected").Add(float64(rejected))
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
