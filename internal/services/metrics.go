package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fitmanager/internal/models"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Generation pipeline metrics
	GenerationRequests prometheus.Counter
	GenerationLatency  prometheus.Histogram
	GenerationErrors   *prometheus.CounterVec

	// Token accounting per model call
	TokensUsed *prometheus.CounterVec

	// Extraction outcomes by status ("parsed" or "raw")
	ExtractionResults *prometheus.CounterVec
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	metrics := &Metrics{
		GenerationRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fitmanager_generation_requests_total",
			Help: "Total number of program generation calls (start and continue)",
		}),

		GenerationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fitmanager_generation_duration_seconds",
			Help:    "Model call latency in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 180}, // LLM calls run long
		}),

		GenerationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fitmanager_generation_errors_total",
			Help: "Total number of generation errors by type",
		}, []string{"error_type"}),

		TokensUsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fitmanager_tokens_total",
			Help: "Total tokens consumed by model calls",
		}, []string{"direction"}), // direction: "input" or "output"

		ExtractionResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fitmanager_extraction_results_total",
			Help: "Program extraction outcomes by status",
		}, []string{"status"}),
	}

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordGeneration tracks one model call and its token usage.
func (m *Metrics) RecordGeneration(seconds float64, usage models.Usage) {
	if m == nil {
		return
	}
	m.GenerationRequests.Inc()
	m.GenerationLatency.Observe(seconds)
	m.TokensUsed.WithLabelValues("input").Add(float64(usage.InputTokens))
	m.TokensUsed.WithLabelValues("output").Add(float64(usage.OutputTokens))
}

// RecordGenerationError tracks a failed model call.
func (m *Metrics) RecordGenerationError(errorType string) {
	if m == nil {
		return
	}
	m.GenerationErrors.WithLabelValues(errorType).Inc()
}

// RecordExtraction tracks one extraction outcome.
func (m *Metrics) RecordExtraction(status string) {
	if m == nil {
		return
	}
	m.ExtractionResults.WithLabelValues(status).Inc()
}
