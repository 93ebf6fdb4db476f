package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for generation calls. Labels identify the provider and
// the kind of call (generate, keywords, stream) so dashboards can separate
// cheap keyword lookups from full article generations.
var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogforge_generations_total",
		Help: "Total number of generation API calls by provider, kind, and outcome.",
	}, []string{"provider", "kind", "outcome"})

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogforge_generation_duration_seconds",
		Help:    "Latency of blocking generation API calls.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
	}, []string{"provider", "kind"})
)

func observeCall(provider, kind string, seconds float64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	generationsTotal.WithLabelValues(provider, kind, outcome).Inc()
	generationDuration.WithLabelValues(provider, kind).Observe(seconds)
}
