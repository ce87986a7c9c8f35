package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors updated by Compute.
type Metrics struct {
	computations  *prometheus.CounterVec
	duration      prometheus.Histogram
	cacheHits     prometheus.Counter
	historyErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordcalc_computations_total",
				Help: "Computations by outcome (ok or the error kind).",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordcalc_compute_duration_seconds",
				Help:    "Time spent in Compute, history write included.",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordcalc_translate_cache_hits_total",
				Help: "Inputs whose expression came from the translation cache.",
			},
		),
		historyErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordcalc_history_errors_total",
				Help: "Failed history appends.",
			},
		),
	}
	reg.MustRegister(m.computations, m.duration, m.cacheHits, m.historyErrors)
	return m
}
