// Package metrics defines the fee-simulation-specific Prometheus
// metrics exposed by feesimd, separate from the generic HTTP request
// metrics gateway/middleware already instruments.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters and histograms registered against
// a single registry, so the /metrics endpoint reflects simulator
// activity alongside transport-level metrics.
type Metrics struct {
	RunsProcessed        *prometheus.CounterVec
	RunDuration          prometheus.Histogram
	EventsEmitted        prometheus.Counter
	ConservationFailures prometheus.Counter
	CurrentStakeSlashed  prometheus.Counter
}

// New registers the simulator metrics against registry and returns the
// handle callers use to record observations.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RunsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "feesim",
			Name:      "runs_processed_total",
			Help:      "Transactions processed by process_transaction, by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "feesim",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time to run process_transaction over one transcript.",
			Buckets:   prometheus.DefBuckets,
		}),
		EventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "feesim",
			Name:      "events_emitted_total",
			Help:      "FeeEvents emitted across every processed transaction.",
		}),
		ConservationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "feesim",
			Name:      "conservation_failures_total",
			Help:      "process_transaction runs that failed the conservation invariant.",
		}),
		CurrentStakeSlashed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "feesim",
			Name:      "stake_slashed_total",
			Help:      "Cumulative stake slashed across every processed transaction.",
		}),
	}
	registry.MustRegister(
		m.RunsProcessed,
		m.RunDuration,
		m.EventsEmitted,
		m.ConservationFailures,
		m.CurrentStakeSlashed,
	)
	return m
}
