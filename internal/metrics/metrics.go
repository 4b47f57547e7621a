package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics registered via promauto so no explicit registration step is needed.

var (
	// SnapshotFetchesTotal counts snapshot fetches by terminal outcome
	// (success, error, aborted) and error kind.
	SnapshotFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphscope_snapshot_fetches_total",
			Help: "Total number of snapshot fetches by outcome",
		},
		[]string{"status", "kind"},
	)

	// SnapshotFetchDuration measures end to end fetch latency.
	SnapshotFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphscope_snapshot_fetch_duration_seconds",
			Help:    "Duration of snapshot fetches in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// RenderPassesTotal counts full frame renders.
	RenderPassesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graphscope_render_passes_total",
			Help: "Total number of frame renders",
		},
	)

	// ReplayTicksTotal counts time-travel replay steps.
	ReplayTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graphscope_replay_ticks_total",
			Help: "Total number of replay timer ticks",
		},
	)
)
