package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRuns counts sync passes by outcome
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mirra",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Library sync passes by outcome.",
	}, []string{"outcome"})

	// SyncDuration observes how long a full sync pass takes
	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mirra",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Duration of a full library sync pass.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	// SyncItemsProcessed counts catalog entries seen during sync
	SyncItemsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mirra",
		Subsystem: "sync",
		Name:      "items_processed_total",
		Help:      "Catalog entries processed during library sync.",
	})

	// SyncItemsRemoved counts mirror rows deleted because the catalog no
	// longer lists them
	SyncItemsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mirra",
		Subsystem: "sync",
		Name:      "items_removed_total",
		Help:      "Mirror rows removed after disappearing from the catalog.",
	})

	// SyncMatchMisses counts entries that could not be matched to a
	// canonical id
	SyncMatchMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mirra",
		Subsystem: "sync",
		Name:      "match_misses_total",
		Help:      "Catalog entries with no canonical identity match.",
	})

	// StatusLookups counts batched status resolutions by mode
	StatusLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mirra",
		Subsystem: "status",
		Name:      "lookups_total",
		Help:      "Batched availability status resolutions by mode.",
	}, []string{"mode"})

	// StatusIDsResolved counts ids resolved across all lookups
	StatusIDsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mirra",
		Subsystem: "status",
		Name:      "ids_resolved_total",
		Help:      "Media ids resolved across status lookups.",
	})
)
