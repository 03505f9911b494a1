package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sync job metrics
	GamesReconciledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_games_reconciled_total",
		Help: "The total number of game summaries applied by catalog sync runs",
	})
	SyncFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_sync_failures_total",
		Help: "The total number of aborted catalog sync runs",
	})
	DetailDumpsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_detail_dumps_total",
		Help: "The total number of game detail records dumped",
	})
	DetailDumpSkipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_detail_dump_skips_total",
		Help: "The total number of slugs skipped during detail dumps",
	})

	// HTTP metrics
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "The total number of HTTP requests served, by method and status",
	}, []string{"method", "status"})
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	})
)
