// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// newsSnapshotNanos is the fetch time of the current live news snapshot,
// unix nanoseconds; zero until the first successful refresh.
var newsSnapshotNanos atomic.Int64

// MarkNewsSnapshot records when the live news snapshot was fetched.
// NewsSnapshotAge is computed from it at scrape time.
func MarkNewsSnapshot(t time.Time) {
	newsSnapshotNanos.Store(t.UnixNano())
}

var (
	IngestItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threat_feeds_ingest_items_total",
		Help: "Normalized items written per ingestion source.",
	}, []string{"source"})

	IngestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threat_feeds_ingest_failures_total",
		Help: "Aborted ingestion runs per source.",
	}, []string{"source"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threat_feeds_http_requests_total",
		Help: "Served HTTP requests by route pattern and status code.",
	}, []string{"route", "code"})

	NewsSnapshotItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "threat_feeds_news_snapshot_items",
		Help: "Items in the current live news snapshot.",
	})

	NewsSnapshotAge = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "threat_feeds_news_snapshot_age_seconds",
		Help: "Seconds since the live news snapshot was last refreshed.",
	}, func() float64 {
		nanos := newsSnapshotNanos.Load()
		if nanos == 0 {
			return 0
		}
		return time.Since(time.Unix(0, nanos)).Seconds()
	})
)
