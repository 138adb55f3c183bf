package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	FeedEntriesWrittenTotal    = "feed_entries_written_total"
	FeedEntriesDeletedTotal    = "feed_entries_deleted_total"
	FeedChunkFailureTotal      = "feed_chunk_failure_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		FeedEntriesWrittenTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FeedEntriesWrittenTotal,
			Help: "Count of feed entries written by fan-out and backfill",
		}, []string{"reason"}),
		FeedEntriesDeletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FeedEntriesDeletedTotal,
			Help: "Count of feed entries removed by cleanup",
		}, []string{"reason"}),
		FeedChunkFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FeedChunkFailureTotal,
			Help: "Count of failed propagation chunks (not retried)",
		}, []string{"reason"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)
