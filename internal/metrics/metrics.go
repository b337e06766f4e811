package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asteroid_analyses_total",
			Help: "Total number of analysis calls by delivery mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	StreamEventsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asteroid_stream_events_emitted_total",
			Help: "Total number of content events emitted to streaming callers",
		},
	)

	StreamRecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asteroid_stream_records_dropped_total",
			Help: "Total number of malformed upstream records dropped during streaming",
		},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "openrouter_request_duration_seconds",
			Help: "Duration of buffered OpenRouter requests in seconds",
		},
	)
)
