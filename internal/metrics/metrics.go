package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brewmetrics_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brewmetrics_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "endpoint"},
	)

	// Extraction metrics
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_extractions_total",
			Help: "Total number of simulated extractions",
		},
		[]string{"result"}, // result: perfect, suboptimal
	)

	ExtractionQualityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brewmetrics_extraction_quality_score",
			Help:    "Quality score distribution of simulated extractions",
			Buckets: []float64{-100, -50, -25, 0, 25, 50, 75, 90, 100},
		},
	)

	ValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_validation_errors_total",
			Help: "Total number of rejected extraction requests",
		},
		[]string{"error_type"},
	)

	// Alert metrics
	AlertsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_alerts_generated_total",
			Help: "Total number of alerts generated by the rule engine",
		},
		[]string{"severity", "category"},
	)

	// Trend metrics
	TrendsCalculatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_trends_calculated_total",
			Help: "Total number of trend aggregations performed",
		},
		[]string{"period"},
	)

	// Dispatch metrics
	DispatchQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brewmetrics_dispatch_queue_size",
			Help: "Current size of the alert dispatch queue",
		},
	)

	DispatchQueueCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brewmetrics_dispatch_queue_capacity",
			Help: "Capacity of the alert dispatch queue",
		},
	)

	DispatchProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "brewmetrics_dispatch_processed_total",
			Help: "Total number of alerts dispatched",
		},
	)

	DispatchFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "brewmetrics_dispatch_failed_total",
			Help: "Total number of alerts that failed to dispatch",
		},
	)

	DispatchDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "brewmetrics_dispatch_dropped_total",
			Help: "Total number of alerts dropped before publishing",
		},
	)

	// Kafka producer metrics
	KafkaPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_kafka_publish_total",
			Help: "Total number of messages published to Kafka",
		},
		[]string{"status"}, // status: success, failed
	)

	KafkaPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brewmetrics_kafka_publish_duration_seconds",
			Help:    "Time taken to publish to Kafka",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	KafkaBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "brewmetrics_kafka_bytes_written_total",
			Help: "Total bytes written to Kafka",
		},
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brewmetrics_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
