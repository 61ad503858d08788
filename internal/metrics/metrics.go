package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mailsift_messages_processed_total",
		Help: "Total number of successfully processed messages",
	})

	MessagesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mailsift_messages_failed_total",
		Help: "Total number of messages that failed to process",
	})

	DuplicatesDetected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mailsift_duplicates_detected_total",
		Help: "Total number of messages flagged as duplicate content",
	})

	SegmenterFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mailsift_segmenter_pattern_fallbacks_total",
		Help: "Total number of bodies routed to the pattern segmenter by size",
	})

	ProcessingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mailsift_message_processing_seconds",
		Help:    "Histogram of message processing durations in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func RegisterMetrics() {
	prometheus.MustRegister(MessagesProcessed)
	prometheus.MustRegister(MessagesFailed)
	prometheus.MustRegister(DuplicatesDetected)
	prometheus.MustRegister(SegmenterFallbacks)
	prometheus.MustRegister(ProcessingDuration)
}
