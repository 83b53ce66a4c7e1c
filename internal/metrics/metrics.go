package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsRelayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_total",
			Help: "Events handled, by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	SendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_send_seconds",
			Help:    "Latency of outbound Discord sends in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Outcome label values.
const (
	OutcomeOK                 = "ok"
	OutcomeValidationFailed   = "validation_failed"
	OutcomeChannelUnavailable = "channel_unavailable"
	OutcomeSendFailed         = "send_failed"
)

func init() {
	prometheus.MustRegister(EventsRelayed, SendDuration)
}
