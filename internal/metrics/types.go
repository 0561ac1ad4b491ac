package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesSettled     prometheus.Counter
	SettlementFailures *prometheus.CounterVec
	SettlementDuration prometheus.Histogram
	RatingsSubmitted   prometheus.Counter
	EventsPublished    *prometheus.CounterVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
