package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gleague_matches_settled_total",
			Help: "The total number of matches settled into the standings.",
		}),
		SettlementFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gleague_settlement_failures_total",
			Help: "The total number of settlements that were rejected or failed.",
		}, []string{"reason"}),
		SettlementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gleague_settlement_duration_seconds",
			Help:    "The duration of a match settlement, including player resolution.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RatingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gleague_ratings_submitted_total",
			Help: "The total number of performance ratings submitted.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gleague_events_published_total",
			Help: "The total number of events published, by topic.",
		}, []string{"topic"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gleague_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gleague_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gleague_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesSettled,
		s.SettlementFailures,
		s.SettlementDuration,
		s.RatingsSubmitted,
		s.EventsPublished,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesSettled() {
	s.MatchesSettled.Inc()
}

func (s *Service) IncSettlementFailures(reason string) {
	s.SettlementFailures.WithLabelValues(reason).Inc()
}

func (s *Service) ObserveSettlementDuration(duration float64) {
	s.SettlementDuration.Observe(duration)
}

func (s *Service) IncRatingsSubmitted() {
	s.RatingsSubmitted.Inc()
}

func (s *Service) IncEventsPublished(topic string) {
	s.EventsPublished.WithLabelValues(topic).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
