package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncMatchesSettled()
	// IncSettlementFailures counts a rejected or failed settlement by reason.
	IncSettlementFailures(reason string)
	ObserveSettlementDuration(duration float64)
	IncRatingsSubmitted()
	IncEventsPublished(topic string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
