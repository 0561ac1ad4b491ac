package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesSettled      int
	settlementFailures  map[string]int
	settlementDurations []float64
	ratingsSubmitted    int
	eventsPublished     map[string]int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		settlementFailures:  make(map[string]int),
		settlementDurations: make([]float64, 0),
		eventsPublished:     make(map[string]int),
	}
}

func (m *Mock) IncMatchesSettled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesSettled++
}

func (m *Mock) IncSettlementFailures(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlementFailures[reason]++
}

func (m *Mock) ObserveSettlementDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlementDurations = append(m.settlementDurations, duration)
}

func (m *Mock) IncRatingsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingsSubmitted++
}

func (m *Mock) IncEventsPublished(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[topic]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesSettled returns the number of times IncMatchesSettled was called.
func (m *Mock) MatchesSettled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesSettled
}

// SettlementFailures returns the failure count recorded for reason.
func (m *Mock) SettlementFailures(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settlementFailures[reason]
}

// SettlementDurations returns how many durations were observed.
func (m *Mock) SettlementDurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.settlementDurations)
}

func (m *Mock) RatingsSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingsSubmitted
}

// EventsPublished returns the number of events published to topic.
func (m *Mock) EventsPublished(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[topic]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
