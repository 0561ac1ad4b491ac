package processor

import (
	"github.com/mauv0809/gleague/internal/metrics"
	"github.com/mauv0809/gleague/internal/pubsub"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/replay"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/settlement"
)

// Processor runs settlements and fans their results out to Slack, Pub/Sub and metrics.
type Processor struct {
	settler   settlement.Settler
	converter replay.Converter
	ratings   rating.RatingStore
	seasons   season.SeasonStore
	pubsub    pubsub.PubSubClient
	notifier  Notifier
	metrics   metrics.Metrics
}
