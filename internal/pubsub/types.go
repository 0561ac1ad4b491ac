package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// disabledClient is used when no GCP project is configured. It only logs.
type disabledClient struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchSettled    EventType = "match-settled"
	EventRatingSubmitted EventType = "rating-submitted"
	EventSeasonStarted   EventType = "season-started"
)

// MatchSettledEvent is published after a settlement commits.
type MatchSettledEvent struct {
	MatchID      int64         `msgpack:"match_id"`
	SeasonNumber int           `msgpack:"season_number"`
	RadiantWin   bool          `msgpack:"radiant_win"`
	StartTime    int64         `msgpack:"start_time"`
	Players      []PlayerDelta `msgpack:"players"`
}

// PlayerDelta is one participant's points movement.
type PlayerDelta struct {
	SteamID int64  `msgpack:"steam_id"`
	Hero    string `msgpack:"hero"`
	OldPts  int    `msgpack:"old_pts"`
	PtsDiff int    `msgpack:"pts_diff"`
}

// RatingSubmittedEvent is published after a rating is stored.
type RatingSubmittedEvent struct {
	MatchID        int64 `msgpack:"match_id"`
	StatsID        int64 `msgpack:"stats_id"`
	RatedBySteamID int64 `msgpack:"rated_by_steam_id"`
	Rating         int   `msgpack:"rating"`
}

// SeasonStartedEvent is published when a new season opens.
type SeasonStartedEvent struct {
	SeasonID int64 `msgpack:"season_id"`
	Number   int   `msgpack:"number"`
}
