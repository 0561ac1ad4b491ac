package http

import (
	"net/http"

	"github.com/mauv0809/gleague/internal/config"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/notifier"
	"github.com/mauv0809/gleague/internal/player"
	"github.com/mauv0809/gleague/internal/processor"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
)

// Stores groups the repositories read by the API.
type Stores struct {
	Players   player.PlayerStore
	Seasons   season.SeasonStore
	Standings standings.StandingsStore
	Matches   match.MatchStore
	Ratings   rating.RatingStore
}

type Server struct {
	Stores
	Cfg            config.Config
	Processor      processor.Service
	Notifier       notifier.Notifier
	MetricsHandler http.Handler
	Router         *http.ServeMux
	handler        http.Handler
}
