package http

import (
	"net/http"

	"github.com/mauv0809/gleague/internal/config"
	"github.com/mauv0809/gleague/internal/http/handlers"
	"github.com/mauv0809/gleague/internal/notifier"
	"github.com/mauv0809/gleague/internal/processor"
	"github.com/rs/cors"
)

func NewServer(cfg config.Config, stores Stores, proc processor.Service, notifier notifier.Notifier, metricsHandler http.Handler) *Server {
	server := &Server{
		Stores:         stores,
		Cfg:            cfg,
		Processor:      proc,
		Notifier:       notifier,
		MetricsHandler: metricsHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	server.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", steamIDHeader, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, s.viewerMiddleware, s.requireAdmin)
	players := handlers.PlayerDeps{
		Players:        s.Players,
		Seasons:        s.Seasons,
		Standings:      s.Standings,
		Matches:        s.Matches,
		Ratings:        s.Ratings,
		BasePts:        s.Cfg.League.SeasonBasePts,
		RecentMatches:  s.Cfg.League.PlayerOverviewMatches,
		HistoryPerPage: s.Cfg.League.PlayerHistoryPerPage,
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(handlers.IngestMatchHandler(s.Processor), paramsMiddleware, s.viewerMiddleware, s.requireAdmin))
	s.Router.Handle("POST /matches/replay", Chain(handlers.IngestReplayHandler(s.Processor), paramsMiddleware, s.viewerMiddleware, s.requireAdmin))
	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(handlers.GetMatchHandler(s.Matches), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/ratings", Chain(handlers.MatchRatingsHandler(s.Matches, s.Ratings), paramsMiddleware, s.viewerMiddleware))
	s.Router.Handle("POST /matches/{id}/ratings/{statsID}", Chain(handlers.RateHandler(s.Processor), paramsMiddleware, s.viewerMiddleware))

	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Players), paramsMiddleware))
	s.Router.Handle("GET /players/{steamID}", Chain(handlers.PlayerOverviewHandler(players), paramsMiddleware))
	s.Router.Handle("GET /players/{steamID}/matches", Chain(handlers.PlayerHistoryHandler(players), paramsMiddleware))

	s.Router.Handle("GET /seasons", Chain(handlers.ListSeasonsHandler(s.Seasons), paramsMiddleware))
	s.Router.Handle("GET /seasons/current/standings", Chain(handlers.CurrentStandingsHandler(s.Seasons, s.Standings), paramsMiddleware))
	s.Router.Handle("POST /seasons", Chain(handlers.StartSeasonHandler(s.Processor), paramsMiddleware, s.viewerMiddleware, s.requireAdmin))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Seasons, s.Standings, s.Notifier), paramsMiddleware, s.verifySlackSignature))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Seasons, s.Standings, s.Notifier), paramsMiddleware, s.verifySlackSignature))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
