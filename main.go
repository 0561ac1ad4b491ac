package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/config"
	"github.com/mauv0809/gleague/internal/database"
	server "github.com/mauv0809/gleague/internal/http"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/metrics"
	"github.com/mauv0809/gleague/internal/notifier/slack"
	"github.com/mauv0809/gleague/internal/player"
	"github.com/mauv0809/gleague/internal/processor"
	"github.com/mauv0809/gleague/internal/pubsub"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/replay"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/settlement"
	"github.com/mauv0809/gleague/internal/standings"
	"github.com/mauv0809/gleague/internal/steam"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx := context.Background()
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	steamClient, stopSteam := steam.New(cfg.Steam.BaseURL, cfg.Steam.APIKey, cfg.Steam.HeroCacheTTL, cfg.Steam.RequestsPerSecond)
	defer stopSteam()

	stores := server.Stores{
		Players:   player.New(db, steamClient),
		Seasons:   season.New(db),
		Standings: standings.New(db, cfg.League.SeasonBasePts),
		Matches:   match.New(db),
		Ratings:   rating.New(db),
	}
	current, err := stores.Seasons.EnsureCurrent(ctx)
	if err != nil {
		log.Fatalf("Failed to open current season: %s", err)
	}
	log.Info("Current season", "number", current.Number)

	var notifier *slack.Notifier
	if cfg.Slack.Enabled() {
		notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured. Notifications will only be logged.")
		notifier = slack.NewNotifierWithAPI(nil, cfg.Slack.ChannelID, metricsSvc)
	}

	pubsubClient, err := pubsub.New(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	defer pubsubClient.Close()

	engine := settlement.NewEngine(db, stores.Seasons, stores.Players, stores.Standings, stores.Matches, steamClient, cfg.League.BasePtsDiff)
	proc := processor.New(engine, replay.New(cfg.Dem2JSONPath), stores.Ratings, stores.Seasons, notifier, metricsSvc, pubsubClient)

	s := server.NewServer(cfg, stores, proc, notifier, metricsHandler)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
