package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/player"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/settlement"
	"github.com/mauv0809/gleague/internal/standings"
	"github.com/mauv0809/gleague/internal/steam"
)

const (
	numPlayers  = 20
	numMatches  = 500
	basePts     = 1000
	basePtsDiff = 20
	numHeroes   = 120
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "gleague.db"
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

// randomMatch picks ten distinct accounts from the pool and splits them into teams.
func randomMatch(id int64, start time.Time) *match.RawMatch {
	accounts := rand.Perm(numPlayers)[:10]
	heroes := rand.Perm(numHeroes)[:10]
	raw := &match.RawMatch{
		MatchID:    id,
		RadiantWin: rand.Intn(2) == 0,
		Duration:   1200 + rand.Intn(2400),
		GameMode:   []int{1, 2, 22}[rand.Intn(3)],
		StartTime:  start.Unix(),
	}
	for slot, account := range accounts {
		healing := rand.Intn(5000)
		raw.Players = append(raw.Players, match.RawPlayer{
			AccountID:   int64(account + 1),
			Kills:       rand.Intn(20),
			Deaths:      rand.Intn(15),
			Assists:     rand.Intn(25),
			HeroID:      heroes[slot] + 1,
			HeroDamage:  5000 + rand.Intn(40000),
			HeroHealing: &healing,
			LastHits:    rand.Intn(400),
			Denies:      rand.Intn(30),
			Level:       10 + rand.Intn(16),
			PlayerSlot:  slot,
		})
	}
	return raw
}

func main() {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	seasons := season.New(db)
	if _, err := seasons.EnsureCurrent(ctx); err != nil {
		log.Fatalf("Failed to open season: %s", err)
	}

	// Profiles and hero names come from the mock so seeding works offline.
	steamClient := steam.NewMock()
	engine := settlement.NewEngine(db, seasons, player.New(db, steamClient), standings.New(db, basePts), match.New(db), steamClient, basePtsDiff)

	log.Info("Settling dummy matches...", "total", numMatches, "players", numPlayers)
	startTime := time.Now()
	matchTime := time.Now().Add(-time.Duration(numMatches) * time.Hour)

	settled := 0
	for i := 0; i < numMatches; i++ {
		matchTime = matchTime.Add(time.Duration(30+rand.Intn(60)) * time.Minute)
		_, err := engine.Settle(ctx, randomMatch(int64(i+1), matchTime))
		if errors.Is(err, apperrors.ErrDuplicateMatch) {
			log.Debug("Match already seeded", "matchID", i+1)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to settle match %d: %s", i+1, err)
		}
		settled++
		if settled%100 == 0 {
			log.Info("Settled batch", "completed", settled, "total", numMatches)
		}
	}

	log.Info("Successfully seeded matches.", "settled", settled, "duration", time.Since(startTime))
}
