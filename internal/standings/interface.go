package standings

import (
	"context"

	"github.com/mauv0809/gleague/internal/database"
)

// StandingsStore defines the interface for per-season player records.
type StandingsStore interface {
	GetOrCreate(ctx context.Context, q database.DBTX, steamID, seasonID int64) (*SeasonStats, error)
	Update(ctx context.Context, q database.DBTX, stats *SeasonStats) error
	Get(ctx context.Context, steamID, seasonID int64) (*SeasonStats, error)
	Leaderboard(ctx context.Context, seasonID int64, limit, offset int) ([]Standing, error)
	FindByNickname(ctx context.Context, seasonID int64, query string) (*Standing, error)
}
