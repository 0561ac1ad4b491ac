package match

import (
	"context"

	"github.com/mauv0809/gleague/internal/database"
)

// MatchStore defines the interface for the match repository.
type MatchStore interface {
	Exists(ctx context.Context, q database.DBTX, id int64) (bool, error)
	// Insert writes the match and its stats rows and fills in the stats ids.
	Insert(ctx context.Context, q database.DBTX, m *Match) error
	Get(ctx context.Context, id int64) (*Match, error)
	List(ctx context.Context, limit, offset int) ([]Match, error)
	PlayerHistory(ctx context.Context, steamID int64, query HistoryQuery) (*HistoryPage, error)
	PointsHistory(ctx context.Context, steamID, seasonID int64) ([]int, error)
	SignatureHeroes(ctx context.Context, steamID int64, limit int) ([]HeroSummary, error)
	Count(ctx context.Context) (int, error)
}
