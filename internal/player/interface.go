package player

import (
	"context"

	"github.com/mauv0809/gleague/internal/database"
	"github.com/mauv0809/gleague/internal/steam"
)

// PlayerStore defines the interface for the player directory.
type PlayerStore interface {
	ResolveProfiles(ctx context.Context, steamIDs []int64) (map[int64]*steam.PlayerSummary, error)
	GetOrCreate(ctx context.Context, q database.DBTX, steamID int64, profile *steam.PlayerSummary) (*Player, error)
	Get(ctx context.Context, steamID int64) (*Player, error)
	List(ctx context.Context) ([]Player, error)
}

// ProfileLookup resolves a Steam ID to a public profile.
type ProfileLookup interface {
	PlayerSummary(ctx context.Context, steamID int64) (*steam.PlayerSummary, error)
}
