package steam

import "context"

// Client talks to the Steam Web API.
type Client interface {
	PlayerSummary(ctx context.Context, steamID int64) (*PlayerSummary, error)
	HeroName(ctx context.Context, heroID int) (string, error)
	Heroes(ctx context.Context) (map[int]string, error)
}
