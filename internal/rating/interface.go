package rating

import "context"

// RatingStore defines the interface for the rating subsystem.
type RatingStore interface {
	Rate(ctx context.Context, matchID, statsID, raterSteamID int64, value int) (*Rating, error)
	// GetRatings summarises every stats row of the match. viewer may be nil.
	GetRatings(ctx context.Context, matchID int64, viewer *int64) (map[int64]Summary, error)
	PlayerAverage(ctx context.Context, steamID int64) (float64, int, error)
}
