package notifier

import (
	"context"

	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For settled matches
	SendMatchResult(ctx context.Context, m *match.Match, dryRun bool) error
	// For season rollover
	SendSeasonStarted(ctx context.Context, s *season.Season, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(board []standings.Standing) (any, error)
	FormatPlayerStatsResponse(st *standings.Standing) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
