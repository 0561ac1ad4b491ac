package processor

import (
	"context"
	"io"

	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/notifier"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/mauv0809/gleague/internal/season"
)

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}

// Service is what the HTTP layer needs from the processor.
type Service interface {
	IngestMatch(ctx context.Context, raw *match.RawMatch, dryRun bool) (*match.Match, error)
	IngestReplay(ctx context.Context, replay io.Reader, dryRun bool) (*match.Match, error)
	Rate(ctx context.Context, matchID, statsID, raterSteamID int64, value int) (*rating.Rating, error)
	StartSeason(ctx context.Context, dryRun bool) (*season.Season, error)
}
