package settlement

import (
	"context"

	"github.com/mauv0809/gleague/internal/match"
)

// Settler turns raw match results into persisted matches and standings updates.
type Settler interface {
	Settle(ctx context.Context, raw *match.RawMatch) (*match.Match, error)
	// Preview runs the full settlement and discards every write.
	Preview(ctx context.Context, raw *match.RawMatch) (*match.Match, error)
}

// HeroLookup resolves Dota hero ids to names.
type HeroLookup interface {
	HeroName(ctx context.Context, heroID int) (string, error)
}
