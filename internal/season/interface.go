package season

import (
	"context"

	"github.com/mauv0809/gleague/internal/database"
)

// SeasonStore defines the interface for the season registry.
type SeasonStore interface {
	// Current returns the active season, read through q so it can join a
	// caller's transaction.
	Current(ctx context.Context, q database.DBTX) (*Season, error)
	EnsureCurrent(ctx context.Context) (*Season, error)
	StartNew(ctx context.Context) (*Season, error)
	List(ctx context.Context) ([]Season, error)
	GetByNumber(ctx context.Context, number int) (*Season, error)
}
