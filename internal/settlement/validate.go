package settlement

import (
	"fmt"

	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
)

const (
	playersPerMatch = 10
	playersPerTeam  = 5
)

// Validate checks the shape of a raw match before anything is written.
func Validate(raw *match.RawMatch) error {
	if raw == nil {
		return fmt.Errorf("%w: empty payload", apperrors.ErrInvalidMatch)
	}
	if raw.MatchID <= 0 {
		return fmt.Errorf("%w: match id %d", apperrors.ErrInvalidMatch, raw.MatchID)
	}
	if len(raw.Players) != playersPerMatch {
		return fmt.Errorf("%w: expected %d players, got %d", apperrors.ErrInvalidMatch, playersPerMatch, len(raw.Players))
	}

	slots := make(map[int]bool, playersPerMatch)
	accounts := make(map[int64]bool, playersPerMatch)
	radiant := 0
	for _, p := range raw.Players {
		if p.PlayerSlot < 0 || p.PlayerSlot >= playersPerMatch {
			return fmt.Errorf("%w: player slot %d out of range", apperrors.ErrInvalidMatch, p.PlayerSlot)
		}
		if slots[p.PlayerSlot] {
			return fmt.Errorf("%w: duplicate player slot %d", apperrors.ErrInvalidMatch, p.PlayerSlot)
		}
		slots[p.PlayerSlot] = true
		if accounts[p.AccountID] {
			return fmt.Errorf("%w: account %d appears twice", apperrors.ErrInvalidMatch, p.AccountID)
		}
		accounts[p.AccountID] = true
		if p.IsRadiant() {
			radiant++
		}
	}
	if radiant != playersPerTeam {
		return fmt.Errorf("%w: expected %d radiant players, got %d", apperrors.ErrInvalidMatch, playersPerTeam, radiant)
	}
	return nil
}
